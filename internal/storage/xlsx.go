package storage

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"concierge/internal/models"
)

// Sheet names of the workbook layout.
const (
	SheetSpots       = "spot"
	SheetCourses     = "courses"
	SheetCourseSpots = "course_spots"
)

// XLSX reads the dataset from a workbook with one sheet per table.
type XLSX struct {
	path string
}

func NewXLSX(path string) *XLSX {
	return &XLSX{path: path}
}

func (x *XLSX) Load(_ context.Context) (*models.Dataset, error) {
	f, err := excelize.OpenFile(x.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", x.path, err)
	}
	defer f.Close()

	spots, err := f.GetRows(SheetSpots)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", SheetSpots, err)
	}
	courses := optionalSheet(f, SheetCourses)
	courseSpots := optionalSheet(f, SheetCourseSpots)

	ds := datasetFrom(spots, courses, courseSpots)
	log.WithFields(log.Fields{
		"path":    x.path,
		"spots":   len(ds.Locations),
		"courses": len(ds.Courses),
	}).Debug("loaded workbook dataset")
	return ds, nil
}

func optionalSheet(f *excelize.File, name string) [][]string {
	if idx, err := f.GetSheetIndex(name); err != nil || idx == -1 {
		log.WithField("sheet", name).Warn("sheet missing from workbook")
		return nil
	}
	rows, err := f.GetRows(name)
	if err != nil {
		log.WithError(err).WithField("sheet", name).Warn("failed to read sheet")
		return nil
	}
	return rows
}

// WriteXLSX writes ds as a workbook in the layout XLSX reads. The spots sheet
// has two benefit columns: the first tag goes in benefit_tag_1 and any further
// tags are joined with tagSeparator into benefit_tag_2.
func WriteXLSX(ds *models.Dataset, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSpots); err != nil {
		return err
	}
	for _, name := range []string{SheetCourses, SheetCourseSpots} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	spots := [][]any{{"spotid", "shrine_name", "address", "benefit_tag_1", "benefit_tag_2", "tag_attribute", "other_benefits", "latitude", "longitude", "category"}}
	for _, l := range ds.Locations {
		var lat, lon any
		if l.Coordinate != nil {
			lat, lon = l.Coordinate.Lat, l.Coordinate.Lon
		}
		spots = append(spots, []any{l.ID, l.Name, l.Address, tag(l.BenefitTags, 0), strings.Join(tail(l.BenefitTags), tagSeparator), l.TagAttribute, l.OtherBenefits, lat, lon, l.Category})
	}
	courses := [][]any{{"course_id", "name", "description", "theme"}}
	for _, c := range ds.Courses {
		courses = append(courses, []any{c.ID, c.Name, c.Description, c.Theme})
	}
	members := [][]any{{"course_id", "spot_id", "order"}}
	for _, m := range ds.Memberships {
		members = append(members, []any{m.CourseID, m.LocationID, m.Order})
	}

	for sheet, rows := range map[string][][]any{SheetSpots: spots, SheetCourses: courses, SheetCourseSpots: members} {
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
			}
		}
	}
	return f.SaveAs(path)
}

func tail(tags []string) []string {
	if len(tags) < 2 {
		return nil
	}
	return tags[1:]
}

func tag(tags []string, i int) string {
	if i < len(tags) {
		return tags[i]
	}
	return ""
}
