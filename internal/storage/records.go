package storage

import (
	"strconv"
	"strings"

	"concierge/internal/models"
)

// tagSeparator joins several benefit tags in one column.
const tagSeparator = "、"

// record is one row of a tabular export keyed by normalised header.
type record map[string]string

// get returns the first non-empty value among the given column aliases.
func (r record) get(columns ...string) string {
	for _, c := range columns {
		if v := strings.TrimSpace(r[c]); v != "" {
			return v
		}
	}
	return ""
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.Trim(strings.TrimSpace(h), `"`)
	return strings.ToLower(h)
}

// records turns a table whose first row is a header into records. Blank rows
// are skipped and short rows are padded with empty values.
func records(table [][]string) []record {
	if len(table) == 0 {
		return nil
	}
	header := make([]string, len(table[0]))
	for i, h := range table[0] {
		header[i] = normalizeHeader(h)
	}

	var out []record
	for _, row := range table[1:] {
		if blank(row) {
			continue
		}
		r := make(record, len(header))
		for i, h := range header {
			if i < len(row) {
				r[h] = strings.TrimSpace(row[i])
			}
		}
		out = append(out, r)
	}
	return out
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func locationFrom(r record) models.Location {
	loc := models.Location{
		ID:            r.get("spotid", "spot_id"),
		Name:          r.get("shrine_name", "spot_name", "name"),
		Address:       r.get("address"),
		Coordinate:    models.ParseCoordinate(r.get("latitude", "lat"), r.get("longitude", "lng", "lon")),
		Category:      r.get("category"),
		TagAttribute:  r.get("tag_attribute"),
		OtherBenefits: r.get("other_benefits"),
	}
	for _, c := range []string{"benefit_tag_1", "benefit_tag_2"} {
		for _, tag := range strings.Split(r.get(c), tagSeparator) {
			if tag = strings.TrimSpace(tag); tag != "" {
				loc.BenefitTags = append(loc.BenefitTags, tag)
			}
		}
	}
	return loc
}

func courseFrom(r record) models.Course {
	return models.Course{
		ID:          r.get("course_id", "courseid"),
		Name:        r.get("name", "course_name"),
		Description: r.get("description"),
		Theme:       r.get("theme"),
	}
}

func membershipFrom(r record) models.CourseMembership {
	order, _ := strconv.Atoi(r.get("order"))
	return models.CourseMembership{
		CourseID:   r.get("course_id", "courseid"),
		LocationID: r.get("spot_id", "spotid"),
		Order:      order,
	}
}

// datasetFrom assembles a dataset from the three tables.
func datasetFrom(spots, courses, memberships [][]string) *models.Dataset {
	ds := &models.Dataset{}
	for _, r := range records(spots) {
		ds.Locations = append(ds.Locations, locationFrom(r))
	}
	for _, r := range records(courses) {
		ds.Courses = append(ds.Courses, courseFrom(r))
	}
	for _, r := range records(memberships) {
		ds.Memberships = append(ds.Memberships, membershipFrom(r))
	}
	return tidy(ds)
}

// tidy drops rows lacking their identity and keeps the first row of any id
// repeated within a collection.
func tidy(ds *models.Dataset) *models.Dataset {
	locations := ds.Locations[:0]
	seen := map[string]bool{}
	for _, loc := range ds.Locations {
		if loc.Key() == "" || seen[loc.Key()] {
			continue
		}
		seen[loc.Key()] = true
		locations = append(locations, loc)
	}
	ds.Locations = locations

	courses := ds.Courses[:0]
	seen = map[string]bool{}
	for _, c := range ds.Courses {
		if c.ID == "" || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		courses = append(courses, c)
	}
	ds.Courses = courses

	memberships := ds.Memberships[:0]
	for _, m := range ds.Memberships {
		if m.CourseID == "" || m.LocationID == "" {
			continue
		}
		memberships = append(memberships, m)
	}
	ds.Memberships = memberships
	return ds
}
