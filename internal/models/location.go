package models

import (
	"strconv"
	"strings"

	"concierge/pkg/geo"
)

// CategoryShrine marks a Location as a shrine rather than a tourist spot.
const CategoryShrine = "神社"

// Location is a point of interest that may appear on a route.
type Location struct {
	ID            string          `json:"spotid,omitempty"`
	Name          string          `json:"shrine_name"`
	Address       string          `json:"address,omitempty"`
	Coordinate    *geo.Coordinate `json:"coordinate,omitempty"`
	Category      string          `json:"category,omitempty"`
	BenefitTags   []string        `json:"benefit_tags,omitempty"`
	TagAttribute  string          `json:"tag_attribute,omitempty"`
	OtherBenefits string          `json:"other_benefits,omitempty"`
}

// Key is the identity of the location: its id, or its name when it has none.
func (l Location) Key() string {
	if l.ID != "" {
		return l.ID
	}
	return l.Name
}

// Placeable reports whether the location can be put on a route at all.
func (l Location) Placeable() bool {
	return l.Coordinate != nil || strings.TrimSpace(l.Address) != ""
}

// Attributes returns the free-text attribute fields in match priority order.
func (l Location) Attributes() []string {
	attrs := make([]string, 0, len(l.BenefitTags)+2)
	attrs = append(attrs, l.OtherBenefits, l.TagAttribute)
	attrs = append(attrs, l.BenefitTags...)
	return attrs
}

// HasBenefit reports whether any benefit tag contains one of the given terms.
func (l Location) HasBenefit(terms ...string) bool {
	for _, tag := range l.BenefitTags {
		for _, term := range terms {
			if strings.Contains(tag, term) {
				return true
			}
		}
	}
	return false
}

// ParseCoordinate builds a coordinate from the loosely typed latitude and
// longitude columns of the data sources. Empty, zero, unparsable or out of
// range values yield nil.
func ParseCoordinate(lat, lon string) *geo.Coordinate {
	la, err := parseDegrees(lat)
	if err != nil {
		return nil
	}
	lo, err := parseDegrees(lon)
	if err != nil {
		return nil
	}
	return NewCoordinate(la, lo)
}

// NewCoordinate is ParseCoordinate for already numeric columns.
func NewCoordinate(lat, lon float64) *geo.Coordinate {
	if lat == 0 || lon == 0 {
		return nil
	}
	c := geo.Coordinate{Lat: lat, Lon: lon}
	if !c.Valid() {
		return nil
	}
	return &c
}

func parseDegrees(val string) (float64, error) {
	// Spreadsheet exports sometimes use a decimal comma.
	val = strings.TrimSpace(strings.ReplaceAll(val, ",", "."))
	return strconv.ParseFloat(val, 64)
}
