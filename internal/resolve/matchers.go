package resolve

import (
	"strings"

	"concierge/internal/models"
)

// Query is a request in the two forms the tiers match against.
type Query struct {
	// Normalized is the folded query with whitespace removed.
	Normalized string
	// Keyword is Normalized with noise terms stripped.
	Keyword string
}

// NewQuery normalizes raw into a Query.
func NewQuery(raw string) Query {
	return Query{Normalized: Normalize(raw), Keyword: Keyword(raw)}
}

// Matcher is one tier of the cascade. It reports ok only for a non-empty result.
type Matcher interface {
	Tier() models.Tier
	Match(q Query, ds *models.Dataset) (models.ResolutionResult, bool)
}

// DefaultMatchers is the cascade in priority order.
func DefaultMatchers() []Matcher {
	return []Matcher{
		ExactName{},
		PartialName{},
		CourseText{},
		Attribute{},
	}
}

// ExactName matches locations whose normalized name equals the normalized query.
type ExactName struct{}

func (ExactName) Tier() models.Tier { return models.TierExactName }

func (m ExactName) Match(q Query, ds *models.Dataset) (models.ResolutionResult, bool) {
	var u unique
	for _, l := range ds.Locations {
		if Normalize(l.Name) == q.Normalized {
			u.add(l)
		}
	}
	return locationResult(m.Tier(), u.locations, ds)
}

// PartialName matches locations whose normalized name contains the keyword.
// Exact hits are listed first.
type PartialName struct{}

func (PartialName) Tier() models.Tier { return models.TierPartialName }

func (m PartialName) Match(q Query, ds *models.Dataset) (models.ResolutionResult, bool) {
	var u unique
	for _, l := range ds.Locations {
		if Normalize(l.Name) == q.Normalized {
			u.add(l)
		}
	}
	for _, l := range ds.Locations {
		if strings.Contains(Normalize(l.Name), q.Keyword) {
			u.add(l)
		}
	}
	return locationResult(m.Tier(), u.locations, ds)
}

// CourseText matches courses by name, description or theme and exposes
// every location those courses visit.
type CourseText struct{}

func (CourseText) Tier() models.Tier { return models.TierCourse }

func (m CourseText) Match(q Query, ds *models.Dataset) (models.ResolutionResult, bool) {
	var courses []models.Course
	for _, c := range ds.Courses {
		for _, field := range []string{c.Name, c.Description, c.Theme} {
			if strings.Contains(Normalize(field), q.Keyword) {
				courses = append(courses, c)
				break
			}
		}
	}
	if len(courses) == 0 {
		return models.ResolutionResult{}, false
	}

	var u unique
	plans := make([]models.Plan, 0, len(courses))
	for _, c := range courses {
		stops := ds.Stops(c)
		first := ""
		if len(stops) > 0 {
			first = stops[0].Name
		}
		plans = append(plans, models.NewPlan(c, first))
		for _, l := range stops {
			u.add(l)
		}
	}
	return models.ResolutionResult{
		Tier:      m.Tier(),
		Locations: u.locations,
		Courses:   courses,
		Plans:     plans,
	}, true
}

// Attribute matches locations by address first, then by free-text attributes.
type Attribute struct{}

func (Attribute) Tier() models.Tier { return models.TierAttribute }

func (m Attribute) Match(q Query, ds *models.Dataset) (models.ResolutionResult, bool) {
	var u unique
	for _, l := range ds.Locations {
		if strings.Contains(Normalize(l.Address), q.Keyword) {
			u.add(l)
		}
	}
	for _, l := range ds.Locations {
		for _, attr := range l.Attributes() {
			if strings.Contains(Normalize(attr), q.Keyword) {
				u.add(l)
				break
			}
		}
	}
	return locationResult(m.Tier(), u.locations, ds)
}

// locationResult gathers the courses reachable from each matched location.
func locationResult(tier models.Tier, locations []models.Location, ds *models.Dataset) (models.ResolutionResult, bool) {
	if len(locations) == 0 {
		return models.ResolutionResult{}, false
	}
	res := models.ResolutionResult{Tier: tier, Locations: locations}
	seen := make(map[string]struct{})
	for _, l := range locations {
		for _, c := range ds.CoursesFor(l) {
			res.Plans = append(res.Plans, models.NewPlan(c, l.Name))
			if _, ok := seen[c.ID]; !ok {
				seen[c.ID] = struct{}{}
				res.Courses = append(res.Courses, c)
			}
		}
	}
	return res, true
}

// unique keeps the first location seen per identity key.
type unique struct {
	seen      map[string]struct{}
	locations []models.Location
}

func (u *unique) add(l models.Location) {
	if u.seen == nil {
		u.seen = make(map[string]struct{})
	}
	if _, ok := u.seen[l.Key()]; ok {
		return
	}
	u.seen[l.Key()] = struct{}{}
	u.locations = append(u.locations, l)
}
