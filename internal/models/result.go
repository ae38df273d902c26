package models

// Tier identifies which match strategy produced a ResolutionResult.
type Tier int

const (
	TierNone Tier = iota
	TierExactName
	TierPartialName
	TierCourse
	TierAttribute
)

func (t Tier) String() string {
	switch t {
	case TierExactName:
		return "exact-name"
	case TierPartialName:
		return "partial-name"
	case TierCourse:
		return "course"
	case TierAttribute:
		return "attribute"
	default:
		return "none"
	}
}

// Plan links a course to the location it was reached from.
type Plan struct {
	CourseID     string `json:"course_id"`
	Course       string `json:"name"`
	Description  string `json:"description"`
	Theme        string `json:"theme"`
	LocationName string `json:"shrine_name,omitempty"`
}

func NewPlan(c Course, locationName string) Plan {
	return Plan{
		CourseID:     c.ID,
		Course:       c.Name,
		Description:  c.Description,
		Theme:        c.Theme,
		LocationName: locationName,
	}
}

// ResolutionResult is the outcome of resolving a free-text query.
// Locations never repeat. For TierCourse, Courses are the matched courses;
// otherwise they are the courses reachable from Locations.
type ResolutionResult struct {
	Tier      Tier
	Locations []Location
	Courses   []Course
	Plans     []Plan
}

func (r ResolutionResult) Empty() bool {
	return len(r.Locations) == 0 && len(r.Courses) == 0
}

// PrimaryLocationName is the name of the first matched location, or "".
func (r ResolutionResult) PrimaryLocationName() string {
	if len(r.Locations) == 0 {
		return ""
	}
	return r.Locations[0].Name
}

// PlansFor returns the plans reached from the named location.
func (r ResolutionResult) PlansFor(locationName string) []Plan {
	var out []Plan
	for _, p := range r.Plans {
		if p.LocationName == locationName {
			out = append(out, p)
		}
	}
	return out
}
