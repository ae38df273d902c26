package models

import "sort"

// Course is a pre-authored multi-stop itinerary.
type Course struct {
	ID          string `json:"course_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Theme       string `json:"theme,omitempty"`
}

// CourseMembership places a location in a course. Order is display order only.
type CourseMembership struct {
	CourseID   string `json:"course_id"`
	LocationID string `json:"spot_id"`
	Order      int    `json:"order"`
}

// Dataset is a read-only snapshot of the three collections, loaded once per request.
type Dataset struct {
	Locations   []Location         `json:"spots"`
	Courses     []Course           `json:"courses"`
	Memberships []CourseMembership `json:"course_spots"`
}

// CoursesFor returns the courses containing the location, in dataset order.
func (d *Dataset) CoursesFor(loc Location) []Course {
	ids := make(map[string]struct{})
	for _, m := range d.Memberships {
		if m.LocationID == loc.Key() {
			ids[m.CourseID] = struct{}{}
		}
	}
	var out []Course
	for _, c := range d.Courses {
		if _, ok := ids[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Stops returns the locations of a course sorted by membership order.
// Memberships pointing at unknown locations are skipped.
func (d *Dataset) Stops(course Course) []Location {
	var members []CourseMembership
	for _, m := range d.Memberships {
		if m.CourseID == course.ID {
			members = append(members, m)
		}
	}
	sort.SliceStable(members, func(i, j int) bool { return members[i].Order < members[j].Order })

	byKey := make(map[string]Location, len(d.Locations))
	for _, l := range d.Locations {
		if _, seen := byKey[l.Key()]; !seen {
			byKey[l.Key()] = l
		}
	}
	out := make([]Location, 0, len(members))
	for _, m := range members {
		if l, ok := byKey[m.LocationID]; ok {
			out = append(out, l)
		}
	}
	return out
}
