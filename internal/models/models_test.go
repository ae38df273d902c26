package models

import (
	"reflect"
	"testing"

	"concierge/pkg/geo"
)

func TestLocation_Key(t *testing.T) {
	cases := []struct {
		name string
		loc  Location
		want string
	}{
		{"id wins", Location{ID: "s1", Name: "櫛田神社"}, "s1"},
		{"name fallback", Location{Name: "警固神社"}, "警固神社"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.loc.Key(); got != tc.want {
				t.Fatalf("Key() = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestLocation_Placeable(t *testing.T) {
	c := geo.Coordinate{Lat: 33.5929, Lon: 130.4106}
	cases := []struct {
		name string
		loc  Location
		want bool
	}{
		{"coordinate", Location{Name: "櫛田神社", Coordinate: &c}, true},
		{"address", Location{Name: "警固神社", Address: "福岡市中央区警固2-2-20"}, true},
		{"blank address", Location{Name: "名無し", Address: " \t"}, false},
		{"nothing", Location{Name: "名無し"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.loc.Placeable(); got != tc.want {
				t.Fatalf("Placeable() = %t; want %t", got, tc.want)
			}
		})
	}
}

func TestParseCoordinate(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon string
		want     *geo.Coordinate
	}{
		{"plain", "33.5925", "130.4107", &geo.Coordinate{Lat: 33.5925, Lon: 130.4107}},
		{"decimal comma", "33,5925", "130,4107", &geo.Coordinate{Lat: 33.5925, Lon: 130.4107}},
		{"empty", "", "130.4", nil},
		{"zero means unknown", "0", "0", nil},
		{"garbage", "north", "130.4", nil},
		{"out of range", "95", "130.4", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseCoordinate(tc.lat, tc.lon)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseCoordinate(%q, %q) = %v; want %v", tc.lat, tc.lon, got, tc.want)
			}
		})
	}
}

func TestLocation_HasBenefit(t *testing.T) {
	loc := Location{BenefitTags: []string{"縁結び・恋愛成就", "厄除け"}}
	if !loc.HasBenefit("恋愛") {
		t.Error("expected 恋愛 to match")
	}
	if loc.HasBenefit("商売繁盛", "必勝") {
		t.Error("did not expect business benefit to match")
	}
}

func testDataset() *Dataset {
	return &Dataset{
		Locations: []Location{
			{ID: "s1", Name: "櫛田神社"},
			{ID: "s2", Name: "住吉神社"},
			{Name: "博多町家ふるさと館"},
		},
		Courses: []Course{
			{ID: "c1", Name: "博多歴史散歩"},
			{ID: "c2", Name: "縁結びめぐり"},
			{ID: "c3", Name: "空のコース"},
		},
		Memberships: []CourseMembership{
			{CourseID: "c1", LocationID: "博多町家ふるさと館", Order: 2},
			{CourseID: "c1", LocationID: "s1", Order: 1},
			{CourseID: "c2", LocationID: "s2", Order: 1},
			{CourseID: "c2", LocationID: "s1", Order: 2},
			{CourseID: "c2", LocationID: "missing", Order: 3},
		},
	}
}

func TestDataset_CoursesFor(t *testing.T) {
	ds := testDataset()
	got := ds.CoursesFor(ds.Locations[0])
	want := []Course{ds.Courses[0], ds.Courses[1]}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CoursesFor = %+v; want %+v", got, want)
	}
	if got := ds.CoursesFor(Location{ID: "nowhere"}); got != nil {
		t.Fatalf("expected no courses, got %+v", got)
	}
}

func TestDataset_Stops(t *testing.T) {
	ds := testDataset()
	got := ds.Stops(ds.Courses[0])
	if len(got) != 2 || got[0].Name != "櫛田神社" || got[1].Name != "博多町家ふるさと館" {
		t.Fatalf("Stops(c1) = %+v", got)
	}
	if got := ds.Stops(ds.Courses[1]); len(got) != 2 {
		t.Fatalf("expected unknown memberships to be skipped, got %+v", got)
	}
}

func TestNewResolved(t *testing.T) {
	ref := geo.Coordinate{Lat: 0, Lon: 0}
	e := NewResolved(Location{Name: "a"}, geo.Coordinate{Lat: 0, Lon: 1}, ref)
	r, ok := e.Resolved()
	if !ok {
		t.Fatal("expected resolved location")
	}
	if r.DistanceKm < 110 || r.DistanceKm > 112.5 {
		t.Fatalf("unexpected distance %f", r.DistanceKm)
	}

	if _, ok := NewUnresolved(Location{Name: "b"}, "no address").Resolved(); ok {
		t.Fatal("expected unresolved location")
	}
}

func TestResolutionResult_PrimaryLocationName(t *testing.T) {
	if got := (ResolutionResult{}).PrimaryLocationName(); got != "" {
		t.Fatalf("empty result has primary name %q", got)
	}
	r := ResolutionResult{Locations: []Location{{Name: "櫛田神社"}, {Name: "住吉神社"}}}
	if got := r.PrimaryLocationName(); got != "櫛田神社" {
		t.Fatalf("PrimaryLocationName = %q", got)
	}
}
