package resolve

import (
	"reflect"
	"testing"

	"concierge/internal/models"
)

func names(locs []models.Location) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = l.Name
	}
	return out
}

func courseNames(cs []models.Course) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func fixture() *models.Dataset {
	return &models.Dataset{
		Locations: []models.Location{
			{ID: "s1", Name: "Kushida Shrine", Address: "福岡市博多区上川端町1-41", BenefitTags: []string{"商売繁盛", "不老長寿"}},
			{ID: "s2", Name: "警固神社", Address: "福岡市中央区天神2-2-20", BenefitTags: []string{"厄除け"}},
			{ID: "s3", Name: "光雲神社", Address: "福岡市中央区西公園13-1", OtherBenefits: "黒田官兵衛ゆかり"},
			{ID: "s4", Name: "住吉神社", Address: "福岡市博多区住吉3-1-51", OtherBenefits: "博多区で最も古い"},
			{ID: "s5", Name: "Hakata", Address: "福岡市博多区博多駅中央街"},
			{ID: "s6", Name: "Hakata Machiya", Address: "福岡市博多区冷泉町6-10"},
		},
		Courses: []models.Course{
			{ID: "c1", Name: "博多歴史散歩", Description: "櫛田神社から町家へ", Theme: "歴史"},
			{ID: "c2", Name: "商売繁盛めぐり", Description: "商売の神様を巡る", Theme: "開運"},
			{ID: "c3", Name: "天神ランドマーク", Description: "福岡タワーと西公園", Theme: "ランドマーク"},
		},
		Memberships: []models.CourseMembership{
			{CourseID: "c1", LocationID: "s1", Order: 1},
			{CourseID: "c1", LocationID: "s6", Order: 2},
			{CourseID: "c2", LocationID: "s1", Order: 1},
			{CourseID: "c2", LocationID: "s4", Order: 2},
			{CourseID: "c3", LocationID: "s3", Order: 2},
			{CourseID: "c3", LocationID: "s2", Order: 1},
		},
	}
}

func TestKeyword(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"noise stripped", "櫛田神社周辺", "櫛田"},
		{"longest noise first", "博多周辺の神社", "博多"},
		{"whitespace and case", "  Kushida  Shrine ", "kushida"},
		{"full width", "ＫＵＳＨＩＤＡ", "kushida"},
		{"only noise falls back", "神社", "神社"},
		{"ideographic space", "警固　神社", "警固"},
		{"empty", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Keyword(tc.input); got != tc.expected {
				t.Fatalf("Keyword(%q) = %q; want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	ds := fixture()
	tests := []struct {
		name          string
		query         string
		preferred     string
		wantTier      models.Tier
		wantLocations []string
		wantCourses   []string
	}{
		{
			name:          "exact name short-circuits partial and address tiers",
			query:         "hakata",
			wantTier:      models.TierExactName,
			wantLocations: []string{"Hakata"},
			wantCourses:   []string{},
		},
		{
			name:          "partial name",
			query:         "Kushida",
			wantTier:      models.TierPartialName,
			wantLocations: []string{"Kushida Shrine"},
			wantCourses:   []string{"博多歴史散歩", "商売繁盛めぐり"},
		},
		{
			name:          "preferred name wins over query",
			query:         "Kushida",
			preferred:     "住吉神社",
			wantTier:      models.TierExactName,
			wantLocations: []string{"住吉神社"},
			wantCourses:   []string{"商売繁盛めぐり"},
		},
		{
			name:          "course text exposes courses and their stops",
			query:         "ランドマーク",
			wantTier:      models.TierCourse,
			wantLocations: []string{"警固神社", "光雲神社"},
			wantCourses:   []string{"天神ランドマーク"},
		},
		{
			name:          "course text beats address",
			query:         "商売",
			wantTier:      models.TierCourse,
			wantLocations: []string{"Kushida Shrine", "住吉神社"},
			wantCourses:   []string{"商売繁盛めぐり"},
		},
		{
			name:          "address then attributes, deduplicated",
			query:         "中央区",
			wantTier:      models.TierAttribute,
			wantLocations: []string{"警固神社", "光雲神社"},
			wantCourses:   []string{"天神ランドマーク"},
		},
		{
			name:          "attribute only",
			query:         "官兵衛",
			wantTier:      models.TierAttribute,
			wantLocations: []string{"光雲神社"},
			wantCourses:   []string{"天神ランドマーク"},
		},
		{
			name:          "no match",
			query:         "東京タワー",
			wantTier:      models.TierNone,
			wantLocations: []string{},
			wantCourses:   []string{},
		},
		{
			name:          "blank query",
			query:         "  ",
			wantTier:      models.TierNone,
			wantLocations: []string{},
			wantCourses:   []string{},
		},
	}

	r := NewResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.query, tt.preferred, ds)
			if got.Tier != tt.wantTier {
				t.Errorf("tier = %s, want %s", got.Tier, tt.wantTier)
			}
			if n := names(got.Locations); !reflect.DeepEqual(n, tt.wantLocations) {
				t.Errorf("locations = %v, want %v", n, tt.wantLocations)
			}
			if c := courseNames(got.Courses); !reflect.DeepEqual(c, tt.wantCourses) {
				t.Errorf("courses = %v, want %v", c, tt.wantCourses)
			}
		})
	}
}

func TestResolver_Resolve_SuffixOnlyNameIsExact(t *testing.T) {
	ds := &models.Dataset{Locations: []models.Location{
		{ID: "o1", Name: "住吉神社御旅所", Category: models.CategoryShrine},
		{ID: "o2", Name: "住吉神社", Category: models.CategoryShrine},
	}}
	tests := []struct {
		query         string
		wantTier      models.Tier
		wantLocations []string
	}{
		{query: "住吉神社", wantTier: models.TierExactName, wantLocations: []string{"住吉神社"}},
		{query: " 住吉 神社 ", wantTier: models.TierExactName, wantLocations: []string{"住吉神社"}},
		{query: "住吉", wantTier: models.TierPartialName, wantLocations: []string{"住吉神社御旅所", "住吉神社"}},
		{query: "住吉神社周辺", wantTier: models.TierPartialName, wantLocations: []string{"住吉神社御旅所", "住吉神社"}},
	}

	r := NewResolver()
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := r.Resolve(tt.query, "", ds)
			if got.Tier != tt.wantTier {
				t.Errorf("tier = %s, want %s", got.Tier, tt.wantTier)
			}
			if n := names(got.Locations); !reflect.DeepEqual(n, tt.wantLocations) {
				t.Errorf("locations = %v, want %v", n, tt.wantLocations)
			}
		})
	}
}

func TestPartialName_ExactHitsFirst(t *testing.T) {
	ds := &models.Dataset{Locations: []models.Location{
		{ID: "o1", Name: "住吉神社御旅所"},
		{ID: "o2", Name: "住吉神社"},
	}}
	got, ok := PartialName{}.Match(NewQuery("住吉神社"), ds)
	if !ok {
		t.Fatal("expected a partial match")
	}
	if n := names(got.Locations); !reflect.DeepEqual(n, []string{"住吉神社", "住吉神社御旅所"}) {
		t.Errorf("locations = %v", n)
	}
}

func TestResolver_Resolve_PlansCarryLocationName(t *testing.T) {
	got := NewResolver().Resolve("Kushida", "", fixture())
	if len(got.Plans) != 2 {
		t.Fatalf("expected 2 plans, got %+v", got.Plans)
	}
	for _, p := range got.Plans {
		if p.LocationName != "Kushida Shrine" {
			t.Errorf("plan %s linked to %q", p.Course, p.LocationName)
		}
	}
	if got.PrimaryLocationName() != "Kushida Shrine" {
		t.Errorf("primary = %q", got.PrimaryLocationName())
	}
}

func TestResolver_Resolve_Idempotent(t *testing.T) {
	ds := fixture()
	r := NewResolver()
	for _, q := range []string{"Kushida", "中央区", "ランドマーク", "nothing"} {
		first := r.Resolve(q, "", ds)
		second := r.Resolve(q, "", ds)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("%q resolved differently: %+v vs %+v", q, first, second)
		}
	}
}

func TestResolver_Resolve_DuplicateRecordsAppearOnce(t *testing.T) {
	ds := fixture()
	ds.Locations = append(ds.Locations, models.Location{ID: "s3", Name: "光雲神社 (duplicate)", Address: "福岡市中央区"})
	got := NewResolver().Resolve("中央区", "", ds)
	seen := map[string]int{}
	for _, l := range got.Locations {
		seen[l.Key()]++
	}
	for key, n := range seen {
		if n > 1 {
			t.Errorf("location %s appears %d times", key, n)
		}
	}
	if got.Locations[1].Name != "光雲神社" {
		t.Errorf("first occurrence should win, got %q", got.Locations[1].Name)
	}
}

func TestResolver_Resolve_CustomCascade(t *testing.T) {
	got := NewResolver(Attribute{}).Resolve("Kushida", "", fixture())
	if got.Tier != models.TierNone {
		t.Fatalf("name tiers were not part of the cascade, got tier %s", got.Tier)
	}
}
