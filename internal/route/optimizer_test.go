package route

import (
	"math"
	"reflect"
	"testing"

	"concierge/internal/models"
	"concierge/pkg/geo"
)

var user = geo.Coordinate{Lat: 33.59, Lon: 130.40}

func resolved(id string, lat, lon float64) models.EnrichedLocation {
	return models.NewResolved(models.Location{ID: id, Name: id}, geo.Coordinate{Lat: lat, Lon: lon}, user)
}

func unresolved(id string) models.EnrichedLocation {
	return models.NewUnresolved(models.Location{ID: id, Name: id}, "test")
}

func ids(route []models.EnrichedLocation) []string {
	out := make([]string, len(route))
	for i, r := range route {
		out[i] = r.ID
	}
	return out
}

func TestCombinations(t *testing.T) {
	var got [][]int
	combinations(4, 3, func(idx []int) {
		got = append(got, append([]int(nil), idx...))
	})
	want := [][]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	count := 0
	combinations(6, 3, func([]int) { count++ })
	if count != 20 {
		t.Fatalf("C(6,3) enumerated %d combinations", count)
	}
}

func TestSelectRoute_BeatsEveryOtherTriple(t *testing.T) {
	pool := []models.EnrichedLocation{
		resolved("a", 33.5929, 130.4106),
		resolved("b", 33.5847, 130.3969),
		resolved("c", 33.5958, 130.3833),
		resolved("d", 33.5839, 130.4151),
		resolved("e", 33.6064, 130.4183),
		resolved("f", 33.5779, 130.3941),
	}

	got := SelectRoute(pool, 3)
	if len(got) != 3 {
		t.Fatalf("got %d stops", len(got))
	}
	best := Score(got)

	combinations(len(pool), 3, func(idx []int) {
		other := []models.EnrichedLocation{pool[idx[0]], pool[idx[1]], pool[idx[2]]}
		if s := Score(other); s < best {
			t.Errorf("triple %v scores %f, better than chosen %v (%f)", idx, s, ids(got), best)
		}
	})
}

func TestSelectRoute_PrefersMutuallyCloseStops(t *testing.T) {
	pool := []models.EnrichedLocation{
		resolved("north", 33.6080, 130.4000), // nearest to the user, far from the rest
		resolved("south-1", 33.5675, 130.4000),
		resolved("south-2", 33.5665, 130.4020),
		resolved("south-3", 33.5657, 130.3980),
		resolved("far-1", 33.6800, 130.4000),
		resolved("far-2", 33.7000, 130.4000),
	}

	got := ids(SelectRoute(pool, 3))
	want := []string{"south-1", "south-2", "south-3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSelectRoute_DegradedModes(t *testing.T) {
	tests := []struct {
		name string
		pool []models.EnrichedLocation
		n    int
		want []string
	}{
		{
			name: "exactly n valid candidates are returned as is",
			pool: []models.EnrichedLocation{
				resolved("a", 33.60, 130.41), resolved("b", 33.58, 130.39), resolved("c", 33.59, 130.42),
			},
			n:    3,
			want: []string{"a", "b", "c"},
		},
		{
			name: "no valid candidates returns first n raw entries",
			pool: []models.EnrichedLocation{unresolved("a"), unresolved("b"), unresolved("c"), unresolved("d")},
			n:    3,
			want: []string{"a", "b", "c"},
		},
		{
			name: "valid candidates first then unresolved in pool order",
			pool: []models.EnrichedLocation{
				unresolved("x"), resolved("a", 33.60, 130.41), unresolved("y"), unresolved("z"),
			},
			n:    3,
			want: []string{"a", "x", "y"},
		},
		{
			name: "pool smaller than n",
			pool: []models.EnrichedLocation{unresolved("x"), resolved("a", 33.60, 130.41)},
			n:    3,
			want: []string{"a", "x"},
		},
		{
			name: "empty pool",
			pool: nil,
			n:    3,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(SelectRoute(tt.pool, tt.n))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectRoute_OnlySearchesFirstSixValid(t *testing.T) {
	pool := []models.EnrichedLocation{
		resolved("a", 33.70, 130.40),
		resolved("b", 33.71, 130.40),
		resolved("c", 33.72, 130.40),
		resolved("d", 33.73, 130.40),
		resolved("e", 33.74, 130.40),
		resolved("f", 33.75, 130.40),
		resolved("near-1", 33.5901, 130.4001),
		resolved("near-2", 33.5902, 130.4002),
		resolved("near-3", 33.5903, 130.4003),
	}
	for _, id := range ids(SelectRoute(pool, 3)) {
		if id == "near-1" || id == "near-2" || id == "near-3" {
			t.Fatalf("candidate %s beyond the search bound was selected", id)
		}
	}
}

func TestSelectRoute_TieKeepsFirstCombination(t *testing.T) {
	same := func(id string) models.EnrichedLocation { return resolved(id, 33.60, 130.40) }
	got := ids(SelectRoute([]models.EnrichedLocation{same("a"), same("b"), same("c"), same("d")}, 3))
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScore(t *testing.T) {
	a := resolved("a", 33.60, 130.40)
	b := resolved("b", 33.61, 130.40)
	ra, _ := a.Resolved()
	rb, _ := b.Resolved()
	want := ra.DistanceKm + geo.Kilometers(ra.Coordinate, rb.Coordinate)
	if got := Score([]models.EnrichedLocation{a, b}); math.Abs(got-want) > 1e-9 {
		t.Fatalf("Score = %f, want %f", got, want)
	}
	if got := Score([]models.EnrichedLocation{a, unresolved("x")}); !math.IsInf(got, 1) {
		t.Fatalf("Score with unresolved stop = %f, want +Inf", got)
	}
}

func TestHead(t *testing.T) {
	pool := []models.Location{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	got := Head(pool, 3)
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
	for _, e := range got {
		if _, ok := e.Resolved(); ok {
			t.Fatal("degraded mode must not compute distances")
		}
	}
	if got := Head(pool[:1], 3); len(got) != 1 {
		t.Fatalf("Head on small pool returned %d", len(got))
	}
}
