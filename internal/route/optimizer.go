// Package route picks a short ordered tour out of a pool of enriched candidates.
package route

import (
	"math"

	"concierge/internal/models"
	"concierge/pkg/geo"
)

const (
	// DefaultLength is the number of stops in a recommended route.
	DefaultLength = 3
	// MaxSearch bounds how many valid candidates, in pool order, the
	// exhaustive search looks at.
	MaxSearch = 6
)

// Head is the degraded mode used when no reference point is known: the first
// n locations of the pool, in pool order, left unresolved.
func Head(pool []models.Location, n int) []models.EnrichedLocation {
	if n <= 0 {
		return nil
	}
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]models.EnrichedLocation, n)
	for i := range out {
		out[i] = models.NewUnresolved(pool[i], "no reference location")
	}
	return out
}

// SelectRoute returns at most n candidates forming the cheapest path that
// starts at the reference point and visits them in pool order.
//
// When fewer than n candidates are resolved, all resolved ones are returned
// followed by unresolved ones in pool order. Otherwise every index-ordered
// combination of the first MaxSearch resolved candidates is scored and the
// first combination with the smallest score wins.
func SelectRoute(pool []models.EnrichedLocation, n int) []models.EnrichedLocation {
	if n <= 0 || len(pool) == 0 {
		return nil
	}

	var valid, invalid []models.EnrichedLocation
	for _, c := range pool {
		if _, ok := c.Resolved(); ok {
			valid = append(valid, c)
		} else {
			invalid = append(invalid, c)
		}
	}

	if len(valid) < n {
		out := append([]models.EnrichedLocation{}, valid...)
		missing := n - len(valid)
		if missing > len(invalid) {
			missing = len(invalid)
		}
		return append(out, invalid[:missing]...)
	}

	k := MaxSearch
	if k < n {
		k = n
	}
	if k > len(valid) {
		k = len(valid)
	}
	candidates := valid[:k]

	var best []int
	bestScore := math.Inf(1)
	combinations(k, n, func(idx []int) {
		route := make([]models.EnrichedLocation, n)
		for i, j := range idx {
			route[i] = candidates[j]
		}
		if s := Score(route); s < bestScore {
			bestScore = s
			best = append(best[:0], idx...)
		}
	})

	out := make([]models.EnrichedLocation, n)
	for i, j := range best {
		out[i] = candidates[j]
	}
	return out
}

// Score is the path length in kilometers from the reference point through
// every stop in order. An unresolved stop makes the score +Inf.
func Score(route []models.EnrichedLocation) float64 {
	if len(route) == 0 {
		return 0
	}
	first, ok := route[0].Resolved()
	if !ok {
		return math.Inf(1)
	}
	total := first.DistanceKm
	prev := first.Coordinate
	for _, stop := range route[1:] {
		r, ok := stop.Resolved()
		if !ok {
			return math.Inf(1)
		}
		total += geo.Kilometers(prev, r.Coordinate)
		prev = r.Coordinate
	}
	return total
}

// combinations calls fn with every strictly increasing index tuple of size r
// drawn from [0,n), in lexicographic order. fn must not retain idx.
func combinations(n, r int, fn func(idx []int)) {
	if r > n || r <= 0 {
		return
	}
	idx := make([]int, r)
	var walk func(pos, start int)
	walk = func(pos, start int) {
		if pos == r {
			fn(idx)
			return
		}
		for i := start; i <= n-(r-pos); i++ {
			idx[pos] = i
			walk(pos+1, i+1)
		}
	}
	walk(0, 0)
}
