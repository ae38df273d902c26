package models

import (
	"fmt"
	"math"

	"concierge/pkg/geo"
)

// Resolution is either Resolved or Unresolved.
type Resolution interface {
	isResolution()
}

// Resolved carries the coordinate a location was placed at and its distance
// from the reference point.
type Resolved struct {
	Coordinate geo.Coordinate
	DistanceKm float64
}

// Unresolved records why a location could not be placed.
type Unresolved struct {
	Reason string
}

func (Resolved) isResolution()   {}
func (Unresolved) isResolution() {}

// EnrichedLocation is a Location placed relative to a reference coordinate.
type EnrichedLocation struct {
	Location
	Resolution Resolution
}

// NewResolved places loc at c, measuring the distance from ref. A non-finite
// distance leaves the location unresolved.
func NewResolved(loc Location, c geo.Coordinate, ref geo.Coordinate) EnrichedLocation {
	d := geo.Kilometers(ref, c)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return NewUnresolved(loc, fmt.Sprintf("distance to %s is not finite", c))
	}
	return EnrichedLocation{Location: loc, Resolution: Resolved{Coordinate: c, DistanceKm: d}}
}

func NewUnresolved(loc Location, reason string) EnrichedLocation {
	return EnrichedLocation{Location: loc, Resolution: Unresolved{Reason: reason}}
}

// Resolved returns the resolution when the location has been placed.
func (e EnrichedLocation) Resolved() (Resolved, bool) {
	r, ok := e.Resolution.(Resolved)
	return r, ok
}
