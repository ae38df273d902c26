// Package geo holds the coordinate value type and the great-circle distance
// used to rank candidate locations.
package geo

import (
	"fmt"
	"math"
)

// EarthRadius is the mean Earth radius in meters.
const EarthRadius = 6371000.0

// Coordinate is an immutable WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the latitude is in [-90,90] and the longitude in [-180,180].
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Distance computes the haversine distance between two points in meters.
// NaN inputs propagate to the result.
func Distance(a, b Coordinate) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := lat2 - lat1
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadius * math.Asin(math.Sqrt(h))
}

// Kilometers is Distance scaled to kilometers.
func Kilometers(a, b Coordinate) float64 {
	return Distance(a, b) / 1000
}
