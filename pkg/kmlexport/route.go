// Package kmlexport writes selected routes as KML documents.
package kmlexport

import (
	"fmt"
	"io"

	"github.com/twpayne/go-kml/v2"

	"concierge/pkg/geo"
)

// Stop is one placemark of an exported route.
type Stop struct {
	Name        string
	Description string
	Coordinate  *geo.Coordinate
}

// Route builds a KML document with a placemark per placed stop and a line
// through them in visiting order. Stops without a coordinate are skipped.
func Route(name string, stops []Stop) *kml.KMLElement {
	children := []kml.Element{kml.Name(name)}
	var path []kml.Coordinate
	for i, s := range stops {
		if s.Coordinate == nil {
			continue
		}
		c := kml.Coordinate{Lon: s.Coordinate.Lon, Lat: s.Coordinate.Lat}
		path = append(path, c)
		children = append(children, kml.Placemark(
			kml.Name(fmt.Sprintf("%d. %s", i+1, s.Name)),
			kml.Description(s.Description),
			kml.Point(kml.Coordinates(c)),
		))
	}
	if len(path) > 1 {
		children = append(children, kml.Placemark(
			kml.Name(name),
			kml.LineString(
				kml.Tessellate(true),
				kml.Coordinates(path...),
			),
		))
	}
	return kml.KML(kml.Document(children...))
}

// Write encodes the route to w.
func Write(w io.Writer, name string, stops []Stop) error {
	if err := Route(name, stops).WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("write kml: %w", err)
	}
	return nil
}
