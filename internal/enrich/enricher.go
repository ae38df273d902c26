package enrich

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"concierge/internal/models"
	"concierge/pkg/geo"
)

// Geocoder resolves a free-text address to a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Coordinate, error)
}

// Enricher attaches a coordinate and a distance from the reference point to
// each candidate, geocoding the address when no coordinate is known.
type Enricher struct {
	geocoder Geocoder
}

func NewEnricher(geocoder Geocoder) *Enricher {
	return &Enricher{geocoder: geocoder}
}

const unplaceable = "no coordinate and no address"

type batch struct {
	ref   geo.Coordinate
	items []models.EnrichedLocation
}

// Enrich places every location relative to ref. All geocoding lookups are
// issued at once and the call returns when each has settled; a failed lookup
// leaves its location unresolved. Output order matches input order.
func (e *Enricher) Enrich(ctx context.Context, locations []models.Location, ref geo.Coordinate) []models.EnrichedLocation {
	b := &batch{ref: ref, items: make([]models.EnrichedLocation, len(locations))}

	steps := make([]Step[batch], len(locations))
	for i, loc := range locations {
		steps[i] = e.place(i, loc)
	}
	failed := NewPipeline(NewStage(steps...)).Run(ctx, b)

	log.WithFields(log.Fields{
		"candidates": len(locations),
		"unresolved": failed,
	}).Debug("enriched candidate batch")
	return b.items
}

// place returns the step that fills slot i of the batch.
func (e *Enricher) place(i int, loc models.Location) Step[batch] {
	return func(ctx context.Context, b *batch) error {
		if loc.Coordinate != nil {
			b.items[i] = models.NewResolved(loc, *loc.Coordinate, b.ref)
			return nil
		}
		if !loc.Placeable() {
			b.items[i] = models.NewUnresolved(loc, unplaceable)
			return fmt.Errorf("%s: %s", loc.Name, unplaceable)
		}
		address := strings.TrimSpace(loc.Address)
		if e.geocoder == nil {
			b.items[i] = models.NewUnresolved(loc, "no geocoder configured")
			return fmt.Errorf("%s: no geocoder configured", loc.Name)
		}
		c, err := e.geocoder.Geocode(ctx, address)
		if err != nil {
			log.WithError(err).WithField("address", address).Warn("geocoding failed")
			b.items[i] = models.NewUnresolved(loc, err.Error())
			return fmt.Errorf("geocode %s: %w", loc.Name, err)
		}
		b.items[i] = models.NewResolved(loc, c, b.ref)
		return nil
	}
}
