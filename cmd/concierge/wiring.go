package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"concierge/internal/compose"
	"concierge/internal/concierge"
	"concierge/internal/enrich"
	"concierge/internal/env"
	"concierge/internal/storage"
	"concierge/pkg/location"
)

func newGeocoder(cfg env.Config) (enrich.Geocoder, error) {
	switch cfg.Geocoder {
	case "", "none":
		return nil, nil
	case "nominatim":
		return location.NewNominatim(nil), nil
	case "google":
		if cfg.GoogleMapsKey == "" {
			return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY is required for the google geocoder")
		}
		return location.NewGoogle(nil, cfg.GoogleMapsKey), nil
	default:
		return nil, fmt.Errorf("unknown geocoder %q", cfg.Geocoder)
	}
}

func newRefiner(ctx context.Context, cfg env.Config) compose.Refiner {
	g, err := compose.NewGemini(ctx, cfg.GeminiKey, cfg.GeminiModel)
	if err != nil {
		log.WithError(err).Info("messages will not be refined")
		return nil
	}
	return g
}

// newService wires the concierge from cfg. The returned function releases
// the data source.
func newService(ctx context.Context, cfg env.Config) (*concierge.Service, func(), error) {
	src, release, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, release, fmt.Errorf("open %s source: %w", cfg.Source, err)
	}
	geocoder, err := newGeocoder(cfg)
	if err != nil {
		release()
		return nil, func() {}, err
	}

	var opts []concierge.Option
	if r := newRefiner(ctx, cfg); r != nil {
		opts = append(opts, concierge.WithRefiner(r))
	}
	return concierge.New(src, geocoder, opts...), release, nil
}
