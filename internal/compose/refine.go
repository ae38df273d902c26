package compose

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Refiner rewrites a base message into friendlier prose.
type Refiner interface {
	Refine(ctx context.Context, base, query string) (string, error)
}

// Refine runs r over base and falls back to base on any failure or an empty
// answer. A nil refiner returns base unchanged.
func Refine(ctx context.Context, r Refiner, base, query string) string {
	if r == nil {
		return base
	}
	refined, err := r.Refine(ctx, base, query)
	if err != nil {
		log.WithError(err).Warn("refinement failed, using base message")
		return base
	}
	if strings.TrimSpace(refined) == "" {
		log.Warn("refinement returned nothing, using base message")
		return base
	}
	return refined
}
