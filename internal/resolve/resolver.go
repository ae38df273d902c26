// Package resolve maps free-text requests onto locations and courses through
// an ordered cascade of match strategies. The first strategy with a hit wins.
package resolve

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"concierge/internal/models"
)

type Resolver struct {
	matchers []Matcher
}

// NewResolver builds a resolver over the given cascade, or DefaultMatchers
// when none are given.
func NewResolver(matchers ...Matcher) *Resolver {
	if len(matchers) == 0 {
		matchers = DefaultMatchers()
	}
	return &Resolver{matchers: matchers}
}

// Resolve matches preferredName, or query when preferredName is blank,
// against the dataset.
func (r *Resolver) Resolve(query, preferredName string, ds *models.Dataset) models.ResolutionResult {
	raw := preferredName
	if strings.TrimSpace(raw) == "" {
		raw = query
	}
	q := NewQuery(raw)
	if q.Keyword == "" || ds == nil {
		return models.ResolutionResult{}
	}

	for _, m := range r.matchers {
		if res, ok := m.Match(q, ds); ok {
			log.WithFields(log.Fields{
				"query":     q.Normalized,
				"keyword":   q.Keyword,
				"tier":      res.Tier,
				"locations": len(res.Locations),
				"courses":   len(res.Courses),
			}).Debug("query resolved")
			return res
		}
	}
	log.WithField("keyword", q.Keyword).Debug("no tier matched")
	return models.ResolutionResult{}
}
