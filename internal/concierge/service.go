// Package concierge answers free-text questions about shrines and courses.
package concierge

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"concierge/internal/compose"
	"concierge/internal/enrich"
	"concierge/internal/models"
	"concierge/internal/resolve"
	"concierge/internal/route"
	"concierge/pkg/geo"
)

// MaxTouristSpots caps the tourist spots attached to a route answer.
const MaxTouristSpots = 10

// Source provides the dataset snapshot for a request.
type Source interface {
	Load(ctx context.Context) (*models.Dataset, error)
}

type Service struct {
	source      Source
	geocoder    enrich.Geocoder
	refiner     compose.Refiner
	resolver    *resolve.Resolver
	enricher    *enrich.Enricher
	routeLength int
}

type Option func(*Service)

// WithRefiner refines composed messages before they are returned.
func WithRefiner(r compose.Refiner) Option {
	return func(s *Service) { s.refiner = r }
}

// WithResolver replaces the default match cascade.
func WithResolver(r *resolve.Resolver) Option {
	return func(s *Service) { s.resolver = r }
}

// WithRouteLength sets how many stops a route has.
func WithRouteLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.routeLength = n
		}
	}
}

// New builds a Service. geocoder may be nil, in which case only known
// coordinates are used.
func New(source Source, geocoder enrich.Geocoder, opts ...Option) *Service {
	s := &Service{
		source:      source,
		geocoder:    geocoder,
		resolver:    resolve.NewResolver(),
		enricher:    enrich.NewEnricher(geocoder),
		routeLength: route.DefaultLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ask resolves the request against the current dataset and describes what
// was found. It always returns a message.
func (s *Service) Ask(ctx context.Context, req Request) Answer {
	ds, err := s.source.Load(ctx)
	if err != nil {
		log.WithError(err).Error("failed to load dataset")
		return Answer{Message: compose.Unavailable, Plans: []models.Plan{}, Error: FailureCode}
	}

	result := s.resolver.Resolve(req.Text(), req.ShrineName, ds)
	log.WithFields(log.Fields{
		"query":     req.Text(),
		"tier":      result.Tier,
		"locations": len(result.Locations),
		"courses":   len(result.Courses),
	}).Info("resolved request")

	answer := Answer{
		OK:      true,
		Message: compose.Refine(ctx, s.refiner, compose.ForResolution(result), query(req)),
		Plans:   result.Plans,
	}
	if answer.Plans == nil {
		answer.Plans = []models.Plan{}
	}
	if name := result.PrimaryLocationName(); name != "" {
		answer.ShrineName = &name
	}
	return answer
}

// Route picks a short shrine route near the user's location hint and
// narrates it. It always returns a message.
func (s *Service) Route(ctx context.Context, req Request) RouteAnswer {
	ds, err := s.source.Load(ctx)
	if err != nil {
		log.WithError(err).Error("failed to load dataset")
		return RouteAnswer{Message: compose.Unavailable, Route: []Stop{}, Error: FailureCode}
	}

	text := req.Text()
	pool := Recommend(ShrinePool(ds), text)

	var selected []models.EnrichedLocation
	ref, ok := s.reference(ctx, req)
	if ok {
		selected = route.SelectRoute(s.enricher.Enrich(ctx, pool, ref), s.routeLength)
	} else {
		selected = route.Head(pool, s.routeLength)
	}

	answer := RouteAnswer{
		OK:       true,
		Message:  compose.Refine(ctx, s.refiner, compose.ForRoute(selected, text), text),
		Route:    make([]Stop, 0, len(selected)),
		Selected: selected,
	}
	if ok {
		answer.Reference = &ref
	}
	for _, e := range selected {
		answer.Route = append(answer.Route, newStop(e))
	}
	for i, spot := range TouristSpots(ds) {
		if i == MaxTouristSpots {
			break
		}
		answer.TouristSpots = append(answer.TouristSpots, spot.Name)
	}

	log.WithFields(log.Fields{
		"query":     text,
		"pool":      len(pool),
		"stops":     len(selected),
		"reference": ok,
	}).Info("selected route")
	return answer
}

// reference resolves the user's position: an explicit coordinate first, then
// the location hint, then an area named in the query.
func (s *Service) reference(ctx context.Context, req Request) (geo.Coordinate, bool) {
	if req.Coordinate != nil && req.Coordinate.Valid() {
		return *req.Coordinate, true
	}

	hint := strings.TrimSpace(req.Location)
	if hint == "" {
		hint = geo.ExtractArea(req.Text())
	}
	if hint == "" || s.geocoder == nil {
		return geo.Coordinate{}, false
	}
	if geo.IsArea(hint) {
		hint = geo.AreaQuery(hint)
	}

	c, err := s.geocoder.Geocode(ctx, hint)
	if err != nil {
		log.WithError(err).WithField("hint", hint).Warn("could not place user location")
		return geo.Coordinate{}, false
	}
	return c, true
}

func query(req Request) string {
	if strings.TrimSpace(req.ShrineName) != "" {
		return req.ShrineName
	}
	return req.Text()
}

// Handle answers a queued job. Jobs of unknown kind are treated as questions.
func (s *Service) Handle(ctx context.Context, job Job) Reply {
	if job.Kind == KindRoute {
		return Reply{ID: job.ID, Kind: KindRoute, Answer: s.Route(ctx, job.Request)}
	}
	return Reply{ID: job.ID, Kind: KindAsk, Answer: s.Ask(ctx, job.Request)}
}
