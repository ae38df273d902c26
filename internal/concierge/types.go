package concierge

import (
	"concierge/internal/models"
	"concierge/pkg/geo"
)

// FailureCode is reported when the request could not be served at all.
const FailureCode = "server-failed"

// Message is one turn of a chat transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single concierge question. Query takes precedence over the
// last message of a transcript.
type Request struct {
	Query      string          `json:"query"`
	Messages   []Message       `json:"messages,omitempty"`
	ShrineName string          `json:"shrine_name,omitempty"`
	Location   string          `json:"location,omitempty"`
	Coordinate *geo.Coordinate `json:"coordinate,omitempty"`
}

// Text is the free text of the request.
func (r Request) Text() string {
	if r.Query != "" || len(r.Messages) == 0 {
		return r.Query
	}
	return r.Messages[len(r.Messages)-1].Content
}

// Answer is the reply to a resolution request.
type Answer struct {
	OK         bool          `json:"ok"`
	Message    string        `json:"message"`
	ShrineName *string       `json:"shrine_name"`
	Plans      []models.Plan `json:"plans"`
	Error      string        `json:"error,omitempty"`
}

// Stop is one location on a selected route.
type Stop struct {
	ID          string          `json:"spotid,omitempty"`
	Name        string          `json:"name"`
	Address     string          `json:"address,omitempty"`
	District    string          `json:"district,omitempty"`
	BenefitTags []string        `json:"benefit_tags,omitempty"`
	Coordinate  *geo.Coordinate `json:"coordinate,omitempty"`
	DistanceKm  *float64        `json:"distance_km,omitempty"`
	Unresolved  string          `json:"unresolved,omitempty"`
}

// RouteAnswer is the reply to a routing request.
type RouteAnswer struct {
	OK           bool                      `json:"ok"`
	Message      string                    `json:"message"`
	Reference    *geo.Coordinate           `json:"reference,omitempty"`
	Route        []Stop                    `json:"route"`
	TouristSpots []string                  `json:"tourist_spots,omitempty"`
	Error        string                    `json:"error,omitempty"`
	Selected     []models.EnrichedLocation `json:"-"`
}

func newStop(e models.EnrichedLocation) Stop {
	s := Stop{
		ID:          e.ID,
		Name:        e.Name,
		Address:     e.Address,
		District:    geo.District(e.Address),
		BenefitTags: e.BenefitTags,
	}
	switch r := e.Resolution.(type) {
	case models.Resolved:
		c, d := r.Coordinate, r.DistanceKm
		s.Coordinate, s.DistanceKm = &c, &d
	case models.Unresolved:
		s.Unresolved = r.Reason
	}
	return s
}

const (
	KindAsk   = "ask"
	KindRoute = "route"
)

// Job is a request received from a queue.
type Job struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Request
}

// Reply carries the answer to a Job.
type Reply struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Answer any    `json:"answer"`
}
