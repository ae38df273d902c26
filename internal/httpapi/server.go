// Package httpapi exposes the concierge over HTTP.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"concierge/internal/concierge"
	"concierge/pkg/kmlexport"
)

const requestIDHeader = "X-Request-ID"

// Concierge answers questions and plans routes.
type Concierge interface {
	Ask(ctx context.Context, req concierge.Request) concierge.Answer
	Route(ctx context.Context, req concierge.Request) concierge.RouteAnswer
}

type Server struct {
	concierge Concierge
	timeout   time.Duration
}

func NewServer(c Concierge, timeout time.Duration) *Server {
	return &Server{concierge: c, timeout: timeout}
}

// Handler builds the gin engine serving the API.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := r.Group("/api")
	{
		api.POST("/concierge", s.ask)
		api.POST("/route", s.route)
	}
	return r
}

func (s *Server) ask(c *gin.Context) {
	ctx, cancel := s.context(c)
	defer cancel()
	c.JSON(http.StatusOK, s.concierge.Ask(ctx, bind(c)))
}

// route answers with JSON, or with a KML document when format=kml.
func (s *Server) route(c *gin.Context) {
	ctx, cancel := s.context(c)
	defer cancel()
	answer := s.concierge.Route(ctx, bind(c))

	if c.Query("format") != "kml" {
		c.JSON(http.StatusOK, answer)
		return
	}
	stops := make([]kmlexport.Stop, 0, len(answer.Route))
	for _, st := range answer.Route {
		stops = append(stops, kmlexport.Stop{Name: st.Name, Description: st.Address, Coordinate: st.Coordinate})
	}
	c.Header("Content-Type", "application/vnd.google-earth.kml+xml")
	c.Status(http.StatusOK)
	if err := kmlexport.Write(c.Writer, "神社めぐり", stops); err != nil {
		log.WithError(err).Error("failed to write kml")
	}
}

func (s *Server) context(c *gin.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), s.timeout)
}

// bind reads the request body. An unreadable body is treated as an empty
// question so the caller still gets an answer.
func bind(c *gin.Context) concierge.Request {
	var req concierge.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		log.WithError(err).WithField("request_id", c.GetString("request_id")).Warn("ignoring malformed request body")
		return concierge.Request{}
	}
	return req
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start),
		}).Info("handled request")
	}
}
