// Package server exposes the research pipeline over HTTP: company
// lookup, comparable discovery, and comparative analysis endpoints plus
// health and stats.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sells-group/comparables-api/internal/monitoring"
	"github.com/sells-group/comparables-api/internal/service"
)

// Server holds the HTTP handlers' collaborators.
type Server struct {
	svc       *service.Service
	collector *monitoring.Collector
}

// New creates an HTTP server over the given service.
func New(svc *service.Service, collector *monitoring.Collector) *Server {
	return &Server{svc: svc, collector: collector}
}

// Routes builds the router with middleware and all endpoints mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/stats", s.handleStats)

	r.Route("/api/company", func(r chi.Router) {
		r.Post("/lookup", s.handleLookup)
		r.Post("/comparables", s.handleComparables)
		r.Post("/analyze", s.handleAnalyze)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.collector.Collect())
}
