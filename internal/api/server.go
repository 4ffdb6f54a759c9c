// Package api serves study sets, sessions and reviews over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rcliao/studycards/internal/srs"
	"github.com/rcliao/studycards/internal/store"
	"github.com/rcliao/studycards/internal/study"
)

// Server represents the HTTP API server.
type Server struct {
	svc     *study.Service
	logger  *slog.Logger
	metrics *Metrics
}

// NewServer creates a new API server. A nil logger discards logs.
func NewServer(svc *study.Service, logger *slog.Logger, m *Metrics) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if m == nil {
		m = NewMetrics()
	}
	return &Server{svc: svc, logger: logger, metrics: m}
}

// Handler returns the HTTP handler with all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	// Sets
	mux.HandleFunc("GET /api/sets", s.handleListSets)
	mux.HandleFunc("POST /api/sets", s.handleCreateSet)
	mux.HandleFunc("GET /api/sets/{id}", s.handleGetSet)
	mux.HandleFunc("PUT /api/sets/{id}", s.handleUpdateSet)
	mux.HandleFunc("DELETE /api/sets/{id}", s.handleDeleteSet)

	// Study
	mux.HandleFunc("GET /api/sets/{id}/study-sr", s.handleSession)
	mux.HandleFunc("GET /api/sets/{id}/stats", s.handleStats)
	mux.HandleFunc("POST /api/sets/{id}/reset-progress", s.handleResetProgress)
	mux.HandleFunc("POST /api/review", s.handleReview)
	mux.HandleFunc("GET /api/cards/{id}/progress", s.handleProgress)
	mux.HandleFunc("GET /api/cards/{id}/preview", s.handlePreview)

	return s.instrument(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument logs each request and records HTTP metrics by route pattern.
func (s *Server) instrument(next *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		s.metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		s.metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", elapsed,
		)
	})
}

// Helper functions

// respondJSON writes a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// respondError writes an error response.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// respondErr maps a service error to a status code.
func (s *Server) respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, study.ErrInvalid), errors.Is(err, srs.ErrInvalidGrade):
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("request failed", "err", err)
		s.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseJSON parses a JSON request body.
func (s *Server) parseJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
