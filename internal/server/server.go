// Package server implements the picset HTTP API.
//
// The API exposes srcset derivation over HTTP for markup-generation services
// that don't want to link the library:
//
//	GET  /healthz              liveness probe
//	GET  /v1/srcset?url=&class=&bust=   fetch a resource and derive
//	POST /v1/srcset?class=&bust=        derive from an entity document body
//
// Responses are JSON payloads carrying the per-type sources, the best-type
// srcset string, and the default link. Every response carries an
// X-Request-ID header correlating it with the server logs.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/mlorenz/picset/pkg/pipeline"
)

// Server wires the router to a pipeline runner.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server around the given runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/srcset", s.handleDeriveURL)
		r.Post("/srcset", s.handleDeriveEntity)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("listening", "addr", addr)
	return srv.ListenAndServe()
}

// requestID tags every request with a UUID, exposed as X-Request-ID and
// attached to log lines.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

// logRequests logs one line per request with method, path, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", requestIDFrom(r.Context()))
	})
}
