// Package api exposes the availability and pricing engine over HTTP. The
// handlers are thin: parse, validate, call the engine, render. All booking
// mutation lives elsewhere.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"pricegrid/internal/engine"
	"pricegrid/internal/metrics"
	"pricegrid/internal/store"
)

// Server serves the scheduling API.
type Server struct {
	engine   *engine.Engine
	source   store.Source
	baseRate float64
	limiter  *rate.Limiter
	logger   *zerolog.Logger
	server   *http.Server
}

// NewServer wires the engine and booking source into an HTTP server on the
// given port.
func NewServer(port int, eng *engine.Engine, source store.Source, baseRate float64, limiter *rate.Limiter, logger *zerolog.Logger) *Server {
	s := &Server{
		engine:   eng,
		source:   source,
		baseRate: baseRate,
		limiter:  limiter,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/grid", s.withCommon("grid", s.handleGrid))
	mux.HandleFunc("/api/v1/estimate", s.withCommon("estimate", s.handleEstimate))
	mux.HandleFunc("/api/v1/suggest", s.withCommon("suggest", s.handleSuggest))
	mux.HandleFunc("/api/v1/conflicts", s.withCommon("conflicts", s.handleConflicts))
	mux.HandleFunc("/api/v1/export", s.withCommon("export", s.handleExport))

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.server.Shutdown(ctxShutdown)
	}()

	s.logger.Info().Str("addr", s.server.Addr).Msg("API server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// withCommon applies request ID, throttling, metrics and access logging.
func (s *Server) withCommon(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics.IncHTTP(endpoint)

		if s.limiter != nil && !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}

		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next(w, r)

		s.logger.Debug().
			Str("request_id", requestID).
			Str("endpoint", endpoint).
			Str("method", r.Method).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
