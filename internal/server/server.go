// Package server is the HTTP request boundary of the assistant: it validates
// inbound requests, resolves the caller, dispatches to the intent router,
// and converts every downstream failure into the three-status error contract
// (400 invalid request, 404 unknown user, 500 opaque internal error).
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/WorksphereAI/worksphereai-sub002/internal/assistant"
	"github.com/WorksphereAI/worksphereai-sub002/internal/gateway"
	"github.com/WorksphereAI/worksphereai-sub002/internal/observability"
	"github.com/WorksphereAI/worksphereai-sub002/internal/session"
)

// internalErrorMessage is the only detail a caller ever sees for a 500.
const internalErrorMessage = "Something went wrong while processing your request."

const shutdownTimeout = 10 * time.Second

// Config holds the HTTP listener settings.
type Config struct {
	Addr       string
	CORSOrigin string
}

// Server wires the assistant dispatcher behind the HTTP boundary.
type Server struct {
	gw         gateway.Gateway
	dispatcher *assistant.Dispatcher
	history    session.Store
	events     observability.EventLog           // may be nil
	metrics    observability.MetricsCalculator  // may be nil
	log        *zap.Logger
	corsOrigin string
	httpServer *http.Server
}

// New builds the server and its route table. events and metrics may be nil
// when observability is disabled.
func New(cfg Config, gw gateway.Gateway, dispatcher *assistant.Dispatcher, history session.Store,
	events observability.EventLog, metrics observability.MetricsCalculator, log *zap.Logger) *Server {

	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		gw:         gw,
		dispatcher: dispatcher,
		history:    history,
		events:     events,
		metrics:    metrics,
		log:        log,
		corsOrigin: cfg.CORSOrigin,
	}
	if s.corsOrigin == "" {
		s.corsOrigin = "*"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/ai-assistant", s.handleAssistant)
	mux.HandleFunc("/ai-assistant/history", s.handleHistory)

	s.httpServer = &http.Server{
		Addr:    cfg.Addr,
		Handler: s.withRecovery(s.withCORS(mux)),
	}
	return s
}

// Handler exposes the fully wrapped route table for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	}
}

// withCORS applies the permissive CORS contract on every route and
// short-circuits OPTIONS preflights with a bare 200.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRecovery converts downstream panics into the opaque 500 so a handler
// bug can never leak a stack trace or crash the boundary.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("panic in request handler",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
				)
				s.writeError(w, http.StatusInternalServerError, internalErrorMessage)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET only")
		return
	}
	if s.metrics == nil {
		s.writeError(w, http.StatusServiceUnavailable, "metrics not enabled")
		return
	}

	since := time.Now().UTC().Add(-24 * time.Hour)
	m, err := s.metrics.Calculate(since)
	if err != nil {
		s.log.Error("calculating metrics", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
