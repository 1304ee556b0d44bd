package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/WorksphereAI/worksphereai-sub002/internal/assistant"
	"github.com/WorksphereAI/worksphereai-sub002/internal/gateway"
	"github.com/WorksphereAI/worksphereai-sub002/internal/observability"
	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

// handleAssistant is the POST /ai-assistant boundary: validate shape,
// resolve the caller, dispatch, assemble, record history and events.
func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}

	requestID := uuid.NewString()
	log := s.log.With(zap.String("request_id", requestID))

	var req models.AssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	user, err := s.gw.UserByID(ctx, req.UserID)
	if errors.Is(err, gateway.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		log.Error("resolving user", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	s.recordEvent(observability.Event{
		Type: observability.EventQueryReceived,
		Data: map[string]any{"request_id": requestID, "user_id": user.ID},
	})

	start := time.Now()
	env, intent, err := s.dispatcher.Dispatch(ctx, user, req.Query, req.Context)
	if err != nil {
		log.Error("dispatching query", zap.String("intent", string(intent)), zap.Error(err))
		s.recordEvent(observability.Event{
			Type: observability.EventQueryFailed,
			Data: map[string]any{"request_id": requestID, "intent": string(intent)},
		})
		s.writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}
	elapsed := time.Since(start)

	resp := assistant.Assemble(env)

	// History is best-effort; a store failure never fails the query.
	if s.history != nil {
		ex := models.Exchange{
			Query:    req.Query,
			Response: resp.Response,
			Intent:   string(intent),
			At:       time.Now().UTC(),
		}
		if herr := s.history.Append(ctx, user.ID, ex); herr != nil {
			log.Warn("recording exchange", zap.Error(herr))
		}
	}

	s.recordEvent(observability.Event{
		Type: observability.EventQueryAnswered,
		Data: map[string]any{
			"request_id": requestID,
			"intent":     string(intent),
			"elapsed_ms": float64(elapsed.Milliseconds()),
			"actions":    len(resp.Actions),
		},
	})
	log.Info("query answered",
		zap.String("intent", string(intent)),
		zap.Duration("elapsed", elapsed),
		zap.Int("actions", len(resp.Actions)),
	)

	s.writeJSON(w, http.StatusOK, resp)
}

// handleHistory serves GET /ai-assistant/history?userId= with the caller's
// retained exchanges so the chat UI can rehydrate.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET only")
		return
	}
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		s.writeError(w, http.StatusBadRequest, "missing required fields: userId")
		return
	}

	exchanges := []models.Exchange{}
	if s.history != nil {
		var err error
		exchanges, err = s.history.Recent(r.Context(), userID)
		if err != nil {
			s.log.Error("loading history", zap.Error(err))
			s.writeError(w, http.StatusInternalServerError, internalErrorMessage)
			return
		}
	}
	s.writeJSON(w, http.StatusOK, map[string][]models.Exchange{"exchanges": exchanges})
}

func (s *Server) recordEvent(e observability.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(e); err != nil {
		s.log.Warn("recording event", zap.String("type", e.Type), zap.Error(err))
	}
}
