package assistant

import (
	"context"
	"fmt"

	"github.com/WorksphereAI/worksphereai-sub002/internal/gateway"
	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

// Handler answers one intent by querying the gateway and formatting an
// envelope. Handlers are read-only: they propose actions but never execute
// them.
type Handler interface {
	Intent() Intent
	Handle(ctx context.Context, user *models.User, qc *models.QueryContext) (*models.Envelope, error)
}

// Config bounds the result sets handlers request from the gateway.
type Config struct {
	// PageSize caps task, message, and file queries.
	PageSize int
	// ApprovalPageSize caps approval queries separately.
	ApprovalPageSize int
}

const (
	defaultPageSize         = 10
	defaultApprovalPageSize = 50
)

func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
	if c.ApprovalPageSize <= 0 {
		c.ApprovalPageSize = defaultApprovalPageSize
	}
	return c
}

// Dispatcher classifies queries and routes them to the matching handler.
type Dispatcher struct {
	handlers map[Intent]Handler
}

// NewDispatcher wires one handler per intent over the given gateway.
func NewDispatcher(gw gateway.Gateway, cfg Config) *Dispatcher {
	cfg = cfg.withDefaults()
	handlers := []Handler{
		&taskHandler{gw: gw, pageSize: cfg.PageSize},
		&messageHandler{gw: gw, pageSize: cfg.PageSize},
		&fileHandler{gw: gw, pageSize: cfg.PageSize},
		&approvalHandler{gw: gw, pageSize: cfg.ApprovalPageSize},
		&meetingHandler{},
		&summaryHandler{gw: gw},
	}

	m := make(map[Intent]Handler, len(handlers))
	for _, h := range handlers {
		m[h.Intent()] = h
	}
	return &Dispatcher{handlers: m}
}

// Dispatch classifies the query and runs the matching handler. Unknown
// intents get the static help envelope and never fail.
func (d *Dispatcher) Dispatch(ctx context.Context, user *models.User, query string, qc *models.QueryContext) (*models.Envelope, Intent, error) {
	intent := Classify(query)
	h, ok := d.handlers[intent]
	if !ok {
		return unknownEnvelope(), IntentUnknown, nil
	}

	env, err := h.Handle(ctx, user, qc)
	if err != nil {
		return nil, intent, fmt.Errorf("handling %s query: %w", intent, err)
	}
	return env, intent, nil
}

// unknownEnvelope is the fallback for queries that match no intent.
func unknownEnvelope() *models.Envelope {
	return &models.Envelope{
		Text: "I can help you with tasks, messages, files, approvals, meetings, " +
			"and daily summaries. Try asking about one of those.",
		Suggestions: []string{
			"Show my pending tasks",
			"Any unread messages?",
			"Find recent files",
			"What needs my approval?",
			"Give me a summary of my day",
		},
	}
}
