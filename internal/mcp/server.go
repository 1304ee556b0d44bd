// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the WorkSphere assistant as MCP tools for desktop AI clients.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/WorksphereAI/worksphereai-sub002/internal/assistant"
	"github.com/WorksphereAI/worksphereai-sub002/internal/gateway"
	"github.com/WorksphereAI/worksphereai-sub002/internal/observability"
	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

// Server wraps the assistant dispatcher and exposes it as MCP tools.
type Server struct {
	server     *gomcp.Server
	gw         gateway.Gateway
	dispatcher *assistant.Dispatcher
	metrics    observability.MetricsCalculator
}

// NewServer creates an MCP server over the given dependencies. metrics may
// be nil when observability is disabled.
func NewServer(gw gateway.Gateway, dispatcher *assistant.Dispatcher, metrics observability.MetricsCalculator, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		gw:         gw,
		dispatcher: dispatcher,
		metrics:    metrics,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "worksphere-assistant", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type askInput struct {
	Query  string `json:"query" jsonschema:"required,the free-text productivity question to answer"`
	UserID string `json:"user_id" jsonschema:"required,the WorkSphere user the question is asked as"`
}

type askOutput struct {
	Response    string          `json:"response"`
	Intent      string          `json:"intent"`
	Actions     []models.Action `json:"actions,omitempty"`
	Suggestions []string        `json:"suggestions,omitempty"`
}

type getMetricsInput struct {
	Since string `json:"since,omitempty" jsonschema:"time window for metrics (e.g. 7d, 24h). Defaults to 24h."`
}

type metricsOutput struct {
	QueriesReceived  int            `json:"queries_received"`
	QueriesAnswered  int            `json:"queries_answered"`
	QueriesFailed    int            `json:"queries_failed"`
	QueriesByIntent  map[string]int `json:"queries_by_intent"`
	AvgLatencyMillis float64        `json:"avg_latency_ms"`
	EventCount       int            `json:"event_count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:         "ask_assistant",
		Description:  "Ask the WorkSphere assistant a productivity question (tasks, messages, files, approvals, meetings, summary) on behalf of a user. Returns the digest plus advisory follow-up actions.",
		OutputSchema: askOutputSchema(),
	}, s.handleAsk)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_metrics",
		Description: "Get aggregated assistant usage metrics from the event log: query counts by intent, failures, and average latency.",
	}, s.handleGetMetrics)
}

// --- Tool handlers ---

func (s *Server) handleAsk(ctx context.Context, _ *gomcp.CallToolRequest, input askInput) (*gomcp.CallToolResult, askOutput, error) {
	if input.Query == "" {
		return errorResult("query is required"), askOutput{}, nil
	}
	if input.UserID == "" {
		return errorResult("user_id is required"), askOutput{}, nil
	}

	user, err := s.gw.UserByID(ctx, input.UserID)
	if errors.Is(err, gateway.ErrNotFound) {
		return errorResult(fmt.Sprintf("user %s not found", input.UserID)), askOutput{}, nil
	}
	if err != nil {
		return errorResult(fmt.Sprintf("resolving user: %s", err)), askOutput{}, nil
	}

	env, intent, err := s.dispatcher.Dispatch(ctx, user, input.Query, nil)
	if err != nil {
		return errorResult(fmt.Sprintf("answering query: %s", err)), askOutput{}, nil
	}

	resp := assistant.Assemble(env)
	out := askOutput{
		Response:    resp.Response,
		Intent:      string(intent),
		Actions:     resp.Actions,
		Suggestions: resp.Suggestions,
	}
	return nil, out, nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *gomcp.CallToolRequest, input getMetricsInput) (*gomcp.CallToolResult, metricsOutput, error) {
	if s.metrics == nil {
		return errorResult("metrics not available (observability may be disabled)"), emptyMetricsOutput(), nil
	}

	sinceStr := input.Since
	if sinceStr == "" {
		sinceStr = "24h"
	}
	sinceTime, err := parseSince(sinceStr)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing since duration: %s", err)), emptyMetricsOutput(), nil
	}

	m, err := s.metrics.Calculate(sinceTime)
	if err != nil {
		return errorResult(fmt.Sprintf("calculating metrics: %s", err)), emptyMetricsOutput(), nil
	}

	out := metricsOutput{
		QueriesReceived:  m.QueriesReceived,
		QueriesAnswered:  m.QueriesAnswered,
		QueriesFailed:    m.QueriesFailed,
		QueriesByIntent:  m.QueriesByIntent,
		AvgLatencyMillis: m.AvgLatencyMillis,
		EventCount:       m.EventCount,
	}
	return nil, out, nil
}

// --- Helpers ---

// askOutputSchema builds the output schema for ask_assistant. models.Action
// has a custom MarshalJSON emitting {"type", "data"}, so the schema inferred
// from its Go fields would not match the wire format; override it.
func askOutputSchema() *jsonschema.Schema {
	actionSchema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"type": {Type: "string"},
			"data": {},
		},
		Required: []string{"type", "data"},
	}
	s, err := jsonschema.For[askOutput](&jsonschema.ForOptions{
		TypeSchemas: map[reflect.Type]*jsonschema.Schema{
			reflect.TypeFor[models.Action](): actionSchema,
		},
	})
	if err != nil {
		panic(fmt.Sprintf("building ask_assistant output schema: %v", err))
	}
	return s
}

func emptyMetricsOutput() metricsOutput {
	return metricsOutput{QueriesByIntent: make(map[string]int)}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// parseSince parses a human-friendly duration string like "7d" or "24h"
// into the corresponding time in the past.
func parseSince(s string) (time.Time, error) {
	now := time.Now().UTC()

	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]
	var num int
	if _, err := fmt.Sscanf(numStr, "%d", &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch suffix {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d or h)", string(suffix))
	}
}
