package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/WorksphereAI/worksphereai-sub002/internal/assistant"
	"github.com/WorksphereAI/worksphereai-sub002/internal/gateway"
	"github.com/WorksphereAI/worksphereai-sub002/internal/session"
	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

// fakeGateway implements gateway.Gateway with canned data for boundary tests.
type fakeGateway struct {
	users    map[string]*models.User
	tasks    []models.Task
	failWith error
}

func (f *fakeGateway) UserByID(_ context.Context, userID string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, gateway.ErrNotFound
	}
	return u, nil
}

func (f *fakeGateway) PendingTasks(_ context.Context, _ string, _ int) ([]models.Task, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.tasks, nil
}

func (f *fakeGateway) UnreadMessages(_ context.Context, _ string, _ int) ([]models.Message, error) {
	return nil, f.failWith
}

func (f *fakeGateway) RecentFiles(_ context.Context, _ string, _ int) ([]models.File, error) {
	return nil, f.failWith
}

func (f *fakeGateway) PendingApprovals(_ context.Context, _ string, _ int) ([]models.Approval, error) {
	return nil, f.failWith
}

func (f *fakeGateway) CountPendingTasks(_ context.Context, _ string) (int, error) {
	return len(f.tasks), f.failWith
}

func (f *fakeGateway) CountUnreadMessages(_ context.Context, _ string) (int, error) {
	return 0, f.failWith
}

func (f *fakeGateway) CountPendingApprovals(_ context.Context, _ string) (int, error) {
	return 0, f.failWith
}

func (f *fakeGateway) CountTeamMembers(_ context.Context, _ string) (int, error) {
	return 0, f.failWith
}

func newTestServer(gw *fakeGateway) *Server {
	dispatcher := assistant.NewDispatcher(gw, assistant.Config{})
	return New(Config{Addr: ":0"}, gw, dispatcher, session.NewMemoryStore(), nil, nil, nil)
}

func seededGateway() *fakeGateway {
	due := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	past := time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)
	return &fakeGateway{
		users: map[string]*models.User{
			"u1": {ID: "u1", FullName: "Dana Reyes", OrganizationID: "o1", Role: models.RoleEmployee},
		},
		tasks: []models.Task{
			{ID: "t1", Title: "Overdue report", Priority: models.PriorityHigh, DueDate: &past},
			{ID: "t2", Title: "Plan offsite", Priority: models.PriorityMedium, DueDate: &due},
			{ID: "t3", Title: "Update runbook", Priority: models.PriorityLow},
		},
	}
}

func postAssistant(t *testing.T, srv *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshalling request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/ai-assistant", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestAssistantEndToEnd(t *testing.T) {
	srv := newTestServer(seededGateway())

	rec := postAssistant(t, srv, map[string]string{
		"query":          "show my pending tasks",
		"userId":         "u1",
		"organizationId": "o1",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Response string          `json:"response"`
		Actions  []models.Action `json:"actions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !strings.Contains(resp.Response, "3 pending tasks") {
		t.Errorf("response %q does not mention 3 pending tasks", resp.Response)
	}
	if len(resp.Actions) != 3 {
		t.Errorf("actions length = %d, want 3", len(resp.Actions))
	}
}

func TestAssistantMissingFields(t *testing.T) {
	srv := newTestServer(seededGateway())

	bodies := []map[string]string{
		{"userId": "u1", "organizationId": "o1"},
		{"query": "q", "organizationId": "o1"},
		{"query": "q", "userId": "u1"},
		{"organizationId": "o1"},
		{"userId": "u1"},
		{"query": "q"},
		{},
	}
	for i, body := range bodies {
		rec := postAssistant(t, srv, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400", i, rec.Code)
		}
		var errResp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
			t.Fatalf("case %d: decoding error body: %v", i, err)
		}
		if errResp["error"] == "" {
			t.Errorf("case %d: missing error field in %s", i, rec.Body.String())
		}
	}
}

func TestAssistantUnknownUser(t *testing.T) {
	srv := newTestServer(seededGateway())

	rec := postAssistant(t, srv, map[string]string{
		"query":          "show my tasks",
		"userId":         "nobody",
		"organizationId": "o1",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAssistantOpaqueInternalError(t *testing.T) {
	gw := seededGateway()
	srv := newTestServer(gw)
	gw.failWith = errors.New("pq: connection reset by peer")

	rec := postAssistant(t, srv, map[string]string{
		"query":          "show my tasks",
		"userId":         "u1",
		"organizationId": "o1",
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "pq:") {
		t.Errorf("internal detail leaked to caller: %s", rec.Body.String())
	}
	var errResp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if errResp["error"] != internalErrorMessage {
		t.Errorf("error = %q, want the fixed opaque message", errResp["error"])
	}
}

func TestAssistantInvalidJSON(t *testing.T) {
	srv := newTestServer(seededGateway())

	req := httptest.NewRequest(http.MethodPost, "/ai-assistant", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(seededGateway())

	req := httptest.NewRequest(http.MethodOptions, "/ai-assistant", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
		t.Errorf("Allow-Methods = %q, want POST listed", got)
	}
}

func TestHistoryRecordsExchanges(t *testing.T) {
	srv := newTestServer(seededGateway())

	rec := postAssistant(t, srv, map[string]string{
		"query":          "show my pending tasks",
		"userId":         "u1",
		"organizationId": "o1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("query status = %d, want 200", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/ai-assistant/history?userId=u1", nil)
	histRec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(histRec, req)
	if histRec.Code != http.StatusOK {
		t.Fatalf("history status = %d, want 200", histRec.Code)
	}

	var resp struct {
		Exchanges []models.Exchange `json:"exchanges"`
	}
	if err := json.Unmarshal(histRec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding history: %v", err)
	}
	if len(resp.Exchanges) != 1 {
		t.Fatalf("history has %d exchanges, want 1", len(resp.Exchanges))
	}
	if resp.Exchanges[0].Intent != "task" {
		t.Errorf("recorded intent = %q, want task", resp.Exchanges[0].Intent)
	}
}

func TestHistoryRequiresUserID(t *testing.T) {
	srv := newTestServer(seededGateway())

	req := httptest.NewRequest(http.MethodGet, "/ai-assistant/history", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(seededGateway())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("health body = %s", rec.Body.String())
	}
}

func TestMetricsDisabled(t *testing.T) {
	srv := newTestServer(seededGateway())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 when metrics are disabled", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(seededGateway())

	req := httptest.NewRequest(http.MethodGet, "/ai-assistant", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
