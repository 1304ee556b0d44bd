package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

func TestDispatchRoutesToHandlers(t *testing.T) {
	gw := newFakeGateway()
	gw.tasks = sampleTasks(1)
	gw.messages = sampleMessages(1)
	d := NewDispatcher(gw, Config{})

	tests := []struct {
		query      string
		wantIntent Intent
	}{
		{"show my tasks", IntentTask},
		{"unread messages", IntentMessage},
		{"find a document", IntentFile},
		{"approve this", IntentApproval},
		{"schedule a meeting", IntentMeeting},
		{"daily summary", IntentSummary},
	}

	for _, tt := range tests {
		env, intent, err := d.Dispatch(context.Background(), employee(), tt.query, nil)
		if err != nil {
			t.Fatalf("Dispatch(%q) failed: %v", tt.query, err)
		}
		if intent != tt.wantIntent {
			t.Errorf("Dispatch(%q) intent = %s, want %s", tt.query, intent, tt.wantIntent)
		}
		if env == nil || env.Text == "" {
			t.Errorf("Dispatch(%q) returned an empty envelope", tt.query)
		}
	}
}

func TestDispatchUnknownIntentFallback(t *testing.T) {
	d := NewDispatcher(newFakeGateway(), Config{})

	env, intent, err := d.Dispatch(context.Background(), employee(), "blah blah", nil)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if intent != IntentUnknown {
		t.Errorf("intent = %s, want %s", intent, IntentUnknown)
	}
	if len(env.Suggestions) == 0 {
		t.Error("unknown-intent envelope has no suggestions")
	}
	if len(env.Actions) != 0 {
		t.Errorf("unknown-intent envelope has %d actions, want 0", len(env.Actions))
	}
}

func TestDispatchMeetingMenu(t *testing.T) {
	d := NewDispatcher(newFakeGateway(), Config{})

	env, _, err := d.Dispatch(context.Background(), employee(), "set up a meeting", nil)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(env.Actions) != 2 {
		t.Fatalf("meeting envelope has %d actions, want 2", len(env.Actions))
	}

	team, oneOnOne := env.Actions[0], env.Actions[1]
	if team.ScheduleMeeting == nil || team.ScheduleMeeting.MeetingType != "team" || team.ScheduleMeeting.DurationMinutes != 60 {
		t.Errorf("first meeting action = %+v, want team/60", team.ScheduleMeeting)
	}
	if oneOnOne.ScheduleMeeting == nil || oneOnOne.ScheduleMeeting.MeetingType != "one_on_one" || oneOnOne.ScheduleMeeting.DurationMinutes != 30 {
		t.Errorf("second meeting action = %+v, want one_on_one/30", oneOnOne.ScheduleMeeting)
	}
}

func TestDispatchWrapsHandlerErrors(t *testing.T) {
	gw := newFakeGateway()
	sentinel := errors.New("downstream broke")
	gw.failWith = sentinel
	d := NewDispatcher(gw, Config{})

	_, intent, err := d.Dispatch(context.Background(), employee(), "show my tasks", nil)
	if !errors.Is(err, sentinel) {
		t.Fatalf("Dispatch error = %v, want wrapped sentinel", err)
	}
	if intent != IntentTask {
		t.Errorf("intent = %s, want %s", intent, IntentTask)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.PageSize != 10 {
		t.Errorf("default PageSize = %d, want 10", cfg.PageSize)
	}
	if cfg.ApprovalPageSize != 50 {
		t.Errorf("default ApprovalPageSize = %d, want 50", cfg.ApprovalPageSize)
	}
}

func TestAssemble(t *testing.T) {
	env := &models.Envelope{
		Text:        "digest",
		Actions:     []models.Action{models.MarkAllReadAction()},
		Suggestions: []string{"try this"},
	}
	resp := Assemble(env)
	if resp.Response != "digest" {
		t.Errorf("Response = %q, want %q", resp.Response, "digest")
	}
	if len(resp.Actions) != 1 || len(resp.Suggestions) != 1 {
		t.Errorf("Assemble dropped content: %+v", resp)
	}

	// Empty envelope keeps optional fields empty for omitempty.
	empty := Assemble(&models.Envelope{Text: strings.TrimSpace("just text")})
	if empty.Actions != nil || empty.Suggestions != nil {
		t.Errorf("Assemble invented content: %+v", empty)
	}
}
