package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/WorksphereAI/worksphereai-sub002/internal/gateway"
	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

// taskHandler answers task queries with the caller's pending tasks, due
// soonest first, and proposes completing each one.
type taskHandler struct {
	gw       gateway.Gateway
	pageSize int
}

func (h *taskHandler) Intent() Intent { return IntentTask }

func (h *taskHandler) Handle(ctx context.Context, user *models.User, _ *models.QueryContext) (*models.Envelope, error) {
	tasks, err := h.gw.PendingTasks(ctx, user.ID, h.pageSize)
	if err != nil {
		return nil, fmt.Errorf("loading pending tasks: %w", err)
	}

	if len(tasks) == 0 {
		return &models.Envelope{
			Text: "You're all caught up! No pending tasks right now.",
			Suggestions: []string{
				"Create a new task",
				"Give me a summary of my day",
				"Any unread messages?",
			},
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d pending tasks:\n", len(tasks))
	actions := make([]models.Action, 0, len(tasks))
	for _, t := range tasks {
		fmt.Fprintf(&b, "• %s\n", taskDigestLine(t))
		actions = append(actions, models.CompleteTaskAction(t.ID))
	}

	return &models.Envelope{
		Text:    strings.TrimRight(b.String(), "\n"),
		Actions: actions,
	}, nil
}

// taskDigestLine renders one task as "title (priority high, due Jan 2)".
// The due clause is omitted for tasks without a due date.
func taskDigestLine(t models.Task) string {
	if t.DueDate != nil {
		return fmt.Sprintf("%s (priority %s, due %s)", t.Title, t.Priority, t.DueDate.Format("Jan 2"))
	}
	return fmt.Sprintf("%s (priority %s)", t.Title, t.Priority)
}
