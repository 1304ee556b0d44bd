package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/WorksphereAI/worksphereai-sub002/internal/gateway"
	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

// approvalHandler answers approval queries with pending requests the caller
// is involved in, and proposes reviewing the ones waiting on the caller.
type approvalHandler struct {
	gw       gateway.Gateway
	pageSize int
}

func (h *approvalHandler) Intent() Intent { return IntentApproval }

func (h *approvalHandler) Handle(ctx context.Context, user *models.User, _ *models.QueryContext) (*models.Envelope, error) {
	approvals, err := h.gw.PendingApprovals(ctx, user.ID, h.pageSize)
	if err != nil {
		return nil, fmt.Errorf("loading pending approvals: %w", err)
	}

	if len(approvals) == 0 {
		return &models.Envelope{
			Text: "No pending approvals. Nothing is waiting on you!",
			Suggestions: []string{
				"Request an approval",
				"Show my pending tasks",
				"Give me a summary of my day",
			},
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d pending approval requests:\n", len(approvals))
	var actions []models.Action
	awaiting := 0
	for _, a := range approvals {
		fmt.Fprintf(&b, "• %s request from %s (%s)\n", a.Type, a.RequesterName, a.Created.Format("Jan 2"))
		if a.ApproverID == user.ID {
			awaiting++
			actions = append(actions, models.ReviewApprovalAction(a.ID))
		}
	}
	if awaiting > 0 {
		fmt.Fprintf(&b, "%d of these need your action.", awaiting)
	}

	return &models.Envelope{
		Text:    strings.TrimRight(b.String(), "\n"),
		Actions: actions,
	}, nil
}
