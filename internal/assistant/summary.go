package assistant

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/WorksphereAI/worksphereai-sub002/internal/gateway"
	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

// summaryHandler answers summary queries with aggregate counts. The counts
// have no ordering dependency, so they are fetched concurrently and joined
// before the digest is assembled; request latency is bounded by the slowest
// single count.
type summaryHandler struct {
	gw gateway.Gateway
}

func (h *summaryHandler) Intent() Intent { return IntentSummary }

func (h *summaryHandler) Handle(ctx context.Context, user *models.User, _ *models.QueryContext) (*models.Envelope, error) {
	var pendingTasks, unreadMessages, pendingApprovals, teamSize int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pendingTasks, err = h.gw.CountPendingTasks(gctx, user.ID)
		return err
	})
	g.Go(func() error {
		var err error
		unreadMessages, err = h.gw.CountUnreadMessages(gctx, user.ID)
		return err
	})
	g.Go(func() error {
		var err error
		pendingApprovals, err = h.gw.CountPendingApprovals(gctx, user.ID)
		return err
	})
	if user.Role.ManagesTeam() {
		g.Go(func() error {
			var err error
			teamSize, err = h.gw.CountTeamMembers(gctx, user.OrganizationID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading summary counts: %w", err)
	}

	var b strings.Builder
	b.WriteString("Here's your day at a glance:\n")
	fmt.Fprintf(&b, "• %d pending tasks\n", pendingTasks)
	fmt.Fprintf(&b, "• %d unread messages\n", unreadMessages)
	fmt.Fprintf(&b, "• %d pending approvals\n", pendingApprovals)
	if user.Role.ManagesTeam() {
		fmt.Fprintf(&b, "• %d people in your organization\n", teamSize)
	}
	fmt.Fprintf(&b, "Productivity: %s", productivityLabel(pendingTasks))

	return &models.Envelope{Text: b.String()}, nil
}

// productivityLabel buckets the pending-task load into a coarse status:
// "Excellent" at zero, "Good" under three, "Needs attention" otherwise.
func productivityLabel(pendingTasks int) string {
	switch {
	case pendingTasks == 0:
		return "Excellent"
	case pendingTasks < 3:
		return "Good"
	default:
		return "Needs attention"
	}
}
