// Package gateway provides the read-only query façade over the WorkSphere
// relational store. Every method issues a single parameterized query with an
// explicit ordering and bound; the assistant never writes through it.
package gateway

import (
	"context"
	"errors"

	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

// ErrNotFound is returned when a lookup by primary key matches no row.
var ErrNotFound = errors.New("not found")

// Gateway is the data-access contract the intent handlers depend on.
type Gateway interface {
	// UserByID resolves a user by primary key, returning ErrNotFound when
	// no such user exists.
	UserByID(ctx context.Context, userID string) (*models.User, error)

	// PendingTasks returns the caller's not-yet-completed tasks ordered by
	// due date ascending (tasks without a due date sort last), capped at limit.
	PendingTasks(ctx context.Context, assigneeID string, limit int) ([]models.Task, error)

	// UnreadMessages returns the caller's unread messages, newest first,
	// capped at limit.
	UnreadMessages(ctx context.Context, recipientID string, limit int) ([]models.Message, error)

	// RecentFiles returns the organization's files, newest first, capped at limit.
	RecentFiles(ctx context.Context, organizationID string, limit int) ([]models.File, error)

	// PendingApprovals returns pending approval requests where the caller is
	// either requester or approver, newest first, capped at limit.
	PendingApprovals(ctx context.Context, userID string, limit int) ([]models.Approval, error)

	// CountPendingTasks counts the caller's not-yet-completed tasks.
	CountPendingTasks(ctx context.Context, assigneeID string) (int, error)

	// CountUnreadMessages counts the caller's unread messages.
	CountUnreadMessages(ctx context.Context, recipientID string) (int, error)

	// CountPendingApprovals counts pending requests involving the caller.
	CountPendingApprovals(ctx context.Context, userID string) (int, error)

	// CountTeamMembers counts users in the organization.
	CountTeamMembers(ctx context.Context, organizationID string) (int, error)
}
