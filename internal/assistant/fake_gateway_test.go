package assistant

import (
	"context"

	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

// fakeGateway implements gateway.Gateway for testing. When failWith is set,
// every call returns it. gotLimits records the limit passed per query so
// tests can assert page-size caps.
type fakeGateway struct {
	user      *models.User
	tasks     []models.Task
	messages  []models.Message
	files     []models.File
	approvals []models.Approval

	pendingTaskCount     int
	unreadMessageCount   int
	pendingApprovalCount int
	teamMemberCount      int

	failWith  error
	gotLimits map[string]int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{gotLimits: make(map[string]int)}
}

func (f *fakeGateway) UserByID(_ context.Context, _ string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.user, nil
}

func (f *fakeGateway) PendingTasks(_ context.Context, _ string, limit int) ([]models.Task, error) {
	f.gotLimits["tasks"] = limit
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.tasks, nil
}

func (f *fakeGateway) UnreadMessages(_ context.Context, _ string, limit int) ([]models.Message, error) {
	f.gotLimits["messages"] = limit
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.messages, nil
}

func (f *fakeGateway) RecentFiles(_ context.Context, _ string, limit int) ([]models.File, error) {
	f.gotLimits["files"] = limit
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.files, nil
}

func (f *fakeGateway) PendingApprovals(_ context.Context, _ string, limit int) ([]models.Approval, error) {
	f.gotLimits["approvals"] = limit
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.approvals, nil
}

func (f *fakeGateway) CountPendingTasks(_ context.Context, _ string) (int, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	return f.pendingTaskCount, nil
}

func (f *fakeGateway) CountUnreadMessages(_ context.Context, _ string) (int, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	return f.unreadMessageCount, nil
}

func (f *fakeGateway) CountPendingApprovals(_ context.Context, _ string) (int, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	return f.pendingApprovalCount, nil
}

func (f *fakeGateway) CountTeamMembers(_ context.Context, _ string) (int, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	return f.teamMemberCount, nil
}

func employee() *models.User {
	return &models.User{
		ID:             "u1",
		Email:          "dana@example.com",
		FullName:       "Dana Reyes",
		OrganizationID: "o1",
		Role:           models.RoleEmployee,
	}
}
