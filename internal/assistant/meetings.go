package assistant

import (
	"context"

	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

// meetingHandler answers meeting queries with a static scheduling menu.
// It issues no gateway queries.
type meetingHandler struct{}

func (h *meetingHandler) Intent() Intent { return IntentMeeting }

func (h *meetingHandler) Handle(_ context.Context, _ *models.User, _ *models.QueryContext) (*models.Envelope, error) {
	return &models.Envelope{
		Text: "I can help you schedule a meeting. What kind would you like?\n" +
			"• Team meeting (60 minutes)\n" +
			"• One-on-one (30 minutes)",
		Actions: []models.Action{
			models.ScheduleMeetingAction("team", 60),
			models.ScheduleMeetingAction("one_on_one", 30),
		},
	}, nil
}
