package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/WorksphereAI/worksphereai-sub002/internal/gateway"
	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

const (
	// messageDigestLimit caps how many messages are rendered in the digest;
	// the header still counts everything fetched.
	messageDigestLimit = 5
	// messagePreviewRunes caps the rendered length of each message body.
	messagePreviewRunes = 50
)

// messageHandler answers message queries with the caller's unread messages,
// newest first, and proposes a single bulk mark-all-read action.
type messageHandler struct {
	gw       gateway.Gateway
	pageSize int
}

func (h *messageHandler) Intent() Intent { return IntentMessage }

func (h *messageHandler) Handle(ctx context.Context, user *models.User, _ *models.QueryContext) (*models.Envelope, error) {
	msgs, err := h.gw.UnreadMessages(ctx, user.ID, h.pageSize)
	if err != nil {
		return nil, fmt.Errorf("loading unread messages: %w", err)
	}

	if len(msgs) == 0 {
		return &models.Envelope{
			Text: "Your inbox is clear — no unread messages.",
			Suggestions: []string{
				"Send a message",
				"Show my pending tasks",
				"Give me a summary of my day",
			},
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d unread messages:\n", len(msgs))
	for i, m := range msgs {
		if i == messageDigestLimit {
			fmt.Fprintf(&b, "…and %d more.\n", len(msgs)-messageDigestLimit)
			break
		}
		fmt.Fprintf(&b, "• %s: %s\n", m.SenderName, previewContent(m.Content))
	}

	return &models.Envelope{
		Text:    strings.TrimRight(b.String(), "\n"),
		Actions: []models.Action{models.MarkAllReadAction()},
	}, nil
}

// previewContent truncates a message body to messagePreviewRunes runes,
// appending an ellipsis when anything was cut.
func previewContent(content string) string {
	runes := []rune(content)
	if len(runes) <= messagePreviewRunes {
		return content
	}
	return string(runes[:messagePreviewRunes]) + "…"
}
