package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/WorksphereAI/worksphereai-sub002/internal/gateway"
	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

// fileDigestLimit caps how many files are rendered; the header counts all.
const fileDigestLimit = 5

// fileHandler answers file queries with the organization's most recent
// uploads and proposes previewing each one.
type fileHandler struct {
	gw       gateway.Gateway
	pageSize int
}

func (h *fileHandler) Intent() Intent { return IntentFile }

func (h *fileHandler) Handle(ctx context.Context, user *models.User, _ *models.QueryContext) (*models.Envelope, error) {
	files, err := h.gw.RecentFiles(ctx, user.OrganizationID, h.pageSize)
	if err != nil {
		return nil, fmt.Errorf("loading recent files: %w", err)
	}

	if len(files) == 0 {
		return &models.Envelope{
			Text: "No files in your workspace yet. Upload one to get started!",
			Suggestions: []string{
				"Upload a file",
				"Show my pending tasks",
				"Give me a summary of my day",
			},
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d recent files:\n", len(files))
	actions := make([]models.Action, 0, len(files))
	for i, f := range files {
		if i < fileDigestLimit {
			fmt.Fprintf(&b, "• %s (%s, uploaded by %s)\n", f.Name, formatSize(f.SizeBytes), f.UploaderName)
		}
		actions = append(actions, models.PreviewFileAction(f.ID))
	}
	if len(files) > fileDigestLimit {
		fmt.Fprintf(&b, "…and %d more.\n", len(files)-fileDigestLimit)
	}

	return &models.Envelope{
		Text:    strings.TrimRight(b.String(), "\n"),
		Actions: actions,
	}, nil
}

// formatSize renders a byte count in megabytes with one decimal.
func formatSize(bytes int64) string {
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}
