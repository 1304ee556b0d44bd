// Package session stores per-user conversation history so the chat UI can
// rehydrate recent exchanges. History is best-effort: callers treat every
// failure here as non-fatal.
package session

import (
	"context"

	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

// maxExchanges caps how many exchanges a session retains.
const maxExchanges = 10

// Store is the conversation-history contract.
type Store interface {
	// Recent returns the caller's retained exchanges, oldest first.
	// A user with no history gets an empty slice, not an error.
	Recent(ctx context.Context, userID string) ([]models.Exchange, error)

	// Append records one exchange, evicting the oldest beyond the cap.
	Append(ctx context.Context, userID string, ex models.Exchange) error
}

// trimExchanges keeps only the newest maxExchanges entries.
func trimExchanges(history []models.Exchange) []models.Exchange {
	if len(history) > maxExchanges {
		return history[len(history)-maxExchanges:]
	}
	return history
}
