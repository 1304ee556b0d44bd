package session

import (
	"context"
	"sync"

	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

// memoryStore implements Store in process memory. Used when redis is not
// configured; history then lives only as long as the process.
type memoryStore struct {
	mu       sync.Mutex
	sessions map[string][]models.Exchange
}

// NewMemoryStore creates an in-process Store.
func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[string][]models.Exchange)}
}

func (s *memoryStore) Recent(_ context.Context, userID string) ([]models.Exchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.sessions[userID]
	out := make([]models.Exchange, len(history))
	copy(out, history)
	return out, nil
}

func (s *memoryStore) Append(_ context.Context, userID string, ex models.Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = trimExchanges(append(s.sessions[userID], ex))
	return nil
}
