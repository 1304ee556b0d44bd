package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

const (
	historyTTL    = 24 * time.Hour
	historyPrefix = "assistant:history:"
)

// redisStore implements Store on a redis key per user holding a JSON array
// of exchanges with a sliding TTL.
type redisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a Store backed by the given redis client.
func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Recent(ctx context.Context, userID string) ([]models.Exchange, error) {
	data, err := s.rdb.Get(ctx, historyPrefix+userID).Bytes()
	if err == redis.Nil {
		return []models.Exchange{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session history: %w", err)
	}

	var history []models.Exchange
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("unmarshalling session history: %w", err)
	}
	return history, nil
}

func (s *redisStore) Append(ctx context.Context, userID string, ex models.Exchange) error {
	history, err := s.Recent(ctx, userID)
	if err != nil {
		return err
	}
	history = trimExchanges(append(history, ex))

	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshalling session history: %w", err)
	}
	if err := s.rdb.Set(ctx, historyPrefix+userID, data, historyTTL).Err(); err != nil {
		return fmt.Errorf("saving session history: %w", err)
	}
	return nil
}
