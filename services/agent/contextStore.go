// File: services/agent/contextStore.go
package agent

import (
	"context"
	"encoding/json"
	"time"

	"maitred/models"

	"github.com/go-redis/redis/v8"
)

const agentContextPrefix = "agent:ctx:"

// ConversationContext is the cached copy of a session's transcript and
// draft.
type ConversationContext struct {
	History   []models.ChatMessage     `json:"history"`
	Draft     *models.ReservationDraft `json:"draft"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, sessionID string) (*ConversationContext, error) {
	key := agentContextPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &ConversationContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var convCtx ConversationContext
	if err := json.Unmarshal([]byte(data), &convCtx); err != nil {
		return nil, err
	}
	return &convCtx, nil
}

func (s *RedisContextStore) Set(ctx context.Context, sessionID string, convCtx *ConversationContext) error {
	key := agentContextPrefix + sessionID
	convCtx.UpdatedAt = time.Now()
	b, err := json.Marshal(convCtx)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, sessionID string) error {
	key := agentContextPrefix + sessionID
	return s.client.Del(ctx, key).Err()
}
