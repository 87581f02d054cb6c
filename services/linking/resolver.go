// File: services/linking/resolver.go
package linking

import (
	"context"
	"fmt"
	"time"

	"maitred/utils"

	"maitred/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const linkCheckPrefix = "linkcheck:"

// CheckForLinkable finds guest reservations that share the account's
// email. Lookup failures degrade: the caller shows "nothing to link" and
// the flow never blocks sign-in.
func (s *DefaultLinkingService) CheckForLinkable(ctx context.Context, sessionID string, identity models.AuthIdentity) LinkCheckResult {
	logger := utils.GetLogger()

	if identity.Email == "" {
		return LinkCheckResult{Status: StatusNone}
	}

	flagKey := linkCheckPrefix + sessionID
	if sessionID != "" && s.Flags != nil {
		seen, err := s.Flags.Seen(ctx, flagKey)
		if err != nil {
			// The flag store is advisory; fall through and check anyway.
			logger.Warn("linking: session flag lookup failed", zap.Error(err))
		} else if seen {
			return LinkCheckResult{Status: StatusSkipped}
		}
	}

	candidates, err := s.Repo.FindLinkable(identity.Email)
	if err != nil {
		logger.Error("linking: candidate lookup failed", zap.String("email", identity.Email), zap.Error(err))
		return LinkCheckResult{Status: StatusDegraded}
	}

	if sessionID != "" && s.Flags != nil {
		if err := s.Flags.MarkSeen(ctx, flagKey); err != nil {
			logger.Warn("linking: failed to mark session checked", zap.Error(err))
		}
	}

	if len(candidates) == 0 {
		return LinkCheckResult{Status: StatusNone}
	}
	return LinkCheckResult{Status: StatusFound, Candidates: candidates}
}

// Link transfers ownership of all matching guest reservations in one
// update. Because linking sets user_id and clears the guest contact
// fields, a re-invocation matches zero rows.
func (s *DefaultLinkingService) Link(ctx context.Context, identity models.AuthIdentity) (LinkResult, error) {
	if identity.ID == "" || identity.Email == "" {
		return LinkResult{}, fmt.Errorf("linking requires an authenticated identity with an email")
	}

	linked, err := s.Repo.LinkGuestReservations(identity.Email, identity.ID)
	if err != nil {
		utils.GetLogger().Error("linking: transfer failed",
			zap.String("user_id", identity.ID), zap.Error(err))
		return LinkResult{}, fmt.Errorf("failed to link guest reservations: %w", err)
	}
	return LinkResult{Success: true, Linked: linked}, nil
}

// RedisSessionFlagStore keeps check flags in redis with a TTL so a stale
// session eventually re-surfaces the prompt.
type RedisSessionFlagStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionFlagStore(client *redis.Client, ttl time.Duration) *RedisSessionFlagStore {
	return &RedisSessionFlagStore{client: client, ttl: ttl}
}

func (s *RedisSessionFlagStore) Seen(ctx context.Context, key string) (bool, error) {
	_, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisSessionFlagStore) MarkSeen(ctx context.Context, key string) error {
	return s.client.Set(ctx, key, "1", s.ttl).Err()
}
