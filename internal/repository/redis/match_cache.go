package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ahmedezz570/SkillSwap/internal/domain"
	apperrors "github.com/Ahmedezz570/SkillSwap/pkg/errors"
)

const keyPrefix = "matches:"

// MatchCache implements repository.MatchCache using Redis. Cached lists are
// advisory; the scorer recomputes on a miss.
type MatchCache struct {
	client *redis.Client
}

// NewMatchCache creates a new Redis-backed match cache.
func NewMatchCache(client *redis.Client) *MatchCache {
	return &MatchCache{client: client}
}

// Get retrieves the cached match list for a user.
func (c *MatchCache) Get(ctx context.Context, userID string) ([]domain.Match, error) {
	key := keyPrefix + userID

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("redis get matches: %w", err)
	}

	var matches []domain.Match
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, fmt.Errorf("unmarshal matches: %w", err)
	}

	return matches, nil
}

// Set stores the ranked match list for a user with the given TTL.
func (c *MatchCache) Set(ctx context.Context, userID string, matches []domain.Match, ttl time.Duration) error {
	key := keyPrefix + userID

	data, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("marshal matches: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set matches: %w", err)
	}

	return nil
}

// Invalidate drops the cached match list for a user.
func (c *MatchCache) Invalidate(ctx context.Context, userID string) error {
	key := keyPrefix + userID

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del matches: %w", err)
	}

	return nil
}
