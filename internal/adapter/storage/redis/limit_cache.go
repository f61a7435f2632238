package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"payment-hub/internal/core/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const limitVersionKey = "limits:version"

// LimitCache implements ports.LimitCache with versioned keys. Changing a limit
// bumps limits:version, which orphans every cached set; orphans expire by TTL.
type LimitCache struct {
	client goredis.UniversalClient
}

func NewLimitCache(client goredis.UniversalClient) *LimitCache {
	return &LimitCache{client: client}
}

func limitKey(version int64, scope domain.LimitScope, ownerID uuid.UUID) string {
	return fmt.Sprintf("limits:v%d:%s:%s", version, scope, ownerID)
}

// Version returns the current cache generation, 0 if never bumped.
func (c *LimitCache) Version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, limitVersionKey).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis limits version: %w", err)
	}
	return v, nil
}

// Get returns the cached set and whether it was present.
func (c *LimitCache) Get(ctx context.Context, version int64, scope domain.LimitScope, ownerID uuid.UUID) ([]domain.Limit, bool, error) {
	raw, err := c.client.Get(ctx, limitKey(version, scope, ownerID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis limits get: %w", err)
	}
	var limits []domain.Limit
	if err := json.Unmarshal(raw, &limits); err != nil {
		return nil, false, fmt.Errorf("decode cached limits: %w", err)
	}
	return limits, true, nil
}

func (c *LimitCache) Set(ctx context.Context, version int64, scope domain.LimitScope, ownerID uuid.UUID, limits []domain.Limit, ttl time.Duration) error {
	if limits == nil {
		limits = []domain.Limit{}
	}
	raw, err := json.Marshal(limits)
	if err != nil {
		return fmt.Errorf("encode limits: %w", err)
	}
	if err := c.client.Set(ctx, limitKey(version, scope, ownerID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis limits set: %w", err)
	}
	return nil
}

// Bump starts a new cache generation.
func (c *LimitCache) Bump(ctx context.Context) (int64, error) {
	v, err := c.client.Incr(ctx, limitVersionKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis limits bump: %w", err)
	}
	return v, nil
}
