// Package cache implements the Redis backed dashboard cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "dealer"

// DashboardCache stores computed dashboards in Redis. Every key embeds the
// dealer's version counter; Invalidate bumps the counter so older keys are
// never read again and expire on their own.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDashboardCache creates a new DashboardCache instance.
func NewDashboardCache(client *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{
		client: client,
		ttl:    ttl,
	}
}

func versionKey(dealerID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:version", keyPrefix, dealerID)
}

// BuildKey returns the cache key of base for the dealer's current version.
func (c *DashboardCache) BuildKey(ctx context.Context, dealerID uuid.UUID, base string) (string, error) {
	version, err := c.client.Get(ctx, versionKey(dealerID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("failed to read cache version: %w", err)
	}
	return fmt.Sprintf("%s:%s:v%d:%s", keyPrefix, dealerID, version, base), nil
}

// FetchJSON decodes the cached value at key into dst. On a miss the loader
// runs, its result is stored for the configured TTL and decoded into dst.
// Redis failures degrade to calling the loader.
func (c *DashboardCache) FetchJSON(
	ctx context.Context,
	key string,
	dst any,
	loader func(context.Context) (any, error),
) error {
	cached, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		jsonErr := json.Unmarshal(cached, dst)
		if jsonErr == nil {
			return nil
		}
		slog.Warn("Discarding unreadable cache entry", "key", key, "error", jsonErr)
	case !errors.Is(err, redis.Nil):
		slog.Warn("Dashboard cache read failed", "key", key, "error", err)
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		slog.Warn("Dashboard cache write failed", "key", key, "error", err)
	}

	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("failed to decode cache value: %w", err)
	}
	return nil
}

// Invalidate makes every key previously built for the dealer unreachable.
func (c *DashboardCache) Invalidate(ctx context.Context, dealerID uuid.UUID) error {
	if err := c.client.Incr(ctx, versionKey(dealerID)).Err(); err != nil {
		return fmt.Errorf("failed to bump cache version: %w", err)
	}
	return nil
}
