package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DedupCache implements ports.DedupCache using Redis SET NX. It short-circuits
// exact webhook redeliveries before they hit the reconciliation engine; if
// Redis is down, callers fall through to the engine's own idempotency.
type DedupCache struct {
	client *goredis.Client
	prefix string
}

// NewDedupCache creates a new Redis-backed webhook dedup cache.
func NewDedupCache(client *goredis.Client) *DedupCache {
	return &DedupCache{
		client: client,
		prefix: "webhook:dedup:",
	}
}

// CheckAndSet atomically records a delivery key, returning true when the
// delivery is new and false on a redelivery within the TTL.
func (c *DedupCache) CheckAndSet(ctx context.Context, gateway, eventID string, ttl time.Duration) (bool, error) {
	key := c.prefix + gateway + ":" + eventID
	result, err := c.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists — redelivery
			return false, nil
		}
		return false, fmt.Errorf("redis dedup check: %w", err)
	}
	return result == "OK", nil
}
