package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// CallbackCache implements ports.CallbackCache using Redis. It shortcuts
// gateway redeliveries of already-settled order codes; the database status
// guard stays authoritative when the cache is cold or down.
type CallbackCache struct {
	client *goredis.Client
	prefix string
}

// NewCallbackCache creates a new Redis-backed callback cache.
func NewCallbackCache(client *goredis.Client) *CallbackCache {
	return &CallbackCache{
		client: client,
		prefix: "callback:",
	}
}

// Get retrieves a cached settlement result by order code.
// Returns nil, nil if the order code has no cached result.
func (c *CallbackCache) Get(ctx context.Context, orderCode string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+orderCode).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis callback get: %w", err)
	}
	return val, nil
}

// Set stores a settlement result with TTL.
func (c *CallbackCache) Set(ctx context.Context, orderCode string, result []byte, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+orderCode, result, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis callback set: %w", err)
	}
	return nil
}
