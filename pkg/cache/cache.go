package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Dashboard aggregates churn with every decision, content
// listings less so, workflow rule sets almost never.
const (
	TTLDashboard = 1 * time.Minute
	TTLContent   = 30 * time.Second
	TTLAnalytics = 5 * time.Minute
	TTLWorkflow  = 10 * time.Minute
	TTLDefault   = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixDashboard = "dashboard:"
	PrefixContent   = "content:"
	PrefixReview    = "review:"
	PrefixAnalytics = "analytics:"
	PrefixWorkflow  = "workflow:"
)

// Service is the single cache abstraction shared by all services.
// A nil Redis client degrades every operation to a no-op miss.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	InvalidateByPrefix(ctx context.Context, prefixes ...string) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a Redis-backed cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether a Redis client is configured
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping tests the Redis connection
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get reads a cached value into dest
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set stores a value with the given TTL
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// InvalidateByPrefix deletes every key under each given prefix.
// Called after any write that changes pipeline state.
func (c *redisCache) InvalidateByPrefix(ctx context.Context, prefixes ...string) error {
	if c.client == nil {
		return nil
	}
	for _, prefix := range prefixes {
		if err := c.deleteByPattern(ctx, prefix+"*"); err != nil {
			return err
		}
	}
	return nil
}

func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
