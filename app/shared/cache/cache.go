// Package cache stores JSON-encoded read models (standings, medians) in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "frolf-stats:"

// Cache is the read-model cache used by the result service.
type Cache interface {
	// GetJSON decodes the cached value into dest. It reports false on a miss.
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	// DeletePrefix removes every key that starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// Config holds configuration for the Redis cache.
type Config struct {
	RedisClient *redis.Client
}

type redisCache struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed cache and checks the connection.
func NewRedis(cfg *Config) (Cache, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &redisCache{client: cfg.RedisClient}, nil
}

func (c *redisCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (c *redisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+prefix+"*", 100).Iterator()
	pipe := c.client.Pipeline()
	n := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		n++
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan %s: %w", prefix, err)
	}
	if n == 0 {
		return nil
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete %s: %w", prefix, err)
	}
	return nil
}

type noop struct{}

// NewNoop returns a cache that always misses. Used when no Redis URL is configured.
func NewNoop() Cache { return noop{} }

func (noop) GetJSON(context.Context, string, any) (bool, error)        { return false, nil }
func (noop) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (noop) DeletePrefix(context.Context, string) error                { return nil }
