package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const movieCachePrefix = "movies:"

// MovieCache stores proxied movie metadata as JSON documents.
type MovieCache interface {
	// Get decodes the cached value into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type redisMovieCache struct {
	client *redis.Client
}

// NewMovieCache returns a Redis-backed cache. A nil client yields a cache
// that always misses.
func NewMovieCache(client *redis.Client) MovieCache {
	return &redisMovieCache{client: client}
}

func (c *redisMovieCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, movieCachePrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *redisMovieCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, movieCachePrefix+key, raw, ttl).Err()
}
