// Package cache holds the Redis-backed resolution cache. Reference
// resolution hits the same handful of contacts and flows over and over
// within a batch; caching local ids avoids a database round trip per
// referencing record.
package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"rapidpro_warehouse/internal/config"
)

type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisCache{client: client, ttl: cfg.TTL}
}

// NewWithClient wraps an existing client, used by tests.
func NewWithClient(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (int64, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, id int64) error {
	return c.client.Set(ctx, key, strconv.FormatInt(id, 10), c.ttl).Err()
}
