package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	cacheTTL  = 10 * time.Minute
	scanCount = 100
)

type RedisRoomCache struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewRedisRoomCache(client *redis.Client, logger zerolog.Logger) *RedisRoomCache {
	return &RedisRoomCache{client: client, logger: logger}
}

func (c *RedisRoomCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return data, true
	}
	if err != redis.Nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("redis GET failed")
	}
	return nil, false
}

func (c *RedisRoomCache) Set(ctx context.Context, key string, payload []byte) {
	if err := c.client.Set(ctx, key, payload, cacheTTL).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to cache search response")
	}
}

// Invalidate deletes every cached search result. Runs after room mutations,
// usually from a goroutine since staleness is tolerable but slow writes are
// not.
func (c *RedisRoomCache) Invalidate(ctx context.Context) {
	var keys []string
	var cursor uint64
	for {
		currentKeys, next, err := c.client.Scan(ctx, cursor, keyPrefix+"*", scanCount).Result()
		if err != nil {
			c.logger.Warn().Err(err).Msg("redis SCAN failed during cache invalidation")
			return
		}
		keys = append(keys, currentKeys...)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return
	}

	pipe := c.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn().Err(err).Int("keys", len(keys)).Msg("failed to invalidate room cache")
		return
	}
	c.logger.Debug().Int("keys", len(keys)).Msg("room cache invalidated")
}
