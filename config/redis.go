package config

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to the search cache. Returns (nil, nil) when REDIS_ADD
// is unset: the cache is optional and the caller falls back to a no-op.
func InitRedis() (*redis.Client, error) {
	addr := os.Getenv("REDIS_ADD")
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}
	return client, nil
}
