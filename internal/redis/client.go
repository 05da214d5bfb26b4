package redisdb

import (
	"context"
	"fmt"

	"blogify/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewClient builds a client from cfg.Redis without dialing.
func NewClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// Connect returns a client that answered PING before ctx expired.
func Connect(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := NewClient(cfg)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Redis.Addr, err)
	}
	return rdb, nil
}
