// Package redis opens the shared Redis connection.
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"task_backend/internal/config"
)

// NewClient connects to Redis using the given configuration.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.Addr)
	return rdb, nil
}
