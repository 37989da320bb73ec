// Package redis provides Redis connection management and the remote profile
// cache backend.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/pulse/internal/config"
	"github.com/turtacn/pulse/pkg/errors"
	"github.com/turtacn/pulse/pkg/logger"
)

// RedisConnection manages the Redis client lifecycle.
type RedisConnection struct {
	Client redis.UniversalClient
	log    logger.Logger
}

// NewRedisConnection creates a Redis connection and verifies it with a ping.
func NewRedisConnection(cfg *config.RedisConfig, log logger.Logger) (*RedisConnection, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        cfg.Addresses,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.ErrCache("failed to connect to redis").WithCause(err)
	}

	log.Info(ctx, "connected to redis", logger.Fields{"addresses": cfg.Addresses})
	return &RedisConnection{Client: client, log: log}, nil
}

// Close releases the underlying client.
func (r *RedisConnection) Close() error {
	return r.Client.Close()
}

// Ping checks connection health.
func (r *RedisConnection) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}
