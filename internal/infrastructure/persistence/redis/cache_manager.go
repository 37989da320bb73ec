package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/pulse/internal/infrastructure/cache"
	"github.com/turtacn/pulse/pkg/constants"
	"github.com/turtacn/pulse/pkg/errors"
	"github.com/turtacn/pulse/pkg/logger"
)

// CacheManager is the Redis-backed remote store for cached risk profiles,
// shared across service instances.
type CacheManager struct {
	conn *RedisConnection
	log  logger.Logger
}

var _ cache.RemoteStore = (*CacheManager)(nil)

// NewCacheManager creates a CacheManager.
func NewCacheManager(conn *RedisConnection, log logger.Logger) *CacheManager {
	return &CacheManager{conn: conn, log: log.WithComponent("CacheManager")}
}

func profileKey(customerID string) string {
	return constants.ProfileCacheKeyPrefix + customerID
}

// GetEntry returns the cached entry for customerID, or a not-found error.
func (c *CacheManager) GetEntry(ctx context.Context, customerID string) (*cache.Entry, error) {
	val, err := c.conn.Client.Get(ctx, profileKey(customerID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.ErrCacheMiss(customerID)
		}
		return nil, errors.ErrCache("get failed").WithCause(err)
	}

	var entry cache.Entry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, errors.ErrCache("corrupt cache entry").WithCause(err)
	}
	return &entry, nil
}

// SetEntry stores the entry with the given TTL.
func (c *CacheManager) SetEntry(ctx context.Context, customerID string, entry *cache.Entry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return errors.ErrCache("marshal failed").WithCause(err)
	}
	if err := c.conn.Client.Set(ctx, profileKey(customerID), data, ttl).Err(); err != nil {
		return errors.ErrCache("set failed").WithCause(err)
	}
	return nil
}

// DeleteEntry evicts the entry for customerID.
func (c *CacheManager) DeleteEntry(ctx context.Context, customerID string) error {
	if err := c.conn.Client.Del(ctx, profileKey(customerID)).Err(); err != nil {
		return errors.ErrCache("delete failed").WithCause(err)
	}
	return nil
}
