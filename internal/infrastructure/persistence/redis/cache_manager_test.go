package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/pulse/internal/config"
	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/internal/infrastructure/cache"
	"github.com/turtacn/pulse/internal/infrastructure/persistence/redis"
	"github.com/turtacn/pulse/pkg/errors"
	"github.com/turtacn/pulse/pkg/logger"
)

func newTestManager(t *testing.T) (*redis.CacheManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	conn, err := redis.NewRedisConnection(&config.RedisConfig{
		Addresses: []string{mr.Addr()},
	}, logger.NewNoopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return redis.NewCacheManager(conn, logger.NewNoopLogger()), mr
}

func testEntry(t *testing.T, customerID, fingerprint string) *cache.Entry {
	t.Helper()
	profile, err := models.NewRiskProfile(customerID, 82, models.SeverityHigh, nil, nil, fingerprint)
	require.NoError(t, err)
	return &cache.Entry{Profile: profile, Fingerprint: fingerprint}
}

func TestCacheManager_SetGetDelete(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	entry := testEntry(t, "cust-1", "fp-1")
	require.NoError(t, manager.SetEntry(ctx, "cust-1", entry, time.Minute))

	got, err := manager.GetEntry(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, "fp-1", got.Fingerprint)
	assert.Equal(t, "cust-1", got.Profile.CustomerID)
	assert.Equal(t, models.SeverityHigh, got.Profile.SeverityLevel)
	assert.InDelta(t, 82.0, got.Profile.Score, 1e-9)

	require.NoError(t, manager.DeleteEntry(ctx, "cust-1"))
	_, err = manager.GetEntry(ctx, "cust-1")
	assert.True(t, errors.IsNotFound(err))
}

func TestCacheManager_GetEntry_Miss(t *testing.T) {
	manager, _ := newTestManager(t)

	_, err := manager.GetEntry(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestCacheManager_GetEntry_Corrupt(t *testing.T) {
	manager, mr := newTestManager(t)
	require.NoError(t, mr.Set("risk:profile:cust-1", "{not json"))

	_, err := manager.GetEntry(context.Background(), "cust-1")
	require.Error(t, err)
	assert.False(t, errors.IsNotFound(err))
}

func TestCacheManager_TTLExpiry(t *testing.T) {
	manager, mr := newTestManager(t)
	ctx := context.Background()

	entry := testEntry(t, "cust-1", "fp-1")
	require.NoError(t, manager.SetEntry(ctx, "cust-1", entry, 300*time.Second))

	mr.FastForward(299 * time.Second)
	_, err := manager.GetEntry(ctx, "cust-1")
	assert.NoError(t, err)

	mr.FastForward(2 * time.Second)
	_, err = manager.GetEntry(ctx, "cust-1")
	assert.True(t, errors.IsNotFound(err))
}

func TestCacheManager_DeleteMissingIsNoError(t *testing.T) {
	manager, _ := newTestManager(t)
	assert.NoError(t, manager.DeleteEntry(context.Background(), "nobody"))
}
