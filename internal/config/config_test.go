package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/pulse/internal/config"
	"github.com/turtacn/pulse/pkg/constants"
	"github.com/turtacn/pulse/pkg/errors"
)

func validConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "0.0.0.0", Port: 8080},
		Scoring: config.ScoringConfig{Weights: map[string]float64{
			"usage": 0.4, "engagement": 0.3, "support": 0.2, "financial": 0.1,
		}},
		Cache: config.CacheConfig{TTL: 300, CleanupInterval: 600},
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 300*time.Second, cfg.Cache.TTLDuration())
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, constants.TopicMetricsUpdated, cfg.Kafka.MetricsUpdatedTopic)

	weights := cfg.Scoring.CategoryWeights()
	assert.InDelta(t, 0.4, weights[constants.CategoryUsage], 1e-9)
	assert.InDelta(t, 0.3, weights[constants.CategoryEngagement], 1e-9)
	assert.InDelta(t, 0.2, weights[constants.CategorySupport], 1e-9)
	assert.InDelta(t, 0.1, weights[constants.CategoryFinancial], 1e-9)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("PULSE_SERVER_PORT", "9090")
	t.Setenv("PULSE_LOG_LEVEL", "debug")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"Valid", func(*config.Config) {}, false},
		{"NoWeights", func(c *config.Config) { c.Scoring.Weights = nil }, true},
		{"WeightsSumBelowOne", func(c *config.Config) { c.Scoring.Weights["usage"] = 0.3 }, true},
		{"WeightsSumAboveOne", func(c *config.Config) { c.Scoring.Weights["usage"] = 0.5 }, true},
		{"NegativeWeight", func(c *config.Config) {
			c.Scoring.Weights["usage"] = -0.4
			c.Scoring.Weights["engagement"] = 1.1
		}, true},
		{"NegativeTTL", func(c *config.Config) { c.Cache.TTL = -1 }, true},
		{"ZeroPort", func(c *config.Config) { c.Server.Port = 0 }, true},
		{"PortTooLarge", func(c *config.Config) { c.Server.Port = 70000 }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsConfiguration(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCacheConfig_Durations(t *testing.T) {
	c := config.CacheConfig{}
	assert.Equal(t, constants.DefaultProfileCacheTTL, c.TTLDuration())
	assert.Equal(t, constants.DefaultCacheCleanupInterval, c.CleanupDuration())

	c = config.CacheConfig{TTL: 60, CleanupInterval: 120}
	assert.Equal(t, time.Minute, c.TTLDuration())
	assert.Equal(t, 2*time.Minute, c.CleanupDuration())
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	c := config.DatabaseConfig{
		Host: "db", Port: 5432, User: "pulse", Password: "secret",
		Database: "pulse", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=pulse password=secret dbname=pulse sslmode=disable",
		c.GetDSN())
}
