package config

import (
	"fmt"
	"math"
	"time"

	"github.com/turtacn/pulse/pkg/constants"
	"github.com/turtacn/pulse/pkg/errors"
)

// Config holds the application's configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Log      LogConfig      `mapstructure:"log"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	PprofEnabled bool   `mapstructure:"pprof_enabled"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxConns int    `mapstructure:"max_conns"`
	MinConns int    `mapstructure:"min_conns"`
}

func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

type RedisConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	Addresses    []string `mapstructure:"addresses"`
	Password     string   `mapstructure:"password"`
	DB           int      `mapstructure:"db"`
	PoolSize     int      `mapstructure:"pool_size"`
	MinIdleConns int      `mapstructure:"min_idle_conns"`
}

type KafkaConfig struct {
	Enabled             bool     `mapstructure:"enabled"`
	Brokers             []string `mapstructure:"brokers"`
	MetricsUpdatedTopic string   `mapstructure:"metrics_updated_topic"`
	AssessedTopic       string   `mapstructure:"assessed_topic"`
}

// ScoringConfig carries the category weights for the composite health score.
type ScoringConfig struct {
	Weights map[string]float64 `mapstructure:"weights"`
}

// CategoryWeights converts the raw weight map to typed categories.
func (c *ScoringConfig) CategoryWeights() map[constants.MetricCategory]float64 {
	weights := make(map[constants.MetricCategory]float64, len(c.Weights))
	for k, v := range c.Weights {
		weights[constants.MetricCategory(k)] = v
	}
	return weights
}

type CacheConfig struct {
	TTL             int `mapstructure:"ttl"`              // in seconds
	CleanupInterval int `mapstructure:"cleanup_interval"` // in seconds
}

// TTLDuration returns the profile cache TTL, falling back to the default.
func (c *CacheConfig) TTLDuration() time.Duration {
	if c.TTL <= 0 {
		return constants.DefaultProfileCacheTTL
	}
	return time.Duration(c.TTL) * time.Second
}

// CleanupDuration returns the expired-entry sweep interval.
func (c *CacheConfig) CleanupDuration() time.Duration {
	if c.CleanupInterval <= 0 {
		return constants.DefaultCacheCleanupInterval
	}
	return time.Duration(c.CleanupInterval) * time.Second
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	ServiceName    string `mapstructure:"service_name"`
	Environment    string `mapstructure:"environment"`
}

// Validate checks the configuration invariants that must hold before the
// service starts. A weight table that does not sum to 1.0 is fatal here, not
// per-request.
func (c *Config) Validate() error {
	if len(c.Scoring.Weights) == 0 {
		return errors.ErrConfiguration("scoring weights must be configured")
	}
	sum := 0.0
	for category, w := range c.Scoring.Weights {
		if math.IsNaN(w) || w < 0 || w > 1 {
			return errors.ErrConfiguration(
				fmt.Sprintf("scoring weight %q must be in [0,1], got %v", category, w))
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return errors.ErrConfiguration(
			fmt.Sprintf("scoring weights must sum to 1.0, got %v", sum))
	}

	if c.Cache.TTL < 0 {
		return errors.ErrConfiguration("cache ttl must not be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.ErrConfiguration(fmt.Sprintf("invalid server port %d", c.Server.Port))
	}
	return nil
}
