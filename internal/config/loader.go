package config

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/turtacn/pulse/pkg/constants"
	"github.com/turtacn/pulse/pkg/errors"
)

// LoadConfig loads the configuration from file and environment variables.
// Environment variables use the PULSE_ prefix with dots replaced by
// underscores, e.g. PULSE_SERVER_PORT.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.metrics_updated_topic", constants.TopicMetricsUpdated)
	v.SetDefault("kafka.assessed_topic", constants.TopicProfileAssessed)
	v.SetDefault("scoring.weights", map[string]float64{
		string(constants.CategoryUsage):      constants.DefaultWeightUsage,
		string(constants.CategoryEngagement): constants.DefaultWeightEngagement,
		string(constants.CategorySupport):    constants.DefaultWeightSupport,
		string(constants.CategoryFinancial):  constants.DefaultWeightFinancial,
	})
	v.SetDefault("cache.ttl", 300)
	v.SetDefault("cache.cleanup_interval", 600)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "pulse-health-service")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/pulse/")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.ErrConfiguration("failed to read config file").WithCause(err)
		}
	}

	v.SetEnvPrefix("PULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.ErrConfiguration("failed to unmarshal config").WithCause(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
