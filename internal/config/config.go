package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultBaseURL      = "https://www.hvakosterstrommen.no/api/v1/prices/"
	defaultTimeout      = 10 * time.Second
	defaultMaxDaysAhead = 1
)

// Config holds the client settings that can be supplied from the environment.
type Config struct {
	BaseURL      string        `mapstructure:"base_url"`
	AllowHTTP    bool          `mapstructure:"allow_http"`
	Timeout      time.Duration `mapstructure:"timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
	MaxDaysAhead int           `mapstructure:"max_days_ahead"`
	RetryCount   int           `mapstructure:"retry_count"`

	// Optional request pacing, zero means unlimited
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// Load reads configuration from environment variables and optional config file.
// Environment variables take precedence over config file values.
//
// Recognised environment variables:
//   - STROMPRIS_BASE_URL (optional, defaults to production)
//   - STROMPRIS_ALLOW_HTTP (optional, permits a plain http base URL, defaults to false)
//   - STROMPRIS_TIMEOUT (optional, Go duration, defaults to 10s)
//   - STROMPRIS_USER_AGENT (optional)
//   - STROMPRIS_MAX_DAYS_AHEAD (optional, defaults to 1, negative disables the check)
//   - STROMPRIS_RETRY_COUNT (optional, defaults to 0)
//   - STROMPRIS_REQUESTS_PER_SECOND (optional, defaults to unlimited)
//   - STROMPRIS_BURST (optional, defaults to 1)
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("strompris")
	v.AutomaticEnv()

	v.SetDefault("base_url", defaultBaseURL)
	v.SetDefault("allow_http", false)
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("user_agent", "")
	v.SetDefault("max_days_ahead", defaultMaxDaysAhead)
	v.SetDefault("retry_count", 0)
	v.SetDefault("requests_per_second", 0)
	v.SetDefault("burst", 1)

	// Optionally read from config file if it exists
	v.SetConfigName("strompris")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.strompris")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks value ranges that viper cannot express
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("invalid configuration: base_url is empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid configuration: timeout must be positive, got %s", c.Timeout)
	}
	if c.RetryCount < 0 {
		return fmt.Errorf("invalid configuration: retry_count must not be negative, got %d", c.RetryCount)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid configuration: requests_per_second must not be negative, got %g", c.RequestsPerSecond)
	}
	return nil
}
