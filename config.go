package strompris

import (
	"fmt"

	"strompris/internal/config"
)

// NewFromEnv creates a client configured from STROMPRIS_* environment
// variables and an optional strompris.yaml. Options passed explicitly are
// applied after the loaded configuration and take precedence.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return New(append(configOptions(cfg), opts...)...)
}

func configOptions(cfg *config.Config) []Option {
	opts := []Option{
		WithBaseURL(cfg.BaseURL),
		WithTimeout(cfg.Timeout),
		WithMaxDaysAhead(cfg.MaxDaysAhead),
		WithRetries(cfg.RetryCount),
	}
	if cfg.AllowHTTP {
		opts = append(opts, WithInsecureHTTP())
	}
	if cfg.UserAgent != "" {
		opts = append(opts, WithUserAgent(cfg.UserAgent))
	}
	if cfg.RequestsPerSecond > 0 {
		opts = append(opts, WithRateLimit(cfg.RequestsPerSecond, cfg.Burst))
	}
	return opts
}
