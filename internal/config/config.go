package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"

	"github.com/kayacantekin/aidpanel/internal/domain"
)

// Config is the process-wide configuration. An empty APIBaseURL puts the
// request client in synthetic mode: no network attempt is ever made and
// every call is served from fixtures.
type Config struct {
	APIBaseURL              string `env:"API_BASE_URL"`
	ForceSynthetic          bool   `env:"FORCE_SYNTHETIC,default=false"`
	RequestTimeoutMillis    int    `env:"REQUEST_TIMEOUT_MS,default=10000"`
	RetryAttempts           int    `env:"RETRY_ATTEMPTS,default=3"`
	RetryDelayMillis        int    `env:"RETRY_DELAY_MS,default=1000"`
	DeadlineScanIntervalSec int    `env:"DEADLINE_SCAN_INTERVAL_SEC,default=300"`
	AutoReadTimeoutMillis   int    `env:"AUTO_READ_TIMEOUT_MS,default=5000"`
	TokenStoreBackend       string `env:"TOKEN_STORE,default=keyring"`
	APIPort                 int    `env:"API_PORT,default=8080"`
	LogLevel                string `env:"LOG_LEVEL,default=info"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.RetryAttempts < 1 {
		return fmt.Errorf("RETRY_ATTEMPTS must be at least 1, got %d", c.RetryAttempts)
	}
	if c.RetryDelayMillis < 0 {
		return fmt.Errorf("RETRY_DELAY_MS must not be negative, got %d", c.RetryDelayMillis)
	}
	if c.AutoReadTimeoutMillis <= 0 {
		return fmt.Errorf("AUTO_READ_TIMEOUT_MS must be positive, got %d", c.AutoReadTimeoutMillis)
	}

	switch strings.ToLower(strings.TrimSpace(c.TokenStoreBackend)) {
	case "keyring", "memory":
	default:
		return fmt.Errorf("TOKEN_STORE must be keyring or memory, got %q", c.TokenStoreBackend)
	}

	return nil
}

// Synthetic reports whether the client must run without a backend.
func (c *Config) Synthetic() bool {
	return c.ForceSynthetic || strings.TrimSpace(c.APIBaseURL) == ""
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMillis) * time.Millisecond
}

func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMillis) * time.Millisecond
}

func (c *Config) DeadlineScanInterval() time.Duration {
	return time.Duration(c.DeadlineScanIntervalSec) * time.Second
}

func (c *Config) AutoReadTimeout() time.Duration {
	return time.Duration(c.AutoReadTimeoutMillis) * time.Millisecond
}

// DefaultNotificationSettings seeds the engine settings with the
// configured auto-read timeout on top of the stock defaults.
func (c *Config) DefaultNotificationSettings() domain.Settings {
	settings := domain.DefaultSettings()
	settings.ReadTimeout = c.AutoReadTimeout()
	return settings
}
