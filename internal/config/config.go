// Package config defines process configuration and its loading.
//
// Conventions:
// - New() returns defaults; Load(ctx) layers sources over them.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP read API listen address, e.g. ":9080".
	// Empty disables the API.
	Addr string `koanf:"addr"`

	// StoreDriver selects the leaderboard store: memory, sqlite, postgres.
	StoreDriver string `koanf:"store_driver"`

	// StorePath is the SQLite database file.
	StorePath string `koanf:"store_path"`

	// StoreDSN is the Postgres connection string.
	StoreDSN string `koanf:"store_dsn"`

	// Collection is the store key holding the leaderboard.
	Collection string `koanf:"collection"`

	// LeaderboardSize caps the entries shown and GET /leaderboard?limit.
	LeaderboardSize int `koanf:"leaderboard_size"`

	// Seed fixes match randomness; 0 seeds from the clock.
	Seed int64 `koanf:"seed"`

	// RoundPauseMS is how long the terminal shows a round result.
	RoundPauseMS int `koanf:"round_pause_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "warn",
		LogFormat:       "text",
		StoreDriver:     "sqlite",
		StorePath:       "battle.db",
		Collection:      "scoreboard",
		LeaderboardSize: 5,
		RoundPauseMS:    3000,
	}
}

// RoundPause returns RoundPauseMS as a duration.
func (c *Config) RoundPause() time.Duration {
	return time.Duration(c.RoundPauseMS) * time.Millisecond
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch strings.ToLower(c.StoreDriver) {
	case "memory":
	case "sqlite":
		if strings.TrimSpace(c.StorePath) == "" {
			return fmt.Errorf("%w: store_path is required for sqlite", ErrInvalidConfig)
		}
	case "postgres":
		if strings.TrimSpace(c.StoreDSN) == "" {
			return fmt.Errorf("%w: store_dsn is required for postgres", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store_driver %q", ErrInvalidConfig, c.StoreDriver)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if strings.TrimSpace(c.Collection) == "" {
		return fmt.Errorf("%w: collection must not be empty", ErrInvalidConfig)
	}
	if c.LeaderboardSize < 1 {
		return fmt.Errorf("%w: leaderboard_size must be positive", ErrInvalidConfig)
	}
	if c.RoundPauseMS < 0 {
		return fmt.Errorf("%w: round_pause_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}
