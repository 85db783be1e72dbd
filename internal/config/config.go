// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers a YAML file and MINDSCAN_ environment variables on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/mindscan/internal/domain/scoring"
)

// Store drivers accepted by StoreDriver.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Log formats accepted by LogFormat.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ScoringStrategy names the active scoring strategy.
	ScoringStrategy string `koanf:"scoring_strategy"`

	// StoreDriver selects the key-value backend: memory, sqlite or redis.
	StoreDriver string `koanf:"store_driver"`

	// SQLitePath is the database file of the sqlite driver.
	SQLitePath string `koanf:"sqlite_path"`

	// RedisAddr, RedisPassword and RedisDB configure the redis driver.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// KeyPrefix is prepended to every storage key.
	KeyPrefix string `koanf:"key_prefix"`

	// CoachURL is the coaching chat endpoint. Empty disables coaching.
	CoachURL string `koanf:"coach_url"`

	// CoachTimeoutMS bounds one coaching call.
	CoachTimeoutMS int `koanf:"coach_timeout_ms"`

	// ReminderDelayMS is how long after arming the demo reminder fires.
	ReminderDelayMS int `koanf:"reminder_delay_ms"`

	// DedupeSize sets the size of the submission ID cache.
	DedupeSize int `koanf:"dedupe_size"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       FormatText,
		Addr:            ":9080",
		ScoringStrategy: scoring.Default,
		StoreDriver:     DriverSQLite,
		SQLitePath:      "data/mindscan.db",
		RedisAddr:       "localhost:6379",
		CoachTimeoutMS:  15_000,
		ReminderDelayMS: 10_000,
		DedupeSize:      1024,
	}
}

// CoachTimeout returns CoachTimeoutMS as a duration.
func (c *Config) CoachTimeout() time.Duration {
	return time.Duration(c.CoachTimeoutMS) * time.Millisecond
}

// ReminderDelay returns ReminderDelayMS as a duration.
func (c *Config) ReminderDelay() time.Duration {
	return time.Duration(c.ReminderDelayMS) * time.Millisecond
}

// Validate checks every field and reports the first problem wrapped in
// ErrInvalidConfig.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return invalid("addr must not be empty")
	case c.CoachTimeoutMS <= 0:
		return invalid("coach_timeout_ms must be positive")
	case c.ReminderDelayMS <= 0:
		return invalid("reminder_delay_ms must be positive")
	case c.DedupeSize <= 0:
		return invalid("dedupe_size must be positive")
	case c.RedisDB < 0:
		return invalid("redis_db must not be negative")
	}

	switch strings.ToLower(c.LogFormat) {
	case FormatText, FormatJSON:
	default:
		return invalid("unknown log_format %q", c.LogFormat)
	}

	switch strings.ToLower(c.StoreDriver) {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return invalid("sqlite_path must not be empty")
		}
	case DriverRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return invalid("redis_addr must not be empty")
		}
	default:
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, ErrUnknownDriver, c.StoreDriver)
	}

	if _, err := scoring.Lookup(c.ScoringStrategy); err != nil {
		return fmt.Errorf("%w: %w: %w", ErrInvalidConfig, ErrUnknownStrategy, err)
	}
	return nil
}
