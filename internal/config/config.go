// Package config loads forge settings from the environment
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/errors"
)

// Store backends
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Log levels accepted by LogLevel
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Config holds every environment driven setting
type Config struct {
	Store      string `env:"FORGE_STORE" envDefault:"sqlite"`
	RedisURL   string `env:"FORGE_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	SQLitePath string `env:"FORGE_SQLITE_PATH" envDefault:"honor-run.db"`
	StorageKey string `env:"FORGE_STORAGE_KEY" envDefault:"bg3-honor-run-v3"`

	// Seed of zero uses the crypto roller
	Seed uint64 `env:"FORGE_SEED" envDefault:"0"`

	AutosaveDebounce time.Duration `env:"FORGE_AUTOSAVE_DEBOUNCE" envDefault:"0s"`
	LogLevel         string        `env:"FORGE_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a validated Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// Validate checks every field
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("FORGE_STORE", c.Store, []string{StoreMemory, StoreRedis, StoreSQLite}, vb)
	switch c.Store {
	case StoreRedis:
		errors.ValidateRequired("FORGE_REDIS_URL", c.RedisURL, vb)
	case StoreSQLite:
		errors.ValidateRequired("FORGE_SQLITE_PATH", c.SQLitePath, vb)
	}
	errors.ValidateRequired("FORGE_STORAGE_KEY", c.StorageKey, vb)
	if c.AutosaveDebounce < 0 {
		vb.InvalidField("FORGE_AUTOSAVE_DEBOUNCE", "must not be negative")
	}
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		vb.InvalidField("FORGE_LOG_LEVEL", "must be debug, info, warn or error")
	}

	return vb.Build()
}

// SlogLevel returns the configured log level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	if level, ok := logLevels[strings.ToLower(c.LogLevel)]; ok {
		return level
	}
	return slog.LevelInfo
}

// DefaultStorageKey is the record name used when nothing overrides it
const DefaultStorageKey = entities.DefaultStorageKey
