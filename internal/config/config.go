// Package config loads server configuration from defaults, an optional YAML
// file, an optional .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config holds all server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Session   SessionConfig   `yaml:"session"`
	Split     SplitConfig     `yaml:"split"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	StaticPath      string        `yaml:"static_path"` // empty disables static file serving
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"` // memory, sqlite
	DSN    string `yaml:"dsn"`    // sqlite only; defaults to an in-memory database
}

type SessionConfig struct {
	// Secret signs session tokens. Empty means a random secret per process.
	Secret        string        `yaml:"secret"`
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type SplitConfig struct {
	MaxParticipants int `yaml:"max_participants"`
}

type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute"` // 0 disables rate limiting
	Burst     int `yaml:"burst"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Driver: DriverMemory,
			DSN:    ":memory:",
		},
		Session: SessionConfig{
			TTL:           24 * time.Hour,
			SweepInterval: 5 * time.Minute,
		},
		Split: SplitConfig{
			MaxParticipants: 20,
		},
		RateLimit: RateLimitConfig{
			PerMinute: 120,
			Burst:     30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from a YAML file. A missing file or an empty path
// yields the defaults. Environment variables, including those from a .env
// file in the working directory, override the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if _, err := os.Stat(".env"); err == nil {
		// Existing environment variables win over .env entries.
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("STATIC_PATH"); v != "" {
		c.Server.StaticPath = v
	}

	if v := os.Getenv("STORE_DRIVER"); v != "" {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Storage.DSN = v
	}

	if v := os.Getenv("SESSION_SECRET"); v != "" {
		c.Session.Secret = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL %q: %w", v, err)
		}
		c.Session.TTL = ttl
	}

	if v := os.Getenv("MAX_PARTICIPANTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_PARTICIPANTS %q: %w", v, err)
		}
		c.Split.MaxParticipants = n
	}

	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE %q: %w", v, err)
		}
		c.RateLimit.PerMinute = n
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", v, err)
		}
		c.RateLimit.Burst = n
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = strings.ToLower(v)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage.driver %q (want memory or sqlite)", c.Storage.Driver)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL)
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("session.sweep_interval must be positive, got %s", c.Session.SweepInterval)
	}
	if c.Split.MaxParticipants < 1 {
		return fmt.Errorf("split.max_participants must be at least 1, got %d", c.Split.MaxParticipants)
	}
	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("rate_limit.per_minute must not be negative, got %d", c.RateLimit.PerMinute)
	}
	if c.RateLimit.PerMinute > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate_limit.burst must be at least 1, got %d", c.RateLimit.Burst)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown logging.format %q (want text or json)", c.Logging.Format)
	}
	return nil
}
