package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "STATIC_PATH", "STORE_DRIVER", "DB_PATH", "SESSION_SECRET",
		"SESSION_TTL", "MAX_PARTICIPANTS", "RATE_LIMIT_PER_MINUTE",
		"RATE_LIMIT_BURST", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, ":memory:", cfg.Storage.DSN)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 20, cfg.Split.MaxParticipants)
	assert.Equal(t, 120, cfg.RateLimit.PerMinute)
	assert.Equal(t, 30, cfg.RateLimit.Burst)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	path := writeFile(t, dir, "config.yaml", `
server:
  port: 9090
storage:
  driver: sqlite
  dsn: ./data/sessions.db
session:
  ttl: 2h
split:
  max_participants: 8
logging:
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "./data/sessions.db", cfg.Storage.DSN)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 8, cfg.Split.MaxParticipants)
	assert.Equal(t, "json", cfg.Logging.Format)
	// Untouched keys keep their defaults.
	assert.Equal(t, 120, cfg.RateLimit.PerMinute)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	path := writeFile(t, dir, "config.yaml", "server:\n  port: 9090\nsplit:\n  max_participants: 8\n")
	t.Setenv("PORT", "7070")
	t.Setenv("MAX_PARTICIPANTS", "4")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("STORE_DRIVER", "SQLite")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Split.MaxParticipants)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	writeFile(t, dir, ".env", "RATE_LIMIT_BURST=5\n")
	// godotenv only fills variables that are unset; t.Setenv restores it afterwards.
	t.Setenv("RATE_LIMIT_BURST", "")
	require.NoError(t, os.Unsetenv("RATE_LIMIT_BURST"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
}

func TestLoad_InvalidEnv(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PORT", "eighty"},
		{"SESSION_TTL", "forever"},
		{"MAX_PARTICIPANTS", "many"},
		{"RATE_LIMIT_PER_MINUTE", "fast"},
		{"RATE_LIMIT_BURST", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			assert.ErrorContains(t, err, tt.key)
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	path := writeFile(t, dir, "config.yaml", "server: [port\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "redis" }, "storage.driver"},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }, "session.ttl"},
		{"zero sweep", func(c *Config) { c.Session.SweepInterval = 0 }, "session.sweep_interval"},
		{"no participants", func(c *Config) { c.Split.MaxParticipants = 0 }, "split.max_participants"},
		{"negative rate", func(c *Config) { c.RateLimit.PerMinute = -1 }, "rate_limit.per_minute"},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }, "rate_limit.burst"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}

	t.Run("rate limiting disabled ignores burst", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RateLimit.PerMinute = 0
		cfg.RateLimit.Burst = 0
		assert.NoError(t, cfg.Validate())
	})
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
