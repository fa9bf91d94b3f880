package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":3333", cfg.Addr)
	assert.Equal(t, ":9999", cfg.DiagAddr)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQuery)
	assert.False(t, cfg.Debug)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GAMEREVIEWS_ADDR", ":8080")
	t.Setenv("GAMEREVIEWS_DB_DRIVER", DriverSQLite)
	t.Setenv("GAMEREVIEWS_DATABASE_URL", "file:reviews.db")
	t.Setenv("GAMEREVIEWS_DEBUG", "true")
	t.Setenv("GAMEREVIEWS_SLOW_QUERY", "1s")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "file:reviews.db", cfg.DatabaseURL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, time.Second, cfg.SlowQuery)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("GAMEREVIEWS_DEBUG", "sometimes")
	t.Setenv("GAMEREVIEWS_SLOW_QUERY", "fast")

	cfg := Load()

	assert.False(t, cfg.Debug)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQuery)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }},
		{"empty url", func(c *Config) { c.DatabaseURL = "" }},
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"zero shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
