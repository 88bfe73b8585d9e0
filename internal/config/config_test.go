package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SETTLEUP_ADDR", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("SESSION_DIR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("METRICS_ENABLED", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "./data/settleup.db", cfg.DBPath)
	assert.Empty(t, cfg.SessionDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SETTLEUP_ADDR", "127.0.0.1:9000")
	t.Setenv("DB_PATH", "/tmp/x.db")
	t.Setenv("SESSION_DIR", "/tmp/sessions")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "/tmp/sessions", cfg.SessionDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoad_InvalidBool(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "maybe")

	_, err := Load()
	assert.ErrorContains(t, err, "METRICS_ENABLED")
}
