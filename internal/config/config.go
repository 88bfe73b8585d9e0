// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the server settings read by Load.
type Config struct {
	// Addr is the listen address of the RPC server.
	Addr string

	// DBPath is the SQLite database holding saved sessions.
	DBPath string

	// SessionDir, when non-empty, mirrors every session as a JSON file in this directory.
	SessionDir string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// MetricsEnabled exposes /metrics.
	MetricsEnabled bool
}

// Load reads .env if present (non-fatal if missing) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	metricsEnabled, err := getEnvBool("METRICS_ENABLED", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:           getEnvDefault("SETTLEUP_ADDR", ":8080"),
		DBPath:         getEnvDefault("DB_PATH", "./data/settleup.db"),
		SessionDir:     os.Getenv("SESSION_DIR"),
		LogLevel:       getEnvDefault("LOG_LEVEL", "info"),
		MetricsEnabled: metricsEnabled,
	}
	return cfg, nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, raw)
	}
	return v, nil
}
