package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	PrimaryPath     string
	SecondaryPath   string
	LogLevel        string
	LogFile         string
	WatchDebounceMS int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the tool still runs when .env is absent.
	_ = godotenv.Load()

	return Config{
		PrimaryPath:     envOr("SYNC_PRIMARY_PATH", defaultPrimaryPath()),
		SecondaryPath:   envOr("SYNC_SECONDARY_PATH", "/etc/sync/profiles"),
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		LogFile:         envOr("LOG_FILE", ""),
		WatchDebounceMS: envIntOr("WATCH_DEBOUNCE_MS", 250),
	}
}

// Validate checks the configuration for values that would break the store.
func (c Config) Validate() error {
	var problems []string

	if c.PrimaryPath == "" {
		problems = append(problems, "SYNC_PRIMARY_PATH cannot be empty")
	}
	if c.SecondaryPath == "" {
		problems = append(problems, "SYNC_SECONDARY_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL is invalid: %q", c.LogLevel))
	}
	if c.WatchDebounceMS < 0 {
		problems = append(problems, "WATCH_DEBOUNCE_MS cannot be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func defaultPrimaryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sync/profiles"
	}
	return filepath.Join(home, ".sync", "profiles")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
