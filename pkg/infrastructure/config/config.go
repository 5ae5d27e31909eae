// Package config reads settings from a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the binaries read at startup
type Config struct {
	DBPath          string
	SyncURL         string
	SyncKey         string
	SyncTimeout     time.Duration
	LogLevel        string
	LogFormat       string
	StrictMaterials bool

	SyncdPort      string
	RedisAddress   string
	Production     bool
	AllowedOrigins []string
}

// Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		DBPath:      "factoryops.db",
		SyncKey:     "default",
		SyncTimeout: 30 * time.Second,
		LogLevel:    "info",
		LogFormat:   "text",
		SyncdPort:   "8080",
	}
}

// Load reads the given .env files (".env" when none are named) and then
// the environment. Missing .env files are not an error; variables already
// set in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a config from environment variables over the defaults
func FromEnv() (*Config, error) {
	cfg := Default()

	cfg.DBPath = stringFromEnv("FACTORYOPS_DB_PATH", cfg.DBPath)
	cfg.SyncURL = stringFromEnv("FACTORYOPS_SYNC_URL", cfg.SyncURL)
	cfg.SyncKey = stringFromEnv("FACTORYOPS_SYNC_KEY", cfg.SyncKey)
	cfg.LogLevel = strings.ToLower(stringFromEnv("FACTORYOPS_LOG_LEVEL", cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(stringFromEnv("FACTORYOPS_LOG_FORMAT", cfg.LogFormat))
	cfg.SyncdPort = stringFromEnv("SYNCD_PORT", stringFromEnv("PORT", cfg.SyncdPort))
	cfg.RedisAddress = stringFromEnv("REDIS_ADDRESS", cfg.RedisAddress)
	cfg.Production = strings.EqualFold(stringFromEnv("GO_ENV", ""), "production")
	cfg.AllowedOrigins = splitAndTrim(os.Getenv("CORS_ALLOWED_ORIGINS"))

	if v := stringFromEnv("FACTORYOPS_SYNC_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FACTORYOPS_SYNC_TIMEOUT %q: %w", v, err)
		}
		cfg.SyncTimeout = d
	}
	if v := stringFromEnv("FACTORYOPS_STRICT_MATERIALS", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FACTORYOPS_STRICT_MATERIALS %q: %w", v, err)
		}
		cfg.StrictMaterials = b
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail later
func (c *Config) Validate() error {
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s (expected text or json)", c.LogFormat)
	}
	if c.SyncTimeout < 0 {
		return fmt.Errorf("sync timeout cannot be negative, got %s", c.SyncTimeout)
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	return nil
}

func stringFromEnv(key, def string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	return val
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
