// Package config loads the server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the runtime configuration.
type Config struct {
	Port         int
	DBPath       string
	JWTSecret    string
	TokenTTL     time.Duration
	Organization string
	LogLevel     slog.Level
}

// Load parses configuration values from the current process environment.
// Optional values fall back to defaults; JWT_SECRET is required. Every
// missing or invalid key is reported in a single error.
func Load() (Config, error) {
	cfg := Config{
		Port:         8080,
		DBPath:       "./data/council.db",
		TokenTTL:     24 * time.Hour,
		Organization: "SIT Council",
		LogLevel:     slog.LevelInfo,
	}

	var missing, invalid []string

	if value := env("PORT"); value != "" {
		port, err := strconv.Atoi(value)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, "PORT")
		} else {
			cfg.Port = port
		}
	}

	if value := env("DB_PATH"); value != "" {
		cfg.DBPath = value
	}

	if value := env("JWT_SECRET"); value == "" {
		missing = append(missing, "JWT_SECRET")
	} else {
		cfg.JWTSecret = value
	}

	if value := env("TOKEN_TTL"); value != "" {
		ttl, err := time.ParseDuration(value)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "TOKEN_TTL")
		} else {
			cfg.TokenTTL = ttl
		}
	}

	if value := env("ORG_NAME"); value != "" {
		cfg.Organization = value
	}

	if value := env("LOG_LEVEL"); value != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(value)); err != nil {
			invalid = append(invalid, "LOG_LEVEL")
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
