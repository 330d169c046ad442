// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	APIBaseURL    string `env:"FC_API_BASE_URL" envDefault:"http://localhost:5000/api"`
	SessionSecret string `env:"FC_SESSION_SECRET,required"`
	SessionDBPath string `env:"FC_SESSION_DB_PATH" envDefault:"./data/sessions.db"`
	ServerHost    string `env:"FC_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"FC_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"FC_ENV" envDefault:"development"`
	LogLevel      string `env:"FC_LOG_LEVEL" envDefault:"info"`

	// Upstream API client tuning
	APITimeout int `env:"FC_API_TIMEOUT" envDefault:"30"` // Request timeout in seconds

	// Cache configuration
	RedisURL     string `env:"FC_REDIS_URL"`                       // Optional Redis URL for distributed caching
	CachePrefix  string `env:"FC_CACHE_PREFIX" envDefault:"fc:"`   // Redis key prefix
	CacheTTL     int    `env:"FC_CACHE_TTL" envDefault:"300"`      // Default cache TTL in seconds
	CacheMaxSize int    `env:"FC_CACHE_MAX_SIZE" envDefault:"1000"` // Max memory cache entries

	// Content cache warming
	WarmSchedule string `env:"FC_CACHE_WARM_SCHEDULE" envDefault:"@every 10m"` // Cron expression for cache warming
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	parsed, err := url.Parse(cfg.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("FC_API_BASE_URL must be an absolute URL, got %q", cfg.APIBaseURL)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("FC_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("FC_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("FC_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
