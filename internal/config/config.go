// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ServerHost string `env:"EVX_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"EVX_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"EVX_ENV" envDefault:"development"`
	LogLevel   string `env:"EVX_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"EVX_LOG_FORMAT" envDefault:"text"`

	// Event data
	DataPath string `env:"EVX_DATA_PATH"` // Empty selects the embedded data set

	// Site identity used in titles, canonical links, sitemap and ICS UIDs
	SiteName string `env:"EVX_SITE_NAME" envDefault:"Events Explorer"`
	SiteURL  string `env:"EVX_SITE_URL" envDefault:"http://localhost:8080"`

	// Cache configuration
	RedisURL     string `env:"EVX_REDIS_URL"`                        // Optional Redis URL for distributed caching
	CachePrefix  string `env:"EVX_CACHE_PREFIX" envDefault:"evx:"`   // Redis key prefix
	CacheTTL     int    `env:"EVX_CACHE_TTL" envDefault:"3600"`      // Default cache TTL in seconds
	CacheMaxSize int    `env:"EVX_CACHE_MAX_SIZE" envDefault:"1000"` // Max memory cache entries

	// Rate limiting of public routes
	RateLimit float64 `env:"EVX_RATE_LIMIT" envDefault:"10"` // Requests per second per client IP
	RateBurst int     `env:"EVX_RATE_BURST" envDefault:"20"`
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

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("EVX_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if !slices.Contains(validLogLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("EVX_LOG_LEVEL must be one of %s, got %q",
			strings.Join(validLogLevels, ", "), cfg.LogLevel)
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if !slices.Contains(validLogFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("EVX_LOG_FORMAT must be one of %s, got %q",
			strings.Join(validLogFormats, ", "), cfg.LogFormat)
	}

	siteURL, err := normalizeSiteURL(cfg.SiteURL)
	if err != nil {
		return nil, err
	}
	cfg.SiteURL = siteURL

	if cfg.RateLimit <= 0 || cfg.RateBurst < 1 {
		return nil, fmt.Errorf("EVX_RATE_LIMIT and EVX_RATE_BURST must be positive")
	}

	return cfg, nil
}

// normalizeSiteURL requires an absolute http(s) URL and strips the trailing slash.
func normalizeSiteURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("EVX_SITE_URL is not a valid URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("EVX_SITE_URL must be an absolute http(s) URL, got %q", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}
