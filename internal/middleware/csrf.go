// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"crypto/rand"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	csrf "filippo.io/csrf/gorilla"
)

// CSRFConfig holds configuration for cross-origin request protection.
// filippo.io/csrf/gorilla checks Fetch metadata and Origin headers instead
// of cookies and tokens, so the filter form needs no hidden field.
type CSRFConfig struct {
	// AuthKey is a 32-byte key required by the gorilla-compatible API.
	AuthKey []byte

	// ErrorHandler is called when validation fails.
	ErrorHandler http.Handler

	// TrustedOrigins are host[:port] values allowed to POST cross-origin.
	TrustedOrigins []string
}

// DefaultCSRFConfig returns a CSRFConfig with a random key. The public site
// URL is always trusted; development adds the usual localhost origins.
func DefaultCSRFConfig(siteURL string, isDev bool) CSRFConfig {
	key := make([]byte, 32)
	_, _ = rand.Read(key)

	cfg := CSRFConfig{AuthKey: key}

	// csrf expects host-only values, not full URLs
	if u, err := url.Parse(siteURL); err == nil && u.Host != "" {
		cfg.TrustedOrigins = append(cfg.TrustedOrigins, u.Host)
	}
	if isDev {
		for _, host := range []string{"localhost:8080", "127.0.0.1:8080"} {
			if !slices.Contains(cfg.TrustedOrigins, host) {
				cfg.TrustedOrigins = append(cfg.TrustedOrigins, host)
			}
		}
	}

	return cfg
}

// CSRF returns a middleware that rejects cross-origin state-changing requests.
func CSRF(cfg CSRFConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	errorHandler := cfg.ErrorHandler
	if errorHandler == nil {
		errorHandler = csrfErrorHandler(logger)
	}

	opts := []csrf.Option{csrf.ErrorHandler(errorHandler)}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}

	return csrf.Protect(cfg.AuthKey, opts...)
}

func csrfErrorHandler(logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reason := "unknown"
		if err := csrf.FailureReason(r); err != nil {
			reason = err.Error()
		}
		logger.Warn("cross-origin request rejected",
			"reason", reason,
			"method", r.Method,
			"path", r.URL.Path,
			"origin", r.Header.Get("Origin"),
			"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
		)
		http.Error(w, "Forbidden - cross-origin request rejected", http.StatusForbidden)
	})
}
