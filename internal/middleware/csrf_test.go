// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDefaultCSRFConfig(t *testing.T) {
	tests := []struct {
		name    string
		siteURL string
		isDev   bool
		want    []string
	}{
		{"production", "https://events.example.com", false, []string{"events.example.com"}},
		{"development", "http://localhost:8080", true, []string{"localhost:8080", "127.0.0.1:8080"}},
		{"invalid url", "::", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCSRFConfig(tt.siteURL, tt.isDev)
			if len(cfg.AuthKey) != 32 {
				t.Errorf("expected 32-byte AuthKey, got %d bytes", len(cfg.AuthKey))
			}
			if len(cfg.TrustedOrigins) != len(tt.want) {
				t.Fatalf("TrustedOrigins = %v, want %v", cfg.TrustedOrigins, tt.want)
			}
			for i, origin := range cfg.TrustedOrigins {
				if origin != tt.want[i] {
					t.Errorf("TrustedOrigins[%d] = %q, want %q", i, origin, tt.want[i])
				}
				// csrf expects host:port values, not full URLs
				if strings.Contains(origin, "://") {
					t.Errorf("TrustedOrigin %q should be host[:port], not a URL", origin)
				}
			}
		})
	}
}

func TestCSRF_CrossOriginPostRejected(t *testing.T) {
	handler := CSRF(DefaultCSRFConfig("https://events.example.com", false), discardLogger())(okHandler)

	tests := []struct {
		name       string
		method     string
		fetchSite  string
		wantStatus int
	}{
		{"same-origin post", http.MethodPost, "same-origin", http.StatusOK},
		{"cross-site post", http.MethodPost, "cross-site", http.StatusForbidden},
		{"cross-site get", http.MethodGet, "cross-site", http.StatusOK},
		{"post without fetch metadata", http.MethodPost, "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "https://events.example.com/events/filter", nil)
			if tt.fetchSite != "" {
				req.Header.Set("Sec-Fetch-Site", tt.fetchSite)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestCSRF_CustomErrorHandler(t *testing.T) {
	cfg := DefaultCSRFConfig("https://events.example.com", false)
	called := false
	cfg.ErrorHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodPost, "https://events.example.com/events/filter", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rec := httptest.NewRecorder()
	CSRF(cfg, discardLogger())(okHandler).ServeHTTP(rec, req)

	if !called || rec.Code != http.StatusTeapot {
		t.Errorf("custom handler called=%v status=%d", called, rec.Code)
	}
}
