// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		isDev    bool
		wantHSTS bool
	}{
		{"production mode enables HSTS", false, true},
		{"development mode disables HSTS", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := SecurityHeaders(DefaultSecurityHeadersConfig(tt.isDev))(okHandler)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			hsts := rec.Header().Get("Strict-Transport-Security")
			if tt.wantHSTS && hsts != "max-age=31536000; includeSubDomains" {
				t.Errorf("HSTS = %q", hsts)
			}
			if !tt.wantHSTS && hsts != "" {
				t.Errorf("expected no HSTS header but got: %s", hsts)
			}

			csp := rec.Header().Get("Content-Security-Policy")
			if !strings.HasPrefix(csp, "default-src 'self'; script-src 'self'") {
				t.Errorf("CSP = %q", csp)
			}
			if strings.Contains(csp, "unsafe-inline") || strings.Contains(csp, "https:") {
				t.Errorf("CSP allows more than self: %q", csp)
			}
			if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q", got)
			}
			if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
				t.Errorf("X-Frame-Options = %q", got)
			}
			if got := rec.Header().Get("Referrer-Policy"); got != "strict-origin-when-cross-origin" {
				t.Errorf("Referrer-Policy = %q", got)
			}
		})
	}
}

func TestBuildCSP_Order(t *testing.T) {
	got := buildCSP(map[string]string{
		"zeta":        "z",
		"img-src":     "'self'",
		"default-src": "'none'",
		"alpha":       "a",
	})
	want := "default-src 'none'; img-src 'self'; alpha a; zeta z"
	if got != want {
		t.Errorf("buildCSP = %q, want %q", got, want)
	}
}

func TestBuildPermissionsPolicy_Sorted(t *testing.T) {
	got := buildPermissionsPolicy(map[string]string{"usb": "()", "camera": "()"})
	if got != "camera=(), usb=()" {
		t.Errorf("buildPermissionsPolicy = %q", got)
	}
}

func TestStripTrailingSlash(t *testing.T) {
	tests := []struct {
		method       string
		target       string
		wantStatus   int
		wantLocation string
	}{
		{http.MethodGet, "/", http.StatusOK, ""},
		{http.MethodGet, "/events/1", http.StatusOK, ""},
		{http.MethodGet, "/events/1/", http.StatusMovedPermanently, "/events/1"},
		{http.MethodGet, "/events/1///", http.StatusMovedPermanently, "/events/1"},
		{http.MethodHead, "/api/v1/events/?q=go", http.StatusMovedPermanently, "/api/v1/events?q=go"},
		{http.MethodGet, "//evil.example/", http.StatusMovedPermanently, "/evil.example"},
		{http.MethodPost, "/events/filter/", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			StripTrailingSlash(okHandler).ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got, tt.wantLocation)
			}
		})
	}
}

func TestCacheControl(t *testing.T) {
	tests := []struct {
		name    string
		handler http.Handler
		want    string
	}{
		{"static", StaticCache(31536000)(okHandler), "public, max-age=31536000"},
		{"page", PageCache(300)(okHandler), "public, max-age=300, must-revalidate"},
		{"no store", NoStore(okHandler), "no-store"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if got := rec.Header().Get("Cache-Control"); got != tt.want {
				t.Errorf("Cache-Control = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimeout_Completes(t *testing.T) {
	handler := Timeout(time.Second, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Test", "1")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("done"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if rec.Body.String() != "done" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if rec.Header().Get("X-Test") != "1" {
		t.Error("handler header not copied")
	}
}

func TestTimeout_Expires(t *testing.T) {
	release := make(chan struct{})
	handler := Timeout(20*time.Millisecond, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		w.Header().Set("X-Late", "1")
		_, err := w.Write([]byte("late"))
		if err != http.ErrHandlerTimeout {
			t.Errorf("late write error = %v, want ErrHandlerTimeout", err)
		}
		close(release)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	<-release

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if rec.Body.String() != "Request timeout" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if rec.Header().Get("X-Late") != "" {
		t.Error("header set after timeout leaked into response")
	}
}

func TestTimeout_EmptyHandler(t *testing.T) {
	handler := Timeout(time.Second, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
