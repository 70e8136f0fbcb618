// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/events-explorer/internal/cache"
	"github.com/olegiv/events-explorer/internal/render"
	"github.com/olegiv/events-explorer/internal/seo"
	"github.com/olegiv/events-explorer/internal/testutil"
	"github.com/olegiv/events-explorer/web"
)

var testSite = seo.SiteConfig{SiteName: "Events Explorer", SiteURL: "https://events.example.com"}

// testPageBuilder returns a PageBuilder over the sample events and the
// embedded templates.
func testPageBuilder(t *testing.T) *PageBuilder {
	t.Helper()

	r, err := render.New(render.Config{TemplatesFS: web.TemplateFiles(), SiteName: testSite.SiteName})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return NewPageBuilder(testutil.NewCatalog(), r, testSite)
}

// testCache returns a memory cache closed at test end.
func testCache(t *testing.T) *cache.MemoryCache {
	t.Helper()
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func newTestFrontendHandler(t *testing.T) (*FrontendHandler, *cache.MemoryCache) {
	t.Helper()
	c := testCache(t)
	return NewFrontendHandler(testPageBuilder(t), c, time.Minute, testutil.DiscardLogger()), c
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// assertStatus checks the HTTP status code.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}
