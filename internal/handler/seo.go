// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/events-explorer/internal/cache"
)

// SEOHandler serves sitemap.xml and robots.txt.
type SEOHandler struct {
	pages       *PageBuilder
	cache       cache.Cacher
	ttl         time.Duration
	disallowAll bool
	logger      *slog.Logger
}

// NewSEOHandler creates a new SEOHandler. disallowAll makes robots.txt
// block every crawler.
func NewSEOHandler(pages *PageBuilder, c cache.Cacher, ttl time.Duration, disallowAll bool, logger *slog.Logger) *SEOHandler {
	return &SEOHandler{
		pages:       pages,
		cache:       c,
		ttl:         ttl,
		disallowAll: disallowAll,
		logger:      logger,
	}
}

// Sitemap handles GET /sitemap.xml.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	data, err := cache.Fetch(r.Context(), h.cache, cacheKeySitemap, h.ttl, h.pages.Sitemap)
	if err != nil {
		h.logger.Error("failed to generate sitemap", "error", err)
		http.Error(w, "Error generating sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set(HeaderContentType, "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	data, _ := cache.Fetch(r.Context(), h.cache, cacheKeyRobots, h.ttl, func() ([]byte, error) {
		return h.pages.Robots(h.disallowAll), nil
	})

	w.Header().Set(HeaderContentType, "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}
