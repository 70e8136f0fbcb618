// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
)

// StaticCache adds long-lived Cache-Control headers for static assets.
func StaticCache(maxAge int) func(http.Handler) http.Handler {
	return cacheControl("public, max-age=" + strconv.Itoa(maxAge))
}

// PageCache marks responses as cacheable by browsers and shared caches for
// maxAge seconds. Used for pages derived only from the immutable data set.
func PageCache(maxAge int) func(http.Handler) http.Handler {
	return cacheControl("public, max-age=" + strconv.Itoa(maxAge) + ", must-revalidate")
}

// NoStore disables caching, for responses that depend on request input.
func NoStore(next http.Handler) http.Handler {
	return cacheControl("no-store")(next)
}

func cacheControl(value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}
