// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the event list page.
	RouteRoot = "/"
	// RouteFilter receives the filter form.
	RouteFilter = "/events/filter"
	// RouteEvent is the event detail page.
	RouteEvent = "/events/{id}"
	// RouteEventCalendar is the per-event iCalendar download.
	RouteEventCalendar = RouteEvent + "/calendar.ics"
	// RouteCalendarFeed is the calendar of all dated events.
	RouteCalendarFeed = "/calendar.ics"
	// RouteSitemap is the sitemap.
	RouteSitemap = "/sitemap.xml"
	// RouteRobots is robots.txt.
	RouteRobots = "/robots.txt"
	// RouteStatic is the mount point of the embedded assets.
	RouteStatic = "/static/dist/*"

	// RouteHealth is the health summary.
	RouteHealth = "/health"
	// RouteHealthLive is the liveness probe.
	RouteHealthLive = "/health/live"
	// RouteHealthReady is the readiness probe.
	RouteHealthReady = "/health/ready"
	// RouteMetrics is the Prometheus scrape endpoint.
	RouteMetrics = "/metrics"

	// RouteParamID is the id URL parameter name.
	RouteParamID = "id"
)

// Cache keys of rendered responses.
const (
	cacheKeyHome         = "page:home"
	cacheKeyEventPrefix  = "page:event:"
	cacheKeyNotFound     = "page:404"
	cacheKeyICSPrefix    = "ics:"
	cacheKeyCalendarFeed = "ics:feed"
	cacheKeySitemap      = "seo:sitemap"
	cacheKeyRobots       = "seo:robots"
)

// Request markers.
const (
	// HeaderRequestedWith marks background requests from the page script.
	HeaderRequestedWith = "X-Requested-With"
	// RequestedWithFetch is the HeaderRequestedWith value sent by the script.
	RequestedWithFetch = "fetch"
	// HeaderContentType is the Content-Type HTTP header name.
	HeaderContentType = "Content-Type"

	// maxFilterFormBytes bounds the filter form body.
	maxFilterFormBytes = 16 << 10
)
