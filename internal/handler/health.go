// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/olegiv/events-explorer/internal/cache"
	"github.com/olegiv/events-explorer/internal/catalog"
	"github.com/olegiv/events-explorer/internal/logging"
	"github.com/olegiv/events-explorer/internal/version"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"

	cachePingTimeout = 2 * time.Second
)

// pinger is implemented by caches with a remote backend.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	catalog   *catalog.Catalog
	cache     cache.Cacher
	logs      *logging.CountingHandler
	version   version.Info
	startTime time.Time
}

// NewHealthHandler creates a new health handler. logs may be nil.
func NewHealthHandler(c *catalog.Catalog, cc cache.Cacher, logs *logging.CountingHandler, info version.Info) *HealthHandler {
	return &HealthHandler{
		catalog:   c,
		cache:     cc,
		logs:      logs,
		version:   info.WithDefaults(),
		startTime: time.Now(),
	}
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Logs      *logging.Counts  `json:"logs,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health handles GET /health. ?verbose=true adds runtime information.
// A failing cache only degrades the service since pages can still be
// rendered without it.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	catalogCheck := h.checkCatalog()
	cacheCheck := h.checkCache(r.Context())

	overallStatus := statusHealthy
	code := http.StatusOK
	switch {
	case catalogCheck.Status != statusHealthy:
		overallStatus = statusUnhealthy
		code = http.StatusServiceUnavailable
	case cacheCheck.Status != statusHealthy:
		overallStatus = statusDegraded
	}

	status := HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version.Version,
		Checks: map[string]Check{
			"catalog": catalogCheck,
			"cache":   cacheCheck,
		},
	}
	if h.logs != nil {
		counts := h.logs.Counts()
		status.Logs = &counts
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = systemInfo()
	}

	writeJSON(w, code, status)
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "alive",
	})
}

// Readiness handles GET /health/ready. The service is ready once the
// catalog is loaded.
func (h *HealthHandler) Readiness(w http.ResponseWriter, _ *http.Request) {
	check := h.checkCatalog()
	if check.Status != statusHealthy {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": check.Message,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

func (h *HealthHandler) checkCatalog() Check {
	if h.catalog == nil {
		return Check{Status: statusUnhealthy, Message: "Catalog not loaded"}
	}
	return Check{Status: statusHealthy, Message: strconv.Itoa(h.catalog.Len()) + " events loaded"}
}

// checkCache reports the cache backend and pings remote backends.
func (h *HealthHandler) checkCache(ctx context.Context) Check {
	if h.cache == nil {
		return Check{Status: statusHealthy, Message: "Disabled"}
	}

	backend := "unknown"
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		backend = sp.Stats().Backend
	}

	p, ok := h.cache.(pinger)
	if !ok {
		return Check{Status: statusHealthy, Message: backend}
	}

	ctx, cancel := context.WithTimeout(ctx, cachePingTimeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{
			Status:  statusDegraded,
			Message: backend + ": " + err.Error(),
			Latency: latency.String(),
		}
	}
	return Check{Status: statusHealthy, Message: backend, Latency: latency.String()}
}

// systemInfo returns system-level metrics.
func systemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set(HeaderContentType, "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}
