// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/events-explorer/internal/cache"
	"github.com/olegiv/events-explorer/internal/catalog"
	"github.com/olegiv/events-explorer/internal/logging"
	"github.com/olegiv/events-explorer/internal/model"
)

// maxSearchLen bounds the q parameter in runes.
const maxSearchLen = 200

// EventResponse is an event with its site-relative links.
type EventResponse struct {
	model.Event
	URL         string `json:"url"`
	CalendarURL string `json:"calendarUrl,omitempty"`
}

func toEventResponse(e model.Event) EventResponse {
	resp := EventResponse{Event: e, URL: e.URL()}
	if e.HasDate() {
		resp.CalendarURL = e.CalendarURL()
	}
	return resp
}

// ListEvents handles GET /api/v1/events.
// Query parameters:
//   - q: case-insensitive search in title, description and location
//   - location: exact location, "all" or empty for every location
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	state := catalog.FilterState{
		Search:   query.Get("q"),
		Location: query.Get("location"),
	}

	if utf8.RuneCountInString(state.Search) > maxSearchLen {
		WriteBadRequest(w, "Invalid query parameter", map[string]string{
			"q": "must be at most 200 characters",
		})
		return
	}

	result := h.catalog.Filter(state)
	events := make([]EventResponse, 0, result.Count)
	for _, e := range result.Events {
		events = append(events, toEventResponse(e))
	}

	WriteSuccess(w, events, &Meta{Total: result.Count})
}

// GetEvent handles GET /api/v1/events/{id}.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	e, err := h.catalog.Find(id)
	if errors.Is(err, catalog.ErrNotFound) {
		WriteNotFound(w, "Event not found")
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "internal_error", "Failed to load event", nil)
		return
	}

	WriteSuccess(w, toEventResponse(e), nil)
}

// ListLocations handles GET /api/v1/locations.
func (h *Handler) ListLocations(w http.ResponseWriter, _ *http.Request) {
	locations := h.catalog.Locations()
	WriteSuccess(w, locations, &Meta{Total: len(locations)})
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status     string          `json:"status"`
	Version    string          `json:"version"`
	APIVersion string          `json:"api_version"`
	Uptime     string          `json:"uptime"`
	Events     int             `json:"events"`
	Locations  int             `json:"locations"`
	Cache      *cache.Stats    `json:"cache,omitempty"`
	Logs       *logging.Counts `json:"logs,omitempty"`
}

// Status handles GET /api/v1/status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	resp := StatusResponse{
		Status:     "ok",
		Version:    h.version.Version,
		APIVersion: Version,
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		Events:     h.catalog.Len(),
		Locations:  len(h.catalog.Locations()),
	}
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		stats := sp.Stats()
		resp.Cache = &stats
	}
	if h.logs != nil {
		counts := h.logs.Counts()
		resp.Logs = &counts
	}

	WriteSuccess(w, resp, nil)
}
