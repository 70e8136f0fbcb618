// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/events-explorer/internal/cache"
	"github.com/olegiv/events-explorer/internal/testutil"
	"github.com/olegiv/events-explorer/internal/version"
)

type listResponse struct {
	Data []EventResponse `json:"data"`
	Meta *Meta           `json:"meta"`
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })
	return NewHandler(testutil.NewCatalog(), c, nil, version.Info{Version: "v0.9.0"})
}

func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestListEvents(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"all events", "", []string{"1", "2", "3", "4"}},
		{"all sentinel", "?location=all", []string{"1", "2", "3", "4"}},
		{"by location", "?location=Dallas", []string{"3", "4"}},
		{"location is exact", "?location=dallas", []string{}},
		{"search folds case", "?q=AI", []string{"1"}},
		{"search matches location", "?q=aus", []string{"1", "2"}},
		{"both filters", "?q=forum&location=Dallas", []string{"3"}},
		{"no match", "?q=zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ListEvents(w, httptest.NewRequest(http.MethodGet, "/api/v1/events"+tt.query, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp listResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Meta)
			assert.Equal(t, len(tt.wantIDs), resp.Meta.Total)

			ids := make([]string, 0, len(resp.Data))
			for _, e := range resp.Data {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestListEvents_EmptyIsArray(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ListEvents(w, httptest.NewRequest(http.MethodGet, "/api/v1/events?q=zzz", nil))

	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestListEvents_SearchTooLong(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ListEvents(w, httptest.NewRequest(http.MethodGet, "/api/v1/events?q="+strings.Repeat("a", 201), nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bad_request", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "q")
}

func TestGetEvent(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.GetEvent(w, withID(httptest.NewRequest(http.MethodGet, "/api/v1/events/1", nil), "1"))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1", resp.Data["id"])
	assert.Equal(t, "AI Summit", resp.Data["title"])
	assert.Equal(t, "Talks on applied **machine learning**.\n\nLunch included.", resp.Data["fullDescription"])
	assert.Equal(t, "/events/1", resp.Data["url"])
	assert.Equal(t, "/events/1/calendar.ics", resp.Data["calendarUrl"])
}

func TestGetEvent_Undated(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.GetEvent(w, withID(httptest.NewRequest(http.MethodGet, "/api/v1/events/4", nil), "4"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "calendarUrl")
}

func TestGetEvent_NotFound(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.GetEvent(w, withID(httptest.NewRequest(http.MethodGet, "/api/v1/events/999", nil), "999"))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp.Error.Code)
	assert.Equal(t, "Event not found", resp.Error.Message)
}

func TestListLocations(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ListLocations(w, httptest.NewRequest(http.MethodGet, "/api/v1/locations", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []string `json:"data"`
		Meta Meta     `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Austin", "Dallas"}, resp.Data)
	assert.Equal(t, 2, resp.Meta.Total)
}

func TestStatus(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.Status(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data StatusResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Data.Status)
	assert.Equal(t, "v0.9.0", resp.Data.Version)
	assert.Equal(t, Version, resp.Data.APIVersion)
	assert.Equal(t, 4, resp.Data.Events)
	assert.Equal(t, 2, resp.Data.Locations)
	require.NotNil(t, resp.Data.Cache)
	assert.Equal(t, "memory", resp.Data.Cache.Backend)
	assert.Nil(t, resp.Data.Logs)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"not_found"`)

	w = httptest.NewRecorder()
	MethodNotAllowed(w, httptest.NewRequest(http.MethodDelete, "/api/v1/events", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"method_not_allowed"`)
}
