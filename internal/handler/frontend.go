// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/events-explorer/internal/cache"
	"github.com/olegiv/events-explorer/internal/catalog"
	"github.com/olegiv/events-explorer/internal/ics"
	"github.com/olegiv/events-explorer/internal/render"
)

// FrontendHandler serves the public HTML pages and calendar downloads.
type FrontendHandler struct {
	pages  *PageBuilder
	cache  cache.Cacher
	ttl    time.Duration
	logger *slog.Logger
}

// NewFrontendHandler creates a new FrontendHandler. Rendered pages that do
// not depend on request input are cached for ttl.
func NewFrontendHandler(pages *PageBuilder, c cache.Cacher, ttl time.Duration, logger *slog.Logger) *FrontendHandler {
	return &FrontendHandler{
		pages:  pages,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// Home handles GET / and shows every event.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	html, err := h.homePage(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.WriteHTML(w, http.StatusOK, html)
}

// homePage returns the cached unfiltered list page.
func (h *FrontendHandler) homePage(r *http.Request) ([]byte, error) {
	return cache.Fetch(r.Context(), h.cache, cacheKeyHome, h.ttl, func() ([]byte, error) {
		return h.pages.HomePage(h.pages.HomeView("", catalog.AllLocations))
	})
}

// Filter handles POST /events/filter. The page script gets the results
// fragment; a plain form submission gets the whole page.
func (h *FrontendHandler) Filter(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFilterFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	view := h.pages.HomeView(r.PostForm.Get("q"), r.PostForm.Get("location"))
	w.Header().Add("Vary", HeaderRequestedWith)

	var (
		html []byte
		err  error
	)
	switch {
	case isFetchRequest(r):
		html, err = h.pages.ResultsFragment(view)
	case view.State.IsZero():
		// Same document as GET /
		html, err = h.homePage(r)
	default:
		html, err = h.pages.HomePage(view)
	}
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.logger.Debug("filter applied",
		"location", view.State.Location,
		"search_len", len(view.State.Search),
		"count", view.Result.Count,
	)
	render.WriteHTML(w, http.StatusOK, html)
}

// Event handles GET /events/{id}.
func (h *FrontendHandler) Event(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, RouteParamID)

	html, err := cache.Fetch(r.Context(), h.cache, cacheKeyEventPrefix+id, h.ttl, func() ([]byte, error) {
		return h.pages.EventPage(id)
	})
	if errors.Is(err, catalog.ErrNotFound) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.WriteHTML(w, http.StatusOK, html)
}

// Calendar handles GET /events/{id}/calendar.ics. Undated events have no
// calendar entry and answer 404.
func (h *FrontendHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, RouteParamID)

	e, err := h.pages.Catalog().Find(id)
	if err != nil || !e.HasDate() {
		h.NotFound(w, r)
		return
	}

	data, err := cache.Fetch(r.Context(), h.cache, cacheKeyICSPrefix+id, h.ttl, func() ([]byte, error) {
		data, _, err := h.pages.Calendar(id)
		return data, err
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+ics.FileName(e)+`"`)
	writeCalendar(w, data)
}

// CalendarFeed handles GET /calendar.ics.
func (h *FrontendHandler) CalendarFeed(w http.ResponseWriter, r *http.Request) {
	data, err := cache.Fetch(r.Context(), h.cache, cacheKeyCalendarFeed, h.ttl, func() ([]byte, error) {
		return h.pages.CalendarFeed(), nil
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	writeCalendar(w, data)
}

// NotFound renders the 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	html, err := cache.Fetch(r.Context(), h.cache, cacheKeyNotFound, h.ttl, h.pages.NotFoundPage)
	if err != nil {
		h.logger.Error("failed to render 404 page", "error", err, "path", r.URL.Path)
		http.NotFound(w, r)
		return
	}
	render.WriteHTML(w, http.StatusNotFound, html)
}

// renderError logs err and sends a plain 500. Templates render into buffers,
// so nothing has been written yet.
func (h *FrontendHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("failed to render page", "error", err, "path", r.URL.Path)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func isFetchRequest(r *http.Request) bool {
	return r.Header.Get(HeaderRequestedWith) == RequestedWithFetch
}

func writeCalendar(w http.ResponseWriter, data []byte) {
	w.Header().Set(HeaderContentType, ics.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
