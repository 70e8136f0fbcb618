// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"

	"github.com/olegiv/events-explorer/internal/catalog"
	"github.com/olegiv/events-explorer/internal/ics"
	"github.com/olegiv/events-explorer/internal/model"
	"github.com/olegiv/events-explorer/internal/render"
	"github.com/olegiv/events-explorer/internal/seo"
)

// Page template names.
const (
	PageHome     = "home"
	PageEvent    = "event"
	PageNotFound = "404"

	partialResults = "event_results"
)

// HomeView is the data of the list page and of the results fragment.
type HomeView struct {
	Result       catalog.Result
	Locations    []string
	State        catalog.FilterState
	AllLocations string

	// Static marks output without a filter endpoint behind it; the page
	// then filters its own cards in the browser.
	Static bool
}

// EventView is the data of the detail page.
type EventView struct {
	Event model.Event
}

// PageBuilder renders every public document of the site to bytes. The HTTP
// handlers and the static exporter share it so both produce identical output.
type PageBuilder struct {
	catalog   *catalog.Catalog
	renderer  *render.Renderer
	site      seo.SiteConfig
	calendars *ics.Exporter
}

// NewPageBuilder creates a PageBuilder.
func NewPageBuilder(c *catalog.Catalog, r *render.Renderer, site seo.SiteConfig) *PageBuilder {
	return &PageBuilder{
		catalog:   c,
		renderer:  r,
		site:      site,
		calendars: ics.NewExporter(site),
	}
}

// Catalog returns the catalog the builder renders.
func (b *PageBuilder) Catalog() *catalog.Catalog {
	return b.catalog
}

// HomeView runs one filter session for the given input. A zero state shows
// every event.
func (b *PageBuilder) HomeView(search, location string) HomeView {
	vs := catalog.NewViewState(b.catalog)
	vs.SetLocation(location)
	vs.SetSearch(search)

	return HomeView{
		Result:       vs.Result(),
		Locations:    vs.Locations(),
		State:        vs.State(),
		AllLocations: catalog.AllLocations,
	}
}

// HomePage renders the full list page for view.
func (b *PageBuilder) HomePage(view HomeView) ([]byte, error) {
	return b.renderer.Page(PageHome, render.TemplateData{
		Meta:   seo.HomeMeta(b.site),
		JSONLD: seo.BuildWebSiteSchema(b.site),
		Data:   view,
	})
}

// ResultsFragment renders only the result count and the card grid.
func (b *PageBuilder) ResultsFragment(view HomeView) ([]byte, error) {
	return b.renderer.Partial(PageHome, partialResults, view)
}

// EventPage renders the detail page of id. Unknown ids return
// catalog.ErrNotFound.
func (b *PageBuilder) EventPage(id string) ([]byte, error) {
	e, err := b.catalog.Find(id)
	if err != nil {
		return nil, err
	}

	return b.renderer.Page(PageEvent, render.TemplateData{
		Meta:   seo.EventMeta(e, b.site),
		JSONLD: seo.BuildEventSchema(e, b.site),
		Data:   EventView{Event: e},
	})
}

// NotFoundPage renders the generic 404 page.
func (b *PageBuilder) NotFoundPage() ([]byte, error) {
	return b.renderer.Page(PageNotFound, render.TemplateData{
		Meta: seo.NotFoundMeta(b.site),
	})
}

// Calendar renders the iCalendar file of id together with its download
// name. Unknown ids return catalog.ErrNotFound; undated events return
// ics.ErrNoDate.
func (b *PageBuilder) Calendar(id string) ([]byte, string, error) {
	e, err := b.catalog.Find(id)
	if err != nil {
		return nil, "", err
	}

	data, err := b.calendars.Event(e)
	if err != nil {
		return nil, "", fmt.Errorf("event %s: %w", id, err)
	}
	return data, ics.FileName(e), nil
}

// CalendarFeed renders all dated events as one calendar.
func (b *PageBuilder) CalendarFeed() []byte {
	return b.calendars.Feed(b.catalog.Events())
}

// Sitemap renders sitemap.xml.
func (b *PageBuilder) Sitemap() ([]byte, error) {
	return seo.GenerateSitemap(b.site.SiteURL, b.catalog.Events())
}

// Robots renders robots.txt. disallowAll blocks every crawler, which
// non-production deployments use.
func (b *PageBuilder) Robots(disallowAll bool) []byte {
	return []byte(seo.GenerateRobots(b.site.SiteURL, disallowAll))
}
