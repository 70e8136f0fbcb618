// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo provides SEO utilities for building meta tags, structured data,
// sitemaps and robots.txt.
package seo

import (
	"encoding/json"
	"html/template"
	"strings"

	"github.com/olegiv/events-explorer/internal/model"
)

// Homepage copy.
const (
	HomeTagline     = "Discover Amazing Events Near You"
	HomeDescription = "Explore and discover amazing events in your area. From tech conferences to creative workshops, find the perfect event for you."
	HomeKeywords    = "events, conferences, workshops, networking, tech events, business events"

	NotFoundTitle       = "Page Not Found"
	NotFoundDescription = "The page you are looking for could not be found."
)

// Meta holds all SEO meta tag data for a page.
type Meta struct {
	Title         string // Page title (for <title> tag)
	Description   string // Meta description
	Keywords      string // Meta keywords
	Canonical     string // Canonical URL
	OGTitle       string // Open Graph title
	OGDescription string // Open Graph description
	OGType        string // Open Graph type (website, article)
	OGSiteName    string // Open Graph site name
	OGURL         string // Open Graph URL
	Robots        string // Robots directive (index,follow / noindex,nofollow)
	TwitterCard   string // Twitter card type
}

// SiteConfig contains site-wide settings for SEO.
type SiteConfig struct {
	SiteName string
	SiteURL  string // absolute, without trailing slash
}

// HomeMeta builds the meta tags of the event list page.
func HomeMeta(site SiteConfig) *Meta {
	return &Meta{
		Title:         site.SiteName + " - " + HomeTagline,
		Description:   HomeDescription,
		Keywords:      HomeKeywords,
		Canonical:     site.SiteURL + "/",
		OGTitle:       site.SiteName + " - " + HomeTagline,
		OGDescription: HomeDescription,
		OGType:        "website",
		OGSiteName:    site.SiteName,
		OGURL:         site.SiteURL + "/",
		Robots:        "index,follow",
		TwitterCard:   "summary",
	}
}

// EventMeta builds the meta tags of an event detail page. The description
// is the full description, falling back to the summary.
func EventMeta(e model.Event, site SiteConfig) *Meta {
	description := e.FullDescription
	if description == "" {
		description = e.Description
	}

	canonical := makeAbsoluteURL(e.URL(), site.SiteURL)
	return &Meta{
		Title:         e.Title + " - " + site.SiteName,
		Description:   description,
		Keywords:      eventKeywords(e),
		Canonical:     canonical,
		OGTitle:       e.Title,
		OGDescription: description,
		OGType:        "article",
		OGSiteName:    site.SiteName,
		OGURL:         canonical,
		Robots:        "index,follow",
		TwitterCard:   "summary",
	}
}

// NotFoundMeta builds the meta tags of the 404 page.
func NotFoundMeta(site SiteConfig) *Meta {
	return &Meta{
		Title:         NotFoundTitle + " - " + site.SiteName,
		Description:   NotFoundDescription,
		OGTitle:       NotFoundTitle,
		OGDescription: NotFoundDescription,
		OGType:        "website",
		OGSiteName:    site.SiteName,
		Robots:        "noindex,follow",
		TwitterCard:   "summary",
	}
}

// eventKeywords joins category, location, "events" and title, skipping
// empty parts.
func eventKeywords(e model.Event) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{e.Category, e.Location, "events", e.Title} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// EventSchema represents JSON-LD Event structured data.
type EventSchema struct {
	Context             string       `json:"@context"`
	Type                string       `json:"@type"`
	Name                string       `json:"name"`
	Description         string       `json:"description,omitempty"`
	StartDate           string       `json:"startDate,omitempty"`
	EventStatus         string       `json:"eventStatus"`
	EventAttendanceMode string       `json:"eventAttendanceMode"`
	Location            *PlaceSchema `json:"location,omitempty"`
	Organizer           *OrgSchema   `json:"organizer,omitempty"`
	Offers              *OfferSchema `json:"offers,omitempty"`
	URL                 string       `json:"url"`
	Keywords            string       `json:"keywords,omitempty"`
}

// PlaceSchema represents JSON-LD Place structured data.
type PlaceSchema struct {
	Type    string `json:"@type"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// OrgSchema represents JSON-LD Organization structured data.
type OrgSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// OfferSchema represents JSON-LD Offer structured data. Price is kept as
// the display string from the data set.
type OfferSchema struct {
	Type  string `json:"@type"`
	Price string `json:"price"`
	URL   string `json:"url"`
}

// WebSiteSchema represents JSON-LD WebSite structured data for the homepage.
type WebSiteSchema struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// BuildEventSchema creates JSON-LD Event structured data for an event.
func BuildEventSchema(e model.Event, site SiteConfig) template.JS {
	url := makeAbsoluteURL(e.URL(), site.SiteURL)
	schema := EventSchema{
		Context:             "https://schema.org",
		Type:                "Event",
		Name:                e.Title,
		Description:         truncateText(e.Description, 300),
		StartDate:           model.DateAttr(e.Date),
		EventStatus:         "https://schema.org/EventScheduled",
		EventAttendanceMode: "https://schema.org/OfflineEventAttendanceMode",
		URL:                 url,
		Keywords:            e.Category,
	}

	if e.Venue != "" || e.Location != "" {
		name := e.Venue
		if name == "" {
			name = e.Location
		}
		schema.Location = &PlaceSchema{Type: "Place", Name: name, Address: e.Location}
	}
	if e.Organizer != "" {
		schema.Organizer = &OrgSchema{Type: "Organization", Name: e.Organizer}
	}
	if e.Price != "" {
		schema.Offers = &OfferSchema{Type: "Offer", Price: e.Price, URL: url}
	}

	return marshalJSONLD(schema)
}

// BuildWebSiteSchema creates JSON-LD WebSite structured data.
func BuildWebSiteSchema(site SiteConfig) template.JS {
	return marshalJSONLD(WebSiteSchema{
		Context:     "https://schema.org",
		Type:        "WebSite",
		Name:        site.SiteName,
		URL:         site.SiteURL + "/",
		Description: HomeDescription,
	})
}

// marshalJSONLD marshals structured data to JSON-LD script tag content.
// encoding/json escapes <, > and & so the result cannot close the script tag.
func marshalJSONLD(v any) template.JS {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return template.JS(data)
}

// truncateText truncates text to maxLen bytes at a word boundary.
func truncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if len(text) <= maxLen {
		return text
	}

	truncated := strings.ToValidUTF8(text[:maxLen], "")
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > maxLen/2 {
		truncated = truncated[:lastSpace]
	}

	return strings.TrimSpace(truncated) + "..."
}

// makeAbsoluteURL ensures a URL is absolute by prepending site URL if needed.
func makeAbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	siteURL = strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}
