// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/events-explorer/internal/model"
)

var testSite = SiteConfig{SiteName: "Events Explorer", SiteURL: "https://events.example.com"}

func testEvent() model.Event {
	return model.Event{
		ID:              "1",
		Title:           "AI Summit",
		Date:            "2024-01-15",
		Location:        "Austin",
		Description:     "Talks on applied machine learning.",
		FullDescription: "Talks on applied machine learning. Lunch included.",
		Venue:           "Convention Center",
		Price:           "$99",
		Organizer:       "Tech Austin",
		Category:        "Technology",
	}
}

func TestHomeMeta(t *testing.T) {
	meta := HomeMeta(testSite)

	assert.Equal(t, "Events Explorer - Discover Amazing Events Near You", meta.Title)
	assert.Equal(t, HomeDescription, meta.Description)
	assert.Equal(t, "events, conferences, workshops, networking, tech events, business events", meta.Keywords)
	assert.Equal(t, "website", meta.OGType)
	assert.Equal(t, "https://events.example.com/", meta.Canonical)
	assert.Equal(t, meta.Canonical, meta.OGURL)
	assert.Equal(t, "index,follow", meta.Robots)
}

func TestEventMeta(t *testing.T) {
	meta := EventMeta(testEvent(), testSite)

	assert.Equal(t, "AI Summit - Events Explorer", meta.Title)
	assert.Equal(t, "Talks on applied machine learning. Lunch included.", meta.Description)
	assert.Equal(t, "Technology, Austin, events, AI Summit", meta.Keywords)
	assert.Equal(t, "AI Summit", meta.OGTitle)
	assert.Equal(t, meta.Description, meta.OGDescription)
	assert.Equal(t, "article", meta.OGType)
	assert.Equal(t, "https://events.example.com/events/1", meta.Canonical)
	assert.Equal(t, meta.Canonical, meta.OGURL)
}

func TestEventMeta_Fallbacks(t *testing.T) {
	e := model.Event{ID: "x", Title: "Minimal", Location: "Dallas", Description: "Short"}
	meta := EventMeta(e, testSite)

	assert.Equal(t, "Short", meta.Description)
	assert.Equal(t, "Dallas, events, Minimal", meta.Keywords)
}

func TestNotFoundMeta(t *testing.T) {
	meta := NotFoundMeta(testSite)

	assert.Equal(t, "Page Not Found - Events Explorer", meta.Title)
	assert.Equal(t, "The page you are looking for could not be found.", meta.Description)
	assert.Equal(t, "noindex,follow", meta.Robots)
	assert.Empty(t, meta.Canonical)
}

func TestBuildEventSchema(t *testing.T) {
	raw := BuildEventSchema(testEvent(), testSite)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &schema))

	assert.Equal(t, "https://schema.org", schema["@context"])
	assert.Equal(t, "Event", schema["@type"])
	assert.Equal(t, "AI Summit", schema["name"])
	assert.Equal(t, "2024-01-15", schema["startDate"])
	assert.Equal(t, "https://events.example.com/events/1", schema["url"])

	location := schema["location"].(map[string]any)
	assert.Equal(t, "Convention Center", location["name"])
	assert.Equal(t, "Austin", location["address"])

	assert.Equal(t, "Tech Austin", schema["organizer"].(map[string]any)["name"])
	assert.Equal(t, "$99", schema["offers"].(map[string]any)["price"])
}

func TestBuildEventSchema_NoDateNoOptionalParts(t *testing.T) {
	raw := BuildEventSchema(model.Event{ID: "2", Title: "TBA", Location: "Austin", Date: "soon"}, testSite)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &schema))

	assert.NotContains(t, schema, "startDate")
	assert.NotContains(t, schema, "organizer")
	assert.NotContains(t, schema, "offers")
	assert.Equal(t, "Austin", schema["location"].(map[string]any)["name"])
}

func TestBuildEventSchema_EscapesScriptClose(t *testing.T) {
	e := testEvent()
	e.Title = "</script><script>alert(1)</script>"

	raw := string(BuildEventSchema(e, testSite))
	assert.NotContains(t, raw, "</script>")
}

func TestBuildWebSiteSchema(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(BuildWebSiteSchema(testSite)), &schema))

	assert.Equal(t, "WebSite", schema["@type"])
	assert.Equal(t, "https://events.example.com/", schema["url"])
}

func TestSitemap(t *testing.T) {
	events := []model.Event{{ID: "1"}, {ID: "go-meetup"}}

	data, err := GenerateSitemap(testSite.SiteURL, events)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), xml.Header))

	var sitemap Sitemap
	require.NoError(t, xml.Unmarshal(data, &sitemap))
	require.Len(t, sitemap.URLs, 3)

	assert.Equal(t, "https://events.example.com/", sitemap.URLs[0].Loc)
	assert.Equal(t, "1.0", sitemap.URLs[0].Priority)
	assert.Equal(t, ChangeFreqDaily, sitemap.URLs[0].ChangeFreq)
	assert.Equal(t, "https://events.example.com/events/1", sitemap.URLs[1].Loc)
	assert.Equal(t, "https://events.example.com/events/go-meetup", sitemap.URLs[2].Loc)
	assert.Equal(t, ChangeFreqWeekly, sitemap.URLs[2].ChangeFreq)
}

func TestSitemap_Empty(t *testing.T) {
	data, err := NewSitemapBuilder(testSite.SiteURL).Build()
	require.NoError(t, err)
	assert.Contains(t, string(data), `<urlset xmlns="`+XMLNamespace+`"></urlset>`)
}

func TestRobots(t *testing.T) {
	got := GenerateRobots("https://events.example.com/", false)

	assert.True(t, strings.HasPrefix(got, "User-agent: *\n"))
	assert.Contains(t, got, "Disallow: /api/\n")
	assert.Contains(t, got, "Disallow: /events/filter\n")
	assert.Contains(t, got, "Disallow: /metrics\n")
	assert.Contains(t, got, "Allow: /\n")
	assert.Contains(t, got, "Sitemap: https://events.example.com/sitemap.xml\n")
}

func TestRobots_DisallowAll(t *testing.T) {
	got := GenerateRobots("https://events.example.com", true)

	assert.Equal(t, "User-agent: *\nDisallow: /\n", got)
}

func TestRobots_ExtraPaths(t *testing.T) {
	got := NewRobotsBuilder(RobotsConfig{DisallowPaths: []string{"/drafts"}}).Build()

	assert.Contains(t, got, "Disallow: /drafts\n")
	assert.NotContains(t, got, "Sitemap:")
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"one two three four", 12, "one two..."},
		{"abcdefghij", 5, "abcde..."},
		{"héllo wörld", 2, "h..."},
	}

	for _, tt := range tests {
		if got := truncateText(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateText(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestMakeAbsoluteURL(t *testing.T) {
	tests := []struct {
		url, site, want string
	}{
		{"", "https://a.example", ""},
		{"/events/1", "https://a.example", "https://a.example/events/1"},
		{"events/1", "https://a.example/", "https://a.example/events/1"},
		{"https://b.example/x", "https://a.example", "https://b.example/x"},
	}

	for _, tt := range tests {
		if got := makeAbsoluteURL(tt.url, tt.site); got != tt.want {
			t.Errorf("makeAbsoluteURL(%q, %q) = %q, want %q", tt.url, tt.site, got, tt.want)
		}
	}
}
