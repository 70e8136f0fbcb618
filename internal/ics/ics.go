// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ics renders events as iCalendar documents for "Add to Calendar"
// downloads and the calendar feed.
package ics

import (
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/olegiv/events-explorer/internal/model"
	"github.com/olegiv/events-explorer/internal/seo"
	"github.com/olegiv/events-explorer/internal/util"
)

// ContentType is the media type of rendered calendars.
const ContentType = "text/calendar; charset=utf-8"

// ErrNoDate is returned for events whose date cannot be parsed. A VEVENT
// without DTSTART is invalid, so such events have no calendar entry.
var ErrNoDate = errors.New("event has no usable date")

// Exporter builds calendars for one site.
type Exporter struct {
	site seo.SiteConfig
	now  func() time.Time
}

// NewExporter creates an Exporter. Event URLs and UIDs derive from
// site.SiteURL, so the same event always gets the same UID.
func NewExporter(site seo.SiteConfig) *Exporter {
	return &Exporter{site: site, now: time.Now}
}

// UID returns the stable identifier of an event: a name-based UUID of its
// absolute detail URL.
func (x *Exporter) UID(e model.Event) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(x.eventURL(e))).String()
}

// FileName returns the download name of an event's calendar file.
func FileName(e model.Event) string {
	return util.DownloadName(e.Title, e.ID, "ics")
}

// Event renders a calendar holding a single all-day VEVENT.
func (x *Exporter) Event(e model.Event) ([]byte, error) {
	if !e.HasDate() {
		return nil, ErrNoDate
	}

	cal := x.newCalendar()
	x.addEvent(cal, e)
	return []byte(cal.Serialize()), nil
}

// Feed renders every dated event into one calendar. Undated events are
// skipped.
func (x *Exporter) Feed(events []model.Event) []byte {
	cal := x.newCalendar()
	cal.SetXWRCalName(x.site.SiteName)
	for _, e := range events {
		if e.HasDate() {
			x.addEvent(cal, e)
		}
	}
	return []byte(cal.Serialize())
}

func (x *Exporter) newCalendar() *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//" + x.site.SiteName + "//Events Explorer//EN")
	return cal
}

func (x *Exporter) addEvent(cal *ical.Calendar, e model.Event) {
	start, _ := model.ParseDate(e.Date)

	ve := cal.AddEvent(x.UID(e))
	ve.SetDtStampTime(x.now().UTC())
	ve.SetAllDayStartAt(start)
	ve.SetAllDayEndAt(start.AddDate(0, 0, 1))
	ve.SetSummary(e.Title)
	ve.SetLocation(e.Location)
	ve.SetURL(x.eventURL(e))
	if e.Category != "" {
		ve.SetProperty(ical.ComponentPropertyCategories, e.Category)
	}
	if text := description(e); text != "" {
		ve.SetDescription(text)
	}
	if strings.Contains(e.Organizer, "@") {
		ve.SetOrganizer("mailto:" + e.Organizer)
	}
}

func (x *Exporter) eventURL(e model.Event) string {
	return strings.TrimSuffix(x.site.SiteURL, "/") + e.URL()
}

// description joins the long description with the presentational fields
// that have no dedicated iCalendar property.
func description(e model.Event) string {
	text := e.FullDescription
	if text == "" {
		text = e.Description
	}

	var details []string
	if e.Time != "" {
		details = append(details, "Time: "+e.Time)
	}
	if e.Venue != "" {
		details = append(details, "Venue: "+e.Venue)
	}
	if e.Price != "" {
		details = append(details, "Price: "+e.Price)
	}
	if e.Organizer != "" {
		details = append(details, "Organized by: "+e.Organizer)
	}

	if len(details) == 0 {
		return text
	}
	if text == "" {
		return strings.Join(details, "\n")
	}
	return text + "\n\n" + strings.Join(details, "\n")
}
