// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the event record shared by the loaders, the catalog
// and the presentation layer.
package model

// Event is a single catalog entry. All fields are presentational strings;
// only ID, Title and Location carry validation rules. Date is an ISO-8601
// calendar date and Location is a free-text label compared verbatim.
type Event struct {
	ID              string `json:"id" yaml:"id" validate:"required,urlsegment"`
	Title           string `json:"title" yaml:"title" validate:"required"`
	Date            string `json:"date" yaml:"date"`
	Location        string `json:"location" yaml:"location" validate:"required"`
	Description     string `json:"description" yaml:"description"`
	FullDescription string `json:"fullDescription" yaml:"fullDescription"`
	Time            string `json:"time" yaml:"time"`
	Venue           string `json:"venue" yaml:"venue"`
	Price           string `json:"price" yaml:"price"`
	Organizer       string `json:"organizer" yaml:"organizer"`
	Category        string `json:"category" yaml:"category"`
}

// URL returns the site-relative path of the event detail page.
func (e Event) URL() string {
	return "/events/" + e.ID
}

// CalendarURL returns the site-relative path of the event's iCalendar file.
func (e Event) CalendarURL() string {
	return "/events/" + e.ID + "/calendar.ics"
}

// HasDate reports whether the event date can be parsed.
func (e Event) HasDate() bool {
	_, ok := ParseDate(e.Date)
	return ok
}

// CategoryClass returns the badge style tokens for the event category.
func (e Event) CategoryClass() string {
	return CategoryStyle(e.Category)
}
