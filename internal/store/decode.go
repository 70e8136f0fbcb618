// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	ical "github.com/arran4/golang-ical"
	"gopkg.in/yaml.v3"

	"github.com/olegiv/events-explorer/internal/model"
)

func decodeJSON(data []byte) ([]model.Event, error) {
	var events []model.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	return nonNil(events), nil
}

func decodeYAML(data []byte) ([]model.Event, error) {
	var events []model.Event
	if err := yaml.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	return nonNil(events), nil
}

// decodeICS maps VEVENTs to events. The calendar is read in file order.
func decodeICS(data []byte) ([]model.Event, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	events := make([]model.Event, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		events = append(events, eventFromVEvent(ve))
	}
	return events, nil
}

func eventFromVEvent(ve *ical.VEvent) model.Event {
	e := model.Event{
		ID:       propValue(ve, ical.ComponentPropertyUniqueId),
		Title:    propValue(ve, ical.ComponentPropertySummary),
		Location: propValue(ve, ical.ComponentPropertyLocation),
		Category: firstCategory(propValue(ve, ical.ComponentPropertyCategories)),
	}

	description := propValue(ve, ical.ComponentPropertyDescription)
	e.FullDescription = description
	e.Description = firstParagraph(description)

	if org := ve.GetProperty(ical.ComponentPropertyOrganizer); org != nil {
		e.Organizer = organizerName(org)
	}

	// DTSTART without a time component (VALUE=DATE) is an all-day event.
	if dt := ve.GetProperty(ical.ComponentPropertyDtStart); dt != nil {
		if !strings.Contains(dt.Value, "T") {
			if start, err := ve.GetAllDayStartAt(); err == nil {
				e.Date = start.Format("2006-01-02")
			}
		} else if start, err := ve.GetStartAt(); err == nil {
			e.Date = start.Format("2006-01-02")
			e.Time = start.Format("3:04 PM")
			if end, err := ve.GetEndAt(); err == nil && end.After(start) {
				e.Time += " - " + end.Format("3:04 PM")
			}
		}
	}

	return e
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		// ParseCalendar has already undone TEXT escaping.
		return strings.TrimSpace(p.Value)
	}
	return ""
}

// organizerName prefers the CN parameter over the mailto address.
func organizerName(p *ical.IANAProperty) string {
	if cn, ok := p.ICalParameters["CN"]; ok && len(cn) > 0 && cn[0] != "" {
		return cn[0]
	}
	return strings.TrimPrefix(strings.TrimPrefix(p.Value, "mailto:"), "MAILTO:")
}

func firstCategory(categories string) string {
	first, _, _ := strings.Cut(categories, ",")
	return strings.TrimSpace(first)
}

func firstParagraph(s string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(s), "\n\n")
	return strings.TrimSpace(first)
}

func nonNil(events []model.Event) []model.Event {
	if events == nil {
		return []model.Event{}
	}
	return events
}
