// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/olegiv/events-explorer/internal/model"
)

// AllLocations is the location value that disables location filtering.
const AllLocations = "all"

// FilterState is the user-controlled input of the filter engine.
type FilterState struct {
	Location string // AllLocations, "" or an exact location label
	Search   string // free text; empty matches everything
}

// IsZero reports whether the state applies no filtering at all.
func (s FilterState) IsZero() bool {
	return s.allLocations() && s.Search == ""
}

func (s FilterState) allLocations() bool {
	return s.Location == AllLocations || s.Location == ""
}

// Result is the ordered subsequence of events matching a FilterState.
type Result struct {
	Events []model.Event
	Count  int
}

// IsEmpty reports whether nothing matched.
func (r Result) IsEmpty() bool {
	return r.Count == 0
}

// Label returns the unit label for Count.
func (r Result) Label() string {
	if r.Count == 1 {
		return "event"
	}
	return "events"
}

// Summary returns the result count line, e.g. "3 events found".
func (r Result) Summary() string {
	return strconv.Itoa(r.Count) + " " + r.Label() + " found"
}

// Locations returns the distinct locations of events in ascending order.
func Locations(events []model.Event) []string {
	seen := make(map[string]struct{}, len(events))
	locations := make([]string, 0, len(events))
	for _, e := range events {
		if _, ok := seen[e.Location]; ok {
			continue
		}
		seen[e.Location] = struct{}{}
		locations = append(locations, e.Location)
	}
	slices.Sort(locations)
	return locations
}

// Filter returns the events matching both the location and the search
// predicate of state, in input order. The location match is exact and case
// sensitive; the search match is a case-insensitive substring test against
// title, description and location.
func Filter(events []model.Event, state FilterState) Result {
	var term string
	lower := cases.Lower(language.Und)
	if state.Search != "" {
		term = lower.String(state.Search)
	}

	matched := make([]model.Event, 0, len(events))
	for _, e := range events {
		if !state.allLocations() && e.Location != state.Location {
			continue
		}
		if term != "" && !matchesSearch(lower, e, term) {
			continue
		}
		matched = append(matched, e)
	}

	return Result{Events: matched, Count: len(matched)}
}

// matchesSearch lowercases without full case folding, so "ß" does not
// match "ss".
func matchesSearch(lower cases.Caser, e model.Event, term string) bool {
	for _, field := range [...]string{e.Title, e.Description, e.Location} {
		if strings.Contains(lower.String(field), term) {
			return true
		}
	}
	return false
}
