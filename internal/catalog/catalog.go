// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog holds the loaded event data set and answers the read
// questions the site asks of it: which locations exist, which events match a
// filter, and which event has a given id.
package catalog

import (
	"errors"
	"slices"

	"github.com/olegiv/events-explorer/internal/model"
)

// ErrNotFound is returned by Find when no event has the requested id.
var ErrNotFound = errors.New("event not found")

// Catalog is an immutable, ordered set of events. It is safe for concurrent
// use because nothing mutates it after New returns.
type Catalog struct {
	events    []model.Event
	locations []string
}

// New creates a catalog from events. The slice is copied, so later changes
// by the caller are not observed.
func New(events []model.Event) *Catalog {
	owned := slices.Clone(events)
	if owned == nil {
		owned = []model.Event{}
	}
	return &Catalog{
		events:    owned,
		locations: Locations(owned),
	}
}

// Len returns the number of events.
func (c *Catalog) Len() int {
	return len(c.events)
}

// Events returns a copy of all events in source order.
func (c *Catalog) Events() []model.Event {
	return slices.Clone(c.events)
}

// Locations returns the sorted distinct locations, for filter options.
func (c *Catalog) Locations() []string {
	return slices.Clone(c.locations)
}

// IDs returns every event id in source order. Static exports produce one
// output unit per id.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.events))
	for i, e := range c.events {
		ids[i] = e.ID
	}
	return ids
}

// Find returns the first event whose id equals id, or ErrNotFound.
func (c *Catalog) Find(id string) (model.Event, error) {
	for _, e := range c.events {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Event{}, ErrNotFound
}

// Filter applies state to the whole catalog.
func (c *Catalog) Filter(state FilterState) Result {
	return Filter(c.events, state)
}
