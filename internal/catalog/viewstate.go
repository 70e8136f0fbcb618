// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

// ViewState is the transient filter state of one rendering session. Each
// change recomputes the visible result synchronously. A ViewState is owned
// by a single request and is not safe for concurrent use.
type ViewState struct {
	catalog *Catalog
	state   FilterState
	result  Result
}

// NewViewState starts a session with no filter applied.
func NewViewState(c *Catalog) *ViewState {
	v := &ViewState{
		catalog: c,
		state:   FilterState{Location: AllLocations},
	}
	v.recompute()
	return v
}

// SetSearch updates the search text.
func (v *ViewState) SetSearch(term string) {
	v.state.Search = term
	v.recompute()
}

// SetLocation updates the selected location. An empty value selects
// AllLocations.
func (v *ViewState) SetLocation(location string) {
	if location == "" {
		location = AllLocations
	}
	v.state.Location = location
	v.recompute()
}

// State returns the current filter input.
func (v *ViewState) State() FilterState {
	return v.state
}

// Result returns the events visible for the current state.
func (v *ViewState) Result() Result {
	return v.result
}

// Locations returns the options for the location selector.
func (v *ViewState) Locations() []string {
	return v.catalog.Locations()
}

func (v *ViewState) recompute() {
	v.result = v.catalog.Filter(v.state)
}
