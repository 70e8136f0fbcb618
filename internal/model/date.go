// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// DatePlaceholder is rendered in place of a missing or unparseable date.
const DatePlaceholder = "Date TBA"

// Date layouts used for display.
const (
	ShortDateLayout = "Mon, Jan 2, 2006"
	LongDateLayout  = "Monday, January 2, 2006"
	isoDateLayout   = "2006-01-02"
)

// ParseDate parses an event date. Plain calendar dates (2006-01-02) and full
// RFC 3339 timestamps are accepted; for timestamps only the calendar date in
// the timestamp's own offset is kept.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(isoDateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// FormatShortDate renders a date for list cards, e.g. "Mon, Jan 15, 2024".
func FormatShortDate(s string) string {
	return formatDate(s, ShortDateLayout)
}

// FormatLongDate renders a date for the detail page, e.g. "Monday, January 15, 2024".
func FormatLongDate(s string) string {
	return formatDate(s, LongDateLayout)
}

// DateAttr returns the machine-readable value for a <time datetime> attribute,
// or "" when the date cannot be parsed.
func DateAttr(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return t.Format(isoDateLayout)
}

func formatDate(s, layout string) string {
	t, ok := ParseDate(s)
	if !ok {
		return DatePlaceholder
	}
	return t.Format(layout)
}
