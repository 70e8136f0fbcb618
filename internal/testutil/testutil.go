// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the events explorer.
package testutil

import (
	"io"
	"log/slog"
	"os"

	"github.com/olegiv/events-explorer/internal/catalog"
	"github.com/olegiv/events-explorer/internal/model"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SampleEvents returns a small data set covering two locations, every known
// category and one event without a date.
func SampleEvents() []model.Event {
	return []model.Event{
		{
			ID:              "1",
			Title:           "AI Summit",
			Date:            "2024-01-15",
			Location:        "Austin",
			Description:     "Talks on applied machine learning.",
			FullDescription: "Talks on applied **machine learning**.\n\nLunch included.",
			Time:            "9:00 AM - 5:00 PM",
			Venue:           "Convention Center",
			Price:           "$99",
			Organizer:       "Tech Austin",
			Category:        model.CategoryTechnology,
		},
		{
			ID:              "2",
			Title:           "Design Jam",
			Date:            "2024-02-03",
			Location:        "Austin",
			Description:     "A day of rapid prototyping.",
			FullDescription: "A day of rapid prototyping with designers and developers.",
			Time:            "10:00 AM - 4:00 PM",
			Venue:           "Studio 5",
			Price:           "Free",
			Organizer:       "Design Collective",
			Category:        model.CategoryDesign,
		},
		{
			ID:              "3",
			Title:           "Biz Forum",
			Date:            "2024-03-20",
			Location:        "Dallas",
			Description:     "Leaders discuss growth strategy.",
			FullDescription: "Leaders discuss growth strategy and hiring.",
			Time:            "8:30 AM - 1:00 PM",
			Venue:           "Hilton Downtown",
			Price:           "$150",
			Organizer:       "Dallas Business Council",
			Category:        model.CategoryBusiness,
		},
		{
			ID:          "4",
			Title:       "Open Studio",
			Location:    "Dallas",
			Description: "Date to be announced.",
			Category:    "Community",
		},
	}
}

// NewCatalog builds a catalog from SampleEvents.
func NewCatalog() *catalog.Catalog {
	return catalog.New(SampleEvents())
}
