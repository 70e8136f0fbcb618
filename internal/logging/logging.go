// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging builds the application's slog logger and the HTTP request
// logging middleware.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel converts a level name to a slog.Level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a logger writing to w. Format "json" selects the JSON handler;
// anything else uses the text handler. The returned CountingHandler is the
// logger's handler, exposed for status reporting.
func New(w io.Writer, level slog.Level, format string) (*slog.Logger, *CountingHandler) {
	opts := &slog.HandlerOptions{Level: level}

	var inner slog.Handler
	if format == "json" {
		inner = slog.NewJSONHandler(w, opts)
	} else {
		inner = slog.NewTextHandler(w, opts)
	}

	counting := NewCountingHandler(inner)
	return slog.New(counting), counting
}
