// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// CountingHandler is a slog.Handler that wraps another handler and keeps a
// running count of WARN and ERROR records. The status API reports the counts
// so data problems found at load time stay visible after startup.
type CountingHandler struct {
	inner  slog.Handler
	counts *levelCounts
}

type levelCounts struct {
	warn  atomic.Int64
	error atomic.Int64
}

// Counts is a snapshot of the number of records logged per level.
type Counts struct {
	Warnings int64 `json:"warnings"`
	Errors   int64 `json:"errors"`
}

// NewCountingHandler creates a CountingHandler that wraps the given handler.
func NewCountingHandler(inner slog.Handler) *CountingHandler {
	return &CountingHandler{
		inner:  inner,
		counts: &levelCounts{},
	}
}

// Enabled implements slog.Handler.
func (h *CountingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *CountingHandler) Handle(ctx context.Context, r slog.Record) error {
	switch {
	case r.Level >= slog.LevelError:
		h.counts.error.Add(1)
	case r.Level >= slog.LevelWarn:
		h.counts.warn.Add(1)
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler. Derived handlers share the counters.
func (h *CountingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CountingHandler{
		inner:  h.inner.WithAttrs(attrs),
		counts: h.counts,
	}
}

// WithGroup implements slog.Handler. Derived handlers share the counters.
func (h *CountingHandler) WithGroup(name string) slog.Handler {
	return &CountingHandler{
		inner:  h.inner.WithGroup(name),
		counts: h.counts,
	}
}

// Counts returns the current counters.
func (h *CountingHandler) Counts() Counts {
	return Counts{
		Warnings: h.counts.warn.Load(),
		Errors:   h.counts.error.Load(),
	}
}
