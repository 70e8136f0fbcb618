// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store loads the read-only event data set from a local file or from
// the data set embedded in the binary.
package store

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/olegiv/events-explorer/internal/model"
)

//go:embed data/events.json
var defaultData embed.FS

// DefaultDataFile is the name of the embedded data set.
const DefaultDataFile = "data/events.json"

var (
	// ErrUnsupportedFormat is returned for data files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported data format")

	// ErrDuplicateID is returned when two records share an id.
	ErrDuplicateID = errors.New("duplicate event id")
)

// Format identifies a data file encoding.
type Format string

// Supported data formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatICS  Format = "ics"
)

// FormatFromPath infers the data format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".ics", ".ical":
		return FormatICS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Source describes where the event data comes from.
type Source struct {
	Path   string // empty selects the embedded data set
	Logger *slog.Logger
}

// Load reads, decodes and validates the data set. When Path is empty the
// embedded data set is used.
func Load(src Source) ([]model.Event, error) {
	logger := src.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		data   []byte
		format Format
		name   string
		err    error
	)
	if src.Path == "" {
		name = "embedded:" + DefaultDataFile
		format = FormatJSON
		data, err = defaultData.ReadFile(DefaultDataFile)
	} else {
		name = src.Path
		if format, err = FormatFromPath(src.Path); err != nil {
			return nil, err
		}
		data, err = os.ReadFile(src.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading event data %s: %w", name, err)
	}

	events, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decoding event data %s: %w", name, err)
	}

	if err := Validate(events); err != nil {
		return nil, fmt.Errorf("validating event data %s: %w", name, err)
	}

	for _, e := range events {
		if !e.HasDate() {
			logger.Warn("event has no usable date", "id", e.ID, "date", e.Date)
		}
	}

	logger.Info("event data loaded", "source", name, "format", string(format), "events", len(events))
	return events, nil
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) ([]model.Event, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	case FormatICS:
		return decodeICS(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
