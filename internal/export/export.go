// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package export pre-generates the whole site as static files: one detail
// page and one calendar per event id, plus the list page, the 404 page,
// sitemap, robots.txt and the embedded assets.
package export

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/olegiv/events-explorer/internal/catalog"
	"github.com/olegiv/events-explorer/internal/handler"
	"github.com/olegiv/events-explorer/internal/ics"
	"github.com/olegiv/events-explorer/internal/util"
)

// Writer receives exported files. Names are slash-separated and relative
// to the export root.
type Writer interface {
	WriteFile(name string, data []byte) error
}

// Result summarizes an export.
type Result struct {
	Files     int      `json:"files"`
	Events    int      `json:"events"`
	Calendars int      `json:"calendars"`
	Undated   []string `json:"undated,omitempty"` // ids exported without a calendar
}

// Exporter writes the static site.
type Exporter struct {
	pages       *handler.PageBuilder
	static      fs.FS
	disallowAll bool
	logger      *slog.Logger
}

// NewExporter creates a new Exporter. static is copied verbatim into the
// output; it may be nil.
func NewExporter(pages *handler.PageBuilder, static fs.FS, disallowAll bool, logger *slog.Logger) *Exporter {
	return &Exporter{
		pages:       pages,
		static:      static,
		disallowAll: disallowAll,
		logger:      logger,
	}
}

// Export renders every document and hands it to w.
func (e *Exporter) Export(ctx context.Context, w Writer) (*Result, error) {
	res := &Result{}
	write := func(name string, data []byte) error {
		if err := w.WriteFile(name, data); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		res.Files++
		return nil
	}

	view := e.pages.HomeView("", catalog.AllLocations)
	view.Static = true
	home, err := e.pages.HomePage(view)
	if err != nil {
		return nil, fmt.Errorf("rendering list page: %w", err)
	}
	if err := write("index.html", home); err != nil {
		return nil, err
	}

	notFound, err := e.pages.NotFoundPage()
	if err != nil {
		return nil, fmt.Errorf("rendering 404 page: %w", err)
	}
	if err := write("404.html", notFound); err != nil {
		return nil, err
	}

	for _, id := range e.pages.Catalog().IDs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.exportEvent(id, res, write); err != nil {
			return nil, err
		}
	}

	if err := write("calendar.ics", e.pages.CalendarFeed()); err != nil {
		return nil, err
	}

	sitemap, err := e.pages.Sitemap()
	if err != nil {
		return nil, fmt.Errorf("generating sitemap: %w", err)
	}
	if err := write("sitemap.xml", sitemap); err != nil {
		return nil, err
	}
	if err := write("robots.txt", e.pages.Robots(e.disallowAll)); err != nil {
		return nil, err
	}

	if err := e.exportStatic(write); err != nil {
		return nil, err
	}

	e.logger.Info("static export complete",
		"files", res.Files,
		"events", res.Events,
		"calendars", res.Calendars,
		"undated", len(res.Undated),
	)
	return res, nil
}

func (e *Exporter) exportEvent(id string, res *Result, write func(string, []byte) error) error {
	page, err := e.pages.EventPage(id)
	if err != nil {
		return fmt.Errorf("rendering event %s: %w", id, err)
	}
	if err := write(path.Join("events", id, "index.html"), page); err != nil {
		return err
	}
	res.Events++

	cal, _, err := e.pages.Calendar(id)
	if errors.Is(err, ics.ErrNoDate) {
		e.logger.Warn("event has no usable date, calendar skipped", "id", id)
		res.Undated = append(res.Undated, id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("rendering calendar %s: %w", id, err)
	}
	if err := write(path.Join("events", id, "calendar.ics"), cal); err != nil {
		return err
	}
	res.Calendars++
	return nil
}

func (e *Exporter) exportStatic(write func(string, []byte) error) error {
	if e.static == nil {
		return nil
	}
	return fs.WalkDir(e.static, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(e.static, name)
		if err != nil {
			return fmt.Errorf("reading asset %s: %w", name, err)
		}
		return write(name, data)
	})
}

// ExportToDir writes the site below dir, creating directories as needed.
func (e *Exporter) ExportToDir(ctx context.Context, dir string) (*Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return e.Export(ctx, DirWriter{Root: dir})
}

// ExportToZip writes the site as a zip archive to w.
func (e *Exporter) ExportToZip(ctx context.Context, w io.Writer) (*Result, error) {
	zw := zip.NewWriter(w)
	res, err := e.Export(ctx, ZipWriter{zw: zw})
	if err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	return res, nil
}

// ExportToZipFile writes the site as a zip archive file. A failed export
// removes the partial file.
func (e *Exporter) ExportToZipFile(ctx context.Context, filename string) (*Result, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	res, err := e.ExportToZip(ctx, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing archive: %w", closeErr)
	}
	if err != nil {
		if rmErr := os.Remove(filename); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			e.logger.Warn("removing partial archive", "file", filename, "error", rmErr)
		}
		return nil, err
	}
	return res, nil
}

// ExportTo picks the output format from target: a path ending in .zip gets
// an archive, anything else a directory tree.
func (e *Exporter) ExportTo(ctx context.Context, target string) (*Result, error) {
	if strings.EqualFold(filepath.Ext(target), ".zip") {
		return e.ExportToZipFile(ctx, target)
	}
	return e.ExportToDir(ctx, target)
}

// DirWriter writes files below Root.
type DirWriter struct {
	Root string
}

// WriteFile implements Writer. Names that would escape Root are rejected.
func (d DirWriter) WriteFile(name string, data []byte) error {
	target, err := util.SafeJoinPath(d.Root, filepath.FromSlash(name))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

// ZipWriter adds files to a zip archive.
type ZipWriter struct {
	zw *zip.Writer
}

// WriteFile implements Writer.
func (z ZipWriter) WriteFile(name string, data []byte) error {
	w, err := z.zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("failed to create zip entry: %w", err)
	}
	_, err = w.Write(data)
	return err
}
