// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package export

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/events-explorer/internal/handler"
	"github.com/olegiv/events-explorer/internal/render"
	"github.com/olegiv/events-explorer/internal/seo"
	"github.com/olegiv/events-explorer/internal/testutil"
	"github.com/olegiv/events-explorer/web"
)

// memWriter collects exported files in memory.
type memWriter map[string][]byte

func (m memWriter) WriteFile(name string, data []byte) error {
	m[name] = data
	return nil
}

var testStatic = fstest.MapFS{
	"static/dist/app.css": {Data: []byte("body{}")},
	"static/dist/app.js":  {Data: []byte("void 0")},
}

func newTestExporter(t *testing.T) *Exporter {
	t.Helper()
	r, err := render.New(render.Config{TemplatesFS: web.TemplateFiles(), SiteName: "Events Explorer"})
	require.NoError(t, err)

	site := seo.SiteConfig{SiteName: "Events Explorer", SiteURL: "https://events.example.com"}
	pages := handler.NewPageBuilder(testutil.NewCatalog(), r, site)
	return NewExporter(pages, testStatic, false, testutil.DiscardLogger())
}

func TestExport_Files(t *testing.T) {
	files := memWriter{}
	res, err := newTestExporter(t).Export(context.Background(), files)
	require.NoError(t, err)

	want := []string{
		"index.html",
		"404.html",
		"events/1/index.html",
		"events/1/calendar.ics",
		"events/2/index.html",
		"events/2/calendar.ics",
		"events/3/index.html",
		"events/3/calendar.ics",
		"events/4/index.html",
		"calendar.ics",
		"sitemap.xml",
		"robots.txt",
		"static/dist/app.css",
		"static/dist/app.js",
	}
	for _, name := range want {
		assert.Contains(t, files, name)
	}
	assert.NotContains(t, files, "events/4/calendar.ics")
	assert.Len(t, files, len(want))

	assert.Equal(t, len(want), res.Files)
	assert.Equal(t, 4, res.Events)
	assert.Equal(t, 3, res.Calendars)
	assert.Equal(t, []string{"4"}, res.Undated)

	assert.Contains(t, string(files["index.html"]), "4 events found")
	assert.Contains(t, string(files["events/3/index.html"]), "<title>Biz Forum - Events Explorer</title>")
	assert.Contains(t, string(files["404.html"]), "Page Not Found")
	assert.Contains(t, string(files["robots.txt"]), "Sitemap: https://events.example.com/sitemap.xml")
}

func TestExport_IndexFiltersWithoutServer(t *testing.T) {
	files := memWriter{}
	_, err := newTestExporter(t).Export(context.Background(), files)
	require.NoError(t, err)

	index := string(files["index.html"])
	assert.Contains(t, index, `data-filter="static"`)
	assert.NotContains(t, index, "/events/filter", "exported page must not post to a server route")
	assert.NotContains(t, index, "<noscript>")
	assert.Contains(t, index, `<script src="/static/dist/app.js"`)
	for _, loc := range []string{"Austin", "Dallas"} {
		assert.Contains(t, index, `data-location="`+loc+`"`)
	}
	assert.Contains(t, index, `data-title="AI Summit"`)
	assert.Contains(t, index, `<div class="empty-state" hidden>`)
}

func TestExport_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestExporter(t).Export(ctx, memWriter{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExportToDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")

	res, err := newTestExporter(t).ExportToDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Events)

	data, err := os.ReadFile(filepath.Join(dir, "events", "1", "calendar.ics"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:AI Summit")

	_, err = os.Stat(filepath.Join(dir, "static", "dist", "app.css"))
	assert.NoError(t, err)
}

func TestExportTo_Zip(t *testing.T) {
	target := filepath.Join(t.TempDir(), "site.zip")

	res, err := newTestExporter(t).ExportTo(context.Background(), target)
	require.NoError(t, err)

	zr, err := zip.OpenReader(target)
	require.NoError(t, err)
	defer func() { _ = zr.Close() }()

	assert.Len(t, zr.File, res.Files)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "events/2/index.html")
	assert.Contains(t, names, "sitemap.xml")
}

func TestExportToZipFile_FailureRemovesArchive(t *testing.T) {
	target := filepath.Join(t.TempDir(), "site.zip")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestExporter(t).ExportToZipFile(ctx, target)
	require.ErrorIs(t, err, context.Canceled)

	_, err = os.Stat(target)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExportToZip_Writer(t *testing.T) {
	var buf bytes.Buffer
	_, err := newTestExporter(t).ExportToZip(context.Background(), &buf)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.NotEmpty(t, zr.File)
}

func TestDirWriter_RejectsEscape(t *testing.T) {
	w := DirWriter{Root: t.TempDir()}

	err := w.WriteFile("../outside.html", []byte("x"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "escapes"))

	require.NoError(t, w.WriteFile("events/ok/index.html", []byte("x")))
}
