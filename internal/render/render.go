// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the page templates once at startup and renders them
// to buffers, so template errors never produce half-written responses.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/olegiv/events-explorer/internal/seo"
)

const (
	baseLayout  = "layouts/base.html"
	pagesDir    = "pages"
	partialsDir = "partials"
)

// Renderer handles template rendering with caching.
type Renderer struct {
	templates map[string]*template.Template
	siteName  string
	now       func() time.Time
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS fs.FS
	SiteName    string
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Meta        *seo.Meta
	JSONLD      template.JS
	SiteName    string
	CurrentYear int
	Data        any
}

// New creates a new Renderer with parsed templates. Every page is parsed
// together with the base layout and all partials.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		siteName:  cfg.SiteName,
		now:       time.Now,
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates parses all page templates from the filesystem.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, partialsDir)
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	pages, err := templateFiles(templatesFS, pagesDir)
	if err != nil {
		return fmt.Errorf("getting pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page templates in %s", pagesDir)
	}

	for _, tmplPath := range pages {
		name := strings.TrimSuffix(path.Base(tmplPath), ".html")

		// Parse in order: base layout, partials, page template
		files := []string{baseLayout}
		files = append(files, partials...)
		files = append(files, tmplPath)

		tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}

		r.templates[name] = tmpl
	}

	return nil
}

// templateFiles returns all .html files in a directory.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Page executes the named page inside the base layout and returns the HTML.
func (r *Renderer) Page(name string, data TemplateData) ([]byte, error) {
	return r.execute(name, "base", r.withDefaults(data))
}

// Partial executes a named partial template from the set of the given page
// and returns the HTML fragment.
func (r *Renderer) Partial(page, partial string, data any) ([]byte, error) {
	return r.execute(page, partial, data)
}

// WriteHTML writes pre-rendered HTML.
func WriteHTML(w http.ResponseWriter, status int, html []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(html)
}

func (r *Renderer) withDefaults(data TemplateData) TemplateData {
	if data.SiteName == "" {
		data.SiteName = r.siteName
	}
	if data.CurrentYear == 0 {
		data.CurrentYear = r.now().Year()
	}
	return data
}

func (r *Renderer) execute(name, entry string, data any) ([]byte, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %s not found", name)
	}

	// Render to buffer first to catch errors
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, entry, data); err != nil {
		return nil, fmt.Errorf("executing template %s/%s: %w", name, entry, err)
	}
	return buf.Bytes(), nil
}
