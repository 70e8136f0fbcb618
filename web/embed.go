// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the page templates and the compiled static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var Templates embed.FS

//go:embed all:static/dist
var Static embed.FS

// TemplateFiles returns the templates with the "templates/" prefix
// stripped, the layout the renderer expects.
func TemplateFiles() fs.FS {
	return mustSub(Templates, "templates")
}

// StaticFiles returns the assets with the "static/dist/" prefix stripped,
// the layout the file server expects.
func StaticFiles() fs.FS {
	return mustSub(Static, "static/dist")
}

// mustSub panics on error. Embedded directories are fixed at compile time.
func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
