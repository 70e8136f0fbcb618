// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/olegiv/events-explorer/internal/model"
)

var (
	sanitizer     *bluemonday.Policy
	sanitizerOnce sync.Once
)

func ugcPolicy() *bluemonday.Policy {
	sanitizerOnce.Do(func() {
		sanitizer = bluemonday.UGCPolicy()
	})
	return sanitizer
}

// templateFuncs returns custom template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate":     model.FormatShortDate,
		"formatDateLong": model.FormatLongDate,
		"dateAttr":       model.DateAttr,
		"categoryClass":  model.CategoryStyle,
		"markdown":       Markdown,
	}
}

// Markdown converts event text to sanitized HTML. Data files may contain
// Markdown or plain text; plain text becomes paragraphs. Raw HTML in the
// source is dropped by the sanitizer policy.
func Markdown(src string) template.HTML {
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}

	return template.HTML(ugcPolicy().SanitizeBytes(buf.Bytes()))
}
