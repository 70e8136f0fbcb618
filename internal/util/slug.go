// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides file naming and path helpers shared by the HTTP
// handlers and the static exporter.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonSlugChars matches runs of anything that is not a lowercase letter or digit
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify converts a string to a lowercase ASCII slug. Accents are removed,
// every other run of non-alphanumeric characters becomes one hyphen.
func Slugify(s string) string {
	result, _, err := transform.String(stripMarks, s)
	if err != nil {
		result = s
	}

	result = nonSlugChars.ReplaceAllString(strings.ToLower(result), "-")
	return strings.Trim(result, "-")
}

// DownloadName builds a file name for a download from a human title. When
// the title has no usable characters the fallback is slugified instead.
// ext is appended with a leading dot.
func DownloadName(title, fallback, ext string) string {
	name := Slugify(title)
	if name == "" {
		name = Slugify(fallback)
	}
	if name == "" {
		name = "download"
	}
	return name + "." + strings.TrimPrefix(ext, ".")
}
