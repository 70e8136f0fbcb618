// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Known event categories.
const (
	CategoryTechnology = "Technology"
	CategoryMarketing  = "Marketing"
	CategoryBusiness   = "Business"
	CategoryDesign     = "Design"
	CategoryArts       = "Arts"
)

// DefaultCategoryStyle is used for any category without an explicit style.
const DefaultCategoryStyle = "bg-gray-100 text-gray-800"

var categoryStyles = map[string]string{
	CategoryTechnology: "bg-blue-100 text-blue-800",
	CategoryMarketing:  "bg-green-100 text-green-800",
	CategoryBusiness:   "bg-purple-100 text-purple-800",
	CategoryDesign:     "bg-pink-100 text-pink-800",
	CategoryArts:       "bg-yellow-100 text-yellow-800",
}

// CategoryStyle maps a category name to its badge style tokens.
// Matching is exact; unknown or empty categories get DefaultCategoryStyle.
func CategoryStyle(category string) string {
	if style, ok := categoryStyles[category]; ok {
		return style
	}
	return DefaultCategoryStyle
}
