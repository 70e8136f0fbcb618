// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the read-only JSON API over the event catalog.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/olegiv/events-explorer/internal/cache"
	"github.com/olegiv/events-explorer/internal/catalog"
	"github.com/olegiv/events-explorer/internal/logging"
	"github.com/olegiv/events-explorer/internal/version"
)

// Version is the API version reported by the status endpoint.
const Version = "v1"

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	catalog   *catalog.Catalog
	cache     cache.Cacher
	logs      *logging.CountingHandler
	version   version.Info
	startTime time.Time
}

// NewHandler creates a new API handler. c and logs may be nil.
func NewHandler(cat *catalog.Catalog, c cache.Cacher, logs *logging.CountingHandler, info version.Info) *Handler {
	return &Handler{
		catalog:   cat,
		cache:     c,
		logs:      logs,
		version:   info.WithDefaults(),
		startTime: time.Now(),
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains list metadata.
type Meta struct {
	Total int `json:"total"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{
		Data: data,
		Meta: meta,
	})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// NotFound handles unknown API routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteNotFound(w, "Resource not found")
}

// MethodNotAllowed handles unsupported methods on API routes.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
}
