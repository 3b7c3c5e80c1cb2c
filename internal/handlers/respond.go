// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API surface. Every response uses
// the same envelope: {"success":true, ...} on success and
// {"success":false,"error":...} on failure.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"inkwell/internal/service"
)

// envelope is the common JSON response shape.
type envelope map[string]any

// respond writes a JSON envelope with the given status.
func respond(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// respondData writes a successful envelope around a single resource.
func respondData(w http.ResponseWriter, status int, data any) {
	respond(w, status, envelope{"success": true, "data": data})
}

// respondList writes a successful envelope around a collection, with the
// item count clients rely on.
func respondList(w http.ResponseWriter, count int, data any) {
	respond(w, http.StatusOK, envelope{"success": true, "count": count, "data": data})
}

// respondError translates a service error into the API's status codes.
// Domain errors map to 4xx with their own message; anything else is a
// storage or programming fault and surfaces as an opaque 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *service.ValidationError
		de *service.DependentsError
	)

	switch {
	case errors.As(err, &ve):
		respond(w, http.StatusBadRequest, envelope{"success": false, "error": ve.Message})
	case errors.As(err, &de):
		respond(w, http.StatusBadRequest, envelope{"success": false, "error": de.Error()})
	case errors.Is(err, service.ErrDuplicateName):
		respond(w, http.StatusBadRequest, envelope{"success": false, "error": "Category name already exists"})
	case errors.Is(err, service.ErrInvalidCategory):
		respond(w, http.StatusBadRequest, envelope{"success": false, "error": "Invalid category"})
	case errors.Is(err, service.ErrNotFound):
		respond(w, http.StatusNotFound, envelope{"success": false, "error": "Not found"})
	case errors.Is(err, service.ErrForbidden):
		respond(w, http.StatusForbidden, envelope{"success": false, "error": "Not authorized"})
	default:
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		respond(w, http.StatusInternalServerError, envelope{"success": false, "error": "Server Error"})
	}
}

// decodeBody parses a JSON request body into dst. Returns false after
// writing a 400 when the body is malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond(w, http.StatusBadRequest, envelope{"success": false, "error": "Invalid request body"})
		return false
	}
	return true
}
