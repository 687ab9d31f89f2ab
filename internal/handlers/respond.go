// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON content API. Handlers are thin:
// parsing and status mapping here, all policy in the lifecycle engine.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"quillpress/internal/lifecycle"
)

// errorBody is the uniform error envelope.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("encode response", "error", err)
		}
	}
}

// writeError maps the lifecycle error taxonomy onto HTTP statuses:
// validation 422, authorization 403, conflict 409, not found 404,
// anything else 500.
func writeError(w http.ResponseWriter, err error) {
	var (
		verr *lifecycle.ValidationError
		aerr *lifecycle.AuthorizationError
		cerr *lifecycle.ConflictError
		nerr *lifecycle.NotFoundError
	)

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: verr.Message, Field: verr.Field})
	case errors.As(err, &aerr):
		writeJSON(w, http.StatusForbidden, errorBody{Error: aerr.Message})
	case errors.As(err, &cerr):
		writeJSON(w, http.StatusConflict, errorBody{Error: cerr.Message})
	case errors.As(err, &nerr):
		writeJSON(w, http.StatusNotFound, errorBody{Error: nerr.Error()})
	default:
		slog.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}
