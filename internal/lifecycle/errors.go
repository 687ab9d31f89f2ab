// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package lifecycle

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError rejects a mutation because of a bad or missing field, an
// invalid temporal value, or a disallowed status transition. Field names the
// offending input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func validationErr(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AuthorizationError rejects a mutation at the permission gate, before any
// state is touched.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return "not authorized: " + e.Message
}

func authorizationErr(format string, args ...any) error {
	return &AuthorizationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a uniqueness collision that survived the bounded
// retry budget. The caller may retry with different input.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Message
}

// NotFoundError reports a missing edit/destroy target.
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
