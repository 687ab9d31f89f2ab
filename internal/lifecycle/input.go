// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package lifecycle

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"quillpress/internal/models"
)

// Options carries the operation context recognized by Add, Edit, and
// Destroy.
type Options struct {
	// Importing marks an internal import: lead-time checks relax and
	// revision history is not written.
	Importing bool

	// Migrating marks a data migration: revision history is not written.
	Migrating bool

	// Tx is an open transaction handed in by a composing caller. When set,
	// the operation joins it and the caller owns commit/rollback; the engine
	// emits no events for it, since they could describe a mutation that
	// never commits.
	Tx *sql.Tx

	// Actor is the acting identity, or nil when the actor resolver found
	// none. Actor-less mutations emit no lifecycle events.
	Actor *models.Actor
}

// MetaInput is the client-supplied meta sub-record payload.
type MetaInput struct {
	MetaTitle       *string
	MetaDescription *string
	OGImage         *string
	CanonicalURL    *string
}

// Input is the client-supplied ("unsafe") attribute set for Add and Edit.
// Pointer fields distinguish absent from zero: a nil field leaves the stored
// value untouched on edit and takes the default on add.
//
// There is deliberately no field for SendEmailWhenPublished: that flag is
// engine-controlled and writes to it are not accepted from callers.
type Input struct {
	Type        *models.ContentType
	Title       *string
	Slug        *string
	Body        *string
	Status      *models.ContentStatus
	PublishedAt *time.Time
	Featured    *bool
	Visibility  *models.Visibility

	// Tags and Authors replace the respective ordered relation wholesale
	// when non-nil.
	Tags    *[]uuid.UUID
	Authors *[]uuid.UUID

	Meta *MetaInput
}
