// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Revision is an immutable snapshot of a content item's body, kept as an
// internal audit log. Revisions are never exposed through the item's public
// representation.
//
// CreatedAtSeq is a strictly increasing logical sequence per content item,
// not a wall clock: two snapshots taken within the same millisecond still
// order deterministically.
type Revision struct {
	ID           uuid.UUID `json:"id"`
	ContentID    uuid.UUID `json:"content_id"`
	BodySnapshot string    `json:"body_snapshot"`
	CreatedAtSeq int64     `json:"created_at_seq"`
	CreatedAt    time.Time `json:"created_at"`
}
