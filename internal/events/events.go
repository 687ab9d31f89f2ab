// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package events defines lifecycle events emitted after committed content
// mutations and the machinery that delivers them, in order, to an external
// sink.
package events

import (
	"time"

	"github.com/google/uuid"

	"quillpress/internal/models"
)

// Event names emitted by the lifecycle engine. Relation events are scoped
// to the relation and flow through the same sink.
const (
	Added           = "added"
	Edited          = "edited"
	Deleted         = "deleted"
	Published       = "published"
	PublishedEdited = "published.edited"
	Unpublished     = "unpublished"
	Scheduled       = "scheduled"
	Unscheduled     = "unscheduled"
	Rescheduled     = "rescheduled"
	TagAttached     = "tag.attached"
	TagDetached     = "tag.detached"
	AuthorAttached  = "author.attached"
	AuthorDetached  = "author.detached"
)

// Event is a single lifecycle signal. Seq is a monotonic per-resource
// emission counter stamped by the dispatcher so at-least-once sinks can
// deduplicate on (Name, ResourceID, Seq).
type Event struct {
	Name         string           `json:"name"`
	ResourceID   uuid.UUID        `json:"resource_id"`
	ResourceType string           `json:"resource_type"`
	ActorID      uuid.UUID        `json:"actor_id"`
	ActorType    models.ActorType `json:"actor_type"`
	Seq          uint64           `json:"seq"`
	OccurredAt   time.Time        `json:"occurred_at"`

	// RelationID is set on tag.*/author.* events: the id of the attached or
	// detached tag or author.
	RelationID uuid.UUID `json:"relation_id,omitempty"`

	// TypeChanging marks the deleted event synthesized when an item changes
	// kind (post↔page) and is immediately re-added as the other kind.
	TypeChanging bool `json:"type_changing,omitempty"`
}

// Hook is a post-commit side effect derived alongside an event batch. Each
// hook carries the concrete relation delta for one tag or author whose
// dependent routing/index entries must be recomputed.
type Hook struct {
	Relation string    // "tag" or "author"
	ID       uuid.UUID // tag id or author user id
	Slug     string    // relation slug for cache invalidation
}
