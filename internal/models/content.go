// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentType distinguishes between posts and pages in the unified content table.
type ContentType string

const (
	ContentTypePost ContentType = "post"
	ContentTypePage ContentType = "page"
)

// Valid reports whether t is a known content type.
func (t ContentType) Valid() bool {
	return t == ContentTypePost || t == ContentTypePage
}

// ContentStatus represents the publication state of a content item.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusScheduled ContentStatus = "scheduled"
	ContentStatusPublished ContentStatus = "published"
)

// Valid reports whether s is a known publication status.
func (s ContentStatus) Valid() bool {
	switch s {
	case ContentStatusDraft, ContentStatusScheduled, ContentStatusPublished:
		return true
	}
	return false
}

// Visibility controls who may read a published content item.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityMembers Visibility = "members"
	VisibilityPaid    Visibility = "paid"
)

// Valid reports whether v is a known visibility level.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityMembers, VisibilityPaid:
		return true
	}
	return false
}

// Content represents a post or page under lifecycle management. Posts and
// pages share the same table, differentiated by the Type field. Body holds
// the Markdown source; HTML and Plaintext are derived on every save and never
// written directly by callers.
type Content struct {
	ID        uuid.UUID     `json:"id"`
	Type      ContentType   `json:"type"`
	Title     string        `json:"title"`
	Slug      string        `json:"slug"`
	Body      string        `json:"body"`
	HTML      string        `json:"html"`
	Plaintext string        `json:"plaintext"`
	Status    ContentStatus `json:"status"`

	Featured   bool       `json:"featured"`
	Visibility Visibility `json:"visibility"`

	// SendEmailWhenPublished is engine-controlled: external callers can read
	// it but writes through Add/Edit are ignored.
	SendEmailWhenPublished bool `json:"send_email_when_published"`

	CreatedBy   *uuid.UUID `json:"created_by,omitempty"`
	UpdatedBy   *uuid.UUID `json:"updated_by,omitempty"`
	PublishedBy *uuid.UUID `json:"published_by,omitempty"`

	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Ordered relations, populated by the store on read. Order is
	// significant and preserved via an explicit sort position.
	Tags    []Tag    `json:"tags"`
	Authors []Author `json:"authors"`

	// Meta is the optional SEO sub-record, created lazily on first write of
	// any meta field. Nil when the item has no meta row.
	Meta *ContentMeta `json:"meta,omitempty"`
}

// IsPublished returns true if the content item is in published status.
func (c *Content) IsPublished() bool {
	return c.Status == ContentStatusPublished
}

// IsScheduled returns true if the content item is awaiting a scheduled publish.
func (c *Content) IsScheduled() bool {
	return c.Status == ContentStatusScheduled
}

// TagIDs returns the ids of the attached tags in sort order.
func (c *Content) TagIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(c.Tags))
	for i, t := range c.Tags {
		ids[i] = t.ID
	}
	return ids
}

// AuthorIDs returns the ids of the attached authors in sort order.
func (c *Content) AuthorIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(c.Authors))
	for i, a := range c.Authors {
		ids[i] = a.UserID
	}
	return ids
}

// ContentMeta is the optional one-to-one SEO/meta sub-record for a content
// item. A row exists only once a meta field has been populated.
type ContentMeta struct {
	ContentID       uuid.UUID `json:"content_id"`
	MetaTitle       *string   `json:"meta_title,omitempty"`
	MetaDescription *string   `json:"meta_description,omitempty"`
	OGImage         *string   `json:"og_image,omitempty"`
	CanonicalURL    *string   `json:"canonical_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Empty reports whether every meta field is unset. Empty meta records are
// never persisted.
func (m *ContentMeta) Empty() bool {
	return m.MetaTitle == nil && m.MetaDescription == nil &&
		m.OGImage == nil && m.CanonicalURL == nil
}

// Author links a user to a content item with an explicit sort position.
type Author struct {
	UserID    uuid.UUID `json:"user_id"`
	Slug      string    `json:"slug"`
	SortOrder int       `json:"sort_order"`
}
