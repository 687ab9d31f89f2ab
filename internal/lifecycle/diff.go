// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package lifecycle

import (
	"quillpress/internal/models"
)

// Change is the immutable before/after pair for one committed mutation.
// Every transition predicate the event deriver needs is a pure function of
// this struct; no mid-operation mutable flags exist.
type Change struct {
	// Old is the pre-mutation snapshot; nil on insert.
	Old *models.Content
	// New is the post-mutation snapshot as re-read from storage; nil on
	// destroy.
	New *models.Content

	Inserted bool
	Deleted  bool
}

// current returns the surviving snapshot: New, or Old for a destroy.
func (c Change) current() *models.Content {
	if c.New != nil {
		return c.New
	}
	return c.Old
}

func (c Change) WasPublished() bool {
	return c.Old != nil && c.Old.Status == models.ContentStatusPublished
}

func (c Change) NowPublished() bool {
	return c.New != nil && c.New.Status == models.ContentStatusPublished
}

func (c Change) WasScheduled() bool {
	return c.Old != nil && c.Old.Status == models.ContentStatusScheduled
}

func (c Change) NowScheduled() bool {
	return c.New != nil && c.New.Status == models.ContentStatusScheduled
}

func (c Change) StatusChanged() bool {
	if c.Old == nil || c.New == nil {
		return false
	}
	return c.Old.Status != c.New.Status
}

func (c Change) TypeChanged() bool {
	if c.Old == nil || c.New == nil {
		return false
	}
	return c.Old.Type != c.New.Type
}

func (c Change) TitleChanged() bool {
	if c.Old == nil || c.New == nil {
		return false
	}
	return c.Old.Title != c.New.Title
}

func (c Change) SlugChanged() bool {
	if c.Old == nil || c.New == nil {
		return false
	}
	return c.Old.Slug != c.New.Slug
}

func (c Change) BodyChanged() bool {
	if c.Old == nil || c.New == nil {
		return false
	}
	return c.Old.Body != c.New.Body
}

// Rescheduled reports a publish-time change while the item stays scheduled.
// This is a distinct signal, not a status transition.
func (c Change) Rescheduled() bool {
	if !c.WasScheduled() || !c.NowScheduled() {
		return false
	}
	o, n := c.Old.PublishedAt, c.New.PublishedAt
	if o == nil || n == nil {
		return o != n
	}
	return !o.Equal(*n)
}

// VisibilityAffected reports whether downstream systems keyed on the item's
// visibility (tag and author routes, indexes) must recompute: the item is
// published now, or was published and its status is changing away.
func (c Change) VisibilityAffected() bool {
	if c.NowPublished() {
		return true
	}
	return c.WasPublished() && (c.Deleted || c.StatusChanged())
}

// AddedTags returns tags present after the mutation but not before.
func (c Change) AddedTags() []models.Tag {
	return diffTags(c.newTags(), c.oldTags())
}

// RemovedTags returns tags present before the mutation but not after.
func (c Change) RemovedTags() []models.Tag {
	return diffTags(c.oldTags(), c.newTags())
}

// AddedAuthors returns authors present after the mutation but not before.
func (c Change) AddedAuthors() []models.Author {
	return diffAuthors(c.newAuthors(), c.oldAuthors())
}

// RemovedAuthors returns authors present before the mutation but not after.
func (c Change) RemovedAuthors() []models.Author {
	return diffAuthors(c.oldAuthors(), c.newAuthors())
}

func (c Change) oldTags() []models.Tag {
	if c.Old == nil {
		return nil
	}
	return c.Old.Tags
}

func (c Change) newTags() []models.Tag {
	if c.New == nil {
		return nil
	}
	return c.New.Tags
}

func (c Change) oldAuthors() []models.Author {
	if c.Old == nil {
		return nil
	}
	return c.Old.Authors
}

func (c Change) newAuthors() []models.Author {
	if c.New == nil {
		return nil
	}
	return c.New.Authors
}

// diffTags returns elements of a absent from b, preserving a's order.
func diffTags(a, b []models.Tag) []models.Tag {
	seen := make(map[string]bool, len(b))
	for _, t := range b {
		seen[t.ID.String()] = true
	}
	var out []models.Tag
	for _, t := range a {
		if !seen[t.ID.String()] {
			out = append(out, t)
		}
	}
	return out
}

// diffAuthors returns elements of a absent from b, preserving a's order.
func diffAuthors(a, b []models.Author) []models.Author {
	seen := make(map[string]bool, len(b))
	for _, x := range b {
		seen[x.UserID.String()] = true
	}
	var out []models.Author
	for _, x := range a {
		if !seen[x.UserID.String()] {
			out = append(out, x)
		}
	}
	return out
}
