// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package lifecycle

import (
	"time"

	"quillpress/internal/events"
	"quillpress/internal/models"
)

// derive is a pure function from a committed Change to the ordered event
// batch describing it. Mutations without an identifiable actor produce no
// events at all.
func derive(ch Change, actor *models.Actor, now time.Time) []events.Event {
	if actor == nil || actor.Type == models.ActorTypeInternal {
		return nil
	}

	item := ch.current()
	if item == nil {
		return nil
	}

	mk := func(name string) events.Event {
		return events.Event{
			Name:         name,
			ResourceID:   item.ID,
			ResourceType: string(item.Type),
			ActorID:      actor.ID,
			ActorType:    actor.Type,
			OccurredAt:   now,
		}
	}

	var batch []events.Event

	switch {
	case ch.Deleted:
		// Destroying a published item implies an unpublish first.
		if ch.WasPublished() {
			batch = append(batch, mk(events.Unpublished))
		}
		batch = append(batch, mk(events.Deleted))

	case ch.Inserted:
		batch = append(batch, mk(events.Added))
		switch {
		case ch.NowPublished():
			batch = append(batch, mk(events.Published))
		case ch.NowScheduled():
			batch = append(batch, mk(events.Scheduled))
		}

	case ch.TypeChanged():
		// A post becoming a page (or the reverse) is modeled as the old
		// resource disappearing and a new one appearing.
		old := func(name string) events.Event {
			ev := mk(name)
			ev.ResourceType = string(ch.Old.Type)
			return ev
		}
		if ch.WasPublished() {
			batch = append(batch, old(events.Unpublished))
		}
		// Old-status only: the old resource is going away, so a scheduled
		// one is unscheduled no matter what the new kind becomes.
		if ch.WasScheduled() {
			batch = append(batch, old(events.Unscheduled))
		}
		deleted := old(events.Deleted)
		deleted.TypeChanging = true
		batch = append(batch, deleted, mk(events.Added))
		switch {
		case ch.NowPublished():
			batch = append(batch, mk(events.Published))
		case ch.NowScheduled():
			batch = append(batch, mk(events.Scheduled))
		}

	case ch.StatusChanged():
		switch {
		case ch.WasPublished() && !ch.NowPublished():
			batch = append(batch, mk(events.Unpublished))
		case ch.NowPublished():
			batch = append(batch, mk(events.Published))
		case ch.NowScheduled():
			batch = append(batch, mk(events.Scheduled))
		}
		if ch.WasScheduled() && !ch.NowScheduled() && !ch.NowPublished() {
			batch = append(batch, mk(events.Unscheduled))
		}

	default:
		if ch.NowPublished() {
			batch = append(batch, mk(events.PublishedEdited))
		}
		if ch.Rescheduled() {
			batch = append(batch, mk(events.Rescheduled))
		}
	}

	// The generic edited event closes every edit batch, except when the
	// type-change path already modeled the mutation as delete+add, and
	// except on insert and destroy.
	if !ch.Inserted && !ch.Deleted && !ch.TypeChanged() {
		batch = append(batch, mk(events.Edited))
	}

	// Relation events are scoped to the relation and independent of the
	// item-level stream.
	for _, t := range ch.AddedTags() {
		ev := mk(events.TagAttached)
		ev.RelationID = t.ID
		batch = append(batch, ev)
	}
	for _, t := range ch.RemovedTags() {
		ev := mk(events.TagDetached)
		ev.RelationID = t.ID
		batch = append(batch, ev)
	}
	for _, a := range ch.AddedAuthors() {
		ev := mk(events.AuthorAttached)
		ev.RelationID = a.UserID
		batch = append(batch, ev)
	}
	for _, a := range ch.RemovedAuthors() {
		ev := mk(events.AuthorDetached)
		ev.RelationID = a.UserID
		batch = append(batch, ev)
	}

	return batch
}

// deriveHooks computes the post-commit hook list: one hook per relation
// whose dependent routes/indexes must recompute. Relation deltas always
// produce hooks; when the item's visibility is affected every attached tag
// and author gets one as well. Hooks fire regardless of actor attribution.
func deriveHooks(ch Change) []events.Hook {
	seen := make(map[string]bool)
	var hooks []events.Hook

	addTag := func(t models.Tag) {
		key := "tag:" + t.ID.String()
		if !seen[key] {
			seen[key] = true
			hooks = append(hooks, events.Hook{Relation: "tag", ID: t.ID, Slug: t.Slug})
		}
	}
	addAuthor := func(a models.Author) {
		key := "author:" + a.UserID.String()
		if !seen[key] {
			seen[key] = true
			hooks = append(hooks, events.Hook{Relation: "author", ID: a.UserID, Slug: a.Slug})
		}
	}

	for _, t := range ch.AddedTags() {
		addTag(t)
	}
	for _, t := range ch.RemovedTags() {
		addTag(t)
	}
	for _, a := range ch.AddedAuthors() {
		addAuthor(a)
	}
	for _, a := range ch.RemovedAuthors() {
		addAuthor(a)
	}

	if ch.VisibilityAffected() {
		item := ch.current()
		for _, t := range item.Tags {
			addTag(t)
		}
		for _, a := range item.Authors {
			addAuthor(a)
		}
		// On destroy the surviving snapshot is the old one; on type or
		// status change both sides matter.
		if ch.Old != nil && ch.New != nil {
			for _, t := range ch.Old.Tags {
				addTag(t)
			}
			for _, a := range ch.Old.Authors {
				addAuthor(a)
			}
		}
	}

	return hooks
}
