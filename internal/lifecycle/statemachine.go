// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package lifecycle

import (
	"context"
	"time"

	"quillpress/internal/models"
)

// emailExistsFunc reports whether a publish-notification email record exists
// for the item. Implemented by store.EmailStore inside the mutation's
// transaction.
type emailExistsFunc func(ctx context.Context) (bool, error)

// transition validates the requested target status on next against the
// prior state old (nil on insert) and applies the transition's side fields:
// published_at defaulting, published_by attribution, and the
// send-email-when-published re-evaluation on a revert to draft.
//
// Any violated precondition returns a ValidationError and the whole
// operation aborts; no partial field application happens.
func transition(ctx context.Context, old, next *models.Content, opts Options, now time.Time, leadTime time.Duration, emailExists emailExistsFunc) error {
	if !next.Status.Valid() {
		return validationErr("status", "unknown status %q", next.Status)
	}

	switch next.Status {
	case models.ContentStatusScheduled:
		// The one forward-revocation that is never allowed: a published item
		// must pass through draft before it can be scheduled again.
		if old != nil && old.Status == models.ContentStatusPublished {
			return validationErr("status", "published content cannot move directly to scheduled")
		}
		if next.PublishedAt == nil {
			return validationErr("published_at", "scheduled content requires a publish time")
		}
		if publishTimeChanging(old, next) && !opts.Importing && !opts.Actor.Internal() {
			if next.PublishedAt.Before(now.Add(leadTime)) {
				return validationErr("published_at",
					"publish time must be at least %s in the future", leadTime)
			}
		}

	case models.ContentStatusPublished:
		if next.PublishedAt == nil {
			t := now
			next.PublishedAt = &t
		}
		becoming := old == nil || old.Status != models.ContentStatusPublished
		if becoming {
			// Imports may carry their original attribution.
			if !(opts.Importing && next.PublishedBy != nil) {
				if opts.Actor != nil && opts.Actor.Type != models.ActorTypeInternal {
					id := opts.Actor.ID
					next.PublishedBy = &id
				}
			}
		}

	case models.ContentStatusDraft:
		if old != nil && old.Status != models.ContentStatusDraft {
			// A queued publish-notification send must not be silently
			// dropped: if a send record already exists the flag stays up,
			// otherwise it is cleared.
			exists, err := emailExists(ctx)
			if err != nil {
				return err
			}
			next.SendEmailWhenPublished = exists
		}
	}

	return nil
}

// publishTimeChanging reports whether the transition sets a publish time the
// item did not already have.
func publishTimeChanging(old, next *models.Content) bool {
	if next.PublishedAt == nil {
		return false
	}
	if old == nil || old.PublishedAt == nil {
		return true
	}
	return !old.PublishedAt.Equal(*next.PublishedAt)
}
