// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package lifecycle

import (
	"quillpress/internal/models"
)

// Action identifies the mutating operation under authorization.
type Action string

const (
	ActionAdd     Action = "add"
	ActionEdit    Action = "edit"
	ActionDestroy Action = "destroy"
)

// authorize is the permission gate. It evaluates the acting role against
// the requested action, the unsafe client-supplied attributes, and the
// item's current state, before any mutation is attempted. A denial rejects
// the entire operation; attribute filtering is never partially applied.
//
// Actor-less and internal mutations bypass the gate: they originate inside
// the system.
func authorize(action Action, actor *models.Actor, current *models.Content, in *Input) error {
	if actor == nil || actor.Type == models.ActorTypeInternal {
		return nil
	}

	if actor.Type == models.ActorTypeUser && actor.Role == models.RoleContributor {
		if err := authorizeContributor(action, current, in); err != nil {
			return err
		}
	}

	// Only privileged roles and trusted integrations may change an item's
	// visibility.
	if in != nil && in.Visibility != nil && !actor.Trusted() {
		changing := current == nil || *in.Visibility != current.Visibility
		if changing {
			return authorizationErr("changing visibility requires an elevated role")
		}
	}

	return nil
}

// authorizeContributor applies the contributor restrictions: drafts only,
// no status changes, no tag modifications.
func authorizeContributor(action Action, current *models.Content, in *Input) error {
	if in != nil && in.Tags != nil {
		return authorizationErr("contributors cannot modify tags")
	}

	switch action {
	case ActionAdd:
		if in != nil && in.Status != nil && *in.Status != models.ContentStatusDraft {
			return authorizationErr("contributors can only create drafts")
		}

	case ActionEdit:
		if current == nil || current.Status != models.ContentStatusDraft {
			return authorizationErr("contributors can only edit drafts")
		}
		if in != nil && in.Status != nil && *in.Status != models.ContentStatusDraft {
			return authorizationErr("contributors cannot change publication status")
		}

	case ActionDestroy:
		if current == nil || current.Status != models.ContentStatusDraft {
			return authorizationErr("contributors can only delete drafts")
		}
	}

	return nil
}
