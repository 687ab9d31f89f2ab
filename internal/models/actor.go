// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "github.com/google/uuid"

// ActorType identifies the kind of identity performing a mutation.
type ActorType string

const (
	ActorTypeUser        ActorType = "user"
	ActorTypeIntegration ActorType = "integration"
	ActorTypeInternal    ActorType = "internal"
)

// Actor is the acting identity behind a mutation. Internal actors carry no
// id; mutations with no resolvable actor emit no lifecycle events.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Type ActorType `json:"type"`
	Role Role      `json:"role"`
}

// Internal reports whether the actor is a system-internal identity. Internal
// actors bypass the scheduling lead-time check.
func (a *Actor) Internal() bool {
	return a != nil && a.Type == ActorTypeInternal
}

// Trusted reports whether the actor may change restricted fields such as an
// item's visibility.
func (a *Actor) Trusted() bool {
	if a == nil {
		return false
	}
	return a.Type == ActorTypeIntegration || a.Type == ActorTypeInternal || a.Role.Elevated()
}
