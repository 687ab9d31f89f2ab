// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"quillpress/internal/models"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// ActorKey is the context key for the resolved acting identity.
	ActorKey contextKey = "actor"

	// HeaderActorID and HeaderActorType identify the caller. The edge proxy
	// strips client-supplied values and sets them after authenticating.
	HeaderActorID   = "X-Actor-Id"
	HeaderActorType = "X-Actor-Type"
)

// UserFinder looks up a user by id. Satisfied by *store.UserStore.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ResolveActor reads the actor headers and stores a *models.Actor in the
// request context. User actors are looked up so their role is available to
// the permission checks downstream. Requests without actor headers proceed
// with no actor; the lifecycle engine treats those as system-internal.
// This middleware does NOT enforce authentication.
func ResolveActor(users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := resolve(r, users)
			if actor != nil {
				ctx := context.WithValue(r.Context(), ActorKey, actor)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolve(r *http.Request, users UserFinder) *models.Actor {
	rawID := r.Header.Get(HeaderActorID)
	if rawID == "" {
		return nil
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		slog.Warn("malformed actor id header", "value", rawID)
		return nil
	}

	switch models.ActorType(r.Header.Get(HeaderActorType)) {
	case models.ActorTypeIntegration:
		return &models.Actor{ID: id, Type: models.ActorTypeIntegration}
	case models.ActorTypeUser, "":
		user, err := users.FindByID(r.Context(), id)
		if err != nil {
			slog.Warn("actor lookup failed", "id", id, "error", err)
			return nil
		}
		if user == nil {
			slog.Warn("actor id matches no user", "id", id)
			return nil
		}
		return &models.Actor{ID: user.ID, Type: models.ActorTypeUser, Role: user.Role}
	default:
		// Internal actors never arrive over HTTP.
		return nil
	}
}

// ActorFromCtx retrieves the acting identity from the request context.
// Returns nil when the request carried no resolvable actor.
func ActorFromCtx(ctx context.Context) *models.Actor {
	actor, _ := ctx.Value(ActorKey).(*models.Actor)
	return actor
}
