// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"quillpress/internal/models"
)

// fakeFinder resolves a single known user id. Like the real store, a
// missing user is (nil, nil), not an error.
type fakeFinder struct {
	user *models.User
}

func (f *fakeFinder) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}

// errFinder fails every lookup.
type errFinder struct {
	err error
}

func (f *errFinder) FindByID(context.Context, uuid.UUID) (*models.User, error) {
	return nil, f.err
}

func TestResolveActor(t *testing.T) {
	userID := uuid.New()
	finder := &fakeFinder{user: &models.User{ID: userID, Role: models.RoleEditor}}

	capture := func(dst **models.Actor) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*dst = ActorFromCtx(r.Context())
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("resolves user actor with role", func(t *testing.T) {
		var got *models.Actor
		handler := ResolveActor(finder)(capture(&got))

		req := httptest.NewRequest(http.MethodPost, "/content", nil)
		req.Header.Set(HeaderActorID, userID.String())
		req.Header.Set(HeaderActorType, "user")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if got == nil {
			t.Fatal("expected actor in context")
		}
		if got.Type != models.ActorTypeUser {
			t.Errorf("type: got %q, want user", got.Type)
		}
		if got.Role != models.RoleEditor {
			t.Errorf("role: got %q, want editor", got.Role)
		}
	})

	t.Run("defaults missing type header to user", func(t *testing.T) {
		var got *models.Actor
		handler := ResolveActor(finder)(capture(&got))

		req := httptest.NewRequest(http.MethodPost, "/content", nil)
		req.Header.Set(HeaderActorID, userID.String())
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if got == nil || got.Type != models.ActorTypeUser {
			t.Fatalf("got %+v, want user actor", got)
		}
	})

	t.Run("integration actor skips user lookup", func(t *testing.T) {
		var got *models.Actor
		handler := ResolveActor(finder)(capture(&got))

		id := uuid.New() // not a known user
		req := httptest.NewRequest(http.MethodPost, "/content", nil)
		req.Header.Set(HeaderActorID, id.String())
		req.Header.Set(HeaderActorType, "integration")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if got == nil {
			t.Fatal("expected actor in context")
		}
		if got.Type != models.ActorTypeIntegration || got.ID != id {
			t.Errorf("got %+v, want integration actor %s", got, id)
		}
	})

	t.Run("no headers means no actor", func(t *testing.T) {
		var got *models.Actor
		handler := ResolveActor(finder)(capture(&got))

		req := httptest.NewRequest(http.MethodGet, "/content", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if got != nil {
			t.Errorf("got %+v, want nil actor", got)
		}
	})

	t.Run("malformed id means no actor", func(t *testing.T) {
		var got *models.Actor
		handler := ResolveActor(finder)(capture(&got))

		req := httptest.NewRequest(http.MethodPost, "/content", nil)
		req.Header.Set(HeaderActorID, "not-a-uuid")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if got != nil {
			t.Errorf("got %+v, want nil actor", got)
		}
	})

	t.Run("unknown user proceeds actor-less", func(t *testing.T) {
		var got *models.Actor
		var reached bool
		handler := ResolveActor(finder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			got = ActorFromCtx(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodPost, "/content", nil)
		req.Header.Set(HeaderActorID, uuid.NewString())
		req.Header.Set(HeaderActorType, "user")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if !reached {
			t.Fatal("request should reach the next handler")
		}
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
		if got != nil {
			t.Errorf("got %+v, want nil actor", got)
		}
	})

	t.Run("lookup failure proceeds actor-less", func(t *testing.T) {
		var got *models.Actor
		failing := &errFinder{err: errors.New("connection reset")}
		handler := ResolveActor(failing)(capture(&got))

		req := httptest.NewRequest(http.MethodPost, "/content", nil)
		req.Header.Set(HeaderActorID, uuid.NewString())
		req.Header.Set(HeaderActorType, "user")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if got != nil {
			t.Errorf("got %+v, want nil actor", got)
		}
	})

	t.Run("internal type never resolves over HTTP", func(t *testing.T) {
		var got *models.Actor
		handler := ResolveActor(finder)(capture(&got))

		req := httptest.NewRequest(http.MethodPost, "/content", nil)
		req.Header.Set(HeaderActorID, userID.String())
		req.Header.Set(HeaderActorType, "internal")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if got != nil {
			t.Errorf("got %+v, want nil actor", got)
		}
	})
}
