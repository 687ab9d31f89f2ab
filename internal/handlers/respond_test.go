package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"quillpress/internal/lifecycle"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantField  string
	}{
		{"validation", &lifecycle.ValidationError{Field: "title", Message: "title is required"}, 422, "title"},
		{"authorization", &lifecycle.AuthorizationError{Message: "contributors can only edit drafts"}, 403, ""},
		{"conflict", &lifecycle.ConflictError{Message: "slug retry budget exhausted"}, 409, ""},
		{"not found", &lifecycle.NotFoundError{Resource: "content", ID: uuid.New()}, 404, ""},
		{"unknown", errors.New("pq: connection refused"), 500, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeError(rr, tt.err)

			if rr.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rr.Code, tt.wantStatus)
			}

			var body errorBody
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal body: %v", err)
			}
			if body.Error == "" {
				t.Error("error message should not be empty")
			}
			if body.Field != tt.wantField {
				t.Errorf("field: got %q, want %q", body.Field, tt.wantField)
			}
		})
	}

	t.Run("internal errors are not leaked", func(t *testing.T) {
		rr := httptest.NewRecorder()
		writeError(rr, errors.New("pq: password authentication failed for user"))

		var body errorBody
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal body: %v", err)
		}
		if body.Error != "internal server error" {
			t.Errorf("got %q, want the generic message", body.Error)
		}
	})
}

func TestPayloadInput(t *testing.T) {
	typ := "page"
	status := "published"
	visibility := "members"
	title := "Hello"
	p := &contentPayload{
		Type:       &typ,
		Title:      &title,
		Status:     &status,
		Visibility: &visibility,
		Meta:       &metaPayload{MetaTitle: &title},
	}

	in := p.input()
	if in.Type == nil || string(*in.Type) != "page" {
		t.Errorf("type: got %v, want page", in.Type)
	}
	if in.Status == nil || string(*in.Status) != "published" {
		t.Errorf("status: got %v, want published", in.Status)
	}
	if in.Visibility == nil || string(*in.Visibility) != "members" {
		t.Errorf("visibility: got %v, want members", in.Visibility)
	}
	if in.Meta == nil || in.Meta.MetaTitle == nil || *in.Meta.MetaTitle != title {
		t.Errorf("meta: got %+v, want title carried through", in.Meta)
	}

	t.Run("absent fields stay nil", func(t *testing.T) {
		in := (&contentPayload{}).input()
		if in.Type != nil || in.Status != nil || in.Visibility != nil || in.Meta != nil {
			t.Error("empty payload must convert to all-nil input")
		}
	})
}
