// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quillpress/internal/lifecycle"
	"quillpress/internal/middleware"
	"quillpress/internal/models"
	"quillpress/internal/store"
)

// Content serves the content API backed by the lifecycle engine.
type Content struct {
	engine *lifecycle.Engine
	db     store.Querier
}

// NewContent creates the content handler group.
func NewContent(engine *lifecycle.Engine, db store.Querier) *Content {
	return &Content{engine: engine, db: db}
}

// contentPayload is the JSON mutation body. All fields are optional;
// absent fields leave stored values untouched on update.
type contentPayload struct {
	Type        *string      `json:"type"`
	Title       *string      `json:"title"`
	Slug        *string      `json:"slug"`
	Body        *string      `json:"body"`
	Status      *string      `json:"status"`
	PublishedAt *time.Time   `json:"published_at"`
	Featured    *bool        `json:"featured"`
	Visibility  *string      `json:"visibility"`
	Tags        *[]uuid.UUID `json:"tags"`
	Authors     *[]uuid.UUID `json:"authors"`
	Meta        *metaPayload `json:"meta"`
}

type metaPayload struct {
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	OGImage         *string `json:"og_image"`
	CanonicalURL    *string `json:"canonical_url"`
}

// input converts the payload into the engine's input type.
func (p *contentPayload) input() lifecycle.Input {
	in := lifecycle.Input{
		Title:       p.Title,
		Slug:        p.Slug,
		Body:        p.Body,
		PublishedAt: p.PublishedAt,
		Featured:    p.Featured,
		Tags:        p.Tags,
		Authors:     p.Authors,
	}
	if p.Type != nil {
		t := models.ContentType(*p.Type)
		in.Type = &t
	}
	if p.Status != nil {
		s := models.ContentStatus(*p.Status)
		in.Status = &s
	}
	if p.Visibility != nil {
		v := models.Visibility(*p.Visibility)
		in.Visibility = &v
	}
	if p.Meta != nil {
		in.Meta = &lifecycle.MetaInput{
			MetaTitle:       p.Meta.MetaTitle,
			MetaDescription: p.Meta.MetaDescription,
			OGImage:         p.Meta.OGImage,
			CanonicalURL:    p.Meta.CanonicalURL,
		}
	}
	return in
}

func decodePayload(r *http.Request) (*contentPayload, error) {
	var p contentPayload
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, &lifecycle.ValidationError{Field: "body", Message: "malformed JSON: " + err.Error()}
	}
	return &p, nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, &lifecycle.ValidationError{Field: "id", Message: "malformed content id"}
	}
	return id, nil
}

func requestOptions(r *http.Request) lifecycle.Options {
	return lifecycle.Options{Actor: middleware.ActorFromCtx(r.Context())}
}

// Create handles POST /content.
func (h *Content) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.engine.Add(r.Context(), payload.input(), requestOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /content/{id}.
func (h *Content) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.engine.Edit(r.Context(), id, payload.input(), requestOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /content/{id}.
func (h *Content) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.engine.Destroy(r.Context(), id, requestOptions(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// Get handles GET /content/{id}.
func (h *Content) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	item, err := h.engine.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// List handles GET /content?type=post|page. Defaults to posts.
func (h *Content) List(w http.ResponseWriter, r *http.Request) {
	contentType := models.ContentTypePost
	if v := r.URL.Query().Get("type"); v != "" {
		contentType = models.ContentType(v)
	}
	if !contentType.Valid() {
		writeError(w, &lifecycle.ValidationError{Field: "type", Message: "unknown content type"})
		return
	}

	items, err := store.NewContentStore(h.db).ListByType(r.Context(), contentType)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []models.Content{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Revisions handles GET /content/{id}/revisions, newest first.
func (h *Content) Revisions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	revs, err := h.engine.ListRevisions(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if revs == nil {
		revs = []models.Revision{}
	}
	writeJSON(w, http.StatusOK, revs)
}
