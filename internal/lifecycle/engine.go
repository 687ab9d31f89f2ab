// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package lifecycle implements the content-lifecycle engine: it mutates a
// content item across its publication states inside one transaction per
// operation, guarantees slug uniqueness, bounds revision history, and
// derives the ordered lifecycle events downstream systems depend on.
package lifecycle

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"quillpress/internal/events"
	"quillpress/internal/markdown"
	"quillpress/internal/models"
	slugpkg "quillpress/internal/slug"
	"quillpress/internal/store"
	"quillpress/internal/urlnorm"
)

// Config holds the lifecycle policy knobs, injected at construction — never
// read from ambient process state.
type Config struct {
	// SiteURL anchors URL normalization of stored bodies.
	SiteURL string
	// LeadTime is the minimum gap between now and a scheduled publish time.
	LeadTime time.Duration
	// RevisionLimit bounds the revision log per item, oldest evicted first.
	RevisionLimit int
	// DefaultVisibility applies to new items that don't specify one.
	DefaultVisibility models.Visibility
}

// Invalidator recomputes cached routes after a committed mutation. The
// routes cache implements it; a nil invalidator disables invalidation.
type Invalidator interface {
	InvalidateContent(ctx context.Context, slug string)
	InvalidateRelation(ctx context.Context, relation, slug string)
}

// Engine orchestrates all content mutations. Every mutating operation runs
// in a single database transaction; lifecycle events are derived from the
// pre/post snapshots and dispatched only after a successful commit.
type Engine struct {
	db          *sql.DB
	cfg         Config
	dispatcher  *events.Dispatcher
	invalidator Invalidator
	clock       func() time.Time
}

// NewEngine creates a lifecycle engine. Zero config fields take the policy
// defaults: 2 minute lead time, 10 revisions, public visibility.
func NewEngine(db *sql.DB, cfg Config, dispatcher *events.Dispatcher) *Engine {
	if cfg.LeadTime == 0 {
		cfg.LeadTime = 2 * time.Minute
	}
	if cfg.RevisionLimit == 0 {
		cfg.RevisionLimit = 10
	}
	if cfg.DefaultVisibility == "" {
		cfg.DefaultVisibility = models.VisibilityPublic
	}
	return &Engine{
		db:         db,
		cfg:        cfg,
		dispatcher: dispatcher,
		clock:      time.Now,
	}
}

// SetInvalidator wires the routes cache invalidation hook consumer.
func (e *Engine) SetInvalidator(inv Invalidator) {
	e.invalidator = inv
}

// Add creates a content item. The item is created inside a transaction and
// re-read in full before returning, so callers observe storage-layer
// defaults.
func (e *Engine) Add(ctx context.Context, in Input, opts Options) (*models.Content, error) {
	if err := authorize(ActionAdd, opts.Actor, nil, &in); err != nil {
		return nil, err
	}

	title := ""
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
	}
	if title == "" {
		return nil, validationErr("title", "title is required")
	}

	typ := models.ContentTypePost
	if in.Type != nil {
		typ = *in.Type
	}
	if !typ.Valid() {
		return nil, validationErr("type", "unknown content type %q", typ)
	}

	status := models.ContentStatusDraft
	if in.Status != nil {
		status = *in.Status
	}

	visibility := e.cfg.DefaultVisibility
	if in.Visibility != nil {
		visibility = *in.Visibility
	}
	if !visibility.Valid() {
		return nil, validationErr("visibility", "unknown visibility %q", visibility)
	}

	body := ""
	if in.Body != nil {
		body = *in.Body
	}
	body = urlnorm.ToRelative(body, e.cfg.SiteURL)
	html, plain, err := markdown.Render(body)
	if err != nil {
		return nil, validationErr("body", "body failed to render: %v", err)
	}

	now := e.clock()
	c := &models.Content{
		Type:        typ,
		Title:       title,
		Body:        body,
		HTML:        html,
		Plaintext:   plain,
		Status:      status,
		Visibility:  visibility,
		PublishedAt: in.PublishedAt,
	}
	if in.Featured != nil {
		c.Featured = *in.Featured
	}
	if opts.Actor != nil && opts.Actor.Type != models.ActorTypeInternal {
		id := opts.Actor.ID
		c.CreatedBy = &id
	}

	var result *models.Content
	err = store.InTx(ctx, e.db, opts.Tx, func(q store.Querier) error {
		contents := store.NewContentStore(q)

		candidate := title
		if in.Slug != nil && *in.Slug != "" {
			candidate = *in.Slug
		}
		resolved, err := slugpkg.Resolve(ctx, candidate, uuid.Nil, contents.SlugTaken)
		if err != nil {
			return err
		}
		c.Slug = resolved

		if err := transition(ctx, nil, c, opts, now, e.cfg.LeadTime, neverSent); err != nil {
			return err
		}

		created, err := contents.Create(ctx, c)
		if err != nil {
			return err
		}

		if in.Tags != nil {
			if err := contents.SetTags(ctx, created.ID, *in.Tags); err != nil {
				return err
			}
		}
		if in.Authors != nil {
			if err := contents.SetAuthors(ctx, created.ID, *in.Authors); err != nil {
				return err
			}
		}
		if err := writeMeta(ctx, contents, created.ID, nil, in.Meta); err != nil {
			return err
		}

		result, err = contents.FindByID(ctx, created.ID)
		if err != nil {
			return err
		}
		if result == nil {
			return errors.New("content vanished after insert")
		}
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	e.emit(ctx, Change{New: result, Inserted: true}, opts)
	return result, nil
}

// Edit mutates an existing content item. Slug policy, state transition,
// revision recording, and relation replacement all happen inside one
// transaction keyed on the same pre-image.
func (e *Engine) Edit(ctx context.Context, id uuid.UUID, in Input, opts Options) (*models.Content, error) {
	now := e.clock()

	var old, result *models.Content
	err := store.InTx(ctx, e.db, opts.Tx, func(q store.Querier) error {
		contents := store.NewContentStore(q)
		revs := store.NewRevisionStore(q)
		emails := store.NewEmailStore(q)

		cur, err := contents.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return &NotFoundError{Resource: "content", ID: id}
		}
		old = cur

		if err := authorize(ActionEdit, opts.Actor, cur, &in); err != nil {
			return err
		}

		next := *cur
		if in.Type != nil {
			if !in.Type.Valid() {
				return validationErr("type", "unknown content type %q", *in.Type)
			}
			next.Type = *in.Type
		}
		if in.Title != nil {
			t := strings.TrimSpace(*in.Title)
			if t == "" {
				return validationErr("title", "title is required")
			}
			next.Title = t
		}
		if in.Status != nil {
			next.Status = *in.Status
		}
		if in.PublishedAt != nil {
			next.PublishedAt = in.PublishedAt
		}
		if in.Featured != nil {
			next.Featured = *in.Featured
		}
		if in.Visibility != nil {
			if !in.Visibility.Valid() {
				return validationErr("visibility", "unknown visibility %q", *in.Visibility)
			}
			next.Visibility = *in.Visibility
		}

		resolved, err := e.resolveEditSlug(ctx, contents, cur, &next, in)
		if err != nil {
			return err
		}
		next.Slug = resolved

		bodyChanged := false
		if in.Body != nil {
			rel := urlnorm.ToRelative(*in.Body, e.cfg.SiteURL)
			if rel != cur.Body {
				html, plain, err := markdown.Render(rel)
				if err != nil {
					return validationErr("body", "body failed to render: %v", err)
				}
				next.Body, next.HTML, next.Plaintext = rel, html, plain
				bodyChanged = true
			}
		}

		if opts.Actor != nil && opts.Actor.Type != models.ActorTypeInternal {
			aid := opts.Actor.ID
			next.UpdatedBy = &aid
		}

		err = transition(ctx, cur, &next, opts, now, e.cfg.LeadTime, func(ctx context.Context) (bool, error) {
			return emails.Exists(ctx, cur.ID)
		})
		if err != nil {
			return err
		}

		if bodyChanged && !opts.Importing && !opts.Migrating {
			if err := recordRevision(ctx, revs, cur, next.Body, e.cfg.RevisionLimit); err != nil {
				return err
			}
		}

		if err := contents.Update(ctx, &next); err != nil {
			return err
		}
		if in.Tags != nil {
			if err := contents.SetTags(ctx, cur.ID, *in.Tags); err != nil {
				return err
			}
		}
		if in.Authors != nil {
			if err := contents.SetAuthors(ctx, cur.ID, *in.Authors); err != nil {
				return err
			}
		}
		if err := writeMeta(ctx, contents, cur.ID, cur.Meta, in.Meta); err != nil {
			return err
		}

		result, err = contents.FindByID(ctx, cur.ID)
		return err
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	e.emit(ctx, Change{Old: old, New: result}, opts)
	return result, nil
}

// Destroy deletes a content item. Destroying a published item synthesizes
// an implicit unpublish event before the deletion event.
func (e *Engine) Destroy(ctx context.Context, id uuid.UUID, opts Options) error {
	var old *models.Content
	err := store.InTx(ctx, e.db, opts.Tx, func(q store.Querier) error {
		contents := store.NewContentStore(q)

		cur, err := contents.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return &NotFoundError{Resource: "content", ID: id}
		}
		if err := authorize(ActionDestroy, opts.Actor, cur, nil); err != nil {
			return err
		}
		old = cur
		return contents.Delete(ctx, id)
	})
	if err != nil {
		return mapStoreErr(err)
	}

	e.emit(ctx, Change{Old: old, Deleted: true}, opts)
	return nil
}

// ListRevisions returns the item's revision log, newest first. Revisions
// are an internal audit log, queryable only through this interface.
func (e *Engine) ListRevisions(ctx context.Context, id uuid.UUID) ([]models.Revision, error) {
	contents := store.NewContentStore(e.db)
	cur, err := contents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, &NotFoundError{Resource: "content", ID: id}
	}
	return store.NewRevisionStore(e.db).ListByContentID(ctx, id)
}

// Get returns a fully-materialized content item with body URLs expanded to
// absolute form for rendering.
func (e *Engine) Get(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	c, err := store.NewContentStore(e.db).FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &NotFoundError{Resource: "content", ID: id}
	}
	c.HTML = urlnorm.ToAbsolute(c.HTML, e.cfg.SiteURL)
	return c, nil
}

// resolveEditSlug applies the edit-time slug policy. A title change on a
// never-published draft regenerates the slug from the new title, but only
// when the previous slug was itself auto-derived from the previous title:
// regenerating what the old title would have produced and comparing
// byte-for-byte decides whether the user ever customized it. Otherwise an
// explicit slug, or the current one, is re-validated for uniqueness.
func (e *Engine) resolveEditSlug(ctx context.Context, contents *store.ContentStore, cur, next *models.Content, in Input) (string, error) {
	candidate := cur.Slug

	titleDriven := in.Slug == nil &&
		in.Title != nil && next.Title != cur.Title &&
		cur.Status == models.ContentStatusDraft && cur.PublishedAt == nil &&
		slugpkg.Generate(cur.Title) == cur.Slug

	switch {
	case titleDriven:
		candidate = next.Title
	case in.Slug != nil && *in.Slug != "":
		candidate = *in.Slug
	}

	return slugpkg.Resolve(ctx, candidate, cur.ID, contents.SlugTaken)
}

// writeMeta merges the incoming meta payload over the current sub-record
// and persists it. The row is created lazily: an item with no populated
// meta fields never gets one.
func writeMeta(ctx context.Context, contents *store.ContentStore, id uuid.UUID, cur *models.ContentMeta, in *MetaInput) error {
	if in == nil {
		return nil
	}
	m := models.ContentMeta{ContentID: id}
	if cur != nil {
		m = *cur
	}
	if in.MetaTitle != nil {
		m.MetaTitle = in.MetaTitle
	}
	if in.MetaDescription != nil {
		m.MetaDescription = in.MetaDescription
	}
	if in.OGImage != nil {
		m.OGImage = in.OGImage
	}
	if in.CanonicalURL != nil {
		m.CanonicalURL = in.CanonicalURL
	}
	if m.Empty() {
		return nil
	}
	return contents.UpsertMeta(ctx, &m)
}

// emit derives and dispatches the post-commit event batch and hook list.
// When the caller supplied its own transaction nothing is emitted here:
// emission belongs to whoever commits, and events must never describe a
// rolled-back mutation.
func (e *Engine) emit(ctx context.Context, ch Change, opts Options) {
	if opts.Tx != nil {
		return
	}

	if batch := derive(ch, opts.Actor, e.clock()); len(batch) > 0 {
		e.dispatcher.Enqueue(ch.current().ID, batch)
	}

	if e.invalidator == nil {
		return
	}
	for _, h := range deriveHooks(ch) {
		e.invalidator.InvalidateRelation(ctx, h.Relation, h.Slug)
	}
	if ch.Old != nil {
		e.invalidator.InvalidateContent(ctx, ch.Old.Slug)
	}
	if ch.New != nil && (ch.Old == nil || ch.New.Slug != ch.Old.Slug) {
		e.invalidator.InvalidateContent(ctx, ch.New.Slug)
	}
}

// neverSent is the emailExistsFunc for inserts: a brand-new item cannot
// have an email-send record.
func neverSent(context.Context) (bool, error) { return false, nil }

// mapStoreErr converts low-level uniqueness failures into the caller-facing
// conflict error. Everything else propagates unwrapped.
func mapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrUniqueViolation) || errors.Is(err, slugpkg.ErrExhausted) {
		return &ConflictError{Message: err.Error()}
	}
	return err
}
