// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"quillpress/internal/models"
)

// contentColumns lists all columns for content SELECTs.
const contentColumns = `id, type, title, slug, body, html, plaintext, status,
	featured, visibility, send_email_when_published,
	created_by, updated_by, published_by,
	published_at, created_at, updated_at`

// ContentStore handles all content-related database operations.
// It serves both posts and pages through the unified content table.
type ContentStore struct {
	q Querier
}

// NewContentStore creates a new ContentStore over the given Querier.
func NewContentStore(q Querier) *ContentStore {
	return &ContentStore{q: q}
}

// scanContent scans a single content row.
func scanContent(scanner interface{ Scan(...any) error }) (*models.Content, error) {
	var c models.Content
	err := scanner.Scan(
		&c.ID, &c.Type, &c.Title, &c.Slug, &c.Body, &c.HTML, &c.Plaintext, &c.Status,
		&c.Featured, &c.Visibility, &c.SendEmailWhenPublished,
		&c.CreatedBy, &c.UpdatedBy, &c.PublishedBy,
		&c.PublishedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByID retrieves a fully-materialized content item: row, ordered tags,
// ordered authors, and the lazy meta sub-record. Returns nil if not found.
func (s *ContentStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+contentColumns+` FROM content WHERE id = $1`, id)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	if err := s.loadRelations(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListByType returns all content items of the given type, newest first.
// Relations are not loaded for listings.
func (s *ContentStore) ListByType(ctx context.Context, contentType models.ContentType) ([]models.Content, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+contentColumns+`
		FROM content
		WHERE type = $1
		ORDER BY created_at DESC
	`, contentType)
	if err != nil {
		return nil, fmt.Errorf("list content by type: %w", err)
	}
	defer rows.Close()

	var items []models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Create inserts a new content item and returns the stored row so callers
// observe storage-layer defaults. Slug collisions surface as
// ErrUniqueViolation.
func (s *ContentStore) Create(ctx context.Context, c *models.Content) (*models.Content, error) {
	row := s.q.QueryRowContext(ctx, `
		INSERT INTO content (type, title, slug, body, html, plaintext, status,
		                     featured, visibility, send_email_when_published,
		                     created_by, updated_by, published_by, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+contentColumns,
		c.Type, c.Title, c.Slug, c.Body, c.HTML, c.Plaintext, c.Status,
		c.Featured, c.Visibility, c.SendEmailWhenPublished,
		c.CreatedBy, c.UpdatedBy, c.PublishedBy, c.PublishedAt,
	)
	created, err := scanContent(row)
	if err != nil {
		return nil, wrapConflict("create content", err)
	}
	return created, nil
}

// Update modifies an existing content item. Identity and created_* fields
// never change.
func (s *ContentStore) Update(ctx context.Context, c *models.Content) error {
	_, err := s.q.ExecContext(ctx, `
		UPDATE content SET
			type = $1, title = $2, slug = $3, body = $4, html = $5, plaintext = $6,
			status = $7, featured = $8, visibility = $9,
			send_email_when_published = $10, updated_by = $11, published_by = $12,
			published_at = $13, updated_at = NOW()
		WHERE id = $14
	`, c.Type, c.Title, c.Slug, c.Body, c.HTML, c.Plaintext,
		c.Status, c.Featured, c.Visibility,
		c.SendEmailWhenPublished, c.UpdatedBy, c.PublishedBy,
		c.PublishedAt, c.ID,
	)
	if err != nil {
		return wrapConflict("update content", err)
	}
	return nil
}

// Delete removes a content item by ID. Relation rows, meta, and revisions
// cascade at the schema level.
func (s *ContentStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

// SlugTaken reports whether a slug is already used by any item other than
// exclude, regardless of status. Runs on the store's Querier, so inside the
// surrounding transaction when there is one.
func (s *ContentStore) SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	var n int
	err := s.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM content WHERE slug = $1 AND id <> $2
	`, slug, exclude).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("slug taken: %w", err)
	}
	return n > 0, nil
}

// SetTags replaces the item's tag relations with the given ids, preserving
// the given order via sort_order.
func (s *ContentStore) SetTags(ctx context.Context, contentID uuid.UUID, tagIDs []uuid.UUID) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM content_tags WHERE content_id = $1`, contentID); err != nil {
		return fmt.Errorf("clear content tags: %w", err)
	}
	for i, tagID := range tagIDs {
		_, err := s.q.ExecContext(ctx, `
			INSERT INTO content_tags (content_id, tag_id, sort_order) VALUES ($1, $2, $3)
		`, contentID, tagID, i)
		if err != nil {
			return wrapConflict("attach tag", err)
		}
	}
	return nil
}

// SetAuthors replaces the item's author relations with the given user ids,
// preserving the given order via sort_order.
func (s *ContentStore) SetAuthors(ctx context.Context, contentID uuid.UUID, userIDs []uuid.UUID) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM content_authors WHERE content_id = $1`, contentID); err != nil {
		return fmt.Errorf("clear content authors: %w", err)
	}
	for i, userID := range userIDs {
		_, err := s.q.ExecContext(ctx, `
			INSERT INTO content_authors (content_id, user_id, sort_order) VALUES ($1, $2, $3)
		`, contentID, userID, i)
		if err != nil {
			return wrapConflict("attach author", err)
		}
	}
	return nil
}

// UpsertMeta writes the meta sub-record for an item. The row is created
// lazily on first write; empty meta must not reach this method.
func (s *ContentStore) UpsertMeta(ctx context.Context, m *models.ContentMeta) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO content_meta (content_id, meta_title, meta_description, og_image, canonical_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (content_id) DO UPDATE SET
			meta_title = EXCLUDED.meta_title,
			meta_description = EXCLUDED.meta_description,
			og_image = EXCLUDED.og_image,
			canonical_url = EXCLUDED.canonical_url,
			updated_at = NOW()
	`, m.ContentID, m.MetaTitle, m.MetaDescription, m.OGImage, m.CanonicalURL)
	if err != nil {
		return fmt.Errorf("upsert content meta: %w", err)
	}
	return nil
}

// loadRelations populates tags, authors, and meta for a single item.
func (s *ContentStore) loadRelations(ctx context.Context, c *models.Content) error {
	rows, err := s.q.QueryContext(ctx, `
		SELECT t.id, t.name, t.slug, t.description, ct.sort_order, t.created_at, t.updated_at
		FROM tags t
		JOIN content_tags ct ON ct.tag_id = t.id
		WHERE ct.content_id = $1
		ORDER BY ct.sort_order
	`, c.ID)
	if err != nil {
		return fmt.Errorf("load content tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return fmt.Errorf("scan content tag: %w", err)
		}
		c.Tags = append(c.Tags, t)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	arows, err := s.q.QueryContext(ctx, `
		SELECT ca.user_id, u.slug, ca.sort_order
		FROM content_authors ca
		JOIN users u ON u.id = ca.user_id
		WHERE ca.content_id = $1
		ORDER BY ca.sort_order
	`, c.ID)
	if err != nil {
		return fmt.Errorf("load content authors: %w", err)
	}
	defer arows.Close()

	for arows.Next() {
		var a models.Author
		if err := arows.Scan(&a.UserID, &a.Slug, &a.SortOrder); err != nil {
			return fmt.Errorf("scan content author: %w", err)
		}
		c.Authors = append(c.Authors, a)
	}
	if err := arows.Err(); err != nil {
		return err
	}

	var m models.ContentMeta
	err = s.q.QueryRowContext(ctx, `
		SELECT content_id, meta_title, meta_description, og_image, canonical_url, created_at, updated_at
		FROM content_meta WHERE content_id = $1
	`, c.ID).Scan(&m.ContentID, &m.MetaTitle, &m.MetaDescription, &m.OGImage, &m.CanonicalURL, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load content meta: %w", err)
	}
	c.Meta = &m
	return nil
}
