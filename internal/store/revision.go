// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"quillpress/internal/models"
)

// revisionColumns lists all columns for content_revisions SELECTs.
const revisionColumns = `id, content_id, body_snapshot, created_at_seq, created_at`

// RevisionStore provides access to content revision snapshots in PostgreSQL.
type RevisionStore struct {
	q Querier
}

// NewRevisionStore creates a new RevisionStore over the given Querier.
func NewRevisionStore(q Querier) *RevisionStore {
	return &RevisionStore{q: q}
}

// scanRevision scans a single content_revisions row.
func scanRevision(scanner interface{ Scan(...any) error }) (*models.Revision, error) {
	var r models.Revision
	err := scanner.Scan(&r.ID, &r.ContentID, &r.BodySnapshot, &r.CreatedAtSeq, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts a revision snapshot with an explicit logical sequence.
func (s *RevisionStore) Create(ctx context.Context, contentID uuid.UUID, body string, seq int64) (*models.Revision, error) {
	row := s.q.QueryRowContext(ctx, `
		INSERT INTO content_revisions (content_id, body_snapshot, created_at_seq)
		VALUES ($1, $2, $3)
		RETURNING `+revisionColumns,
		contentID, body, seq,
	)
	r, err := scanRevision(row)
	if err != nil {
		return nil, wrapConflict("create revision", err)
	}
	return r, nil
}

// ListByContentID returns all revisions for a content item, newest first.
// Ordering is by the logical sequence, never wall clock.
func (s *RevisionStore) ListByContentID(ctx context.Context, contentID uuid.UUID) ([]models.Revision, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+revisionColumns+`
		FROM content_revisions
		WHERE content_id = $1
		ORDER BY created_at_seq DESC
	`, contentID)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var revisions []models.Revision
	for rows.Next() {
		r, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revisions = append(revisions, *r)
	}
	return revisions, rows.Err()
}

// MaxSeq returns the highest logical sequence recorded for a content item,
// or 0 when the item has no revisions yet.
func (s *RevisionStore) MaxSeq(ctx context.Context, contentID uuid.UUID) (int64, error) {
	var seq int64
	err := s.q.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(created_at_seq), 0) FROM content_revisions WHERE content_id = $1
	`, contentID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("revision max seq: %w", err)
	}
	return seq, nil
}

// Count returns the number of revisions for a content item.
func (s *RevisionStore) Count(ctx context.Context, contentID uuid.UUID) (int, error) {
	var count int
	err := s.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM content_revisions WHERE content_id = $1
	`, contentID).Scan(&count)
	return count, err
}

// Prune keeps the newest keep revisions for an item and deletes the rest,
// evicting oldest first.
func (s *RevisionStore) Prune(ctx context.Context, contentID uuid.UUID, keep int) error {
	_, err := s.q.ExecContext(ctx, `
		DELETE FROM content_revisions
		WHERE content_id = $1 AND id NOT IN (
			SELECT id FROM content_revisions
			WHERE content_id = $1
			ORDER BY created_at_seq DESC
			LIMIT $2
		)
	`, contentID, keep)
	if err != nil {
		return fmt.Errorf("prune revisions: %w", err)
	}
	return nil
}
