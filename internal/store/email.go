// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EmailStore tracks publish-notification email sends per content item.
// The lifecycle engine consults it when an item leaves the published or
// scheduled state: a previously queued send must not be silently dropped.
type EmailStore struct {
	q Querier
}

// NewEmailStore returns a new EmailStore over the given Querier.
func NewEmailStore(q Querier) *EmailStore {
	return &EmailStore{q: q}
}

// Exists reports whether an email-send record exists for the content item.
func (s *EmailStore) Exists(ctx context.Context, contentID uuid.UUID) (bool, error) {
	var n int
	err := s.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM content_emails WHERE content_id = $1
	`, contentID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("email exists: %w", err)
	}
	return n > 0, nil
}

// Record stores that a publish-notification email was queued for the item.
func (s *EmailStore) Record(ctx context.Context, contentID uuid.UUID, queuedAt time.Time) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO content_emails (content_id, queued_at)
		VALUES ($1, $2)
		ON CONFLICT (content_id) DO NOTHING
	`, contentID, queuedAt)
	if err != nil {
		return fmt.Errorf("record email: %w", err)
	}
	return nil
}
