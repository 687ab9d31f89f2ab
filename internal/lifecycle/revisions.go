// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package lifecycle

import (
	"context"

	"quillpress/internal/models"
	"quillpress/internal/store"
)

// recordRevision maintains the bounded revision log for one body change.
// Called inside the mutation's transaction, only when the body actually
// changed and the operation is neither an import nor a migration.
//
// The first-ever revision for an item seeds two entries — the prior body and
// the new body — capturing the one transition that would otherwise be lost
// by having no history. After that, each change appends one entry and the
// log is pruned oldest-first to the configured bound.
func recordRevision(ctx context.Context, revs *store.RevisionStore, old *models.Content, newBody string, limit int) error {
	count, err := revs.Count(ctx, old.ID)
	if err != nil {
		return err
	}
	maxSeq, err := revs.MaxSeq(ctx, old.ID)
	if err != nil {
		return err
	}

	if count == 0 {
		if _, err := revs.Create(ctx, old.ID, old.Body, maxSeq+1); err != nil {
			return err
		}
		if _, err := revs.Create(ctx, old.ID, newBody, maxSeq+2); err != nil {
			return err
		}
		return nil
	}

	if _, err := revs.Create(ctx, old.ID, newBody, maxSeq+1); err != nil {
		return err
	}
	return revs.Prune(ctx, old.ID, limit)
}
