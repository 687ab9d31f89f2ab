package store

import (
	"context"
	"testing"
	"time"
)

func TestEmailStoreRecordAndExists(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewEmailStore(db)
	contentID := revisionFixture(t, db)

	exists, err := s.Exists(ctx, contentID)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("no send record should exist yet")
	}

	if err := s.Record(ctx, contentID, time.Now()); err != nil {
		t.Fatalf("Record: %v", err)
	}

	exists, err = s.Exists(ctx, contentID)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Error("send record should exist after Record")
	}

	// Recording twice is idempotent at the schema level.
	if err := s.Record(ctx, contentID, time.Now()); err != nil {
		t.Fatalf("Record again: %v", err)
	}
}
