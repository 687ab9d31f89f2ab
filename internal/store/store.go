// Package store provides database access methods for all QuillPress
// entities. Each store struct wraps a Querier — either a *sql.DB or an open
// *sql.Tx — so the same query methods run inside or outside a transaction.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ErrUniqueViolation marks errors caused by a row-level uniqueness
// constraint. Callers detect it with errors.Is and surface a conflict.
var ErrUniqueViolation = errors.New("unique constraint violation")

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// wrapConflict tags unique-violation errors with ErrUniqueViolation so the
// lifecycle engine can map them to its conflict error without importing pgx.
func wrapConflict(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %w: %s", op, ErrUniqueViolation, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// InTx runs fn inside tx when one is supplied by the caller, otherwise it
// opens a new transaction on db and commits or rolls back around fn. When
// the caller owns the transaction, commit is the caller's responsibility.
func InTx(ctx context.Context, db *sql.DB, tx *sql.Tx, fn func(q Querier) error) error {
	if tx != nil {
		return fn(tx)
	}

	own, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(own); err != nil {
		own.Rollback()
		return err
	}
	if err := own.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
