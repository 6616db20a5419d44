package db

import (
	"context"
	"database/sql"
	"errors"
	"io"

	"github.com/dmitrymomot/simplefw/pkg/sqlbuilder"
)

// Exists reports whether table exists in the current database or schema.
func Exists(ctx context.Context, db sqlbuilder.Runner, d sqlbuilder.Dialect, table string) (bool, error) {
	var q string
	switch d {
	case sqlbuilder.MySQL:
		q = "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = :table"
	case sqlbuilder.Postgres:
		q = "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = :table"
	default:
		q = "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = :table"
	}

	query, args, err := sqlbuilder.Bind(d, q, map[string]any{"table": table})
	if err != nil {
		return false, err
	}

	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// WithTx runs fn in a transaction. The transaction is rolled back when fn
// returns an error or panics, and committed otherwise.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Healthcheck returns a readiness check that pings db.
func Healthcheck(db *sql.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		if db == nil {
			return ErrHealthcheckFailed
		}
		if err := db.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a shutdown hook that closes db.
func Shutdown(db io.Closer) func(context.Context) error {
	return func(context.Context) error {
		return db.Close()
	}
}
