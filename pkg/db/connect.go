package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/dmitrymomot/simplefw/pkg/sqlbuilder"
)

// DB is a *sql.DB bound to its SQL dialect.
type DB struct {
	*sql.DB
	dialect sqlbuilder.Dialect
	pool    *pgxpool.Pool
}

// Wrap binds an existing connection to dialect d.
func Wrap(db *sql.DB, d sqlbuilder.Dialect) *DB {
	return &DB{DB: db, dialect: d}
}

// Dialect returns the connection dialect.
func (d *DB) Dialect() sqlbuilder.Dialect { return d.dialect }

// Close closes the connection and, for PostgreSQL, the underlying pool.
func (d *DB) Close() error {
	err := d.DB.Close()
	if d.pool != nil {
		d.pool.Close()
	}
	return err
}

// Open connects to the configured database, retrying the first ping with a
// linear backoff.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	dialect, err := cfg.Dialect()
	if err != nil {
		return nil, err
	}
	driver, dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = time.Second
	}

	if dialect == sqlbuilder.Postgres {
		pool, err := connectPool(ctx, dsn, cfg)
		if err != nil {
			return nil, err
		}
		return &DB{DB: stdlib.OpenDBFromPool(pool), dialect: dialect, pool: pool}, nil
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	switch {
	case dialect == sqlbuilder.SQLite:
		// A single writer avoids "database is locked" and keeps :memory: databases alive.
		sqlDB.SetMaxOpenConns(1)
	case cfg.MaxOpenConns > 0:
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := retry(ctx, cfg, func() error { return sqlDB.PingContext(ctx) }); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &DB{DB: sqlDB, dialect: dialect}, nil
}

func connectPool(ctx context.Context, dsn string, cfg Config) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	if cfg.MaxOpenConns > 0 {
		pc.MaxConns = int32(cfg.MaxOpenConns)
	}

	var pool *pgxpool.Pool
	err = retry(ctx, cfg, func() error {
		p, err := pgxpool.NewWithConfig(ctx, pc)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	return pool, err
}

func retry(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error
	for i := range max(cfg.RetryAttempts, 1) {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if i == max(cfg.RetryAttempts, 1)-1 {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}
	return errors.Join(ErrFailedToOpenDBConnection, lastErr)
}
