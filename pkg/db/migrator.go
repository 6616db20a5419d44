package db

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/simplefw/pkg/sqlbuilder"
)

// Migration is a versioned schema change.
type Migration struct {
	Version     int64
	Name        string
	Description string
	Up          func(ctx context.Context, tx *sql.Tx, d sqlbuilder.Dialect) error
}

// Result is the outcome of applying one migration.
type Result struct {
	Migration Migration
	Err       error
}

// String renders the result as "<description> : Ok" or "<description> : <error>".
func (r Result) String() string {
	label := r.Migration.Description
	if label == "" {
		label = r.Migration.Name
	}
	if r.Err != nil {
		return label + " : " + r.Err.Error()
	}
	return label + " : Ok"
}

// MigratorOption configures a Migrator.
type MigratorOption func(*Migrator)

// WithMigratorLogger routes goose output to log.
func WithMigratorLogger(log *slog.Logger) MigratorOption {
	return func(m *Migrator) { m.log = log }
}

// Migrator applies migrations and records them in a table.
type Migrator struct {
	db         *DB
	store      *store
	provider   *goose.Provider
	migrations []Migration
	byVersion  map[int64]Migration
	log        *slog.Logger
}

// NewMigrator prepares the given migrations against db, recording runs in table.
func NewMigrator(db *DB, table string, migrations []Migration, opts ...MigratorOption) (*Migrator, error) {
	m := &Migrator{
		db:         db,
		migrations: slices.Clone(migrations),
		byVersion:  make(map[int64]Migration, len(migrations)),
	}
	for _, opt := range opts {
		opt(m)
	}

	slices.SortFunc(m.migrations, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })

	gooseMigrations := make([]*goose.Migration, 0, len(m.migrations))
	for _, mig := range m.migrations {
		if _, dup := m.byVersion[mig.Version]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateVersion, mig.Version)
		}
		m.byVersion[mig.Version] = mig

		up := mig.Up
		dialect := db.Dialect()
		gooseMigrations = append(gooseMigrations, goose.NewGoMigration(mig.Version, &goose.GoFunc{
			RunTx: func(ctx context.Context, tx *sql.Tx) error {
				return up(ctx, tx, dialect)
			},
		}, nil))
	}

	m.store = &store{table: table, dialect: db.Dialect(), migrations: m.byVersion}

	popts := []goose.ProviderOption{
		goose.WithStore(m.store),
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(gooseMigrations...),
	}
	if m.log != nil {
		popts = append(popts, goose.WithVerbose(true), goose.WithLogger(&gooseLogger{m.log}))
	}

	provider, err := goose.NewProvider(goose.DialectCustom, db.DB, nil, popts...)
	if err != nil {
		return nil, errors.Join(ErrInitMigrator, err)
	}
	m.provider = provider

	return m, nil
}

// Table returns the migrations table name.
func (m *Migrator) Table() string { return m.store.table }

// Migrations returns every known migration in version order.
func (m *Migrator) Migrations() []Migration { return slices.Clone(m.migrations) }

// EnsureTable creates the migrations table when it is missing.
func (m *Migrator) EnsureTable(ctx context.Context) error {
	exists, err := m.store.TableExists(ctx, m.db)
	if err != nil {
		return errors.Join(ErrCreateMigrationsTable, err)
	}
	if exists {
		return nil
	}

	err = WithTx(ctx, m.db.DB, func(tx *sql.Tx) error {
		if err := m.store.CreateVersionTable(ctx, tx); err != nil {
			return err
		}
		return m.store.Insert(ctx, tx, insertInit)
	})
	if err != nil {
		return errors.Join(ErrCreateMigrationsTable, err)
	}
	return nil
}

// Pending returns the migrations that have not run yet, in version order.
func (m *Migrator) Pending(ctx context.Context) ([]Migration, error) {
	if err := m.EnsureTable(ctx); err != nil {
		return nil, err
	}

	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, err
	}

	var pending []Migration
	for _, s := range statuses {
		if s.State == goose.StatePending {
			pending = append(pending, m.byVersion[s.Source.Version])
		}
	}
	return pending, nil
}

// Applied returns the versions that already ran, in version order.
func (m *Migrator) Applied(ctx context.Context) ([]int64, error) {
	if err := m.EnsureTable(ctx); err != nil {
		return nil, err
	}

	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, err
	}

	var applied []int64
	for _, s := range statuses {
		if s.State == goose.StateApplied {
			applied = append(applied, s.Source.Version)
		}
	}
	return applied, nil
}

// Migrate applies the pending migrations one by one and stops at the first
// failure. It returns one Result per attempted migration; the error is
// non-nil only when the pending list itself could not be read.
func (m *Migrator) Migrate(ctx context.Context) ([]Result, error) {
	pending, err := m.Pending(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(pending))
	for _, mig := range pending {
		_, err := m.provider.UpByOne(ctx)
		if err != nil {
			var partial *goose.PartialError
			if errors.As(err, &partial) && partial.Err != nil {
				err = partial.Err
			}
			results = append(results, Result{Migration: mig, Err: err})
			if m.log != nil {
				m.log.ErrorContext(ctx, "migration failed", "version", mig.Version, "error", err)
			}
			break
		}
		results = append(results, Result{Migration: mig})
	}
	return results, nil
}

// Failed returns the first failed result, if any.
func Failed(results []Result) (Result, bool) {
	for _, r := range results {
		if r.Err != nil {
			return r, true
		}
	}
	return Result{}, false
}

type gooseLogger struct {
	log *slog.Logger
}

func (g *gooseLogger) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...))
}

func (g *gooseLogger) Fatalf(format string, args ...any) {
	g.log.Error(fmt.Sprintf(format, args...))
}
