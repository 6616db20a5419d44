package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3/database"

	"github.com/dmitrymomot/simplefw/pkg/sqlbuilder"
)

var insertInit = database.InsertRequest{Version: 0}

// store keeps goose's bookkeeping in the application's migrations table:
// one row per applied migration with its name, description and run time.
type store struct {
	table      string
	dialect    sqlbuilder.Dialect
	migrations map[int64]Migration
}

var _ database.Store = (*store)(nil)

func (s *store) Tablename() string { return s.table }

func (s *store) CreateVersionTable(ctx context.Context, db database.DBTxConn) error {
	return sqlbuilder.NewSchema(s.dialect).
		CreateTable(s.table, true).
		Identity("migration_id", "int").
		BigInt("version", false).
		String("migration_name", 250, false).
		Text("description", true).
		DateTime("executed_at", true).
		Commit(ctx, db)
}

func (s *store) Insert(ctx context.Context, db database.DBTxConn, req database.InsertRequest) error {
	name, desc := "init", "Création de la table des migrations"
	if m, ok := s.migrations[req.Version]; ok {
		name, desc = m.Name, m.Description
	}

	_, err := sqlbuilder.New(s.dialect).
		Insert(s.table, map[string]any{
			"version":        req.Version,
			"migration_name": name,
			"description":    desc,
			"executed_at":    time.Now().UTC(),
		}).
		Commit(ctx, db)
	if err != nil {
		return fmt.Errorf("insert version %d: %w", req.Version, err)
	}
	return nil
}

func (s *store) Delete(ctx context.Context, db database.DBTxConn, version int64) error {
	_, err := sqlbuilder.New(s.dialect).
		Delete(s.table, "version = :version").
		SetParam("version", version).
		Commit(ctx, db)
	return err
}

func (s *store) GetMigration(ctx context.Context, db database.DBTxConn, version int64) (*database.GetMigrationResult, error) {
	row, err := sqlbuilder.New(s.dialect).
		Select("executed_at").
		From(s.table, "").
		Where("version = :version").
		SetParam("version", version).
		OrderByDesc("migration_id").
		Limit(1, -1).
		Row(ctx, db)
	if err != nil {
		return nil, err
	}

	var executedAt any
	if err := row.Scan(&executedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", database.ErrVersionNotFound, version)
		}
		return nil, err
	}
	return &database.GetMigrationResult{Timestamp: asTime(executedAt), IsApplied: true}, nil
}

func (s *store) GetLatestVersion(ctx context.Context, db database.DBTxConn) (int64, error) {
	row, err := sqlbuilder.New(s.dialect).
		Select("MAX(version)").
		From(s.table, "").
		Row(ctx, db)
	if err != nil {
		return -1, err
	}

	var version sql.NullInt64
	if err := row.Scan(&version); err != nil {
		return -1, err
	}
	if !version.Valid {
		return -1, database.ErrVersionNotFound
	}
	return version.Int64, nil
}

func (s *store) ListMigrations(ctx context.Context, db database.DBTxConn) ([]*database.ListMigrationsResult, error) {
	rows, err := sqlbuilder.New(s.dialect).
		Select("version").
		From(s.table, "").
		OrderByDesc("migration_id").
		Rows(ctx, db)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*database.ListMigrationsResult
	for rows.Next() {
		var version int64
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		list = append(list, &database.ListMigrationsResult{Version: version, IsApplied: true})
	}
	return list, rows.Err()
}

// TableExists lets goose skip its own existence probe.
func (s *store) TableExists(ctx context.Context, db database.DBTxConn) (bool, error) {
	return Exists(ctx, db, s.dialect, s.table)
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		return parseTime(t)
	case []byte:
		return parseTime(string(t))
	}
	return time.Time{}
}

func parseTime(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999-07:00",
		time.RFC3339Nano,
		time.DateTime,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
