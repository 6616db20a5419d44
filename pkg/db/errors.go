package db

import "errors"

var (
	ErrFailedToParseDBConfig    = errors.New("db: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("db: failed to open database connection")
	ErrHealthcheckFailed        = errors.New("db: healthcheck failed")
	ErrCreateMigrationsTable    = errors.New("db migrator: failed to create migrations table")
	ErrInitMigrator             = errors.New("db migrator: failed to initialize")
	ErrDuplicateVersion         = errors.New("db migrator: duplicate migration version")
	ErrApplyMigrations          = errors.New("db migrator: failed to apply migrations")
)
