package sqlbuilder

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Dialect names a supported SQL flavour.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "pgsql"
	SQLite   Dialect = "sqlite"
)

// ParseDialect resolves a dialect name, accepting the common aliases.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mysql", "mariadb":
		return MySQL, nil
	case "pgsql", "postgres", "postgresql", "pg":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDialect, name)
}

// Quote quotes an identifier. SQLite identifiers are left as is.
func (d Dialect) Quote(ident string) string {
	switch d {
	case MySQL:
		return "`" + ident + "`"
	case Postgres:
		return `"` + ident + `"`
	default:
		return ident
	}
}

// Placeholder returns the positional placeholder for the n-th argument (1-based).
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// SupportsReturning reports whether INSERT ... RETURNING is available.
func (d Dialect) SupportsReturning() bool {
	return d == Postgres || d == SQLite
}

func (d Dialect) String() string { return string(d) }

// Runner is the subset of *sql.DB, *sql.Tx and *sql.Conn the builders need.
type Runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
