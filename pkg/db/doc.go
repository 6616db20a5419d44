// Package db opens database/sql connections for MySQL, PostgreSQL and SQLite,
// and runs the application's schema migrations.
//
// PostgreSQL connections go through a pgx pool exposed as *sql.DB, MySQL uses
// go-sql-driver/mysql and SQLite the pure Go modernc.org/sqlite driver:
//
//	conn, err := db.Open(ctx, db.Config{Type: "mysql", Server: "localhost", Name: "simple-fw", User: "root"})
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
// Migrations are plain Go functions applied in version order by a goose
// provider that records each run in a configurable table:
//
//	m, err := db.NewMigrator(conn, "migrations", migrations.All()...)
//	pending, err := m.Pending(ctx)
//	results, err := m.Migrate(ctx)
package db
