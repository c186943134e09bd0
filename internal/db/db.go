// Package db documents schemas living in a database instead of a DDL file.
// SQLite keeps the original CREATE statements around, so those go through
// the regular text pipeline; PostgreSQL is introspected into the same fact
// stream the parser produces.
package db

import (
	"database/sql"
	"strings"

	// The underscore imports register the "pgx" and "sqlite3" driver names.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Open opens a database from a connection string.
// Formats: "postgres://...", "postgresql://...", "sqlite:path" or "sqlite://path"
func Open(conn string) (*sql.DB, string, error) {
	driver, dsn := parseConn(conn)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, "", err
	}
	return db, driver, nil
}

func parseConn(conn string) (driver, dsn string) {
	if strings.HasPrefix(conn, "sqlite://") {
		return "sqlite3", strings.TrimPrefix(conn, "sqlite://")
	}
	if strings.HasPrefix(conn, "sqlite:") {
		return "sqlite3", strings.TrimPrefix(conn, "sqlite:")
	}
	return "pgx", conn
}
