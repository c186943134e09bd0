package db

import (
	"context"
	"database/sql"
	"strings"
)

// LoadSQLiteDDL reads the stored CREATE statements out of sqlite_master in
// creation order, returning one DDL script ready for the text pipeline.
// Internal sqlite_* objects are skipped.
func LoadSQLiteDDL(ctx context.Context, sqldb *sql.DB) (string, error) {
	rows, err := sqldb.QueryContext(ctx, `
		SELECT sql FROM sqlite_master
		WHERE sql IS NOT NULL AND name NOT LIKE 'sqlite_%'
		ORDER BY rowid`)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var b strings.Builder
	for rows.Next() {
		var stmt string
		if err := rows.Scan(&stmt); err != nil {
			return "", err
		}
		b.WriteString(strings.TrimSpace(stmt))
		b.WriteString(";\n")
	}
	return b.String(), rows.Err()
}
