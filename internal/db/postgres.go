package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/satyammistari/schemadoc/internal/schema"
)

// IntrospectPostgres reads a live PostgreSQL schema into the same model the
// DDL parser builds, by emitting the equivalent fact stream: one table fact
// per base table, then constraint, index and comment facts on top.
func IntrospectPostgres(ctx context.Context, sqldb *sql.DB, schemaName string) (*schema.Schema, error) {
	if schemaName == "" {
		schemaName = "public"
	}
	b := schema.NewBuilder()

	names, err := tableNames(ctx, sqldb, schemaName)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	for _, name := range names {
		t, err := introspectTable(ctx, sqldb, schemaName, name)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}
		if err := b.Apply(schema.TableFact{Table: t}); err != nil {
			return nil, err
		}
	}
	for _, name := range names {
		facts, err := constraintFacts(ctx, sqldb, schemaName, name)
		if err != nil {
			return nil, fmt.Errorf("constraints of %s: %w", name, err)
		}
		for _, f := range facts {
			if err := b.Apply(f); err != nil {
				return nil, err
			}
		}
		if err := applyIndexFacts(ctx, sqldb, b, schemaName, name); err != nil {
			return nil, fmt.Errorf("indexes of %s: %w", name, err)
		}
	}
	if err := applyCommentFacts(ctx, sqldb, b, schemaName); err != nil {
		return nil, fmt.Errorf("comments: %w", err)
	}
	return b.Schema(), nil
}

func tableNames(ctx context.Context, sqldb *sql.DB, schemaName string) ([]string, error) {
	rows, err := sqldb.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name`, schemaName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func introspectTable(ctx context.Context, sqldb *sql.DB, schemaName, table string) (*schema.Table, error) {
	rows, err := sqldb.QueryContext(ctx, `
		SELECT column_name, data_type, udt_name,
		       COALESCE(character_maximum_length, 0),
		       is_nullable, COALESCE(column_default, '')
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`, schemaName, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	t := &schema.Table{Name: table}
	for rows.Next() {
		var name, dataType, udt, nullable, def string
		var maxLen int
		if err := rows.Scan(&name, &dataType, &udt, &maxLen, &nullable, &def); err != nil {
			return nil, err
		}
		t.Columns = append(t.Columns, schema.Column{
			Name:    name,
			Type:    displayType(dataType, udt, maxLen),
			NotNull: nullable == "NO",
			Default: def,
		})
	}
	return t, rows.Err()
}

// displayType maps information_schema's verbose type names back to the
// spellings a DDL script would use.
func displayType(dataType, udt string, maxLen int) string {
	switch dataType {
	case "character varying":
		if maxLen > 0 {
			return fmt.Sprintf("varchar(%d)", maxLen)
		}
		return "varchar"
	case "character":
		if maxLen > 0 {
			return fmt.Sprintf("char(%d)", maxLen)
		}
		return "char"
	case "timestamp with time zone":
		return "timestamptz"
	case "timestamp without time zone":
		return "timestamp"
	case "USER-DEFINED":
		return udt
	case "ARRAY":
		if strings.HasPrefix(udt, "_") {
			return udt[1:] + "[]"
		}
		return "array"
	default:
		return dataType
	}
}

// keyColumn is one (constraint, column) pair from key_column_usage, scanned
// in ordinal position order.
type keyColumn struct {
	Constraint string
	Kind       string
	Column     string
}

// refColumn is one referenced-side column of a foreign key, in the key order
// of the constraint it points at.
type refColumn struct {
	Constraint string
	DeleteRule string
	Table      string
	Column     string
}

// checkClause is one CHECK constraint body.
type checkClause struct {
	Constraint string
	Clause     string
}

// constraintFacts builds primary key, unique, foreign key and check
// constraint facts for one table, keyed and sorted by constraint name so
// repeated runs emit the same stream. Local and referenced columns are read
// in separate queries; joining key_column_usage against
// constraint_column_usage would cross-multiply the rows of composite keys.
func constraintFacts(ctx context.Context, sqldb *sql.DB, schemaName, table string) ([]schema.Fact, error) {
	rows, err := sqldb.QueryContext(ctx, `
		SELECT tc.constraint_name, tc.constraint_type, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = tc.constraint_name
		 AND kcu.constraint_schema = tc.constraint_schema
		WHERE tc.table_schema = $1 AND tc.table_name = $2
		  AND tc.constraint_type IN ('PRIMARY KEY', 'UNIQUE', 'FOREIGN KEY')
		ORDER BY tc.constraint_name, kcu.ordinal_position`, schemaName, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var keys []keyColumn
	for rows.Next() {
		var k keyColumn
		if err := rows.Scan(&k.Constraint, &k.Kind, &k.Column); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Referenced side of every foreign key in the schema, walked through the
	// unique constraint it targets so columns come back in key order.
	refRows, err := sqldb.QueryContext(ctx, `
		SELECT rc.constraint_name, rc.delete_rule, kcu.table_name, kcu.column_name
		FROM information_schema.referential_constraints rc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = rc.unique_constraint_name
		 AND kcu.constraint_schema = rc.unique_constraint_schema
		WHERE rc.constraint_schema = $1
		ORDER BY rc.constraint_name, kcu.ordinal_position`, schemaName)
	if err != nil {
		return nil, err
	}
	defer refRows.Close()
	var refs []refColumn
	for refRows.Next() {
		var r refColumn
		if err := refRows.Scan(&r.Constraint, &r.DeleteRule, &r.Table, &r.Column); err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}
	if err := refRows.Err(); err != nil {
		return nil, err
	}

	checkRows, err := sqldb.QueryContext(ctx, `
		SELECT tc.constraint_name, cc.check_clause
		FROM information_schema.table_constraints tc
		JOIN information_schema.check_constraints cc
		  ON cc.constraint_name = tc.constraint_name
		 AND cc.constraint_schema = tc.constraint_schema
		WHERE tc.table_schema = $1 AND tc.table_name = $2
		  AND tc.constraint_type = 'CHECK'
		  AND cc.check_clause NOT ILIKE '% IS NOT NULL'
		ORDER BY tc.constraint_name`, schemaName, table)
	if err != nil {
		return nil, err
	}
	defer checkRows.Close()
	var checks []checkClause
	for checkRows.Next() {
		var c checkClause
		if err := checkRows.Scan(&c.Constraint, &c.Clause); err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	if err := checkRows.Err(); err != nil {
		return nil, err
	}

	return buildConstraintFacts(table, keys, refs, checks), nil
}

// buildConstraintFacts folds the scanned catalog rows into constraint facts.
// Rows arrive in ordinal position order, so composite keys keep their declared
// column order and each column appears exactly once.
func buildConstraintFacts(table string, keys []keyColumn, refs []refColumn, checks []checkClause) []schema.Fact {
	type conAgg struct {
		kind     string
		cols     []string
		refTable string
		refCols  []string
		onDelete string
		check    string
	}
	cons := make(map[string]*conAgg)
	for _, k := range keys {
		agg := cons[k.Constraint]
		if agg == nil {
			agg = &conAgg{kind: k.Kind}
			cons[k.Constraint] = agg
		}
		agg.cols = append(agg.cols, k.Column)
	}
	for _, r := range refs {
		agg := cons[r.Constraint]
		if agg == nil || agg.kind != "FOREIGN KEY" {
			continue
		}
		agg.refTable = r.Table
		agg.refCols = append(agg.refCols, r.Column)
		agg.onDelete = r.DeleteRule
	}
	for _, c := range checks {
		cons[c.Constraint] = &conAgg{kind: "CHECK", check: strings.TrimSpace(c.Clause)}
	}

	names := make([]string, 0, len(cons))
	for name := range cons {
		names = append(names, name)
	}
	sort.Strings(names)

	var facts []schema.Fact
	for _, name := range names {
		agg := cons[name]
		con := schema.Constraint{Name: name, Columns: agg.cols}
		switch agg.kind {
		case "PRIMARY KEY":
			con.Kind = schema.KindPrimaryKey
		case "UNIQUE":
			con.Kind = schema.KindUnique
		case "FOREIGN KEY":
			con.Kind = schema.KindForeignKey
			con.RefTable = agg.refTable
			con.RefColumns = agg.refCols
			if agg.onDelete != "" && agg.onDelete != "NO ACTION" {
				con.OnDelete = agg.onDelete
			}
		case "CHECK":
			con.Kind = schema.KindCheck
			con.Check = agg.check
		}
		facts = append(facts, schema.ConstraintFact{Table: table, Constraint: con, Stmt: "pg constraint " + name})
	}
	return facts
}

// applyIndexFacts feeds each pg_indexes definition through the statement
// classifier, so live indexes take the exact path file-based ones do.
// Constraint-backing indexes (primary keys, unique constraints) are already
// covered by constraint facts and are skipped.
func applyIndexFacts(ctx context.Context, sqldb *sql.DB, b *schema.Builder, schemaName, table string) error {
	rows, err := sqldb.QueryContext(ctx, `
		SELECT i.indexdef
		FROM pg_indexes i
		WHERE i.schemaname = $1 AND i.tablename = $2
		  AND NOT EXISTS (
		    SELECT 1 FROM information_schema.table_constraints tc
		    WHERE tc.table_schema = i.schemaname
		      AND tc.table_name = i.tablename
		      AND tc.constraint_name = i.indexname
		  )
		ORDER BY i.indexname`, schemaName, table)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var def string
		if err := rows.Scan(&def); err != nil {
			return err
		}
		fact, err := schema.Classify(def)
		if err != nil {
			return err
		}
		if fact == nil {
			continue
		}
		if err := b.Apply(fact); err != nil {
			return err
		}
	}
	return rows.Err()
}

func applyCommentFacts(ctx context.Context, sqldb *sql.DB, b *schema.Builder, schemaName string) error {
	rows, err := sqldb.QueryContext(ctx, `
		SELECT c.relname, COALESCE(a.attname, ''), d.description
		FROM pg_description d
		JOIN pg_class c ON c.oid = d.objoid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		LEFT JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum = d.objsubid
		WHERE n.nspname = $1 AND c.relkind = 'r'
		ORDER BY c.relname, d.objsubid`, schemaName)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var table, column, text string
		if err := rows.Scan(&table, &column, &text); err != nil {
			return err
		}
		fact := schema.CommentFact{Table: table, Column: column, Text: text, Stmt: "pg comment on " + table}
		if err := b.Apply(fact); err != nil {
			return err
		}
	}
	return rows.Err()
}
