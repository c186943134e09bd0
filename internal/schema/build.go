package schema

import (
	"fmt"
	"strings"
)

// Builder folds an ordered stream of facts into a Schema. Constraint and
// index facts append to the target table's collections; they never replace
// earlier facts. Every fact except a table definition requires its target
// table to already exist.
type Builder struct {
	schema *Schema
}

// NewBuilder returns a builder over an empty schema.
func NewBuilder() *Builder {
	return &Builder{schema: NewSchema()}
}

// Apply merges one fact into the schema under construction.
func (b *Builder) Apply(f Fact) error {
	switch f := f.(type) {
	case TableFact:
		return b.applyTable(f.Table)
	case ConstraintFact:
		t := b.schema.Table(f.Table)
		if t == nil {
			return &UnknownTableError{Table: f.Table, Stmt: f.Stmt}
		}
		con := f.Constraint
		if con.Kind == KindPrimaryKey && len(t.PrimaryKey()) > 0 {
			return &ParseError{Stmt: f.Stmt, Msg: fmt.Sprintf("table %q already has a primary key", t.Name)}
		}
		if con.Name == "" {
			con.Name = synthesizeName(t.Name, con)
		}
		t.Constraints = append(t.Constraints, con)
	case CommentFact:
		t := b.schema.Table(f.Table)
		if t == nil {
			return &UnknownTableError{Table: f.Table, Stmt: f.Stmt}
		}
		if f.Column == "" {
			t.Comment = f.Text
			return nil
		}
		col := t.Column(f.Column)
		if col == nil {
			return &UnknownTableError{Table: f.Table + "." + f.Column, Stmt: f.Stmt}
		}
		col.Comment = f.Text
	case IndexFact:
		t := b.schema.Table(f.Index.Table)
		if t == nil {
			return &UnknownTableError{Table: f.Index.Table, Stmt: f.Stmt}
		}
		idx := f.Index
		if idx.Name == "" {
			idx.Name = fmt.Sprintf("%s_idx%d", t.Name, len(t.Indexes)+1)
		}
		t.Indexes = append(t.Indexes, idx)
	case DefaultFact:
		t := b.schema.Table(f.Table)
		if t == nil {
			return &UnknownTableError{Table: f.Table, Stmt: f.Stmt}
		}
		col := t.Column(f.Column)
		if col == nil {
			return &UnknownTableError{Table: f.Table + "." + f.Column, Stmt: f.Stmt}
		}
		col.Default = f.Expr
	default:
		return fmt.Errorf("unhandled fact type %T", f)
	}
	return nil
}

func (b *Builder) applyTable(t *Table) error {
	if b.schema.Has(t.Name) {
		return &ParseError{Stmt: "CREATE TABLE " + t.Name, Msg: fmt.Sprintf("table %q defined twice", t.Name)}
	}
	pks := 0
	for i := range t.Columns {
		col := &t.Columns[i]
		for j := range col.Constraints {
			con := &col.Constraints[j]
			if con.Kind == KindPrimaryKey {
				pks++
			}
			if con.Name == "" {
				con.Name = synthesizeName(t.Name, *con)
			}
		}
	}
	for i := range t.Constraints {
		con := &t.Constraints[i]
		if con.Kind == KindPrimaryKey {
			pks++
		}
		if con.Name == "" {
			con.Name = synthesizeName(t.Name, *con)
		}
	}
	if pks > 1 {
		return &ParseError{Stmt: "CREATE TABLE " + t.Name, Msg: fmt.Sprintf("table %q has multiple primary keys", t.Name)}
	}
	b.schema.add(t)
	return nil
}

// Schema returns the schema built so far. The caller treats it as read-only
// once building is done.
func (b *Builder) Schema() *Schema {
	return b.schema
}

// synthesizeName builds a deterministic constraint name where the source
// omitted one, following the table_column_kind shape pg_dump itself emits so
// inline and deferred declarations end up indistinguishable.
func synthesizeName(table string, con Constraint) string {
	base := strings.ReplaceAll(table, ".", "_")
	col := ""
	if len(con.Columns) > 0 {
		col = "_" + con.Columns[0]
	}
	switch con.Kind {
	case KindPrimaryKey:
		return base + "_pkey"
	case KindUnique:
		return base + col + "_key"
	case KindCheck:
		return base + col + "_check"
	case KindForeignKey:
		return base + col + "_fkey"
	case KindNotNull:
		return base + col + "_not_null"
	}
	return base + col
}
