package schema

import "sort"

// ConstraintKind identifies what a constraint enforces.
type ConstraintKind string

const (
	KindPrimaryKey ConstraintKind = "PRIMARY KEY"
	KindUnique     ConstraintKind = "UNIQUE"
	KindNotNull    ConstraintKind = "NOT NULL"
	KindCheck      ConstraintKind = "CHECK"
	KindForeignKey ConstraintKind = "FOREIGN KEY"
)

// Constraint represents a single table or column constraint.
// For CHECK constraints Check holds the boolean expression verbatim.
// For FOREIGN KEY constraints RefTable/RefColumns/OnDelete are set.
type Constraint struct {
	Name       string
	Kind       ConstraintKind
	Columns    []string
	Check      string
	RefTable   string
	RefColumns []string
	OnDelete   string
}

// Column represents a table column with its inline constraints.
// Type and Default keep the declared text as written (e.g. VARCHAR(50),
// now(), 'pending'::text).
type Column struct {
	Name        string
	Type        string
	NotNull     bool
	Default     string
	Comment     string
	Constraints []Constraint
}

// Index represents a database index. Exprs keeps each indexed column or
// expression verbatim, e.g. lower(email).
type Index struct {
	Name   string
	Table  string
	Unique bool
	Method string
	Exprs  []string
}

// Table represents a parsed database table.
type Table struct {
	Name        string
	Columns     []Column
	Constraints []Constraint
	Indexes     []Index
	Comment     string
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// PrimaryKey returns the primary key column names, in declaration order.
// Empty when the table has no primary key.
func (t *Table) PrimaryKey() []string {
	for _, c := range t.Columns {
		for _, con := range c.Constraints {
			if con.Kind == KindPrimaryKey {
				return []string{c.Name}
			}
		}
	}
	for _, con := range t.Constraints {
		if con.Kind == KindPrimaryKey {
			return con.Columns
		}
	}
	return nil
}

// ForeignKeys returns every foreign key constraint on the table, column-scope
// first in column order, then table-scope in declaration order. Callers cannot
// tell whether a constraint was declared inline or added afterwards.
func (t *Table) ForeignKeys() []Constraint {
	var out []Constraint
	for _, c := range t.Columns {
		for _, con := range c.Constraints {
			if con.Kind == KindForeignKey {
				out = append(out, con)
			}
		}
	}
	for _, con := range t.Constraints {
		if con.Kind == KindForeignKey {
			out = append(out, con)
		}
	}
	return out
}

// Checks returns the table-scope CHECK constraints in declaration order.
func (t *Table) Checks() []Constraint {
	var out []Constraint
	for _, con := range t.Constraints {
		if con.Kind == KindCheck {
			out = append(out, con)
		}
	}
	return out
}

// Schema is the canonical model built from a DDL script. Tables keep their
// definition order internally; Names exposes them sorted for rendering.
type Schema struct {
	tables map[string]*Table
	order  []string
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{tables: make(map[string]*Table)}
}

func (s *Schema) add(t *Table) {
	s.tables[t.Name] = t
	s.order = append(s.order, t.Name)
}

// Table returns the table with the given name, or nil.
func (s *Schema) Table(name string) *Table {
	return s.tables[name]
}

// Has reports whether the schema defines the named table.
func (s *Schema) Has(name string) bool {
	_, ok := s.tables[name]
	return ok
}

// Len returns the number of tables.
func (s *Schema) Len() int {
	return len(s.order)
}

// Names returns all table names sorted alphabetically.
func (s *Schema) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	sort.Strings(out)
	return out
}

// Filter returns a new schema containing only the tables keep accepts,
// preserving definition order.
func (s *Schema) Filter(keep func(name string) bool) *Schema {
	out := NewSchema()
	for _, name := range s.order {
		if keep(name) {
			out.add(s.tables[name])
		}
	}
	return out
}
