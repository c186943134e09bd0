package schema

import (
	"errors"
	"strings"
)

// DefaultIndexMethod is assumed when CREATE INDEX omits a USING clause.
const DefaultIndexMethod = "btree"

// Fact is one normalized piece of schema information extracted from a single
// statement. Facts are applied to a Builder in statement order.
type Fact interface{ fact() }

// TableFact introduces a new table with its columns and inline constraints.
type TableFact struct {
	Table *Table
}

// ConstraintFact adds a constraint to an already-defined table.
type ConstraintFact struct {
	Table      string
	Constraint Constraint
	Stmt       string
}

// CommentFact attaches a comment to a table, or to a column when Column is
// non-empty.
type CommentFact struct {
	Table  string
	Column string
	Text   string
	Stmt   string
}

// IndexFact adds an index to an already-defined table.
type IndexFact struct {
	Index Index
	Stmt  string
}

// DefaultFact sets a column default after table creation
// (ALTER TABLE ... ALTER COLUMN ... SET DEFAULT).
type DefaultFact struct {
	Table  string
	Column string
	Expr   string
	Stmt   string
}

func (TableFact) fact()      {}
func (ConstraintFact) fact() {}
func (CommentFact) fact()    {}
func (IndexFact) fact()      {}
func (DefaultFact) fact()    {}

// errUnsupported marks a clause outside the recognized subset inside an
// otherwise recognized statement shape. Classify turns it into a skip.
var errUnsupported = errors.New("unsupported clause")

// Classify parses one statement and extracts its fact. A (nil, nil) return
// means the statement is outside the supported subset and should be skipped.
func Classify(stmt string) (Fact, error) {
	sc := newScanner(normalizeSpace(stmt))
	switch {
	case sc.keyword("CREATE", "TABLE"):
		return parseCreateTable(sc, stmt)
	case sc.keyword("CREATE", "UNIQUE", "INDEX"):
		return parseCreateIndex(sc, true, stmt)
	case sc.keyword("CREATE", "INDEX"):
		return parseCreateIndex(sc, false, stmt)
	case sc.keyword("ALTER", "TABLE"):
		return parseAlterTable(sc, stmt)
	case sc.keyword("COMMENT", "ON", "TABLE"):
		return parseComment(sc, false, stmt)
	case sc.keyword("COMMENT", "ON", "COLUMN"):
		return parseComment(sc, true, stmt)
	default:
		return nil, nil
	}
}

func parseCreateTable(sc *scanner, stmt string) (Fact, error) {
	sc.keyword("IF", "NOT", "EXISTS")
	name, ok := sc.qualifiedIdent()
	if !ok {
		return nil, &ParseError{Stmt: stmt, Msg: "missing table name"}
	}
	body, err := sc.parenBlock()
	if err != nil {
		return nil, &ParseError{Stmt: stmt, Msg: "missing table body"}
	}

	t := &Table{Name: stripPublic(name)}
	for _, item := range splitTopLevel(body) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		isc := newScanner(item)
		switch upper(isc.peekWord()) {
		case "CONSTRAINT", "PRIMARY", "FOREIGN", "UNIQUE", "CHECK":
			con, err := parseConstraintClause(isc, stmt)
			if errors.Is(err, errUnsupported) {
				// named EXCLUDE and other constraint forms outside the subset
				continue
			}
			if err != nil {
				return nil, err
			}
			t.Constraints = append(t.Constraints, con)
		case "LIKE", "EXCLUDE":
			// table options outside the documented subset
		default:
			col, err := parseColumnDef(isc, stmt)
			if err != nil {
				return nil, err
			}
			t.Columns = append(t.Columns, col)
		}
	}
	return TableFact{Table: t}, nil
}

// parseConstraintClause parses a table-scope constraint, with or without a
// leading CONSTRAINT name.
func parseConstraintClause(sc *scanner, stmt string) (Constraint, error) {
	var con Constraint
	if sc.keyword("CONSTRAINT") {
		name, ok := sc.ident()
		if !ok {
			return con, &ParseError{Stmt: stmt, Msg: "missing constraint name"}
		}
		con.Name = name
	}
	switch {
	case sc.keyword("PRIMARY", "KEY"):
		con.Kind = KindPrimaryKey
		cols, err := sc.identListInParens()
		if err != nil {
			return con, &ParseError{Stmt: stmt, Msg: "primary key without column list"}
		}
		con.Columns = cols
	case sc.keyword("UNIQUE"):
		con.Kind = KindUnique
		cols, err := sc.identListInParens()
		if err != nil {
			return con, &ParseError{Stmt: stmt, Msg: "unique constraint without column list"}
		}
		con.Columns = cols
	case sc.keyword("CHECK"):
		con.Kind = KindCheck
		expr, err := sc.parenBlock()
		if err != nil {
			return con, &ParseError{Stmt: stmt, Msg: "check constraint without expression"}
		}
		con.Check = expr
	case sc.keyword("FOREIGN", "KEY"):
		con.Kind = KindForeignKey
		cols, err := sc.identListInParens()
		if err != nil {
			return con, &ParseError{Stmt: stmt, Msg: "foreign key without column list"}
		}
		con.Columns = cols
		if !sc.keyword("REFERENCES") {
			return con, &ParseError{Stmt: stmt, Msg: "foreign key without REFERENCES clause"}
		}
		if err := scanRef(sc, &con, stmt); err != nil {
			return con, err
		}
	default:
		return con, errUnsupported
	}
	return con, nil
}

// scanRef parses "<table> (<cols>) [ON DELETE <action>] ..." after a
// REFERENCES keyword, filling in the foreign key payload.
func scanRef(sc *scanner, con *Constraint, stmt string) error {
	tbl, ok := sc.qualifiedIdent()
	if !ok {
		return &ParseError{Stmt: stmt, Msg: "foreign key references no table"}
	}
	con.RefTable = stripPublic(tbl)
	cols, err := sc.identListInParens()
	if err != nil {
		return &ParseError{Stmt: stmt, Msg: "foreign key references no column list"}
	}
	con.RefColumns = cols
	for {
		switch {
		case sc.keyword("ON", "DELETE"):
			con.OnDelete = scanRefAction(sc)
		case sc.keyword("ON", "UPDATE"):
			scanRefAction(sc)
		case sc.keyword("NOT", "DEFERRABLE"), sc.keyword("DEFERRABLE"),
			sc.keyword("INITIALLY", "DEFERRED"), sc.keyword("INITIALLY", "IMMEDIATE"),
			sc.keyword("MATCH", "FULL"), sc.keyword("MATCH", "SIMPLE"):
			// accepted, not modeled
		default:
			return nil
		}
	}
}

func scanRefAction(sc *scanner) string {
	switch {
	case sc.keyword("SET", "NULL"):
		return "SET NULL"
	case sc.keyword("SET", "DEFAULT"):
		return "SET DEFAULT"
	case sc.keyword("NO", "ACTION"):
		return "NO ACTION"
	case sc.keyword("CASCADE"):
		return "CASCADE"
	case sc.keyword("RESTRICT"):
		return "RESTRICT"
	default:
		return upper(sc.word())
	}
}

func parseColumnDef(sc *scanner, stmt string) (Column, error) {
	name, ok := sc.ident()
	if !ok {
		return Column{}, &ParseError{Stmt: stmt, Msg: "missing column name"}
	}
	typ := sc.scanType()
	if typ == "" {
		return Column{}, &ParseError{Stmt: stmt, Msg: "column " + name + " has no type"}
	}
	col := Column{Name: name, Type: typ}

	pending := ""
	add := func(con Constraint) {
		con.Name = pending
		pending = ""
		con.Columns = []string{col.Name}
		col.Constraints = append(col.Constraints, con)
	}

	for !sc.eof() {
		switch {
		case sc.keyword("CONSTRAINT"):
			n, ok := sc.ident()
			if !ok {
				return col, &ParseError{Stmt: stmt, Msg: "missing constraint name"}
			}
			pending = n
		case sc.keyword("NOT", "NULL"):
			col.NotNull = true
		case sc.keyword("NULL"):
			col.NotNull = false
		case sc.keyword("PRIMARY", "KEY"):
			col.NotNull = true
			add(Constraint{Kind: KindPrimaryKey})
		case sc.keyword("UNIQUE"):
			add(Constraint{Kind: KindUnique})
		case sc.keyword("CHECK"):
			expr, err := sc.parenBlock()
			if err != nil {
				return col, &ParseError{Stmt: stmt, Msg: "check constraint without expression"}
			}
			add(Constraint{Kind: KindCheck, Check: expr})
		case sc.keyword("DEFAULT"):
			col.Default = sc.scanDefaultExpr()
		case sc.keyword("REFERENCES"):
			con := Constraint{Kind: KindForeignKey}
			if err := scanRef(sc, &con, stmt); err != nil {
				return col, err
			}
			add(con)
		default:
			// COLLATE, GENERATED and friends: tolerated, not modeled
			sc.skipToken()
		}
	}
	return col, nil
}

func parseCreateIndex(sc *scanner, unique bool, stmt string) (Fact, error) {
	sc.keyword("CONCURRENTLY")
	sc.keyword("IF", "NOT", "EXISTS")
	name := ""
	if !sc.peekKeyword("ON") {
		n, ok := sc.ident()
		if !ok {
			return nil, &ParseError{Stmt: stmt, Msg: "malformed index name"}
		}
		name = n
	}
	if !sc.keyword("ON") {
		return nil, &ParseError{Stmt: stmt, Msg: "index without target table"}
	}
	sc.keyword("ONLY")
	tbl, ok := sc.qualifiedIdent()
	if !ok {
		return nil, &ParseError{Stmt: stmt, Msg: "index without target table"}
	}
	method := DefaultIndexMethod
	if sc.keyword("USING") {
		method = sc.word()
		if method == "" {
			return nil, &ParseError{Stmt: stmt, Msg: "USING without access method"}
		}
	}
	body, err := sc.parenBlock()
	if err != nil {
		return nil, &ParseError{Stmt: stmt, Msg: "index without expression list"}
	}
	var exprs []string
	for _, e := range splitTopLevel(body) {
		e = strings.TrimSpace(e)
		if e != "" {
			exprs = append(exprs, e)
		}
	}
	if len(exprs) == 0 {
		return nil, &ParseError{Stmt: stmt, Msg: "index without expression list"}
	}
	return IndexFact{
		Index: Index{Name: name, Table: stripPublic(tbl), Unique: unique, Method: strings.ToLower(method), Exprs: exprs},
		Stmt:  stmt,
	}, nil
}

func parseAlterTable(sc *scanner, stmt string) (Fact, error) {
	sc.keyword("ONLY")
	tbl, ok := sc.qualifiedIdent()
	if !ok {
		return nil, &ParseError{Stmt: stmt, Msg: "missing table name"}
	}
	switch {
	case sc.keyword("ADD"):
		con, err := parseConstraintClause(sc, stmt)
		if errors.Is(err, errUnsupported) {
			return nil, nil // ADD COLUMN and other unsupported additions
		}
		if err != nil {
			return nil, err
		}
		return ConstraintFact{Table: stripPublic(tbl), Constraint: con, Stmt: stmt}, nil
	case sc.keyword("ALTER", "COLUMN"):
		colName, ok := sc.ident()
		if !ok {
			return nil, &ParseError{Stmt: stmt, Msg: "missing column name"}
		}
		if !sc.keyword("SET", "DEFAULT") {
			return nil, nil
		}
		expr := sc.scanDefaultExpr()
		if expr == "" {
			return nil, &ParseError{Stmt: stmt, Msg: "SET DEFAULT without expression"}
		}
		return DefaultFact{Table: stripPublic(tbl), Column: colName, Expr: expr, Stmt: stmt}, nil
	default:
		// OWNER TO, RENAME, DROP and the rest of the ALTER surface
		return nil, nil
	}
}

func parseComment(sc *scanner, column bool, stmt string) (Fact, error) {
	parts, ok := sc.qualifiedParts()
	if !ok {
		return nil, &ParseError{Stmt: stmt, Msg: "comment target missing"}
	}
	if !sc.keyword("IS") {
		return nil, &ParseError{Stmt: stmt, Msg: "comment without IS clause"}
	}
	text := ""
	if !sc.keyword("NULL") {
		lit, ok := sc.stringLit()
		if !ok {
			return nil, &ParseError{Stmt: stmt, Msg: "comment without string literal"}
		}
		text = lit
	}
	f := CommentFact{Text: text, Stmt: stmt}
	if column {
		if len(parts) < 2 {
			return nil, &ParseError{Stmt: stmt, Msg: "column comment without table qualifier"}
		}
		f.Column = parts[len(parts)-1]
		f.Table = stripPublic(strings.Join(parts[:len(parts)-1], "."))
	} else {
		f.Table = stripPublic(strings.Join(parts, "."))
	}
	return f, nil
}

// stripPublic drops the default schema qualifier so public.users and users
// name the same table, as pg_dump output mixes both forms.
func stripPublic(name string) string {
	return strings.TrimPrefix(name, "public.")
}

func upper(s string) string { return strings.ToUpper(s) }
