package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifyTable(t *testing.T, stmt string) *Table {
	t.Helper()
	fact, err := Classify(stmt)
	require.NoError(t, err)
	tf, ok := fact.(TableFact)
	require.True(t, ok, "want TableFact, got %T", fact)
	return tf.Table
}

func TestClassifyCreateTable(t *testing.T) {
	tbl := classifyTable(t, `CREATE TABLE public.users (
		id SERIAL PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		status VARCHAR(20) DEFAULT 'pending' CHECK (status IN ('pending', 'active')),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now() NOT NULL
	)`)
	assert.Equal(t, "users", tbl.Name)
	require.Len(t, tbl.Columns, 4)

	id := tbl.Columns[0]
	assert.Equal(t, "SERIAL", id.Type)
	assert.True(t, id.NotNull)
	require.Len(t, id.Constraints, 1)
	assert.Equal(t, KindPrimaryKey, id.Constraints[0].Kind)

	email := tbl.Columns[1]
	assert.Equal(t, "VARCHAR(255)", email.Type)
	assert.True(t, email.NotNull)
	require.Len(t, email.Constraints, 1)
	assert.Equal(t, KindUnique, email.Constraints[0].Kind)

	status := tbl.Columns[2]
	assert.Equal(t, "'pending'", status.Default, "default must stop before the CHECK clause")
	require.Len(t, status.Constraints, 1)
	assert.Equal(t, KindCheck, status.Constraints[0].Kind)
	assert.Equal(t, "status IN ('pending', 'active')", status.Constraints[0].Check)

	created := tbl.Columns[3]
	assert.Equal(t, "TIMESTAMP WITH TIME ZONE", created.Type)
	assert.Equal(t, "now()", created.Default, "default must stop before NOT NULL")
	assert.True(t, created.NotNull)
}

func TestClassifyCreateTableTableConstraints(t *testing.T) {
	tbl := classifyTable(t, `CREATE TABLE order_items (
		order_id INTEGER,
		product_id INTEGER,
		qty INTEGER DEFAULT 1,
		PRIMARY KEY (order_id, product_id),
		CONSTRAINT order_items_qty_check CHECK (qty > 0),
		FOREIGN KEY (order_id) REFERENCES orders (id) ON DELETE CASCADE
	)`)
	require.Len(t, tbl.Constraints, 3)

	pk := tbl.Constraints[0]
	assert.Equal(t, KindPrimaryKey, pk.Kind)
	assert.Equal(t, []string{"order_id", "product_id"}, pk.Columns)
	assert.Equal(t, []string{"order_id", "product_id"}, tbl.PrimaryKey())

	check := tbl.Constraints[1]
	assert.Equal(t, "order_items_qty_check", check.Name)
	assert.Equal(t, "qty > 0", check.Check)

	fk := tbl.Constraints[2]
	assert.Equal(t, KindForeignKey, fk.Kind)
	assert.Equal(t, []string{"order_id"}, fk.Columns)
	assert.Equal(t, "orders", fk.RefTable)
	assert.Equal(t, []string{"id"}, fk.RefColumns)
	assert.Equal(t, "CASCADE", fk.OnDelete)
}

func TestClassifyCreateTableInlineReference(t *testing.T) {
	tbl := classifyTable(t, "CREATE TABLE orders (id SERIAL PRIMARY KEY, user_id INTEGER REFERENCES users(id) ON DELETE SET NULL)")
	userID := tbl.Column("user_id")
	require.NotNil(t, userID)
	require.Len(t, userID.Constraints, 1)
	fk := userID.Constraints[0]
	assert.Equal(t, KindForeignKey, fk.Kind)
	assert.Equal(t, "users", fk.RefTable)
	assert.Equal(t, []string{"id"}, fk.RefColumns)
	assert.Equal(t, "SET NULL", fk.OnDelete)
}

func TestClassifyCreateTableQuotedIdentifiers(t *testing.T) {
	tbl := classifyTable(t, `CREATE TABLE "Order Items" ("id" integer PRIMARY KEY, "user name" text)`)
	assert.Equal(t, "Order Items", tbl.Name)
	require.Len(t, tbl.Columns, 2)
	assert.Equal(t, "id", tbl.Columns[0].Name)
	assert.Equal(t, "user name", tbl.Columns[1].Name)
}

func TestClassifyCreateIndex(t *testing.T) {
	fact, err := Classify("CREATE INDEX idx_users_email ON users (lower(email))")
	require.NoError(t, err)
	idx := fact.(IndexFact).Index
	assert.Equal(t, "idx_users_email", idx.Name)
	assert.Equal(t, "users", idx.Table)
	assert.False(t, idx.Unique)
	assert.Equal(t, DefaultIndexMethod, idx.Method)
	assert.Equal(t, []string{"lower(email)"}, idx.Exprs, "index expression must stay verbatim")
}

func TestClassifyCreateUniqueIndexUsingMethod(t *testing.T) {
	fact, err := Classify("CREATE UNIQUE INDEX ON public.users USING gin (to_tsvector('english', bio), email)")
	require.NoError(t, err)
	idx := fact.(IndexFact).Index
	assert.Empty(t, idx.Name)
	assert.Equal(t, "users", idx.Table)
	assert.True(t, idx.Unique)
	assert.Equal(t, "gin", idx.Method)
	assert.Equal(t, []string{"to_tsvector('english', bio)", "email"}, idx.Exprs)
}

func TestClassifyAlterTableAddConstraint(t *testing.T) {
	fact, err := Classify("ALTER TABLE ONLY public.orders ADD CONSTRAINT orders_user_id_fkey FOREIGN KEY (user_id) REFERENCES public.users(id) ON DELETE CASCADE")
	require.NoError(t, err)
	cf := fact.(ConstraintFact)
	assert.Equal(t, "orders", cf.Table)
	assert.Equal(t, "orders_user_id_fkey", cf.Constraint.Name)
	assert.Equal(t, KindForeignKey, cf.Constraint.Kind)
	assert.Equal(t, "users", cf.Constraint.RefTable)
	assert.Equal(t, "CASCADE", cf.Constraint.OnDelete)
}

func TestClassifyAlterTableAddPrimaryKey(t *testing.T) {
	fact, err := Classify("ALTER TABLE users ADD CONSTRAINT users_pkey PRIMARY KEY (id)")
	require.NoError(t, err)
	cf := fact.(ConstraintFact)
	assert.Equal(t, KindPrimaryKey, cf.Constraint.Kind)
	assert.Equal(t, []string{"id"}, cf.Constraint.Columns)
}

func TestClassifyAlterTableSetDefault(t *testing.T) {
	fact, err := Classify("ALTER TABLE users ALTER COLUMN status SET DEFAULT 'active'")
	require.NoError(t, err)
	df := fact.(DefaultFact)
	assert.Equal(t, "users", df.Table)
	assert.Equal(t, "status", df.Column)
	assert.Equal(t, "'active'", df.Expr)
}

func TestClassifyCreateTableToleratesNamedExcludeConstraint(t *testing.T) {
	tbl := classifyTable(t, `CREATE TABLE bookings (
		id INTEGER PRIMARY KEY,
		room TEXT,
		during TSRANGE,
		CONSTRAINT bookings_no_overlap EXCLUDE USING gist (room WITH =, during WITH &&)
	)`)
	assert.Equal(t, "bookings", tbl.Name)
	require.Len(t, tbl.Columns, 3)
	assert.Empty(t, tbl.Constraints, "an exclusion constraint is tolerated, not modeled")
}

func TestClassifyAlterTableOutsideSubset(t *testing.T) {
	for _, stmt := range []string{
		"ALTER TABLE users ADD COLUMN nickname text",
		"ALTER TABLE users OWNER TO postgres",
		"ALTER TABLE users ALTER COLUMN status DROP NOT NULL",
	} {
		fact, err := Classify(stmt)
		require.NoError(t, err, stmt)
		assert.Nil(t, fact, stmt)
	}
}

func TestClassifyAlterTableMalformedForeignKey(t *testing.T) {
	_, err := Classify("ALTER TABLE orders ADD CONSTRAINT fk FOREIGN KEY (user_id) REFERENCES users")
	var perr *ParseError
	require.Error(t, err)
	assert.True(t, errors.As(err, &perr), "want ParseError, got %T", err)
}

func TestClassifyComment(t *testing.T) {
	fact, err := Classify("COMMENT ON TABLE public.users IS 'User accounts; active only'")
	require.NoError(t, err)
	cf := fact.(CommentFact)
	assert.Equal(t, "users", cf.Table)
	assert.Empty(t, cf.Column)
	assert.Equal(t, "User accounts; active only", cf.Text)
}

func TestClassifyColumnComment(t *testing.T) {
	fact, err := Classify("COMMENT ON COLUMN users.email IS 'it''s the login email'")
	require.NoError(t, err)
	cf := fact.(CommentFact)
	assert.Equal(t, "users", cf.Table)
	assert.Equal(t, "email", cf.Column)
	assert.Equal(t, "it's the login email", cf.Text)
}

func TestClassifyCommentNullClears(t *testing.T) {
	fact, err := Classify("COMMENT ON TABLE users IS NULL")
	require.NoError(t, err)
	assert.Empty(t, fact.(CommentFact).Text)
}

func TestClassifyUnrecognizedStatements(t *testing.T) {
	for _, stmt := range []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,
		"CREATE SEQUENCE users_id_seq",
		"SET search_path TO public",
		"INSERT INTO users (id) VALUES (1)",
		"SELECT 1",
	} {
		fact, err := Classify(stmt)
		require.NoError(t, err, stmt)
		assert.Nil(t, fact, stmt)
	}
}

func TestClassifyDefaultNull(t *testing.T) {
	tbl := classifyTable(t, "CREATE TABLE t (a text DEFAULT NULL, b integer DEFAULT 0 NOT NULL)")
	assert.Equal(t, "NULL", tbl.Columns[0].Default)
	assert.Equal(t, "0", tbl.Columns[1].Default)
	assert.True(t, tbl.Columns[1].NotNull)
}

func TestClassifyDefaultCastExpression(t *testing.T) {
	tbl := classifyTable(t, "CREATE TABLE t (status character varying(20) DEFAULT 'pending'::character varying NOT NULL)")
	col := tbl.Columns[0]
	assert.Equal(t, "character varying(20)", col.Type)
	assert.Equal(t, "'pending'::character varying", col.Default)
	assert.True(t, col.NotNull)
}
