package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, b *Builder, stmt string) {
	t.Helper()
	fact, err := Classify(stmt)
	require.NoError(t, err)
	require.NotNil(t, fact, stmt)
	require.NoError(t, b.Apply(fact))
}

func TestBuilderSynthesizesConstraintNames(t *testing.T) {
	b := NewBuilder()
	apply(t, b, `CREATE TABLE users (
		id SERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE,
		age INTEGER CHECK (age >= 0),
		team_id INTEGER REFERENCES teams(id)
	)`)

	u := b.Schema().Table("users")
	require.NotNil(t, u)
	assert.Equal(t, "users_pkey", u.Columns[0].Constraints[0].Name)
	assert.Equal(t, "users_email_key", u.Columns[1].Constraints[0].Name)
	assert.Equal(t, "users_age_check", u.Columns[2].Constraints[0].Name)
	assert.Equal(t, "users_team_id_fkey", u.Columns[3].Constraints[0].Name)
}

func TestBuilderKeepsDeclaredNames(t *testing.T) {
	b := NewBuilder()
	apply(t, b, "CREATE TABLE t (id integer CONSTRAINT custom_pk PRIMARY KEY)")
	assert.Equal(t, "custom_pk", b.Schema().Table("t").Columns[0].Constraints[0].Name)
}

func TestBuilderDuplicateTable(t *testing.T) {
	b := NewBuilder()
	apply(t, b, "CREATE TABLE t (id integer)")
	fact, err := Classify("CREATE TABLE t (id integer)")
	require.NoError(t, err)
	err = b.Apply(fact)
	var perr *ParseError
	require.Error(t, err)
	assert.True(t, errors.As(err, &perr))
}

func TestBuilderConstraintOnUnknownTable(t *testing.T) {
	b := NewBuilder()
	fact, err := Classify("ALTER TABLE ghost ADD CONSTRAINT ghost_pkey PRIMARY KEY (id)")
	require.NoError(t, err)
	err = b.Apply(fact)
	var uerr *UnknownTableError
	require.Error(t, err)
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "ghost", uerr.Table)
}

func TestBuilderRejectsSecondPrimaryKey(t *testing.T) {
	b := NewBuilder()
	apply(t, b, "CREATE TABLE t (id integer PRIMARY KEY, other integer)")
	fact, err := Classify("ALTER TABLE t ADD CONSTRAINT t_other_pkey PRIMARY KEY (other)")
	require.NoError(t, err)
	err = b.Apply(fact)
	var perr *ParseError
	require.Error(t, err)
	assert.True(t, errors.As(err, &perr))
}

func TestBuilderRejectsMultipleInlinePrimaryKeys(t *testing.T) {
	b := NewBuilder()
	fact, err := Classify("CREATE TABLE t (a integer PRIMARY KEY, b integer PRIMARY KEY)")
	require.NoError(t, err)
	var perr *ParseError
	err = b.Apply(fact)
	require.Error(t, err)
	assert.True(t, errors.As(err, &perr))
}

func TestBuilderNamesUnnamedIndexes(t *testing.T) {
	b := NewBuilder()
	apply(t, b, "CREATE TABLE users (id integer, email text)")
	apply(t, b, "CREATE INDEX ON users (email)")
	apply(t, b, "CREATE INDEX ON users (id)")

	u := b.Schema().Table("users")
	require.Len(t, u.Indexes, 2)
	assert.Equal(t, "users_idx1", u.Indexes[0].Name)
	assert.Equal(t, "users_idx2", u.Indexes[1].Name)
}

func TestBuilderIndexOnUnknownTable(t *testing.T) {
	b := NewBuilder()
	fact, err := Classify("CREATE INDEX idx ON ghost (id)")
	require.NoError(t, err)
	var uerr *UnknownTableError
	assert.True(t, errors.As(b.Apply(fact), &uerr))
}

func TestBuilderAppliesComments(t *testing.T) {
	b := NewBuilder()
	apply(t, b, "CREATE TABLE users (id integer, email text)")
	apply(t, b, "COMMENT ON TABLE users IS 'User accounts'")
	apply(t, b, "COMMENT ON COLUMN users.email IS 'Login email'")

	u := b.Schema().Table("users")
	assert.Equal(t, "User accounts", u.Comment)
	assert.Equal(t, "Login email", u.Column("email").Comment)
}

func TestBuilderCommentOnUnknownColumn(t *testing.T) {
	b := NewBuilder()
	apply(t, b, "CREATE TABLE users (id integer)")
	fact, err := Classify("COMMENT ON COLUMN users.ghost IS 'nope'")
	require.NoError(t, err)
	var uerr *UnknownTableError
	assert.True(t, errors.As(b.Apply(fact), &uerr))
}

func TestBuilderSetDefaultSupplementsColumn(t *testing.T) {
	b := NewBuilder()
	apply(t, b, "CREATE TABLE users (id integer, status text)")
	apply(t, b, "ALTER TABLE users ALTER COLUMN status SET DEFAULT 'active'")
	assert.Equal(t, "'active'", b.Schema().Table("users").Column("status").Default)
}
