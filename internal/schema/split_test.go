package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	sql := `
-- schema for the test suite
CREATE TABLE users (id SERIAL PRIMARY KEY);
/* block
   comment */
CREATE INDEX idx_users_id ON users (id);
`
	stmts, err := SplitStatements(sql)
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE users (id SERIAL PRIMARY KEY)", stmts[0])
	assert.Equal(t, "CREATE INDEX idx_users_id ON users (id)", stmts[1])
}

func TestSplitSemicolonInsideStringLiteral(t *testing.T) {
	stmts, err := SplitStatements("COMMENT ON TABLE users IS 'first; not a terminator'; CREATE TABLE t (id int)")
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(t, "COMMENT ON TABLE users IS 'first; not a terminator'", stmts[0])
}

func TestSplitSemicolonInsideParens(t *testing.T) {
	stmts, err := SplitStatements("CREATE TABLE t (v text CHECK (v <> ';'));")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, "CREATE TABLE t (v text CHECK (v <> ';'))", stmts[0])
}

func TestSplitStatementWithoutTrailingSemicolon(t *testing.T) {
	stmts, err := SplitStatements("CREATE TABLE t (id int)")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
}

func TestSplitMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		sql  string
	}{
		{"unterminated string", "COMMENT ON TABLE t IS 'oops"},
		{"unterminated quoted identifier", `CREATE TABLE "broken (id int)`},
		{"open paren at end of input", "CREATE TABLE t (id int"},
		{"stray closing paren", "CREATE TABLE t (id int))"},
		{"unterminated block comment", "CREATE TABLE t (id int); /* dangling"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SplitStatements(tc.sql)
			var perr *ParseError
			require.Error(t, err)
			assert.True(t, errors.As(err, &perr), "want ParseError, got %T", err)
		})
	}
}

func TestSplitDropsEmptyStatements(t *testing.T) {
	stmts, err := SplitStatements(";; \n ;CREATE TABLE t (id int);;")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
}
