package schema

import "fmt"

// ParseError reports a malformed or unbalanced piece of DDL. The offending
// statement text is carried so the caller can show exactly what failed.
type ParseError struct {
	Stmt string
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Stmt == "" {
		return "parse error: " + e.Msg
	}
	return fmt.Sprintf("parse error: %s in %q", e.Msg, clip(e.Stmt, 120))
}

// UnknownTableError reports a constraint, comment, default or index fact
// targeting a table that was never defined.
type UnknownTableError struct {
	Table string
	Stmt  string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("unknown table %q referenced by %q", e.Table, clip(e.Stmt, 120))
}

// clip shortens s to at most n runes, never splitting a multibyte character.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
