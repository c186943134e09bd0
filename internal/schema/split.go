package schema

import "strings"

// SplitStatements splits raw DDL text into individual top-level statements.
// A semicolon only terminates a statement when it sits outside string
// literals and outside any open parenthesis, so CHECK expressions carrying
// quoted semicolons or nested parens stay in one piece. Line comments (--)
// and block comments (/* */) are stripped. Unbalanced quotes or parentheses
// at end of input fail with a ParseError.
func SplitStatements(text string) ([]string, error) {
	var stmts []string
	var cur strings.Builder
	depth := 0

	emit := func() {
		s := strings.TrimSpace(cur.String())
		cur.Reset()
		if s != "" {
			stmts = append(stmts, s)
		}
	}

	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == '-' && i+1 < len(text) && text[i+1] == '-':
			for i < len(text) && text[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return nil, &ParseError{Msg: "unterminated block comment"}
			}
			i += end + 4
		case c == '\'':
			j, ok := scanSingleQuoted(text, i)
			if !ok {
				return nil, &ParseError{Stmt: cur.String(), Msg: "unterminated string literal"}
			}
			cur.WriteString(text[i:j])
			i = j
		case c == '"':
			j, ok := scanDoubleQuoted(text, i)
			if !ok {
				return nil, &ParseError{Stmt: cur.String(), Msg: "unterminated quoted identifier"}
			}
			cur.WriteString(text[i:j])
			i = j
		case c == '(':
			depth++
			cur.WriteByte(c)
			i++
		case c == ')':
			depth--
			if depth < 0 {
				return nil, &ParseError{Stmt: cur.String(), Msg: "unbalanced closing parenthesis"}
			}
			cur.WriteByte(c)
			i++
		case c == ';' && depth == 0:
			emit()
			i++
		default:
			cur.WriteByte(c)
			i++
		}
	}

	if depth != 0 {
		return nil, &ParseError{Stmt: cur.String(), Msg: "unbalanced parentheses at end of input"}
	}
	emit()
	return stmts, nil
}

// scanSingleQuoted advances past a 'literal' starting at i, honoring the ''
// escape. Returns the index just past the closing quote.
func scanSingleQuoted(s string, i int) (int, bool) {
	j := i + 1
	for j < len(s) {
		if s[j] == '\'' {
			if j+1 < len(s) && s[j+1] == '\'' {
				j += 2
				continue
			}
			return j + 1, true
		}
		j++
	}
	return j, false
}

// scanDoubleQuoted advances past a "quoted identifier" starting at i,
// honoring the "" escape.
func scanDoubleQuoted(s string, i int) (int, bool) {
	j := i + 1
	for j < len(s) {
		if s[j] == '"' {
			if j+1 < len(s) && s[j+1] == '"' {
				j += 2
				continue
			}
			return j + 1, true
		}
		j++
	}
	return j, false
}
