package schema

import "strings"

// scanner is a small cursor over one whitespace-normalized statement. All
// extraction goes through it instead of regexes so nested parentheses and
// quoted text never bleed into neighboring clauses.
type scanner struct {
	s   string
	pos int
}

func newScanner(s string) *scanner {
	return &scanner{s: s}
}

func (sc *scanner) eof() bool {
	sc.skipSpace()
	return sc.pos >= len(sc.s)
}

func (sc *scanner) skipSpace() {
	for sc.pos < len(sc.s) && sc.s[sc.pos] == ' ' {
		sc.pos++
	}
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// word consumes and returns the next bare word, or "" when the next byte is
// not a word byte.
func (sc *scanner) word() string {
	sc.skipSpace()
	start := sc.pos
	for sc.pos < len(sc.s) && isWordByte(sc.s[sc.pos]) {
		sc.pos++
	}
	return sc.s[start:sc.pos]
}

func (sc *scanner) peekWord() string {
	save := sc.pos
	w := sc.word()
	sc.pos = save
	return w
}

// keyword consumes the given word sequence case-insensitively. The cursor is
// untouched unless every word matches.
func (sc *scanner) keyword(words ...string) bool {
	save := sc.pos
	for _, want := range words {
		if !strings.EqualFold(sc.word(), want) {
			sc.pos = save
			return false
		}
	}
	return true
}

func (sc *scanner) peekKeyword(words ...string) bool {
	save := sc.pos
	ok := sc.keyword(words...)
	sc.pos = save
	return ok
}

// ident consumes a bare or double-quoted identifier.
func (sc *scanner) ident() (string, bool) {
	sc.skipSpace()
	if sc.pos < len(sc.s) && sc.s[sc.pos] == '"' {
		end, ok := scanDoubleQuoted(sc.s, sc.pos)
		if !ok {
			return "", false
		}
		raw := sc.s[sc.pos+1 : end-1]
		sc.pos = end
		return strings.ReplaceAll(raw, `""`, `"`), true
	}
	w := sc.word()
	return w, w != ""
}

// qualifiedParts consumes dot-separated identifiers (schema.table.column).
func (sc *scanner) qualifiedParts() ([]string, bool) {
	first, ok := sc.ident()
	if !ok {
		return nil, false
	}
	parts := []string{first}
	for sc.pos < len(sc.s) && sc.s[sc.pos] == '.' {
		sc.pos++
		next, ok := sc.ident()
		if !ok {
			return nil, false
		}
		parts = append(parts, next)
	}
	return parts, true
}

func (sc *scanner) qualifiedIdent() (string, bool) {
	parts, ok := sc.qualifiedParts()
	if !ok {
		return "", false
	}
	return strings.Join(parts, "."), true
}

// stringLit consumes a 'literal', unescaping doubled quotes.
func (sc *scanner) stringLit() (string, bool) {
	sc.skipSpace()
	if sc.pos >= len(sc.s) || sc.s[sc.pos] != '\'' {
		return "", false
	}
	end, ok := scanSingleQuoted(sc.s, sc.pos)
	if !ok {
		return "", false
	}
	raw := sc.s[sc.pos+1 : end-1]
	sc.pos = end
	return strings.ReplaceAll(raw, "''", "'"), true
}

// parenBlock consumes a balanced parenthesized block and returns the inner
// text, quote-aware.
func (sc *scanner) parenBlock() (string, error) {
	sc.skipSpace()
	if sc.pos >= len(sc.s) || sc.s[sc.pos] != '(' {
		return "", errUnsupported
	}
	depth := 0
	i := sc.pos
	for i < len(sc.s) {
		switch sc.s[i] {
		case '\'':
			j, ok := scanSingleQuoted(sc.s, i)
			if !ok {
				return "", &ParseError{Stmt: sc.s, Msg: "unterminated string literal"}
			}
			i = j
		case '"':
			j, ok := scanDoubleQuoted(sc.s, i)
			if !ok {
				return "", &ParseError{Stmt: sc.s, Msg: "unterminated quoted identifier"}
			}
			i = j
		case '(':
			depth++
			i++
		case ')':
			depth--
			i++
			if depth == 0 {
				inner := strings.TrimSpace(sc.s[sc.pos+1 : i-1])
				sc.pos = i
				return inner, nil
			}
		default:
			i++
		}
	}
	return "", &ParseError{Stmt: sc.s, Msg: "unbalanced parentheses"}
}

// identListInParens consumes "(a, b, c)" and returns the identifiers.
func (sc *scanner) identListInParens() ([]string, error) {
	body, err := sc.parenBlock()
	if err != nil {
		return nil, err
	}
	var cols []string
	for _, part := range splitTopLevel(body) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		isc := newScanner(part)
		name, ok := isc.ident()
		if !ok {
			return nil, errUnsupported
		}
		cols = append(cols, name)
	}
	if len(cols) == 0 {
		return nil, errUnsupported
	}
	return cols, nil
}

// scanType consumes a column type, keeping the declared text verbatim:
// leading word, optional varying/precision word, optional length arguments,
// optional time zone suffix, optional array brackets.
func (sc *scanner) scanType() string {
	sc.skipSpace()
	start := sc.pos
	if sc.word() == "" {
		return ""
	}
	end := sc.pos
	if sc.keyword("VARYING") || sc.keyword("PRECISION") {
		end = sc.pos
	}
	if sc.peekByte() == '(' {
		if _, err := sc.parenBlock(); err == nil {
			end = sc.pos
		}
	}
	if sc.keyword("WITH", "TIME", "ZONE") || sc.keyword("WITHOUT", "TIME", "ZONE") {
		end = sc.pos
	}
	for strings.HasPrefix(sc.s[sc.pos:], "[]") {
		sc.pos += 2
		end = sc.pos
	}
	return strings.TrimSpace(sc.s[start:end])
}

// scanDefaultExpr consumes a default expression verbatim, stopping at the
// next constraint keyword at parenthesis depth zero. A following CHECK or
// NOT NULL clause is never swallowed into the default text.
func (sc *scanner) scanDefaultExpr() string {
	sc.skipSpace()
	start := sc.pos
	end := sc.pos
	consumed := false
	for {
		sc.skipSpace()
		if sc.pos >= len(sc.s) {
			break
		}
		c := sc.s[sc.pos]
		switch {
		case isWordByte(c):
			w := sc.peekWord()
			if isDefaultBoundary(w) && (consumed || !strings.EqualFold(w, "NULL")) {
				return strings.TrimSpace(sc.s[start:end])
			}
			sc.word()
		case c == '(':
			if _, err := sc.parenBlock(); err != nil {
				sc.pos = len(sc.s)
			}
		case c == '\'':
			j, ok := scanSingleQuoted(sc.s, sc.pos)
			if !ok {
				sc.pos = len(sc.s)
			} else {
				sc.pos = j
			}
		case c == '"':
			j, ok := scanDoubleQuoted(sc.s, sc.pos)
			if !ok {
				sc.pos = len(sc.s)
			} else {
				sc.pos = j
			}
		default:
			sc.pos++
		}
		consumed = true
		end = sc.pos
	}
	return strings.TrimSpace(sc.s[start:end])
}

func isDefaultBoundary(w string) bool {
	switch upper(w) {
	case "NOT", "NULL", "UNIQUE", "PRIMARY", "CHECK", "REFERENCES", "CONSTRAINT", "GENERATED":
		return true
	}
	return false
}

func (sc *scanner) peekByte() byte {
	sc.skipSpace()
	if sc.pos >= len(sc.s) {
		return 0
	}
	return sc.s[sc.pos]
}

// skipToken consumes one token of any shape.
func (sc *scanner) skipToken() {
	sc.skipSpace()
	if sc.pos >= len(sc.s) {
		return
	}
	switch c := sc.s[sc.pos]; {
	case isWordByte(c):
		sc.word()
	case c == '(':
		if _, err := sc.parenBlock(); err != nil {
			sc.pos = len(sc.s)
		}
	case c == '\'':
		if _, ok := sc.stringLit(); !ok {
			sc.pos = len(sc.s)
		}
	case c == '"':
		if _, ok := sc.ident(); !ok {
			sc.pos = len(sc.s)
		}
	default:
		sc.pos++
	}
}

// splitTopLevel splits s on commas that sit outside quotes and parentheses.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	i := 0
	for i < len(s) {
		switch s[i] {
		case '\'':
			j, ok := scanSingleQuoted(s, i)
			if !ok {
				i = len(s)
			} else {
				i = j
			}
		case '"':
			j, ok := scanDoubleQuoted(s, i)
			if !ok {
				i = len(s)
			} else {
				i = j
			}
		case '(':
			depth++
			i++
		case ')':
			depth--
			i++
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
			i++
		default:
			i++
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// normalizeSpace collapses whitespace runs outside quotes into single spaces
// so scanning can treat the statement as one line.
func normalizeSpace(s string) string {
	var b strings.Builder
	space := false
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\'':
			j, ok := scanSingleQuoted(s, i)
			if !ok {
				j = len(s)
			}
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteString(s[i:j])
			i = j
		case c == '"':
			j, ok := scanDoubleQuoted(s, i)
			if !ok {
				j = len(s)
			}
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteString(s[i:j])
			i = j
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			space = true
			i++
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}
