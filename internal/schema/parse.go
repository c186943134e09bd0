package schema

import "strings"

// Report collects the non-fatal conditions of a parse run. Skipped holds a
// short head of each statement that was outside the supported subset.
type Report struct {
	Skipped []string
}

// SkippedCount returns how many statements were skipped as unrecognized.
func (r *Report) SkippedCount() int {
	return len(r.Skipped)
}

// Parse runs the full pipeline over a DDL script: split into statements,
// classify and extract each one, and merge the facts into a schema. Fatal
// errors (malformed statements, facts targeting unknown tables) abort the
// run; unrecognized statements are skipped and reported.
func Parse(text string) (*Schema, *Report, error) {
	stmts, err := SplitStatements(text)
	if err != nil {
		return nil, nil, err
	}
	report := &Report{}
	b := NewBuilder()
	for _, stmt := range stmts {
		fact, err := Classify(stmt)
		if err != nil {
			return nil, nil, err
		}
		if fact == nil {
			report.Skipped = append(report.Skipped, statementHead(stmt))
			continue
		}
		if err := b.Apply(fact); err != nil {
			return nil, nil, err
		}
	}
	return b.Schema(), report, nil
}

// statementHead returns the first few words of a statement for reporting.
func statementHead(stmt string) string {
	stmt = normalizeSpace(stmt)
	words := strings.SplitN(stmt, " ", 5)
	if len(words) == 5 {
		return strings.Join(words[:4], " ") + " ..."
	}
	return stmt
}
