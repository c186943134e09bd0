// Package render turns a schema and its relationship graph into the final
// documentation text. Rendering is a pure function of its inputs: fixed sort
// orders everywhere, so the same schema always produces identical bytes.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/satyammistari/schemadoc/internal/graph"
	"github.com/satyammistari/schemadoc/internal/schema"
)

// DefaultTitle heads the document when no title is configured.
const DefaultTitle = "Database Schema Documentation"

const overviewAnchor = "entity-overview"

// Markdown renders the four documentation sections as markdown.
type Markdown struct {
	w     io.Writer
	title string
}

// NewMarkdown creates a markdown renderer writing to w.
func NewMarkdown(w io.Writer) *Markdown {
	return &Markdown{w: w, title: DefaultTitle}
}

// SetTitle overrides the document title.
func (r *Markdown) SetTitle(title string) {
	if title != "" {
		r.title = title
	}
}

// Render writes the full document: entity overview, per-table detail, flat
// relationship table and the hierarchical diagram.
func (r *Markdown) Render(s *schema.Schema, g *graph.Graph) error {
	var b strings.Builder
	r.overview(&b, s)
	r.tables(&b, s)
	r.relationships(&b, g)
	r.diagram(&b, s, g)
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Markdown) overview(b *strings.Builder, s *schema.Schema) {
	fmt.Fprintf(b, "# %s\n\n", r.title)
	fmt.Fprintf(b, "<a id=%q></a>\n\n", overviewAnchor)
	b.WriteString("## Entity Overview\n\n")
	fmt.Fprintf(b, "This schema contains **%d** table(s):\n\n", s.Len())
	for _, name := range s.Names() {
		t := s.Table(name)
		if pk := t.PrimaryKey(); len(pk) > 0 {
			fmt.Fprintf(b, "- [`%s`](#%s) (PK: `%s`)\n", name, anchorFor(name), strings.Join(pk, "`, `"))
		} else {
			fmt.Fprintf(b, "- [`%s`](#%s) (no primary key)\n", name, anchorFor(name))
		}
	}
	b.WriteString("\n")
}

func (r *Markdown) tables(b *strings.Builder, s *schema.Schema) {
	b.WriteString("## Tables\n\n")
	for _, name := range s.Names() {
		t := s.Table(name)
		fmt.Fprintf(b, "<a id=%q></a>\n\n", anchorFor(name))
		fmt.Fprintf(b, "### %s\n\n", name)
		if t.Comment != "" {
			fmt.Fprintf(b, "*%s*\n\n", t.Comment)
		}
		r.columns(b, t)
		r.checks(b, t)
		r.foreignKeys(b, s, t)
		r.indexes(b, t)
		fmt.Fprintf(b, "[Back to overview](#%s)\n\n---\n\n", overviewAnchor)
	}
}

func (r *Markdown) columns(b *strings.Builder, t *schema.Table) {
	b.WriteString("**Columns:**\n\n")
	b.WriteString("| Column | Type | Nullable | Default | Constraints |\n")
	b.WriteString("|--------|------|----------|---------|-------------|\n")
	pk := t.PrimaryKey()
	for _, col := range t.Columns {
		nullable := "Yes"
		if col.NotNull {
			nullable = "No"
		}
		def := "-"
		if col.Default != "" {
			def = "`" + escapeCell(col.Default) + "`"
		}
		fmt.Fprintf(b, "| `%s` | `%s` | %s | %s | %s |\n",
			col.Name, escapeCell(col.Type), nullable, def, columnConstraintSummary(col, pk))
	}
	b.WriteString("\n")

	var commented []schema.Column
	for _, col := range t.Columns {
		if col.Comment != "" {
			commented = append(commented, col)
		}
	}
	if len(commented) > 0 {
		b.WriteString("Column comments:\n\n")
		for _, col := range commented {
			fmt.Fprintf(b, "- `%s` — %s\n", col.Name, col.Comment)
		}
		b.WriteString("\n")
	}
}

func (r *Markdown) checks(b *strings.Builder, t *schema.Table) {
	checks := t.Checks()
	if len(checks) == 0 {
		return
	}
	b.WriteString("**Check Constraints:**\n\n")
	b.WriteString("| Name | Expression |\n")
	b.WriteString("|------|------------|\n")
	for _, con := range checks {
		fmt.Fprintf(b, "| `%s` | `%s` |\n", con.Name, escapeCell(con.Check))
	}
	b.WriteString("\n")
}

func (r *Markdown) foreignKeys(b *strings.Builder, s *schema.Schema, t *schema.Table) {
	fks := t.ForeignKeys()
	if len(fks) == 0 {
		return
	}
	b.WriteString("**Foreign Keys:**\n\n")
	b.WriteString("| Columns | References | On Delete | Constraint |\n")
	b.WriteString("|---------|------------|-----------|------------|\n")
	for _, fk := range fks {
		ref := fmt.Sprintf("`%s (%s)`", fk.RefTable, strings.Join(fk.RefColumns, ", "))
		if !s.Has(fk.RefTable) {
			ref += " *(unresolved)*"
		}
		onDelete := "-"
		if fk.OnDelete != "" {
			onDelete = fk.OnDelete
		}
		fmt.Fprintf(b, "| `%s` | %s | %s | `%s` |\n",
			strings.Join(fk.Columns, ", "), ref, onDelete, fk.Name)
	}
	b.WriteString("\n")
}

func (r *Markdown) indexes(b *strings.Builder, t *schema.Table) {
	if len(t.Indexes) == 0 {
		return
	}
	b.WriteString("**Indexes:**\n\n")
	b.WriteString("| Name | Expressions | Method | Unique |\n")
	b.WriteString("|------|-------------|--------|--------|\n")
	for _, idx := range t.Indexes {
		unique := "no"
		if idx.Unique {
			unique = "yes"
		}
		fmt.Fprintf(b, "| `%s` | `%s` | %s | %s |\n",
			idx.Name, escapeCell(strings.Join(idx.Exprs, ", ")), idx.Method, unique)
	}
	b.WriteString("\n")
}

func (r *Markdown) relationships(b *strings.Builder, g *graph.Graph) {
	b.WriteString("## Relationships\n\n")
	edges := g.Edges()
	if len(edges) == 0 {
		b.WriteString("No foreign key relationships defined.\n\n")
		return
	}
	b.WriteString("| From Table | From Columns | To Table | To Columns | Constraint |\n")
	b.WriteString("|------------|--------------|----------|------------|------------|\n")
	for _, e := range edges {
		to := "`" + e.To + "`"
		if e.Unresolved {
			to += " *(unresolved)*"
		}
		fmt.Fprintf(b, "| `%s` | `%s` | %s | `%s` | `%s` |\n",
			e.From, strings.Join(e.FromColumns, ", "), to,
			strings.Join(e.ToColumns, ", "), e.Constraint)
	}
	b.WriteString("\n")
}

func (r *Markdown) diagram(b *strings.Builder, s *schema.Schema, g *graph.Graph) {
	b.WriteString("## Relationship Diagram\n\n")
	if len(g.Edges()) > 0 {
		b.WriteString("```\n")
		for _, line := range DiagramLines(g) {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("```\n\n")
	}
	if unresolved := g.Unresolved(); len(unresolved) > 0 {
		b.WriteString("Unresolved references:\n\n")
		for _, e := range unresolved {
			fmt.Fprintf(b, "- `%s.%s` → `%s` (table not defined)\n",
				e.From, strings.Join(e.FromColumns, ", "), e.To)
		}
		b.WriteString("\n")
	}
	var standalone []string
	for _, name := range s.Names() {
		if !g.HasEdges(name) {
			standalone = append(standalone, name)
		}
	}
	if len(standalone) > 0 {
		b.WriteString("Standalone tables (no relationships):\n\n")
		for _, name := range standalone {
			fmt.Fprintf(b, "- `%s`\n", name)
		}
		b.WriteString("\n")
	}
}

// columnConstraintSummary condenses a column's constraints into one cell.
func columnConstraintSummary(col schema.Column, pk []string) string {
	var parts []string
	isPK := false
	for _, p := range pk {
		if p == col.Name {
			isPK = true
			break
		}
	}
	if isPK {
		parts = append(parts, "PK")
	}
	for _, con := range col.Constraints {
		switch con.Kind {
		case schema.KindUnique:
			parts = append(parts, "UNIQUE")
		case schema.KindCheck:
			parts = append(parts, "CHECK ("+escapeCell(con.Check)+")")
		case schema.KindForeignKey:
			parts = append(parts, fmt.Sprintf("FK → %s (%s)", con.RefTable, strings.Join(con.RefColumns, ", ")))
		}
	}
	if col.NotNull && !isPK {
		parts = append(parts, "NOT NULL")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

// anchorFor maps a table name to its document anchor: lower-cased with every
// non-alphanumeric run replaced by a dash.
func anchorFor(name string) string {
	var b strings.Builder
	b.WriteString("table-")
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > len("table-") {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		} else {
			dash = true
		}
	}
	return b.String()
}

// escapeCell keeps raw SQL fragments from breaking markdown table rows.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
