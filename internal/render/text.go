package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/satyammistari/schemadoc/internal/graph"
	"github.com/satyammistari/schemadoc/internal/schema"
)

// Text renders a compact plain-text rendition of the same four sections.
type Text struct {
	w io.Writer
}

// NewText creates a plain-text renderer writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// Render writes the schema in plain text.
func (r *Text) Render(s *schema.Schema, g *graph.Graph) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Database Schema: %d tables\n", s.Len())
	b.WriteString(strings.Repeat("=", 50) + "\n")

	for _, name := range s.Names() {
		t := s.Table(name)
		fmt.Fprintf(&b, "\nTable: %s\n", name)
		if t.Comment != "" {
			fmt.Fprintf(&b, "  Comment: %s\n", t.Comment)
		}
		pk := t.PrimaryKey()
		fmt.Fprintf(&b, "  Columns (%d):\n", len(t.Columns))
		for _, col := range t.Columns {
			tags := columnTags(col, pk)
			if tags != "" {
				fmt.Fprintf(&b, "    - %s: %s [%s]\n", col.Name, col.Type, tags)
			} else {
				fmt.Fprintf(&b, "    - %s: %s\n", col.Name, col.Type)
			}
		}
		if fks := t.ForeignKeys(); len(fks) > 0 {
			fmt.Fprintf(&b, "  Foreign Keys (%d):\n", len(fks))
			for _, fk := range fks {
				ref := fmt.Sprintf("%s.%s", fk.RefTable, strings.Join(fk.RefColumns, ", "))
				if !s.Has(fk.RefTable) {
					ref += " (unresolved)"
				}
				fmt.Fprintf(&b, "    - %s -> %s\n", strings.Join(fk.Columns, ", "), ref)
			}
		}
		if len(t.Indexes) > 0 {
			fmt.Fprintf(&b, "  Indexes (%d):\n", len(t.Indexes))
			for _, idx := range t.Indexes {
				fmt.Fprintf(&b, "    - %s on (%s) using %s\n", idx.Name, strings.Join(idx.Exprs, ", "), idx.Method)
			}
		}
	}

	b.WriteString("\nRelationships:\n")
	edges := g.Edges()
	if len(edges) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, e := range edges {
		to := e.To
		if e.Unresolved {
			to += " (unresolved)"
		}
		fmt.Fprintf(&b, "  %s (%s) -> %s (%s)\n",
			e.From, strings.Join(e.FromColumns, ", "), to, strings.Join(e.ToColumns, ", "))
	}

	if len(edges) > 0 {
		b.WriteString("\nDiagram:\n")
		for _, line := range DiagramLines(g) {
			b.WriteString("  " + line + "\n")
		}
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func columnTags(col schema.Column, pk []string) string {
	var tags []string
	for _, p := range pk {
		if p == col.Name {
			tags = append(tags, "PK")
			break
		}
	}
	if col.NotNull {
		tags = append(tags, "NOT NULL")
	}
	for _, con := range col.Constraints {
		if con.Kind == schema.KindUnique {
			tags = append(tags, "UNIQUE")
		}
	}
	return strings.Join(tags, ", ")
}
