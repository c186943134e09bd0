// Package graph derives the foreign key relationship graph from a parsed
// schema. Edges point child table -> parent table and are regenerated from
// the constraint set on every build, never stored in the model.
package graph

import (
	"sort"

	"github.com/satyammistari/schemadoc/internal/schema"
)

// Edge is one foreign key relationship. Unresolved marks an edge whose
// parent table is absent from the schema; such edges are surfaced, not
// dropped.
type Edge struct {
	From        string
	FromColumns []string
	To          string
	ToColumns   []string
	Constraint  string
	Unresolved  bool
}

// SelfEdge reports whether the edge points from a table to itself.
func (e Edge) SelfEdge() bool {
	return e.From == e.To
}

// Graph holds the derived edges plus adjacency lookups for rendering.
type Graph struct {
	edges    []Edge
	incoming map[string][]Edge // parent -> edges referencing it
	outgoing map[string][]Edge // child -> its foreign keys
}

// Build scans every table's constraints and emits one edge per foreign key,
// regardless of whether the constraint was declared inline or added later.
func Build(s *schema.Schema) *Graph {
	g := &Graph{
		incoming: make(map[string][]Edge),
		outgoing: make(map[string][]Edge),
	}
	for _, name := range s.Names() {
		t := s.Table(name)
		for _, fk := range t.ForeignKeys() {
			e := Edge{
				From:        t.Name,
				FromColumns: fk.Columns,
				To:          fk.RefTable,
				ToColumns:   fk.RefColumns,
				Constraint:  fk.Name,
				Unresolved:  !s.Has(fk.RefTable),
			}
			g.edges = append(g.edges, e)
			g.outgoing[e.From] = append(g.outgoing[e.From], e)
			if !e.Unresolved {
				g.incoming[e.To] = append(g.incoming[e.To], e)
			}
		}
	}
	sort.SliceStable(g.edges, func(i, j int) bool {
		if g.edges[i].From != g.edges[j].From {
			return g.edges[i].From < g.edges[j].From
		}
		return g.edges[i].Constraint < g.edges[j].Constraint
	})
	return g
}

// Edges returns every edge sorted by child table, then constraint name.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Unresolved returns the edges whose parent table is not in the schema.
func (g *Graph) Unresolved() []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Unresolved {
			out = append(out, e)
		}
	}
	return out
}

// ChildTables returns the sorted, de-duplicated tables that reference the
// given table. A self-referencing table lists itself.
func (g *Graph) ChildTables(table string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range g.incoming[table] {
		if !seen[e.From] {
			seen[e.From] = true
			out = append(out, e.From)
		}
	}
	sort.Strings(out)
	return out
}

// HasEdges reports whether the table participates in any relationship,
// including unresolved ones.
func (g *Graph) HasEdges(table string) bool {
	return len(g.incoming[table]) > 0 || len(g.outgoing[table]) > 0
}

// Roots returns the sorted tables that start a diagram subtree: tables with
// at least one relationship whose outgoing edges, if any, all point at
// themselves.
func (g *Graph) Roots() []string {
	var out []string
	for table := range g.union() {
		if !g.HasEdges(table) {
			continue
		}
		root := true
		for _, e := range g.outgoing[table] {
			if !e.SelfEdge() {
				root = false
				break
			}
		}
		if root {
			out = append(out, table)
		}
	}
	sort.Strings(out)
	return out
}

// Connected returns all tables with at least one edge, sorted. Used to sweep
// up cycle members that no root traversal reaches.
func (g *Graph) Connected() []string {
	var out []string
	for table := range g.union() {
		if g.HasEdges(table) {
			out = append(out, table)
		}
	}
	sort.Strings(out)
	return out
}

func (g *Graph) union() map[string]bool {
	set := make(map[string]bool)
	for t := range g.incoming {
		set[t] = true
	}
	for t := range g.outgoing {
		set[t] = true
	}
	return set
}
