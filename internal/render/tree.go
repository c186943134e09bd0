package render

import "github.com/satyammistari/schemadoc/internal/graph"

// DiagramLines renders the relationship forest. Roots are tables with no
// outgoing foreign keys (self-references aside); each root expands depth
// first through its referencing tables. A table already expanded elsewhere
// shows up as a "(see above)" leaf instead of a second subtree, which also
// terminates self-references and longer cycles.
func DiagramLines(g *graph.Graph) []string {
	var lines []string
	visited := make(map[string]bool)

	var walk func(name, prefix string)
	walk = func(name, prefix string) {
		visited[name] = true
		children := g.ChildTables(name)
		for i, child := range children {
			connector, childPrefix := "├── ", prefix+"│   "
			if i == len(children)-1 {
				connector, childPrefix = "└── ", prefix+"    "
			}
			if visited[child] {
				lines = append(lines, prefix+connector+child+" (see above)")
				continue
			}
			lines = append(lines, prefix+connector+child)
			walk(child, childPrefix)
		}
	}

	for _, root := range g.Roots() {
		lines = append(lines, root)
		walk(root, "")
	}

	// Cycles with no root table (a -> b -> a) are swept up here so every
	// connected table appears at least once.
	for _, name := range g.Connected() {
		if !visited[name] {
			lines = append(lines, name)
			walk(name, "")
		}
	}
	return lines
}
