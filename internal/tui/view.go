package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/satyammistari/schemadoc/internal/schema"
)

func (m Model) View() string {
	if m.Width == 0 {
		return "Loading..."
	}
	return strings.Join([]string{
		m.renderHeader(),
		m.renderContent(),
		m.renderStatusBar(),
		m.renderKeyBar(),
	}, "\n")
}

func (m Model) renderHeader() string {
	logo := titleStyle.Render(`
 ███████  ██████ ██   ██ ███████ ███    ███  █████  ██████   ██████   ██████
 ██      ██      ██   ██ ██      ████  ████ ██   ██ ██   ██ ██    ██ ██
 ███████ ██      ███████ █████   ██ ████ ██ ███████ ██   ██ ██    ██ ██
      ██ ██      ██   ██ ██      ██  ██  ██ ██   ██ ██   ██ ██    ██ ██
 ███████  ██████ ██   ██ ███████ ██      ██ ██   ██ ██████   ██████   ██████

          Schema documentation browser`)

	tabs := ""
	for i := Tab(0); i < tabCount; i++ {
		if i == m.ActiveTab {
			tabs += activeTabStyle.Render(i.String())
		} else {
			tabs += tabStyle.Render(i.String())
		}
	}
	right := ""
	if m.IsLoading {
		right = warningStyle.Render(m.Spinner.View() + " Loading...")
	}

	nav := tabs
	if right != "" {
		gap := m.Width - lipgloss.Width(nav) - lipgloss.Width(right) - 10
		if gap < 0 {
			gap = 0
		}
		nav = nav + strings.Repeat(" ", gap) + right
	}

	return lipgloss.JoinVertical(lipgloss.Left, logo, "", panelStyle.Width(m.Width-4).Render(nav))
}

func (m Model) renderContent() string {
	switch m.ActiveTab {
	case TabOverview:
		return m.renderOverviewTab()
	case TabTables:
		return m.renderTablesTab()
	case TabDiagram:
		return m.renderDiagramTab()
	case TabHelp:
		return m.renderHelpTab()
	}
	return ""
}

func (m Model) renderOverviewTab() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Schema file") + " " + m.PathField.View() + "\n\n")

	if m.Schema == nil {
		b.WriteString(dimStyle.Render("No schema loaded yet. Press i to edit the path, enter to load."))
		return activePanelStyle.Width(m.Width - 4).Render(b.String())
	}

	fkCount := len(m.Graph.Edges())
	b.WriteString(labelStyle.Render("Tables") + " " + valueStyle.Render(fmt.Sprint(m.Schema.Len())) + "\n")
	b.WriteString(labelStyle.Render("Relationships") + " " + valueStyle.Render(fmt.Sprint(fkCount)) + "\n")
	if m.Report != nil && m.Report.SkippedCount() > 0 {
		b.WriteString(labelStyle.Render("Skipped") + " " + warningStyle.Render(fmt.Sprintf("%d unrecognized statements", m.Report.SkippedCount())) + "\n")
	}
	if unresolved := m.Graph.Unresolved(); len(unresolved) > 0 {
		b.WriteString(labelStyle.Render("Unresolved") + " " + errorStyle.Render(fmt.Sprintf("%d foreign keys", len(unresolved))) + "\n")
	}
	b.WriteString("\n")
	for _, name := range m.Schema.Names() {
		t := m.Schema.Table(name)
		pk := "no primary key"
		if cols := t.PrimaryKey(); len(cols) > 0 {
			pk = "PK: " + strings.Join(cols, ", ")
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", valueStyle.Render(fmt.Sprintf("%-24s", name)), dimStyle.Render(pk)))
	}
	return activePanelStyle.Width(m.Width - 4).Render(b.String())
}

func (m Model) renderTablesTab() string {
	if m.Schema == nil {
		return panelStyle.Width(m.Width - 4).Render(dimStyle.Render("Load a schema on the Overview tab first."))
	}
	names := m.Schema.Names()
	var list strings.Builder
	for i, name := range names {
		if i == m.TableCursor {
			list.WriteString(highlightStyle.Render("> "+name) + "\n")
		} else {
			list.WriteString("  " + name + "\n")
		}
	}

	detail := m.renderTableDetail()
	listPanel := activePanelStyle.Width(28).Render(list.String())
	detailPanel := panelStyle.Width(m.Width - 38).Render(detail)
	return lipgloss.JoinHorizontal(lipgloss.Top, listPanel, detailPanel)
}

func (m Model) renderTableDetail() string {
	t := m.SelectedTable()
	if t == nil {
		return dimStyle.Render("(no table selected)")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(t.Name) + "\n")
	if t.Comment != "" {
		b.WriteString(dimStyle.Render(t.Comment) + "\n")
	}
	b.WriteString("\n")
	pk := t.PrimaryKey()
	for _, col := range t.Columns {
		tags := columnTagLine(col, pk)
		line := fmt.Sprintf("  %-20s %-20s %s", col.Name, col.Type, tags)
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	if fks := t.ForeignKeys(); len(fks) > 0 {
		b.WriteString("\n" + labelStyle.Render("Foreign keys") + "\n")
		for _, fk := range fks {
			b.WriteString(fmt.Sprintf("  %s → %s (%s)\n",
				strings.Join(fk.Columns, ", "), fk.RefTable, strings.Join(fk.RefColumns, ", ")))
		}
	}
	if checks := t.Checks(); len(checks) > 0 {
		b.WriteString("\n" + labelStyle.Render("Checks") + "\n")
		for _, c := range checks {
			b.WriteString(fmt.Sprintf("  %s: %s\n", c.Name, c.Check))
		}
	}
	if len(t.Indexes) > 0 {
		b.WriteString("\n" + labelStyle.Render("Indexes") + "\n")
		for _, idx := range t.Indexes {
			b.WriteString(fmt.Sprintf("  %s on (%s) using %s\n", idx.Name, strings.Join(idx.Exprs, ", "), idx.Method))
		}
	}
	return scrollLines(b.String(), m.DetailScroll, m.contentHeight())
}

func columnTagLine(col schema.Column, pk []string) string {
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
		switch con.Kind {
		case schema.KindUnique:
			tags = append(tags, "UNIQUE")
		case schema.KindForeignKey:
			tags = append(tags, "FK")
		case schema.KindCheck:
			tags = append(tags, "CHECK")
		}
	}
	if col.Default != "" {
		tags = append(tags, "DEFAULT "+col.Default)
	}
	return strings.Join(tags, ", ")
}

func (m Model) renderDiagramTab() string {
	if m.Schema == nil {
		return panelStyle.Width(m.Width - 4).Render(dimStyle.Render("Load a schema on the Overview tab first."))
	}
	if len(m.Diagram) == 0 {
		return panelStyle.Width(m.Width - 4).Render(dimStyle.Render("No foreign key relationships defined."))
	}
	body := scrollLines(strings.Join(m.Diagram, "\n"), m.DiagramScroll, m.contentHeight())
	return activePanelStyle.Width(m.Width - 4).Render(body)
}

func (m Model) renderHelpTab() string {
	rows := [][2]string{
		{"tab / shift+tab", "switch tabs"},
		{"i", "edit schema path (Overview)"},
		{"enter", "load schema (Overview)"},
		{"j / k", "move table cursor, scroll diagram"},
		{"J / K", "scroll table detail"},
		{"g / G", "jump to top / bottom"},
		{"Q / ctrl+c", "quit"},
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(keyStyle.Render(fmt.Sprintf("  %-18s", r[0])) + keyDescStyle.Render(r[1]) + "\n")
	}
	return panelStyle.Width(m.Width - 4).Render(b.String())
}

func (m Model) renderStatusBar() string {
	style := dimStyle
	switch m.StatusKind {
	case "success":
		style = successStyle
	case "error":
		style = errorStyle
	}
	return " " + style.Render(m.StatusMsg)
}

func (m Model) renderKeyBar() string {
	return keyDescStyle.Render("  tab: switch • enter: load • j/k: move • Q: quit")
}

func (m Model) contentHeight() int {
	h := m.Height - 16
	if h < 5 {
		h = 5
	}
	return h
}

func scrollLines(s string, offset, height int) string {
	lines := strings.Split(s, "\n")
	if offset >= len(lines) {
		offset = len(lines) - 1
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[offset:end], "\n")
}
