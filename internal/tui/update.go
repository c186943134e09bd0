package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/satyammistari/schemadoc/internal/graph"
	"github.com/satyammistari/schemadoc/internal/render"
	"github.com/satyammistari/schemadoc/internal/schema"
)

type schemaLoadedMsg struct {
	s       *schema.Schema
	g       *graph.Graph
	report  *schema.Report
	diagram []string
}
type errMsg struct{ err error }

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.Spinner.Tick, textinput.Blink}
	if m.IsLoading {
		cmds = append(cmds, loadSchemaCmd(m.PathField.Value()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "Q" {
			return m, tea.Quit
		}
		switch m.ActiveTab {
		case TabOverview:
			return m.handleOverviewKey(msg)
		case TabTables:
			return m.handleTablesKey(msg)
		case TabDiagram:
			return m.handleDiagramKey(msg)
		case TabHelp:
			return m.handleHelpKey(msg)
		}

	case spinner.TickMsg:
		if m.IsLoading {
			var cmd tea.Cmd
			m.Spinner, cmd = m.Spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case schemaLoadedMsg:
		m.IsLoading = false
		m.Schema = msg.s
		m.Graph = msg.g
		m.Report = msg.report
		m.Diagram = msg.diagram
		m.TableCursor = 0
		m.DetailScroll = 0
		m.DiagramScroll = 0
		m.StatusMsg = fmt.Sprintf("Schema loaded → %d tables, %d relationships", msg.s.Len(), len(msg.g.Edges()))
		if n := msg.report.SkippedCount(); n > 0 {
			m.StatusMsg += fmt.Sprintf(" (%d statements skipped)", n)
		}
		m.StatusKind = "success"

	case errMsg:
		m.IsLoading = false
		m.StatusMsg = fmt.Sprintf("✗ %v", msg.err)
		m.StatusKind = "error"
	}

	var cmd tea.Cmd
	m.PathField, cmd = m.PathField.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) nextTab() Model {
	m.ActiveTab = Tab((int(m.ActiveTab) + 1) % tabCount)
	return m
}

func (m Model) prevTab() Model {
	m.ActiveTab = Tab((int(m.ActiveTab) + tabCount - 1) % tabCount)
	return m
}

func (m Model) handleOverviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return m.nextTab(), nil
	case "shift+tab":
		return m.prevTab(), nil
	case "esc":
		m.PathField.Blur()
		return m, nil
	case "enter":
		if m.IsLoading {
			return m, nil
		}
		path := m.PathField.Value()
		if path == "" {
			m.StatusMsg = "No schema path given"
			m.StatusKind = "error"
			return m, nil
		}
		m.IsLoading = true
		m.StatusMsg = "Loading " + path + "..."
		m.StatusKind = "info"
		return m, tea.Batch(m.Spinner.Tick, loadSchemaCmd(path))
	case "i":
		if !m.PathField.Focused() {
			m.PathField.Focus()
			return m, textinput.Blink
		}
	}
	if m.PathField.Focused() {
		var cmd tea.Cmd
		m.PathField, cmd = m.PathField.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleTablesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := 0
	if m.Schema != nil {
		count = m.Schema.Len()
	}
	switch msg.String() {
	case "tab":
		return m.nextTab(), nil
	case "shift+tab":
		return m.prevTab(), nil
	case "j", "down":
		if m.TableCursor < count-1 {
			m.TableCursor++
			m.DetailScroll = 0
		}
	case "k", "up":
		if m.TableCursor > 0 {
			m.TableCursor--
			m.DetailScroll = 0
		}
	case "J":
		m.DetailScroll++
	case "K":
		if m.DetailScroll > 0 {
			m.DetailScroll--
		}
	case "g":
		m.TableCursor = 0
	case "G":
		if count > 0 {
			m.TableCursor = count - 1
		}
	}
	return m, nil
}

func (m Model) handleDiagramKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return m.nextTab(), nil
	case "shift+tab":
		return m.prevTab(), nil
	case "j", "down":
		if m.DiagramScroll < len(m.Diagram)-1 {
			m.DiagramScroll++
		}
	case "k", "up":
		if m.DiagramScroll > 0 {
			m.DiagramScroll--
		}
	case "g":
		m.DiagramScroll = 0
	case "G":
		if len(m.Diagram) > 0 {
			m.DiagramScroll = len(m.Diagram) - 1
		}
	}
	return m, nil
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return m.nextTab(), nil
	case "shift+tab":
		return m.prevTab(), nil
	}
	return m, nil
}

func loadSchemaCmd(path string) tea.Cmd {
	return func() tea.Msg {
		content, err := os.ReadFile(path)
		if err != nil {
			return errMsg{err: fmt.Errorf("read schema file: %w", err)}
		}
		s, report, err := schema.Parse(string(content))
		if err != nil {
			return errMsg{err: fmt.Errorf("parse schema: %w", err)}
		}
		g := graph.Build(s)
		return schemaLoadedMsg{s: s, g: g, report: report, diagram: render.DiagramLines(g)}
	}
}
