package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/satyammistari/schemadoc/internal/graph"
	"github.com/satyammistari/schemadoc/internal/schema"
)

type Tab int

const (
	TabOverview Tab = iota
	TabTables
	TabDiagram
	TabHelp
)

const tabCount = 4

func (t Tab) String() string {
	return []string{
		" Overview ",
		" Tables ",
		" Diagram ",
		" Help ",
	}[t]
}

// Model is the browser state: the loaded schema, its graph, the rendered
// diagram lines, and per-tab cursors.
type Model struct {
	Width  int
	Height int

	ActiveTab Tab
	PathField textinput.Model
	Spinner   spinner.Model
	IsLoading bool

	Schema  *schema.Schema
	Graph   *graph.Graph
	Report  *schema.Report
	Diagram []string

	TableCursor   int
	DetailScroll  int
	DiagramScroll int

	StatusMsg  string
	StatusKind string // info, success, error
}

// NewModel builds the initial model. A non-empty path is loaded on startup.
func NewModel(schemaPath string) Model {
	ti := textinput.New()
	ti.Placeholder = "path/to/schema.sql"
	ti.CharLimit = 256
	ti.SetValue(schemaPath)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := Model{
		PathField:  ti,
		Spinner:    sp,
		StatusMsg:  "Enter a schema path and press enter to load",
		StatusKind: "info",
	}
	if schemaPath != "" {
		m.IsLoading = true
		m.StatusMsg = "Loading " + schemaPath + "..."
	}
	return m
}

// SelectedTable returns the table under the cursor, or nil before a schema
// is loaded.
func (m Model) SelectedTable() *schema.Table {
	if m.Schema == nil {
		return nil
	}
	names := m.Schema.Names()
	if len(names) == 0 || m.TableCursor >= len(names) {
		return nil
	}
	return m.Schema.Table(names[m.TableCursor])
}
