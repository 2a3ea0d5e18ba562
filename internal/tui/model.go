package tui

import (
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"kartvy/internal/engine"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool
	showGrid    bool

	status string

	eng         *engine.Engine
	datasetName string

	// Region sidebar
	l list.Model

	// last rendered map geometry (cells), for mouse mapping
	mapW    int
	mapH    int
	mapOrgX int
	mapOrgY int

	// paste mode
	pasteMode bool
	ta        textarea.Model
	pasteSeq  int

	// attributes table
	showAttrs bool
	tbl       table.Model

	// hover state
	hovering bool
	hoverLng float64
	hoverLat float64

	// region id → braille color (hex), derived once per region set
	colors map[string]string
}

// New builds the host model around an engine that already carries its
// region collection.
func New(eng *engine.Engine, datasetName string) Model {
	m := Model{
		eng:         eng,
		datasetName: datasetName,
		helpVisible: true,
		showGrid:    true,
		status:      "kartvy ready",
	}
	// sidebar setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Regions"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POLYGON or MULTIPOLYGON). Enter renders; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)

	m.refreshRegions()
	return m
}

func (m Model) Init() tea.Cmd { return nil }
