package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"kartvy/internal/geom"
)

// syncMapFrame recomputes the map area and tells the engine its
// container frame (braille micro pixels), the coordinate space every
// forwarded pointer event lives in.
func (m *Model) syncMapFrame() {
	_, _, contentH, mapW, mapH, orgX, orgY := m.layout()
	m.mapW, m.mapH = mapW, mapH
	m.mapOrgX, m.mapOrgY = orgX, orgY
	m.eng.SetContainerSize(float64(mapW*2), float64(mapH*4))
	if m.showSidebar {
		m.l.SetSize(28-2, contentH-2)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncMapFrame()

	case tea.KeyMsg:
		// While filtering, the sidebar owns the keyboard
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				m.commitWKT(m.ta.Value())
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.showSidebar = !m.showSidebar
			m.syncMapFrame()
			if m.showSidebar {
				m.refreshRegions()
			}
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(regionItem); ok {
					m.eng.Select(it.id)
					m.status = "selected: " + it.name
				}
			}
		case "esc":
			if m.eng.SelectedID() != "" {
				m.eng.Escape()
				m.status = "selection cleared"
			} else {
				m.eng.Escape()
			}
		case "r":
			m.eng.Reset()
			m.status = "view reset"
		case "+", "=":
			m.eng.ZoomIn()
			m.status = fmt.Sprintf("zoom: %.2fx", m.eng.Zoom())
		case "-", "_":
			m.eng.ZoomOut()
			m.status = fmt.Sprintf("zoom: %.2fx", m.eng.Zoom())
		case "g":
			m.showGrid = !m.showGrid
			m.status = fmt.Sprintf("graticule: %v", m.showGrid)
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrs()
			}
		case "p":
			m.pasteMode = !m.pasteMode
			if m.pasteMode {
				m.ta.SetValue("")
				m.status = "paste mode"
				m.ta.Focus()
			} else {
				m.status = "view mode"
				m.ta.Blur()
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "up":
			m.eng.PanBy(0, 8)
		case "down":
			m.eng.PanBy(0, -8)
		case "left":
			m.eng.PanBy(8, 0)
		case "right":
			m.eng.PanBy(-8, 0)
		}

	case tea.MouseMsg:
		m.syncMapFrame()
		cx, cy := msg.X-m.mapOrgX, msg.Y-m.mapOrgY
		inside := cx >= 0 && cx < m.mapW && cy >= 0 && cy < m.mapH
		mx, my := float64(cx*2), float64(cy*4)

		switch msg.Action {
		case tea.MouseActionPress:
			if !inside {
				break
			}
			switch msg.Button {
			case tea.MouseButtonLeft:
				m.eng.PointerDown(mx, my)
			case tea.MouseButtonWheelUp:
				m.eng.Wheel(-1, mx, my)
				m.status = fmt.Sprintf("zoom: %.2fx", m.eng.Zoom())
			case tea.MouseButtonWheelDown:
				m.eng.Wheel(1, mx, my)
				m.status = fmt.Sprintf("zoom: %.2fx", m.eng.Zoom())
			}
		case tea.MouseActionMotion:
			if inside {
				m.eng.PointerMove(mx, my)
				p := m.eng.CanvasPoint(mx, my)
				ll := geom.Unproject(p.X, p.Y, m.eng.Bounds(), m.eng.Dimensions())
				m.hovering = true
				m.hoverLng, m.hoverLat = ll.Lng, ll.Lat
			} else {
				m.hovering = false
				m.eng.PointerLeave()
			}
		case tea.MouseActionRelease:
			// terminals report release with the button cleared; accept both
			if id := m.eng.PointerUp(mx, my); id != "" {
				m.status = "selected: " + m.regionName(id)
			}
		}
	}

	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showAttrs {
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) regionName(id string) string {
	for _, r := range m.eng.Regions() {
		if r.ID == id {
			if r.Name != "" {
				return r.Name
			}
			break
		}
	}
	return id
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"wheel zoom",
		"click select",
		"Esc reset",
		"Tab regions",
		"g grid",
		"a attrs",
		"p paste",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
