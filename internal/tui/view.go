package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	sidebarW, contentW, _, mapW, mapH, _, _ := m.layout()

	// Header
	title := " kartvy ─ interactive region map "
	if m.datasetName != "" {
		title += dimStyle.Render("· " + m.datasetName + " ")
	}
	if sel := m.eng.SelectedID(); sel != "" {
		title += dimStyle.Render(fmt.Sprintf("· %s ", m.regionName(sel)))
	}
	header := lipgloss.NewStyle().Width(contentW).Render(titleStyle.Render(title))

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarW).Render(m.l.View())
	}

	// Map column
	var mapView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, contentW-6)
		}
		maxW := min(mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(mapH-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(mapW, mapH, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.pasteMode:
		m.ta.SetWidth(mapW)
		m.ta.SetHeight(min(mapH, 12))
		mapView = lipgloss.NewStyle().Width(mapW).Height(mapH).Render(m.ta.View())
	default:
		mapView = lipgloss.NewStyle().Width(mapW).Height(mapH).Render(m.renderMap(mapW, mapH))
	}

	// Body row
	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	} else {
		body = mapView
	}

	// Footer: status + help left, hover coords right
	status := dimStyle.Render(" " + m.status + " ")
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	coords := ""
	if m.hovering {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  zoom=%.2fx  ", m.hoverLng, m.hoverLat, m.eng.Zoom()))
	}
	spacerW := max(0, contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentW).Height(m.height).Render(ui)
}
