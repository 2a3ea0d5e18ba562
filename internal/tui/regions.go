package tui

import (
	"fmt"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	colorful "github.com/lucasb-eyer/go-colorful"

	"kartvy/internal/geom"
)

type regionItem struct {
	id   string
	name string
}

func (r regionItem) Title() string       { return r.name }
func (r regionItem) Description() string { return r.id }
func (r regionItem) FilterValue() string { return r.name }

// refreshRegions rebuilds the sidebar items and the per-region color
// palette from the engine's current collection.
func (m *Model) refreshRegions() {
	regions := m.eng.Regions()

	items := make([]list.Item, 0, len(regions))
	for _, r := range regions {
		items = append(items, regionItem{id: r.ID, name: r.Name})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].(regionItem).name < items[j].(regionItem).name
	})
	m.l.SetItems(items)

	// evenly spaced hues keep neighbours distinguishable and stable
	// across recomputes
	m.colors = make(map[string]string, len(regions))
	n := len(regions)
	if n == 0 {
		n = 1
	}
	for i, r := range regions {
		hue := float64(i) * 360.0 / float64(n)
		m.colors[r.ID] = colorful.Hsv(hue, 0.45, 0.80).Hex()
	}

	if len(regions) == 0 {
		m.status = "no regions loaded"
	}
}

// refreshAttrs rebuilds the attribute table from the region collection.
func (m *Model) refreshAttrs() {
	regions := m.eng.Regions()
	if len(regions) == 0 {
		m.showAttrs = false
		m.status = "no attributes: no regions loaded"
		return
	}

	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "id", Width: 10},
		{Title: "name", Width: 20},
		{Title: "parts", Width: 6},
		{Title: "points", Width: 7},
		{Title: "bounds", Width: 30},
	}
	rows := make([]table.Row, 0, len(regions))
	for i, r := range regions {
		bstr := ""
		if b, ok := geom.RegionBounds(r); ok {
			bstr = fmt.Sprintf("[%.3f, %.3f, %.3f, %.3f]", b.MinLng, b.MinLat, b.MaxLng, b.MaxLat)
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			r.ID,
			r.Name,
			fmt.Sprintf("%d", len(r.Polygons)),
			fmt.Sprintf("%d", r.PointCount()),
			bstr,
		})
	}
	// set columns before rows to avoid a transient width mismatch
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}

// commitWKT parses the paste buffer and appends the result as an ad-hoc
// region.
func (m *Model) commitWKT(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		m.status = "paste: empty"
		return
	}
	m.pasteSeq++
	id := fmt.Sprintf("wkt-%d", m.pasteSeq)
	region, err := geom.ParseWKTRegion(id, fmt.Sprintf("Pasted %d", m.pasteSeq), raw)
	if err != nil {
		m.status = "wkt error: " + err.Error()
		return
	}
	m.eng.SetRegions(append(m.eng.Regions(), region))
	m.refreshRegions()
	m.status = fmt.Sprintf("rendered WKT as %s (%d parts)", id, len(region.Polygons))
}
