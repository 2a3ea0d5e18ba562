package tui

import (
	"sort"
	"strings"

	"kartvy/internal/engine"
	"kartvy/internal/geom"
)

// layout computes the shared geometry of the screen. Update and View
// must agree on it for mouse mapping to line up with the drawn map.
func (m Model) layout() (sidebarW, contentW, contentH, mapW, mapH, mapOrgX, mapOrgY int) {
	if m.showSidebar {
		sidebarW = 28
	}
	headerHeight := 1
	footerHeight := 2
	contentH = m.height - headerHeight - footerHeight
	if contentH < 4 {
		contentH = 4
	}
	contentW = max(10, m.width)

	mapW = contentW - sidebarW
	if sidebarW > 0 {
		mapW-- // gap column
	}
	if mapW < 10 {
		mapW = 10
	}
	mapH = contentH
	mapOrgX = sidebarW
	if sidebarW > 0 {
		mapOrgX++
	}
	mapOrgY = headerHeight
	return
}

// toMicro maps a planar canvas point through the viewport into braille
// micro coordinates.
func toMicro(p geom.XY, v engine.Viewport, wMic, hMic int) (int, int, bool) {
	if v.Width <= 0 || v.Height <= 0 {
		return 0, 0, false
	}
	mx := int((p.X - v.X) / v.Width * float64(wMic))
	my := int((p.Y - v.Y) / v.Height * float64(hMic))
	return mx, my, true
}

func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)
	v := m.eng.Viewport()
	wMic, hMic := w*2, h*4

	// reference grid under everything else
	if m.showGrid {
		g := m.eng.Graticule()
		for _, seg := range append(append([]geom.Segment{}, g.Meridians...), g.Parallels...) {
			x0, y0, ok0 := toMicro(seg.From, v, wMic, hMic)
			x1, y1, ok1 := toMicro(seg.To, v, wMic, hMic)
			if ok0 && ok1 {
				br.drawLineMicro(x0, y0, x1, y1, gridHex)
			}
		}
	}

	// national outline, regions on top
	if outline := m.eng.Outline(); outline != nil && !m.eng.OnlySelected() {
		b, d := m.eng.Bounds(), m.eng.Dimensions()
		for _, poly := range outline.Polygons {
			for _, ring := range poly.Rings {
				m.strokeRing(br, geom.ProjectRing(ring, b, d), v, wMic, hMic, outlineHex)
			}
		}
	}

	selected := m.eng.SelectedID()
	for _, pr := range m.eng.Projected() {
		hex := m.colors[pr.ID]
		if pr.ID == selected {
			hex = selectedHex
		}
		for _, rings := range pr.Polygons {
			micRings := make([][][2]int, 0, len(rings))
			for _, ring := range rings {
				mic := make([][2]int, 0, len(ring))
				for _, p := range ring {
					mx, my, ok := toMicro(p, v, wMic, hMic)
					if !ok {
						continue
					}
					mic = append(mic, [2]int{mx, my})
				}
				if len(mic) >= 3 {
					micRings = append(micRings, mic)
				}
			}
			fillRings(br, micRings, hMic, hex)
			for _, r := range micRings {
				for i := range r {
					a, b := r[i], r[(i+1)%len(r)]
					br.drawLineMicro(a[0], a[1], b[0], b[1], hex)
				}
			}
		}
	}

	// hover marker
	if m.hovering {
		b, d := m.eng.Bounds(), m.eng.Dimensions()
		p := geom.Project(m.hoverLng, m.hoverLat, b, d)
		if mx, my, ok := toMicro(p, v, wMic, hMic); ok {
			br.setPixel(mx, my, hoverHex)
			br.setPixel(mx-1, my, hoverHex)
			br.setPixel(mx+1, my, hoverHex)
			br.setPixel(mx, my-1, hoverHex)
			br.setPixel(mx, my+1, hoverHex)
		}
	}

	return strings.Join(br.toLines(), "\n")
}

func (m Model) strokeRing(br *brailleBuf, ring []geom.XY, v engine.Viewport, wMic, hMic int, hex string) {
	if len(ring) < 2 {
		return
	}
	for i := range ring {
		x0, y0, ok0 := toMicro(ring[i], v, wMic, hMic)
		x1, y1, ok1 := toMicro(ring[(i+1)%len(ring)], v, wMic, hMic)
		if ok0 && ok1 {
			br.drawLineMicro(x0, y0, x1, y1, hex)
		}
	}
}

// fillRings scanline-fills a polygon part using the even-odd rule over
// all of its rings, so holes stay empty.
func fillRings(br *brailleBuf, rings [][][2]int, hMic int, hex string) {
	if len(rings) == 0 {
		return
	}
	minY, maxY := hMic, 0
	for _, r := range rings {
		for _, p := range r {
			if p[1] < minY {
				minY = p[1]
			}
			if p[1] > maxY {
				maxY = p[1]
			}
		}
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= hMic {
		maxY = hMic - 1
	}
	for yMic := minY; yMic <= maxY; yMic++ {
		var xs []int
		for _, r := range rings {
			for i := 0; i < len(r); i++ {
				a := r[i]
				b := r[(i+1)%len(r)]
				if a[1] == b[1] { // horizontal edge: skip
					continue
				}
				y0, y1 := a[1], b[1]
				x0, x1 := a[0], b[0]
				if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
					t := float64(yMic-y0) / float64(y1-y0)
					xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
				}
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			xstart, xend := xs[i], xs[i+1]
			if xstart > xend {
				xstart, xend = xend, xstart
			}
			for xMic := max(0, xstart); xMic <= xend; xMic++ {
				br.setPixel(xMic, yMic, hex)
			}
		}
	}
}
