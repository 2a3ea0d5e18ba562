package tui

import "github.com/charmbracelet/lipgloss"

// brailleBuf rasterizes onto a 2x4 micro-pixel grid per terminal cell
// and renders each cell as a braille rune. Cells additionally carry a
// color; the last writer of any pixel in a cell wins its color.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit dot mask
	c    [][]string
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	c := make([][]string, h)
	for i := range m {
		m[i] = make([]uint8, w)
		c[i] = make([]string, w)
	}
	return &brailleBuf{w: w, h: h, m: m, c: c}
}

// setPixel sets a micro-pixel at micro coords; hex colors the cell.
func (b *brailleBuf) setPixel(mx, my int, hex string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	if hex != "" {
		b.c[cy][cx] = hex
	}
}

// drawLineMicro draws a Bresenham line on the microgrid.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, hex string) {
	// bail out on segments entirely outside a sane band to keep long
	// off-screen edges cheap
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) {
		return
	}
	wMic, hMic := b.w*2, b.h*4
	if (x0 >= wMic && x1 >= wMic) || (y0 >= hMic && y1 >= hMic) {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, hex)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// toLines renders the buffer, one styled string per cell row.
func (b *brailleBuf) toLines() []string {
	styles := map[string]lipgloss.Style{}
	styleFor := func(hex string) lipgloss.Style {
		s, ok := styles[hex]
		if !ok {
			s = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
			styles[hex] = s
		}
		return s
	}
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var line []byte
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				line = append(line, ' ')
				continue
			}
			r := string(rune(0x2800 + int(mask)))
			if hex := b.c[y][x]; hex != "" {
				r = styleFor(hex).Render(r)
			}
			line = append(line, r...)
		}
		out[y] = string(line)
	}
	return out
}
