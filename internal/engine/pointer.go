package engine

import "math"

// Movement below this many pixels is a click, not a drag.
const dragThreshold = 3.0

type pointerPhase int

const (
	pointerIdle pointerPhase = iota
	pointerDragging
)

// mouseChannel is the pointer-input state machine: idle → dragging →
// idle. It tracks enough to disambiguate a click from a pan.
type mouseChannel struct {
	phase      pointerPhase
	hasDragged bool
	startX     float64
	startY     float64
	lastX      float64
	lastY      float64
}

func (m *mouseChannel) down(x, y float64) {
	m.phase = pointerDragging
	m.hasDragged = false
	m.startX, m.startY = x, y
	m.lastX, m.lastY = x, y
}

// move pans by the delta from the last position and arms hasDragged
// once cumulative movement leaves the dead zone. Returns the pan delta;
// zero when not dragging.
func (m *mouseChannel) move(x, y float64) (dx, dy float64) {
	if m.phase != pointerDragging {
		m.lastX, m.lastY = x, y
		return 0, 0
	}
	dx = x - m.lastX
	dy = y - m.lastY
	if !m.hasDragged {
		tx := x - m.startX
		ty := y - m.startY
		if math.Hypot(tx, ty) > dragThreshold {
			m.hasDragged = true
		}
	}
	m.lastX, m.lastY = x, y
	return dx, dy
}

// up ends the gesture; clicked is true only when the pointer never left
// the dead zone, which is the sole click-vs-drag rule.
func (m *mouseChannel) up() (clicked bool) {
	clicked = m.phase == pointerDragging && !m.hasDragged
	m.reset()
	return clicked
}

func (m *mouseChannel) reset() {
	m.phase = pointerIdle
	m.hasDragged = false
}

func (m *mouseChannel) dragging() bool { return m.phase == pointerDragging }
