package engine

import "math"

// Touch is one active touch point with its stable identifier.
type Touch struct {
	ID int
	X  float64
	Y  float64
}

type touchPhase int

const (
	touchIdle touchPhase = iota
	// one finger down, movement still inside the dead zone; lifting now
	// is a tap (select), moving past the zone starts a pan
	touchPending
	touchPanning
	touchPinching
)

// touchChannel is the multi-touch state machine: idle → pending →
// panning for one finger, idle → pinching for two. Pinch applies zoom
// (distance ratio) and pan (centroid drift) in the same gesture.
// Malformed event sequences collapse back to idle instead of raising.
type touchChannel struct {
	phase  touchPhase
	moved  bool
	startX float64
	startY float64
	lastX  float64
	lastY  float64

	lastDist    float64
	lastCenterX float64
	lastCenterY float64
}

func pinchGeometry(a, b Touch) (dist, cx, cy float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Hypot(dx, dy), (a.X + b.X) / 2, (a.Y + b.Y) / 2
}

func (t *touchChannel) reset() {
	t.phase = touchIdle
	t.moved = false
	t.lastDist = 0
}

func (t *touchChannel) startSingle(p Touch) {
	t.phase = touchPending
	t.moved = false
	t.startX, t.startY = p.X, p.Y
	t.lastX, t.lastY = p.X, p.Y
}

func (t *touchChannel) startPinch(a, b Touch) {
	t.phase = touchPinching
	t.moved = true
	t.lastDist, t.lastCenterX, t.lastCenterY = pinchGeometry(a, b)
}

// start begins or restarts a gesture from the full set of active
// touches. Two or more fingers always mean pinch.
func (t *touchChannel) start(touches []Touch) {
	switch {
	case len(touches) >= 2:
		t.startPinch(touches[0], touches[1])
	case len(touches) == 1:
		t.startSingle(touches[0])
	default:
		t.reset()
	}
}

// touchTransform is the viewport change produced by one touch move.
type touchTransform struct {
	panDX, panDY     float64
	zoomFactor       float64 // viewport size multiplier; 0 = no zoom
	anchorX, anchorY float64
}

// move advances the state machine for a touchmove carrying all active
// touches and reports the transform to apply, if any.
func (t *touchChannel) move(touches []Touch) (touchTransform, bool) {
	var out touchTransform
	if len(touches) == 0 {
		// inconsistent stream: no touches yet a move event
		t.reset()
		return out, false
	}
	if t.phase == touchIdle {
		// move without a start: adopt the touches defensively
		t.start(touches)
		return out, false
	}

	if len(touches) >= 2 {
		if t.phase != touchPinching {
			t.startPinch(touches[0], touches[1])
			return out, false
		}
		dist, cx, cy := pinchGeometry(touches[0], touches[1])
		if dist <= 0 || t.lastDist <= 0 {
			t.lastDist, t.lastCenterX, t.lastCenterY = dist, cx, cy
			return out, false
		}
		// spreading fingers (dist ratio > 1) shrinks the viewport
		out.zoomFactor = t.lastDist / dist
		out.anchorX, out.anchorY = cx, cy
		out.panDX = cx - t.lastCenterX
		out.panDY = cy - t.lastCenterY
		t.lastDist, t.lastCenterX, t.lastCenterY = dist, cx, cy
		return out, true
	}

	p := touches[0]
	switch t.phase {
	case touchPinching:
		// a finger vanished without a touchend; resume single tracking
		t.phase = touchPanning
		t.lastX, t.lastY = p.X, p.Y
		return out, false
	case touchPending:
		if math.Hypot(p.X-t.startX, p.Y-t.startY) <= dragThreshold {
			t.lastX, t.lastY = p.X, p.Y
			return out, false
		}
		t.phase = touchPanning
		t.moved = true
		fallthrough
	case touchPanning:
		out.panDX = p.X - t.lastX
		out.panDY = p.Y - t.lastY
		t.lastX, t.lastY = p.X, p.Y
		return out, true
	}
	return out, false
}

// end handles touches lifting; remaining holds the touches still down.
// A fully-ended gesture that never moved reports a tap at the last
// position. 2→1 resumes panning from the survivor without ever
// re-arming tap detection.
func (t *touchChannel) end(remaining []Touch) (tapped bool, x, y float64) {
	switch {
	case len(remaining) >= 2:
		t.startPinch(remaining[0], remaining[1])
	case len(remaining) == 1:
		p := remaining[0]
		if t.phase == touchIdle {
			t.startSingle(p)
		} else {
			t.phase = touchPanning
			t.moved = true
			t.lastX, t.lastY = p.X, p.Y
		}
	default:
		tapped = t.phase == touchPending && !t.moved
		x, y = t.lastX, t.lastY
		t.reset()
	}
	return tapped, x, y
}

func (t *touchChannel) active() bool { return t.phase != touchIdle }
