package engine

import (
	"kartvy/internal/geom"
)

// Zoom defaults. The scalar zoom is clamped to [minZoom, maxZoom];
// the viewport window is resized proportionally on every zoom change.
const (
	DefaultMinZoom     = 0.5
	DefaultMaxZoom     = 8.0
	DefaultInitialZoom = 1.0
)

// Viewport is the visible window into the planar canvas. It is owned by
// the Camera; consumers only read it.
type Viewport struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Camera owns the viewport rectangle and the zoom scalar and applies
// pan/zoom/reset transforms to them. Screen-space deltas and anchors are
// converted to planar units through the container rect, so a pixel of
// drag covers the same on-screen distance at every zoom level, for
// mouse and touch alike.
type Camera struct {
	view        Viewport
	zoom        float64
	minZoom     float64
	maxZoom     float64
	initialZoom float64

	containerW float64
	containerH float64

	// locked while a single selected region is displayed; pan and zoom
	// are no-ops until reset re-enables them.
	locked bool
}

func NewCamera(minZoom, maxZoom, initialZoom float64) *Camera {
	if minZoom <= 0 {
		minZoom = DefaultMinZoom
	}
	if maxZoom < minZoom {
		maxZoom = minZoom
	}
	c := &Camera{minZoom: minZoom, maxZoom: maxZoom}
	c.initialZoom = c.clampZoom(initialZoom)
	c.zoom = c.initialZoom
	return c
}

// SetContainer records the host element's size in screen pixels, used
// to translate pointer positions into viewport fractions.
func (c *Camera) SetContainer(w, h float64) {
	c.containerW = w
	c.containerH = h
}

func (c *Camera) Viewport() Viewport { return c.view }
func (c *Camera) Zoom() float64      { return c.zoom }
func (c *Camera) Locked() bool       { return c.locked }
func (c *Camera) SetLocked(v bool)   { c.locked = v }

func (c *Camera) clampZoom(z float64) float64 {
	if z < c.minZoom {
		return c.minZoom
	}
	if z > c.maxZoom {
		return c.maxZoom
	}
	return z
}

// unitsPerPixel converts one screen pixel to planar units along each
// axis. With no container known, screen units are taken as planar.
func (c *Camera) unitsPerPixel() (float64, float64) {
	ux, uy := 1.0, 1.0
	if c.containerW > 0 {
		ux = c.view.Width / c.containerW
	}
	if c.containerH > 0 {
		uy = c.view.Height / c.containerH
	}
	return ux, uy
}

// Pan shifts the viewport by a screen-space drag delta. Dragging content
// right moves the window left, hence the inverted sign.
func (c *Camera) Pan(dxScreen, dyScreen float64) {
	if c.locked {
		return
	}
	ux, uy := c.unitsPerPixel()
	c.view.X -= dxScreen * ux
	c.view.Y -= dyScreen * uy
}

// ZoomAt resizes the viewport by factor (>1 zooms out, <1 zooms in),
// keeping the canvas point under the screen anchor visually fixed. The
// zoom scalar is clamped first; a clamp that leaves it unchanged leaves
// the viewport untouched.
func (c *Camera) ZoomAt(factor, anchorScreenX, anchorScreenY float64) {
	if c.locked || factor <= 0 {
		return
	}
	target := c.clampZoom(c.zoom / factor)
	if target == c.zoom {
		return
	}
	applied := c.zoom / target

	fx, fy := 0.5, 0.5
	if c.containerW > 0 {
		fx = clamp01(anchorScreenX / c.containerW)
	}
	if c.containerH > 0 {
		fy = clamp01(anchorScreenY / c.containerH)
	}

	newW := c.view.Width * applied
	newH := c.view.Height * applied
	c.view.X += fx * (c.view.Width - newW)
	c.view.Y += fy * (c.view.Height - newH)
	c.view.Width = newW
	c.view.Height = newH
	c.zoom = target
}

// SetZoom clamps z and, when it actually changes, resizes the viewport
// about its own centre. A clamped-to-same value is a no-op.
func (c *Camera) SetZoom(z float64) {
	if c.locked {
		return
	}
	target := c.clampZoom(z)
	if target == c.zoom {
		return
	}
	applied := c.zoom / target
	newW := c.view.Width * applied
	newH := c.view.Height * applied
	c.view.X += (c.view.Width - newW) / 2
	c.view.Y += (c.view.Height - newH) / 2
	c.view.Width = newW
	c.view.Height = newH
	c.zoom = target
}

// ResetToFit replaces the viewport wholesale with the full canvas and
// restores the initial zoom. Reset works even while locked.
func (c *Camera) ResetToFit(d geom.Dimensions) {
	c.view = Viewport{X: 0, Y: 0, Width: d.Width, Height: d.Height}
	c.zoom = c.initialZoom
}

// ScreenToCanvas maps a screen position into planar canvas coordinates
// through the current viewport.
func (c *Camera) ScreenToCanvas(sx, sy float64) geom.XY {
	fx, fy := 0.0, 0.0
	if c.containerW > 0 {
		fx = sx / c.containerW
	}
	if c.containerH > 0 {
		fy = sy / c.containerH
	}
	return geom.XY{
		X: c.view.X + fx*c.view.Width,
		Y: c.view.Y + fy*c.view.Height,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
