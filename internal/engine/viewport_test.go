package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kartvy/internal/geom"
)

func fitCamera() *Camera {
	c := NewCamera(DefaultMinZoom, DefaultMaxZoom, DefaultInitialZoom)
	c.ResetToFit(geom.Dimensions{Width: 800, Height: 600})
	c.SetContainer(800, 600)
	return c
}

func TestPanInvertsScreenDelta(t *testing.T) {
	c := fitCamera()
	c.Pan(10, -20)
	v := c.Viewport()
	assert.Equal(t, -10.0, v.X)
	assert.Equal(t, 20.0, v.Y)
	assert.Equal(t, 800.0, v.Width)
}

func TestPanCompensatesZoom(t *testing.T) {
	c := fitCamera()
	c.ZoomAt(0.5, 400, 300) // zoom to 2x
	require.Equal(t, 2.0, c.Zoom())
	before := c.Viewport()
	c.Pan(100, 0)
	// 100 screen px over an 800 px container covers 1/8 of the viewport
	assert.InDelta(t, before.X-before.Width/8, c.Viewport().X, 1e-9)
}

func TestZoomAtKeepsAnchorFixed(t *testing.T) {
	c := fitCamera()
	anchorX, anchorY := 200.0, 450.0
	before := c.ScreenToCanvas(anchorX, anchorY)
	c.ZoomAt(0.8, anchorX, anchorY)
	after := c.ScreenToCanvas(anchorX, anchorY)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
	assert.InDelta(t, 1/0.8, c.Zoom(), 1e-9)
	assert.InDelta(t, 640.0, c.Viewport().Width, 1e-9)
}

func TestZoomClampIsIdempotent(t *testing.T) {
	c := fitCamera()
	c.SetZoom(DefaultMaxZoom * 4)
	once := c.Viewport()
	onceZoom := c.Zoom()
	for i := 0; i < 5; i++ {
		c.SetZoom(DefaultMaxZoom * 10)
	}
	assert.Equal(t, once, c.Viewport(), "repeated over-limit zoom must not move the viewport")
	assert.Equal(t, onceZoom, c.Zoom())
	assert.Equal(t, DefaultMaxZoom, c.Zoom())
}

func TestZoomAtLimitIsViewportNoop(t *testing.T) {
	c := fitCamera()
	for c.Zoom() < DefaultMaxZoom {
		c.ZoomAt(0.5, 400, 300)
	}
	at := c.Viewport()
	c.ZoomAt(0.5, 123, 45)
	assert.Equal(t, at, c.Viewport(), "clamped-to-same zoom must not recenter")
}

func TestSetZoomCentered(t *testing.T) {
	c := fitCamera()
	c.SetZoom(2)
	v := c.Viewport()
	assert.InDelta(t, 400.0, v.Width, 1e-9)
	assert.InDelta(t, 300.0, v.Height, 1e-9)
	assert.InDelta(t, 200.0, v.X, 1e-9)
	assert.InDelta(t, 150.0, v.Y, 1e-9)
}

func TestResetToFit(t *testing.T) {
	c := fitCamera()
	c.ZoomAt(0.5, 100, 100)
	c.Pan(40, 40)
	c.ResetToFit(geom.Dimensions{Width: 800, Height: 600})
	assert.Equal(t, Viewport{X: 0, Y: 0, Width: 800, Height: 600}, c.Viewport())
	assert.Equal(t, DefaultInitialZoom, c.Zoom())
}

func TestLockedCameraIgnoresPanAndZoom(t *testing.T) {
	c := fitCamera()
	c.SetLocked(true)
	v := c.Viewport()
	c.Pan(50, 50)
	c.ZoomAt(0.5, 400, 300)
	c.SetZoom(3)
	assert.Equal(t, v, c.Viewport())
	assert.Equal(t, DefaultInitialZoom, c.Zoom())

	// reset still works and is the path that re-enables interaction
	c.ResetToFit(geom.Dimensions{Width: 800, Height: 600})
	c.SetLocked(false)
	c.Pan(50, 50)
	assert.NotEqual(t, v, c.Viewport())
}

func TestZoomAtInvalidFactor(t *testing.T) {
	c := fitCamera()
	v := c.Viewport()
	c.ZoomAt(0, 10, 10)
	c.ZoomAt(-2, 10, 10)
	assert.Equal(t, v, c.Viewport())
}
