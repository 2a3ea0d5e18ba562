package engine

import (
	"go.uber.org/zap"

	"kartvy/internal/geom"
)

// DefaultGraticuleInterval is the reference-grid spacing in degrees.
const DefaultGraticuleInterval = 1.0

// ProjectedRegion is a region's rings in planar canvas coordinates,
// kept alongside the path strings so hosts can draw or hit-test without
// re-parsing path data. Polygons[part][ring][vertex]; ring 0 of a part
// is its outer boundary.
type ProjectedRegion struct {
	ID       string
	Name     string
	Polygons [][][]geom.XY
}

// cacheKey identifies one derivation of the path cache. Paths are a
// pure function of (regions, selection, bounds, dims); the regions
// slice is tracked by a version counter bumped on every data change.
// Selection belongs in the key because it picks the visible region set
// even when it leaves the bounds unchanged.
type cacheKey struct {
	version      int
	selectedID   string
	onlySelected bool
	bounds       geom.Bounds
	dims         geom.Dimensions
}

// Engine wires the projection pipeline to the viewport and the gesture
// state machines. Derived state (bounds → dimensions → paths/graticule)
// is recomputed synchronously, in that order, whenever regions,
// selection, or display mode change; gestures only ever mutate the
// camera. The engine draws nothing.
type Engine struct {
	regions []geom.Region
	outline *geom.Region
	version int

	sel   Selection
	cam   *Camera
	mouse mouseChannel
	touch touchChannel

	gratInterval float64
	log          *zap.Logger

	bounds      geom.Bounds
	dims        geom.Dimensions
	paths       map[string]string
	outlinePath string
	projected   []ProjectedRegion
	grat        geom.Graticule
	key         cacheKey
	computed    bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

func WithZoomLimits(min, max float64) Option {
	return func(e *Engine) {
		e.cam.minZoom, e.cam.maxZoom = min, max
		e.cam.initialZoom = e.cam.clampZoom(e.cam.initialZoom)
		e.cam.zoom = e.cam.clampZoom(e.cam.zoom)
	}
}

func WithInitialZoom(z float64) Option {
	return func(e *Engine) {
		e.cam.initialZoom = e.cam.clampZoom(z)
		e.cam.zoom = e.cam.initialZoom
	}
}

func WithGraticuleInterval(deg float64) Option {
	return func(e *Engine) { e.gratInterval = deg }
}

// WithOutline supplies a reference outline (e.g. the national border).
// It widens the all-regions bounds and is drawn by hosts, but is not
// selectable and carries no path-map entry.
func WithOutline(r geom.Region) Option {
	return func(e *Engine) { e.outline = &r }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		cam:          NewCamera(DefaultMinZoom, DefaultMaxZoom, DefaultInitialZoom),
		gratInterval: DefaultGraticuleInterval,
		log:          zap.NewNop(),
		paths:        map[string]string{},
	}
	for _, o := range opts {
		o(e)
	}
	e.recompute()
	e.cam.ResetToFit(e.dims)
	return e
}

// SetRegions replaces the region collection. A selection that no longer
// resolves is cleared; geometry is recomputed and the camera refit.
func (e *Engine) SetRegions(regions []geom.Region) {
	e.regions = regions
	e.version++
	if e.sel.Active() && e.regionByID(e.sel.SelectedID()) == nil {
		e.sel.Clear()
		e.cam.SetLocked(false)
	}
	e.recompute()
	e.cam.ResetToFit(e.dims)
	e.log.Debug("regions set",
		zap.Int("count", len(regions)), zap.Int("version", e.version))
}

// SetOutline replaces the reference outline (nil removes it).
func (e *Engine) SetOutline(r *geom.Region) {
	e.outline = r
	e.version++
	e.recompute()
}

// SetContainerSize tells the engine the host element's pixel size, the
// stable coordinate frame for pointer anchors.
func (e *Engine) SetContainerSize(w, h float64) { e.cam.SetContainer(w, h) }

// Select picks a region, restricts the view to it, refits the camera at
// the initial zoom, and locks interaction. Unknown ids are ignored.
func (e *Engine) Select(id string) {
	if e.regionByID(id) == nil {
		return
	}
	e.sel.Select(id)
	e.recompute()
	e.cam.ResetToFit(e.dims)
	e.cam.SetLocked(true)
	e.log.Debug("region selected", zap.String("id", id))
}

// Reset clears the selection, refits to the full collection, unlocks
// interaction, and drops any in-flight gesture state.
func (e *Engine) Reset() {
	e.sel.Clear()
	e.mouse.reset()
	e.touch.reset()
	e.recompute()
	e.cam.ResetToFit(e.dims)
	e.cam.SetLocked(false)
	e.log.Debug("view reset")
}

// Escape mirrors the explicit reset while a selected region is shown;
// otherwise it only cancels any in-flight gesture.
func (e *Engine) Escape() {
	if e.sel.Active() {
		e.Reset()
		return
	}
	e.mouse.reset()
	e.touch.reset()
}

// --- mouse channel ---

func (e *Engine) PointerDown(x, y float64) {
	e.mouse.down(x, y)
}

func (e *Engine) PointerMove(x, y float64) {
	dx, dy := e.mouse.move(x, y)
	if dx != 0 || dy != 0 {
		e.cam.Pan(dx, dy)
	}
}

// PointerUp ends a mouse gesture. When the pointer never left the click
// dead zone the region under it (if any) is selected; the selected id
// is returned either way ("" when nothing was hit or a drag ended).
func (e *Engine) PointerUp(x, y float64) string {
	if !e.mouse.up() {
		return ""
	}
	id := e.HitTest(x, y)
	if id != "" {
		e.Select(id)
	}
	return id
}

func (e *Engine) PointerLeave() { e.mouse.reset() }

// Wheel zooms at the cursor; positive delta zooms out. The host is
// expected to have suppressed its native scroll before forwarding.
func (e *Engine) Wheel(deltaY, x, y float64) {
	if deltaY == 0 {
		return
	}
	factor := 0.9
	if deltaY > 0 {
		factor = 1.1
	}
	e.cam.ZoomAt(factor, x, y)
}

// ZoomIn/ZoomOut are the button-style zoom steps, anchored at the
// container centre.
func (e *Engine) ZoomIn()  { e.cam.ZoomAt(0.8, e.cam.containerW/2, e.cam.containerH/2) }
func (e *Engine) ZoomOut() { e.cam.ZoomAt(1.25, e.cam.containerW/2, e.cam.containerH/2) }

// PanBy applies a direct screen-space pan (host keyboard bindings).
func (e *Engine) PanBy(dx, dy float64) { e.cam.Pan(dx, dy) }

// --- touch channel ---

func (e *Engine) TouchStart(touches []Touch) {
	e.touch.start(touches)
}

func (e *Engine) TouchMove(touches []Touch) {
	tr, ok := e.touch.move(touches)
	if !ok {
		return
	}
	if tr.zoomFactor > 0 {
		e.cam.ZoomAt(tr.zoomFactor, tr.anchorX, tr.anchorY)
	}
	if tr.panDX != 0 || tr.panDY != 0 {
		e.cam.Pan(tr.panDX, tr.panDY)
	}
}

// TouchEnd retires lifted touches; remaining carries the touches still
// active. A clean tap selects the region under it, as a mouse click
// does.
func (e *Engine) TouchEnd(remaining []Touch) string {
	tapped, x, y := e.touch.end(remaining)
	if !tapped {
		return ""
	}
	id := e.HitTest(x, y)
	if id != "" {
		e.Select(id)
	}
	return id
}

// --- derived state ---

func (e *Engine) resolveBounds() geom.Bounds {
	if e.sel.OnlySelected() {
		if r := e.regionByID(e.sel.SelectedID()); r != nil {
			if b, ok := geom.RegionBounds(*r); ok {
				return b
			}
		}
	}
	b, ok := geom.BoundsOf(e.regions)
	if e.outline != nil {
		if ob, ook := geom.RegionBounds(*e.outline); ook {
			if ok {
				b = b.Union(ob)
			} else {
				b, ok = ob, true
			}
		}
	}
	if !ok {
		return geom.Bounds{}
	}
	return b
}

// recompute runs the fixed pipeline bounds → dimensions → paths. The
// path cache is rebuilt whole whenever its key changes, so no path ever
// reflects stale bounds.
func (e *Engine) recompute() {
	e.bounds = e.resolveBounds()
	e.dims = geom.DimensionsOf(e.bounds)

	key := cacheKey{
		version:      e.version,
		selectedID:   e.sel.SelectedID(),
		onlySelected: e.sel.OnlySelected(),
		bounds:       e.bounds,
		dims:         e.dims,
	}
	if e.computed && key == e.key {
		return
	}
	e.key = key
	e.computed = true

	visible := e.visibleRegions()
	paths := make(map[string]string, len(visible))
	projected := make([]ProjectedRegion, 0, len(visible))
	for _, r := range visible {
		paths[r.ID] = geom.PathOf(r.Polygons, e.bounds, e.dims)
		pr := ProjectedRegion{ID: r.ID, Name: r.Name}
		for _, poly := range r.Polygons {
			rings := make([][]geom.XY, 0, len(poly.Rings))
			for _, ring := range poly.Rings {
				rings = append(rings, geom.ProjectRing(ring, e.bounds, e.dims))
			}
			pr.Polygons = append(pr.Polygons, rings)
		}
		projected = append(projected, pr)
	}
	e.paths = paths
	e.projected = projected

	e.outlinePath = ""
	if e.outline != nil && !e.sel.OnlySelected() {
		e.outlinePath = geom.PathOf(e.outline.Polygons, e.bounds, e.dims)
	}

	e.grat = geom.GraticuleOf(e.bounds, e.dims, e.gratInterval)
	e.log.Debug("pipeline recompute",
		zap.Int("regions", len(visible)),
		zap.Float64("width", e.dims.Width),
		zap.Float64("height", e.dims.Height))
}

func (e *Engine) visibleRegions() []geom.Region {
	if e.sel.OnlySelected() {
		if r := e.regionByID(e.sel.SelectedID()); r != nil {
			return []geom.Region{*r}
		}
	}
	return e.regions
}

func (e *Engine) regionByID(id string) *geom.Region {
	for i := range e.regions {
		if e.regions[i].ID == id {
			return &e.regions[i]
		}
	}
	return nil
}

// HitTest resolves the region under a screen point using the even-odd
// rule over the projected rings; holes exclude correctly. Returns ""
// when nothing is hit.
func (e *Engine) HitTest(screenX, screenY float64) string {
	pt := e.cam.ScreenToCanvas(screenX, screenY)
	// later regions draw on top, so test them first
	for i := len(e.projected) - 1; i >= 0; i-- {
		if projectedContains(e.projected[i], pt.X, pt.Y) {
			return e.projected[i].ID
		}
	}
	return ""
}

func projectedContains(pr ProjectedRegion, x, y float64) bool {
	inside := false
	for _, poly := range pr.Polygons {
		for _, ring := range poly {
			if ringContains(ring, x, y) {
				inside = !inside
			}
		}
	}
	return inside
}

// ringContains is a standard even-odd ray cast against one ring.
func ringContains(ring []geom.XY, x, y float64) bool {
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		yi, yj := ring[i].Y, ring[j].Y
		if (yi > y) != (yj > y) {
			xCross := ring[i].X + (y-yi)/(yj-yi)*(ring[j].X-ring[i].X)
			if x < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// --- read side ---

func (e *Engine) Viewport() Viewport          { return e.cam.Viewport() }
func (e *Engine) Zoom() float64               { return e.cam.Zoom() }
func (e *Engine) Locked() bool                { return e.cam.Locked() }
func (e *Engine) Bounds() geom.Bounds         { return e.bounds }
func (e *Engine) Dimensions() geom.Dimensions { return e.dims }
func (e *Engine) Graticule() geom.Graticule   { return e.grat }
func (e *Engine) SelectedID() string          { return e.sel.SelectedID() }
func (e *Engine) OnlySelected() bool          { return e.sel.OnlySelected() }
func (e *Engine) Regions() []geom.Region      { return e.regions }
func (e *Engine) Outline() *geom.Region       { return e.outline }
func (e *Engine) OutlinePath() string         { return e.outlinePath }

// Paths returns the current region-id → path-string map. The map is the
// cache itself; callers must treat it as read-only.
func (e *Engine) Paths() map[string]string { return e.paths }

// Projected returns the regions' planar rings for hosts that rasterize
// directly instead of consuming path strings.
func (e *Engine) Projected() []ProjectedRegion { return e.projected }

// CanvasPoint maps a screen position into planar canvas coordinates
// through the current viewport (hover readouts, host-side picking).
func (e *Engine) CanvasPoint(sx, sy float64) geom.XY { return e.cam.ScreenToCanvas(sx, sy) }
