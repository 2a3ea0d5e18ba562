package geom

// Point is a geographic coordinate in degrees.
type Point struct {
	Lng float64
	Lat float64
}

// Ring is an ordered, closed polygon boundary. The first point is
// conceptually equal to the last; rings are stored without requiring the
// duplicate closing vertex.
type Ring []Point

// Polygon is one outer ring plus optional holes.
type Polygon struct {
	Rings []Ring // Rings[0] is the outer boundary
}

// Region is an immutable polygon feature. Whether it came from a GeoJSON
// Polygon or MultiPolygon is resolved at the loader boundary; downstream
// code only ever sees the Polygons slice.
type Region struct {
	ID       string
	Name     string
	Polygons []Polygon
	Props    map[string]string
}

// Outer returns the region's outer rings, one per polygon part.
func (r Region) Outer() []Ring {
	out := make([]Ring, 0, len(r.Polygons))
	for _, p := range r.Polygons {
		if len(p.Rings) > 0 {
			out = append(out, p.Rings[0])
		}
	}
	return out
}

// PointCount reports the total number of vertices across all rings.
func (r Region) PointCount() int {
	n := 0
	for _, p := range r.Polygons {
		for _, ring := range p.Rings {
			n += len(ring)
		}
	}
	return n
}
