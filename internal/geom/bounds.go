package geom

// Bounds is the minimal axis-aligned lng/lat rectangle around a set of
// geometries. The zero value is not a valid bounds; build one with
// BoundsOf or start from NewBounds and Extend.
type Bounds struct {
	MinLng float64
	MinLat float64
	MaxLng float64
	MaxLat float64
}

// NewBounds returns a degenerate bounds containing exactly one point.
func NewBounds(lng, lat float64) Bounds {
	return Bounds{MinLng: lng, MinLat: lat, MaxLng: lng, MaxLat: lat}
}

// Extend grows the bounds to contain the given point.
func (b Bounds) Extend(lng, lat float64) Bounds {
	if lng < b.MinLng {
		b.MinLng = lng
	}
	if lat < b.MinLat {
		b.MinLat = lat
	}
	if lng > b.MaxLng {
		b.MaxLng = lng
	}
	if lat > b.MaxLat {
		b.MaxLat = lat
	}
	return b
}

// Union returns the smallest bounds containing both operands.
func (b Bounds) Union(o Bounds) Bounds {
	return b.Extend(o.MinLng, o.MinLat).Extend(o.MaxLng, o.MaxLat)
}

// LngRange reports max-min longitude; zero for degenerate bounds.
func (b Bounds) LngRange() float64 { return b.MaxLng - b.MinLng }

// LatRange reports max-min latitude; zero for degenerate bounds.
func (b Bounds) LatRange() float64 { return b.MaxLat - b.MinLat }

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Point {
	return Point{Lng: (b.MinLng + b.MaxLng) / 2, Lat: (b.MinLat + b.MaxLat) / 2}
}

// Contains reports whether the point lies inside or on the bounds.
func (b Bounds) Contains(lng, lat float64) bool {
	return lng >= b.MinLng && lng <= b.MaxLng && lat >= b.MinLat && lat <= b.MaxLat
}

// RegionBounds computes the bounds of a single region by walking every
// ring of every polygon part.
func RegionBounds(r Region) (Bounds, bool) {
	var b Bounds
	seeded := false
	for _, poly := range r.Polygons {
		for _, ring := range poly.Rings {
			for _, p := range ring {
				if !seeded {
					b = NewBounds(p.Lng, p.Lat)
					seeded = true
				} else {
					b = b.Extend(p.Lng, p.Lat)
				}
			}
		}
	}
	return b, seeded
}

// BoundsOf computes the bounds of a region collection. The second return
// is false when the collection holds no coordinates at all.
func BoundsOf(regions []Region) (Bounds, bool) {
	var b Bounds
	seeded := false
	for _, r := range regions {
		rb, ok := RegionBounds(r)
		if !ok {
			continue
		}
		if !seeded {
			b = rb
			seeded = true
		} else {
			b = b.Union(rb)
		}
	}
	return b, seeded
}
