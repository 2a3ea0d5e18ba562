package geom

import (
	"math"
	"strconv"
	"strings"
)

// Canvas sizing. Width is fixed; height follows the bounds' aspect ratio
// compensated for latitude compression, with a floor so thin bounding
// boxes still produce a usable canvas.
const (
	BaseWidth = 800.0
	MinHeight = 400.0
)

// Dimensions is the planar canvas size derived from a Bounds.
type Dimensions struct {
	Width  float64
	Height float64
}

// XY is a projected planar coordinate (canvas space, north at top).
type XY struct {
	X float64
	Y float64
}

// Segment is one graticule line in planar coordinates.
type Segment struct {
	From XY
	To   XY
}

// Graticule holds the projected reference grid.
type Graticule struct {
	Meridians []Segment
	Parallels []Segment
}

// maxMercLat is the Web-Mercator latitude cutoff; poleward of it the
// transform diverges to infinity.
const maxMercLat = 85.05112878

// mercY is the cylindrical (Mercator) latitude transform. Latitude is
// clamped to the Web-Mercator band so polar datasets stay finite.
func mercY(latDeg float64) float64 {
	if latDeg > maxMercLat {
		latDeg = maxMercLat
	} else if latDeg < -maxMercLat {
		latDeg = -maxMercLat
	}
	return math.Log(math.Tan(math.Pi/4 + latDeg*math.Pi/360))
}

// invMercY inverts mercY back to degrees.
func invMercY(y float64) float64 {
	return (2*math.Atan(math.Exp(y)) - math.Pi/2) * 180 / math.Pi
}

// DimensionsOf derives the canvas size for a bounds. Longitude degrees
// shrink by cos(latitude) compared to latitude degrees, so the aspect
// ratio divides the latitude range by the cosine-scaled longitude range;
// without that, projected shapes come out squashed.
func DimensionsOf(b Bounds) Dimensions {
	lngRange := b.LngRange()
	latRange := b.LatRange()
	denom := lngRange * math.Cos(b.Center().Lat*math.Pi/180)
	if denom <= 0 {
		return Dimensions{Width: BaseWidth, Height: MinHeight}
	}
	aspect := latRange / denom
	h := BaseWidth * aspect
	if h < MinHeight {
		h = MinHeight
	}
	return Dimensions{Width: BaseWidth, Height: h}
}

// Project maps a lng/lat coordinate into canvas space: linear in
// longitude, Mercator in latitude, north at the top. Degenerate ranges
// fall back to the canvas midpoint instead of dividing by zero.
func Project(lng, lat float64, b Bounds, d Dimensions) XY {
	var x float64
	if b.MaxLng == b.MinLng {
		x = d.Width / 2
	} else {
		x = (lng - b.MinLng) / (b.MaxLng - b.MinLng) * d.Width
	}

	mMin := mercY(b.MinLat)
	mMax := mercY(b.MaxLat)
	var y float64
	if mMax == mMin {
		y = d.Height / 2
	} else {
		y = (mMax - mercY(lat)) / (mMax - mMin) * d.Height
	}
	return XY{X: x, Y: y}
}

// Unproject maps a canvas coordinate back to lng/lat. It is the inverse
// of Project over non-degenerate bounds (used for cursor readouts).
func Unproject(x, y float64, b Bounds, d Dimensions) Point {
	lng := b.Center().Lng
	if b.MaxLng != b.MinLng && d.Width > 0 {
		lng = b.MinLng + x/d.Width*(b.MaxLng-b.MinLng)
	}
	lat := b.Center().Lat
	mMin := mercY(b.MinLat)
	mMax := mercY(b.MaxLat)
	if mMax != mMin && d.Height > 0 {
		lat = invMercY(mMax - y/d.Height*(mMax-mMin))
	}
	return Point{Lng: lng, Lat: lat}
}

// ProjectRing projects every vertex of a ring.
func ProjectRing(ring Ring, b Bounds, d Dimensions) []XY {
	out := make([]XY, len(ring))
	for i, p := range ring {
		out[i] = Project(p.Lng, p.Lat, b, d)
	}
	return out
}

func appendCoord(sb *strings.Builder, v float64) {
	sb.WriteString(strconv.FormatFloat(v, 'f', 2, 64))
}

// PathOf renders polygons as a single SVG path string: one
// "M … L … Z" subpath per ring, subpaths concatenated so the whole
// region draws as one shape (holes rely on the even-odd fill rule).
func PathOf(polygons []Polygon, b Bounds, d Dimensions) string {
	var sb strings.Builder
	for _, poly := range polygons {
		for _, ring := range poly.Rings {
			if len(ring) == 0 {
				continue
			}
			for i, p := range ring {
				xy := Project(p.Lng, p.Lat, b, d)
				if i == 0 {
					if sb.Len() > 0 {
						sb.WriteByte(' ')
					}
					sb.WriteByte('M')
				} else {
					sb.WriteString(" L")
				}
				appendCoord(&sb, xy.X)
				sb.WriteByte(' ')
				appendCoord(&sb, xy.Y)
			}
			sb.WriteString(" Z")
		}
	}
	return sb.String()
}

// GraticuleOf builds meridian and parallel segments at the given degree
// interval, clipped to the bounds. Meridians are vertical; parallels
// land at Mercator-projected heights, so their spacing is uneven.
// A non-positive interval or degenerate bounds yield an empty grid.
func GraticuleOf(b Bounds, d Dimensions, intervalDeg float64) Graticule {
	var g Graticule
	if intervalDeg <= 0 {
		return g
	}
	if b.LngRange() > 0 {
		start := math.Ceil(b.MinLng/intervalDeg) * intervalDeg
		for lng := start; lng <= b.MaxLng; lng += intervalDeg {
			top := Project(lng, b.MaxLat, b, d)
			bot := Project(lng, b.MinLat, b, d)
			g.Meridians = append(g.Meridians, Segment{From: top, To: bot})
		}
	}
	if b.LatRange() > 0 {
		start := math.Ceil(b.MinLat/intervalDeg) * intervalDeg
		for lat := start; lat <= b.MaxLat; lat += intervalDeg {
			left := Project(b.MinLng, lat, b, d)
			right := Project(b.MaxLng, lat, b, d)
			g.Parallels = append(g.Parallels, Segment{From: left, To: right})
		}
	}
	return g
}
