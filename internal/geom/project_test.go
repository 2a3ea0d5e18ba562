package geom

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBounds() Bounds {
	return Bounds{MinLng: 10, MinLat: 55, MaxLng: 16, MaxLat: 62}
}

func TestProjectEdgesHitCanvasEdges(t *testing.T) {
	b := testBounds()
	d := DimensionsOf(b)
	for _, lat := range []float64{55, 58.5, 62} {
		assert.InDelta(t, 0, Project(b.MinLng, lat, b, d).X, 1e-9)
		assert.InDelta(t, d.Width, Project(b.MaxLng, lat, b, d).X, 1e-9)
	}
	assert.InDelta(t, 0, Project(12, b.MaxLat, b, d).Y, 1e-9, "north at top")
	assert.InDelta(t, d.Height, Project(12, b.MinLat, b, d).Y, 1e-9)
}

func TestProjectDegenerateBoundsNoNaN(t *testing.T) {
	b := NewBounds(15, 59)
	d := DimensionsOf(b)
	xy := Project(15, 59, b, d)
	require.False(t, math.IsNaN(xy.X) || math.IsInf(xy.X, 0))
	require.False(t, math.IsNaN(xy.Y) || math.IsInf(xy.Y, 0))
	assert.Equal(t, d.Width/2, xy.X)
	assert.Equal(t, d.Height/2, xy.Y)
}

func TestProjectPolarBoundsStaysFinite(t *testing.T) {
	// latitudes at the poles diverge under Mercator; the transform
	// clamps to the Web-Mercator band instead
	b := Bounds{MinLng: -180, MinLat: 60, MaxLng: 180, MaxLat: 90}
	d := DimensionsOf(b)
	for _, lat := range []float64{60, 85, 90} {
		xy := Project(0, lat, b, d)
		require.False(t, math.IsNaN(xy.Y) || math.IsInf(xy.Y, 0), "lat %v", lat)
		assert.GreaterOrEqual(t, xy.Y, 0.0)
		assert.LessOrEqual(t, xy.Y, d.Height)
	}
	// both poles land on the clamp cutoff, so a south-polar bounds is
	// finite too
	bs := Bounds{MinLng: -180, MinLat: -90, MaxLng: 180, MaxLat: -60}
	xy := Project(0, -90, bs, DimensionsOf(bs))
	require.False(t, math.IsNaN(xy.Y) || math.IsInf(xy.Y, 0))
}

func TestDimensionsAspectAndFloor(t *testing.T) {
	d := DimensionsOf(testBounds())
	assert.Equal(t, BaseWidth, d.Width)

	lngRange := 6.0
	latRange := 7.0
	want := BaseWidth * latRange / (lngRange * math.Cos(58.5*math.Pi/180))
	assert.InDelta(t, want, d.Height, 1e-9)

	// thin east-west strip still gets the height floor
	thin := Bounds{MinLng: 0, MinLat: 50, MaxLng: 60, MaxLat: 50.1}
	assert.Equal(t, MinHeight, DimensionsOf(thin).Height)

	// single point must not divide by zero
	pt := DimensionsOf(NewBounds(15, 59))
	assert.Equal(t, MinHeight, pt.Height)
	assert.Equal(t, BaseWidth, pt.Width)
}

func TestUnprojectRoundTrip(t *testing.T) {
	b := testBounds()
	d := DimensionsOf(b)
	for _, p := range []Point{{10, 55}, {16, 62}, {12.3, 57.9}, {14.01, 60.5}} {
		xy := Project(p.Lng, p.Lat, b, d)
		back := Unproject(xy.X, xy.Y, b, d)
		assert.InDelta(t, p.Lng, back.Lng, 1e-9)
		assert.InDelta(t, p.Lat, back.Lat, 1e-9)
	}
}

func TestMercatorParallelSpacingUneven(t *testing.T) {
	b := testBounds()
	d := DimensionsOf(b)
	g := GraticuleOf(b, d, 1)
	require.GreaterOrEqual(t, len(g.Parallels), 3)
	// toward the pole-ward edge the projected gaps grow
	first := g.Parallels[0].From.Y - g.Parallels[1].From.Y
	last := g.Parallels[len(g.Parallels)-2].From.Y - g.Parallels[len(g.Parallels)-1].From.Y
	assert.Greater(t, last, first)

	require.Equal(t, 7, len(g.Meridians))
	for _, m := range g.Meridians {
		assert.InDelta(t, m.From.X, m.To.X, 1e-9, "meridians are vertical")
	}
}

func TestGraticuleDegenerate(t *testing.T) {
	g := GraticuleOf(NewBounds(15, 59), Dimensions{Width: BaseWidth, Height: MinHeight}, 1)
	assert.Empty(t, g.Meridians)
	assert.Empty(t, g.Parallels)
	assert.Empty(t, GraticuleOf(testBounds(), DimensionsOf(testBounds()), 0).Meridians)
}

func TestPathOf(t *testing.T) {
	b := testBounds()
	d := DimensionsOf(b)
	square := Polygon{Rings: []Ring{{{10, 55}, {12, 55}, {12, 57}, {10, 57}}}}
	path := PathOf([]Polygon{square}, b, d)

	require.True(t, strings.HasPrefix(path, "M"))
	require.True(t, strings.HasSuffix(path, "Z"))
	assert.Equal(t, 1, strings.Count(path, "M"))
	assert.Equal(t, 3, strings.Count(path, "L"))

	// two polygon parts concatenate into one drawable path string
	two := PathOf([]Polygon{square, square}, b, d)
	assert.Equal(t, 2, strings.Count(two, "Z"))
	assert.Equal(t, 2, strings.Count(two, "M"))
}

func TestPathChangesWithBounds(t *testing.T) {
	square := Polygon{Rings: []Ring{{{10, 55}, {12, 55}, {12, 57}, {10, 57}}}}
	all := testBounds()
	tight := Bounds{MinLng: 10, MinLat: 55, MaxLng: 12, MaxLat: 57}
	assert.NotEqual(t,
		PathOf([]Polygon{square}, all, DimensionsOf(all)),
		PathOf([]Polygon{square}, tight, DimensionsOf(tight)))
}
