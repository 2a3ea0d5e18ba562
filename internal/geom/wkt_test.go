package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWKTPolygon(t *testing.T) {
	r, err := ParseWKTRegion("p1", "pasted", "POLYGON((10 55, 12 55, 12 57, 10 57, 10 55))")
	require.NoError(t, err)
	require.Len(t, r.Polygons, 1)
	require.Len(t, r.Polygons[0].Rings, 1)
	// closing vertex is dropped
	assert.Equal(t, Ring{{10, 55}, {12, 55}, {12, 57}, {10, 57}}, r.Polygons[0].Rings[0])
}

func TestParseWKTPolygonWithHole(t *testing.T) {
	r, err := ParseWKTRegion("p1", "pasted",
		"POLYGON((0 0, 10 0, 10 10, 0 10, 0 0), (4 4, 6 4, 6 6, 4 6, 4 4))")
	require.NoError(t, err)
	require.Len(t, r.Polygons, 1)
	assert.Len(t, r.Polygons[0].Rings, 2)
}

func TestParseWKTMultiPolygon(t *testing.T) {
	r, err := ParseWKTRegion("mp", "pasted",
		"MULTIPOLYGON(((10 55, 12 55, 12 57, 10 55)), ((14 60, 16 60, 16 62, 14 60)))")
	require.NoError(t, err)
	assert.Len(t, r.Polygons, 2)
}

func TestParseWKTErrors(t *testing.T) {
	cases := []string{
		"",
		"POINT(10 55)",
		"LINESTRING(10 55, 12 57)",
		"POLYGON(10 55)",
		"POLYGON((garbage))",
	}
	for _, c := range cases {
		_, err := ParseWKTRegion("x", "x", c)
		assert.Error(t, err, "wkt %q", c)
	}
}
