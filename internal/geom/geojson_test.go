package geom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const provincesJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"ref": "01", "name": "Skåne"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[12.5, 55.3], [14.5, 55.3], [14.5, 56.5], [12.5, 56.5], [12.5, 55.3]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"ref": "02", "name": "Stockholm"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [[[17.5, 58.9], [18.9, 58.9], [18.9, 59.8], [17.5, 59.8], [17.5, 58.9]]],
          [[[19.0, 59.0], [19.2, 59.0], [19.2, 59.2], [19.0, 59.0]]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {"name": "ignored point"},
      "geometry": {"type": "Point", "coordinates": [15.0, 59.0]}
    }
  ]
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadRegions(t *testing.T) {
	regions, err := LoadRegions(writeTemp(t, "provinces.geojson", provincesJSON))
	require.NoError(t, err)
	require.Len(t, regions, 2, "point features are skipped")

	assert.Equal(t, "01", regions[0].ID)
	assert.Equal(t, "Skåne", regions[0].Name)
	require.Len(t, regions[0].Polygons, 1)
	// GeoJSON closing vertex is dropped
	assert.Len(t, regions[0].Polygons[0].Rings[0], 4)

	assert.Equal(t, "Stockholm", regions[1].Name)
	assert.Len(t, regions[1].Polygons, 2, "MultiPolygon keeps its parts")
	assert.Equal(t, "02", regions[1].Props["ref"])
}

func TestLoadRegionsSingleFeature(t *testing.T) {
	single := `{"type":"Feature","properties":{"name":"Öland"},
	"geometry":{"type":"Polygon","coordinates":[[[16.3,56.2],[17.1,56.2],[17.1,57.4],[16.3,56.2]]]}}`
	regions, err := LoadRegions(writeTemp(t, "single.geojson", single))
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "Öland", regions[0].Name)
}

func TestLoadRegionsErrors(t *testing.T) {
	_, err := LoadRegions(filepath.Join(t.TempDir(), "missing.geojson"))
	assert.Error(t, err)

	_, err = LoadRegions(writeTemp(t, "bad.geojson", "not json"))
	assert.Error(t, err)

	onlyPoints := `{"type":"FeatureCollection","features":[
	{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[1,2]}}]}`
	_, err = LoadRegions(writeTemp(t, "points.geojson", onlyPoints))
	assert.Error(t, err)
}
