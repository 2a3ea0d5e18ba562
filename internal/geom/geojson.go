package geom

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Property keys probed for a region's display name, in order.
var nameKeys = []string{"name", "namn", "NAME", "title"}

// Property keys probed for a region's identity, in order.
var idKeys = []string{"id", "ref", "code", "ID"}

// LoadRegions reads a GeoJSON FeatureCollection (or a single Feature)
// and returns its polygonal features as regions. Non-polygonal features
// are skipped; a file with no polygons at all is an error.
func LoadRegions(path string) ([]Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read regions: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		// fall back to a bare Feature document
		f, ferr := geojson.UnmarshalFeature(data)
		if ferr != nil {
			return nil, fmt.Errorf("parse geojson: %w", err)
		}
		fc = geojson.NewFeatureCollection()
		fc.Append(f)
	}

	var regions []Region
	for i, f := range fc.Features {
		polys := polygonsOf(f.Geometry)
		if len(polys) == 0 {
			continue
		}
		regions = append(regions, Region{
			ID:       featureID(f, i),
			Name:     featureName(f, i),
			Polygons: polys,
			Props:    stringProps(f.Properties),
		})
	}
	if len(regions) == 0 {
		return nil, errors.New("geojson: no polygon features")
	}
	return regions, nil
}

// polygonsOf converts orb polygon geometry into the internal model. The
// Polygon/MultiPolygon distinction is decided here, by orb's geometry
// tag; everything downstream dispatches on the Polygons slice alone.
func polygonsOf(g orb.Geometry) []Polygon {
	switch geo := g.(type) {
	case orb.Polygon:
		return []Polygon{fromOrbPolygon(geo)}
	case orb.MultiPolygon:
		out := make([]Polygon, 0, len(geo))
		for _, p := range geo {
			out = append(out, fromOrbPolygon(p))
		}
		return out
	case orb.Collection:
		var out []Polygon
		for _, sub := range geo {
			out = append(out, polygonsOf(sub)...)
		}
		return out
	default:
		return nil
	}
}

func fromOrbPolygon(p orb.Polygon) Polygon {
	var poly Polygon
	for _, ring := range p {
		r := make(Ring, 0, len(ring))
		for _, pt := range ring {
			r = append(r, Point{Lng: pt.Lon(), Lat: pt.Lat()})
		}
		// drop the GeoJSON closing vertex; rings close implicitly
		if len(r) > 1 && r[0] == r[len(r)-1] {
			r = r[:len(r)-1]
		}
		poly.Rings = append(poly.Rings, r)
	}
	return poly
}

func featureID(f *geojson.Feature, idx int) string {
	if f.ID != nil {
		return fmt.Sprintf("%v", f.ID)
	}
	for _, k := range idKeys {
		if v, ok := f.Properties[k]; ok {
			return fmt.Sprintf("%v", v)
		}
	}
	return fmt.Sprintf("feature-%d", idx)
}

func featureName(f *geojson.Feature, idx int) string {
	for _, k := range nameKeys {
		if s := f.Properties.MustString(k, ""); s != "" {
			return s
		}
	}
	return fmt.Sprintf("Region %d", idx+1)
}

func stringProps(props geojson.Properties) map[string]string {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]string, len(props))
	for k, v := range props {
		out[k] = fmt.Sprintf("%v", v)
	}
	return out
}
