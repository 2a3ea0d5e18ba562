package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonas-p/go-shp"
)

// LoadShapefile reads polygon records from an ESRI shapefile and returns
// them as regions. Attribute columns become Props; the name and id are
// picked from them with the same key preference as the GeoJSON loader.
// Non-polygon records are skipped.
func LoadShapefile(path string) ([]Region, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile: %w", err)
	}
	defer reader.Close()

	fields := reader.Fields()
	var regions []Region
	for reader.Next() {
		n, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}

		props := make(map[string]string, len(fields))
		for i, f := range fields {
			if v := reader.ReadAttribute(n, i); v != "" {
				props[f.String()] = v
			}
		}

		regions = append(regions, Region{
			ID:       shpAttr(props, idKeys, fmt.Sprintf("shape-%d", n)),
			Name:     shpAttr(props, nameKeys, fmt.Sprintf("Region %d", n+1)),
			Polygons: splitParts(poly),
			Props:    props,
		})
	}
	if len(regions) == 0 {
		return nil, errors.New("shapefile: no polygon records")
	}
	return regions, nil
}

// splitParts slices a shapefile polygon's flat point array into rings by
// its part offsets. Shapefiles do not tag holes; each part is kept as
// its own single-ring polygon, which draws correctly under the even-odd
// rule.
func splitParts(p *shp.Polygon) []Polygon {
	parts := make([]int32, 0, len(p.Parts)+1)
	parts = append(parts, p.Parts...)
	parts = append(parts, int32(len(p.Points)))

	var out []Polygon
	for i := 0; i+1 < len(parts); i++ {
		start, end := parts[i], parts[i+1]
		if start < 0 || int(end) > len(p.Points) || start >= end {
			continue
		}
		ring := make(Ring, 0, end-start)
		for _, pt := range p.Points[start:end] {
			ring = append(ring, Point{Lng: pt.X, Lat: pt.Y})
		}
		if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
			ring = ring[:len(ring)-1]
		}
		if len(ring) >= 3 {
			out = append(out, Polygon{Rings: []Ring{ring}})
		}
	}
	return out
}

func shpAttr(props map[string]string, keys []string, fallback string) string {
	for _, k := range keys {
		for pk, pv := range props {
			if strings.EqualFold(pk, k) && pv != "" {
				return pv
			}
		}
	}
	return fallback
}
