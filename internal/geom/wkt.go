package geom

import (
	"errors"
	"strconv"
	"strings"
)

// ParseWKTRegion parses a pasted WKT POLYGON or MULTIPOLYGON into a
// region. Coordinates are "lng lat" tuples; invalid tuples are skipped.
func ParseWKTRegion(id, name, wkt string) (Region, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Region{}, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	switch {
	case strings.HasPrefix(up, "MULTIPOLYGON"):
		i := strings.Index(s, "(((")
		j := strings.LastIndex(s, ")))")
		if i < 0 || j <= i {
			return Region{}, errors.New("wkt multipolygon: invalid")
		}
		var polys []Polygon
		for _, block := range splitWKTBlocks(s[i+2:j+1], ")),((") {
			if poly := parseWKTPolygon(block); len(poly.Rings) > 0 {
				polys = append(polys, poly)
			}
		}
		if len(polys) == 0 {
			return Region{}, errors.New("wkt multipolygon: no rings parsed")
		}
		return Region{ID: id, Name: name, Polygons: polys}, nil
	case strings.HasPrefix(up, "POLYGON"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return Region{}, errors.New("wkt polygon: invalid")
		}
		poly := parseWKTPolygon(s[i+2 : j])
		if len(poly.Rings) == 0 {
			return Region{}, errors.New("wkt polygon: no rings parsed")
		}
		return Region{ID: id, Name: name, Polygons: []Polygon{poly}}, nil
	}
	return Region{}, errors.New("unsupported wkt type (need POLYGON or MULTIPOLYGON)")
}

// parseWKTPolygon parses the ring blocks of one polygon, outer first.
func parseWKTPolygon(body string) Polygon {
	var poly Polygon
	for _, rp := range splitWKTBlocks(body, "),(") {
		ring := parseWKTTuples(rp)
		if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
			ring = ring[:len(ring)-1]
		}
		if len(ring) >= 3 {
			poly.Rings = append(poly.Rings, ring)
		}
	}
	return poly
}

// splitWKTBlocks splits on a separator after normalizing the spacing
// variants seen in hand-written WKT.
func splitWKTBlocks(s, sep string) []string {
	norm := strings.ReplaceAll(s, ", ", ",")
	norm = strings.ReplaceAll(norm, " ,", ",")
	norm = strings.ReplaceAll(norm, "( ", "(")
	norm = strings.ReplaceAll(norm, " )", ")")
	return strings.Split(norm, sep)
}

func parseWKTTuples(block string) Ring {
	var ring Ring
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			continue
		}
		lng, e1 := strconv.ParseFloat(strings.Trim(parts[0], "()"), 64)
		lat, e2 := strconv.ParseFloat(strings.Trim(parts[1], "()"), 64)
		if e1 != nil || e2 != nil {
			continue
		}
		ring = append(ring, Point{Lng: lng, Lat: lat})
	}
	return ring
}
