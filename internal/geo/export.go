package geo

import "github.com/twpayne/go-geom"

// Geometry gives go-geom values the geo interface.
type Geometry struct {
	geom.T
}

// GeoInterface exports the wrapped geometry.
func (g Geometry) GeoInterface() Mapping {
	return Export(g.T)
}

// Export deconstructs g into a Mapping backed by freshly allocated slices.
func Export(g geom.T) Mapping {
	k := KindOf(g)
	m := Mapping{Type: k.String()}
	switch t := g.(type) {
	case *geom.Point:
		m.Coordinates = pointCoords(t)
	case *geom.LineString:
		m.Coordinates = coords1(t.Coords())
	case *geom.Polygon:
		m.Coordinates = coords2(t.Coords())
	case *geom.MultiPoint:
		out := make([][]float64, t.NumPoints())
		for i := range out {
			out[i] = pointCoords(t.Point(i))
		}
		m.Coordinates = out
	case *geom.MultiLineString:
		m.Coordinates = coords2(t.Coords())
	case *geom.MultiPolygon:
		m.Coordinates = coords3(t.Coords())
	case *geom.GeometryCollection:
		members := t.Geoms()
		m.Geometries = make([]Provider, len(members))
		for i, member := range members {
			m.Geometries[i] = Geometry{member}
		}
	}
	return m
}

func pointCoords(p *geom.Point) []float64 {
	if p == nil || len(p.FlatCoords()) == 0 {
		return []float64{}
	}
	return coord(p.Coords())
}

func coord(c geom.Coord) []float64 {
	out := make([]float64, len(c))
	copy(out, c)
	return out
}

func coords1(cs []geom.Coord) [][]float64 {
	out := make([][]float64, len(cs))
	for i, c := range cs {
		out[i] = coord(c)
	}
	return out
}

func coords2(css [][]geom.Coord) [][][]float64 {
	out := make([][][]float64, len(css))
	for i, cs := range css {
		out[i] = coords1(cs)
	}
	return out
}

func coords3(csss [][][]geom.Coord) [][][][]float64 {
	out := make([][][][]float64, len(csss))
	for i, css := range csss {
		out[i] = coords2(css)
	}
	return out
}

// IsEmptyGeometry reports whether g carries no coordinates. A collection is
// empty when all of its members are.
func IsEmptyGeometry(g geom.T) bool {
	switch t := g.(type) {
	case nil:
		return true
	case *geom.GeometryCollection:
		for _, member := range t.Geoms() {
			if !IsEmptyGeometry(member) {
				return false
			}
		}
		return true
	default:
		return len(g.FlatCoords()) == 0
	}
}
