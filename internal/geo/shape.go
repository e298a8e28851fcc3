package geo

import (
	"fmt"

	"github.com/twpayne/go-geom"
)

// Empty returns the canonical empty geometry of kind k, or nil for Unknown.
func Empty(k Kind) geom.T {
	switch k {
	case Point:
		return geom.NewPointEmpty(geom.XY)
	case LineString:
		return geom.NewLineString(geom.XY)
	case Polygon:
		return geom.NewPolygon(geom.XY)
	case MultiPoint:
		return geom.NewMultiPoint(geom.XY)
	case MultiLineString:
		return geom.NewMultiLineString(geom.XY)
	case MultiPolygon:
		return geom.NewMultiPolygon(geom.XY)
	case GeometryCollection:
		return geom.NewGeometryCollection()
	default:
		return nil
	}
}

// EmptyOf returns the empty geometry for a type name such as "multipoint".
func EmptyOf(name string) (geom.T, error) {
	k, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	return Empty(k), nil
}

// Box returns a rectangular polygon. The ring starts at the bottom-right
// corner and runs counter-clockwise, or clockwise when ccw is false.
// Bounds are not validated.
func Box(minx, miny, maxx, maxy float64, ccw bool) *geom.Polygon {
	ring := []geom.Coord{
		{maxx, miny},
		{maxx, maxy},
		{minx, maxy},
		{minx, miny},
	}
	if !ccw {
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
	}
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{closeRing(ring)})
}

// BoxCCW is Box with counter-clockwise winding.
func BoxCCW(minx, miny, maxx, maxy float64) *geom.Polygon {
	return Box(minx, miny, maxx, maxy, true)
}

// Shape builds a new geometry from v, which is either a Provider or a
// dictionary with "type" and "coordinates" or "geometries" keys.
// Coordinates are copied; later changes to v do not affect the result.
func Shape(v any) (geom.T, error) {
	p, err := resolve(v)
	if err != nil {
		return nil, err
	}
	m := p.GeoInterface()
	k, err := ParseKind(m.Type)
	if err != nil {
		return nil, err
	}
	if IsEmpty(m.Coordinates) && (m.Coordinates != nil || !k.IsCollection()) {
		return Empty(k), nil
	}
	g, err := builders[k](m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", k, err)
	}
	return g, nil
}

var builders map[Kind]func(Mapping) (geom.T, error)

func init() {
	builders = map[Kind]func(Mapping) (geom.T, error){
		Point:              buildPoint,
		LineString:         buildLineString,
		Polygon:            buildPolygon,
		MultiPoint:         buildMultiPoint,
		MultiLineString:    buildMultiLineString,
		MultiPolygon:       buildMultiPolygon,
		GeometryCollection: buildCollection,
	}
}

// solid rejects empty tuples inside a coordinate run.
func solid(cs []geom.Coord) error {
	for i, c := range cs {
		if len(c) == 0 {
			return invalid("empty coordinate at index %d", i)
		}
	}
	return nil
}

func buildPoint(m Mapping) (geom.T, error) {
	c, err := tuple(m.Coordinates)
	if err != nil {
		return nil, err
	}
	return geom.NewPoint(layoutFor(len(c))).SetCoords(c)
}

func buildLineString(m Mapping) (geom.T, error) {
	cs, err := tuples(m.Coordinates)
	if err != nil {
		return nil, err
	}
	if err := solid(cs); err != nil {
		return nil, err
	}
	var st strideTracker
	if err := st.addAll(cs); err != nil {
		return nil, err
	}
	return geom.NewLineString(st.layout()).SetCoords(cs)
}

func rings(css [][]geom.Coord, st *strideTracker) ([][]geom.Coord, error) {
	if len(css) > 1 && len(css[0]) == 0 {
		return nil, invalid("empty exterior ring with %d holes", len(css)-1)
	}
	out := make([][]geom.Coord, 0, len(css))
	for i, ring := range css {
		if err := solid(ring); err != nil {
			return nil, fmt.Errorf("ring %d: %w", i, err)
		}
		if err := st.addAll(ring); err != nil {
			return nil, err
		}
		out = append(out, closeRing(ring))
	}
	return out, nil
}

func buildPolygon(m Mapping) (geom.T, error) {
	css, err := tuples2(m.Coordinates)
	if err != nil {
		return nil, err
	}
	// exterior is css[0], holes are css[1:]
	var st strideTracker
	rs, err := rings(css, &st)
	if err != nil {
		return nil, err
	}
	return geom.NewPolygon(st.layout()).SetCoords(rs)
}

func buildMultiPoint(m Mapping) (geom.T, error) {
	cs, err := tuples(m.Coordinates)
	if err != nil {
		return nil, err
	}
	var st strideTracker
	if err := st.addAll(cs); err != nil {
		return nil, err
	}
	layout := st.layout()
	if solid(cs) == nil {
		return geom.NewMultiPoint(layout).SetCoords(cs)
	}
	// empty members are encoded through ends
	flat := make([]float64, 0, len(cs)*layout.Stride())
	ends := make([]int, 0, len(cs))
	for _, c := range cs {
		flat = append(flat, c...)
		ends = append(ends, len(flat))
	}
	return geom.NewMultiPointFlat(layout, flat, geom.NewMultiPointFlatOptionWithEnds(ends)), nil
}

func buildMultiLineString(m Mapping) (geom.T, error) {
	css, err := tuples2(m.Coordinates)
	if err != nil {
		return nil, err
	}
	var st strideTracker
	for i, line := range css {
		if err := solid(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if err := st.addAll(line); err != nil {
			return nil, err
		}
	}
	return geom.NewMultiLineString(st.layout()).SetCoords(css)
}

func buildMultiPolygon(m Mapping) (geom.T, error) {
	csss, err := tuples3(m.Coordinates)
	if err != nil {
		return nil, err
	}
	var st strideTracker
	polys := make([][][]geom.Coord, len(csss))
	for i, css := range csss {
		rs, err := rings(css, &st)
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}
		polys[i] = rs
	}
	return geom.NewMultiPolygon(st.layout()).SetCoords(polys)
}

func buildCollection(m Mapping) (geom.T, error) {
	gc := geom.NewGeometryCollection()
	for i, member := range m.Geometries {
		if member == nil {
			continue
		}
		g, err := Shape(member)
		if err != nil {
			return nil, fmt.Errorf("geometries[%d]: %w", i, err)
		}
		if err := gc.Push(g); err != nil {
			return nil, fmt.Errorf("geometries[%d]: %w", i, err)
		}
	}
	return gc, nil
}
