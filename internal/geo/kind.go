// Package geo converts between geo-interface mappings and go-geom geometries.
package geo

import (
	"strings"

	"github.com/twpayne/go-geom"
)

// Kind is one of the supported geometry kinds.
type Kind int

// Supported geometry kinds. Unknown is the zero value.
const (
	Unknown Kind = iota
	Point
	LineString
	Polygon
	MultiPoint
	MultiLineString
	MultiPolygon
	GeometryCollection
)

var kindNames = [...]string{
	Unknown:            "Unknown",
	Point:              "Point",
	LineString:         "LineString",
	Polygon:            "Polygon",
	MultiPoint:         "MultiPoint",
	MultiLineString:    "MultiLineString",
	MultiPolygon:       "MultiPolygon",
	GeometryCollection: "GeometryCollection",
}

// kindLookup maps lower-case names to kinds.
var kindLookup = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames)-1)
	for k := Point; k <= GeometryCollection; k++ {
		m[strings.ToLower(kindNames[k])] = k
	}
	return m
}()

// String returns the GeoJSON spelling of k, e.g. "MultiPolygon".
func (k Kind) String() string {
	if k < Unknown || int(k) >= len(kindNames) {
		return kindNames[Unknown]
	}
	return kindNames[k]
}

// Name returns the lower-case name of k, e.g. "multipolygon".
func (k Kind) Name() string {
	return strings.ToLower(k.String())
}

// IsCollection reports whether k holds geometries instead of coordinates.
func (k Kind) IsCollection() bool {
	return k == GeometryCollection
}

// ParseKind resolves a geometry type name, ignoring case.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindLookup[strings.ToLower(s)]; ok {
		return k, nil
	}
	return Unknown, &UnknownTypeError{Type: s}
}

// Kinds returns all supported kinds in declaration order.
func Kinds() []Kind {
	return []Kind{Point, LineString, Polygon, MultiPoint, MultiLineString, MultiPolygon, GeometryCollection}
}

// KindOf returns the kind of an engine geometry.
func KindOf(g geom.T) Kind {
	switch g.(type) {
	case *geom.Point:
		return Point
	case *geom.LineString:
		return LineString
	case *geom.Polygon:
		return Polygon
	case *geom.MultiPoint:
		return MultiPoint
	case *geom.MultiLineString:
		return MultiLineString
	case *geom.MultiPolygon:
		return MultiPolygon
	case *geom.GeometryCollection:
		return GeometryCollection
	default:
		return Unknown
	}
}
