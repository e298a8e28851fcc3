package geo

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/twpayne/go-geom"
)

// Sequence is an indexable sequence whose elements are numbers or nested
// sequences. Slices and arrays satisfy it implicitly; other containers can
// implement it to take part in coordinate handling.
type Sequence interface {
	Len() int
	At(i int) any
}

type reflectSequence struct {
	v reflect.Value
}

func (s reflectSequence) Len() int     { return s.v.Len() }
func (s reflectSequence) At(i int) any { return s.v.Index(i).Interface() }

// asSequence returns v as a Sequence. Strings are scalars.
func asSequence(v any) (Sequence, bool) {
	if s, ok := v.(Sequence); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return reflectSequence{v: rv}, true
	}
	return nil, false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// IsEmpty reports whether a coordinate tree carries no coordinates: nil, a
// zero-length sequence, or a sequence whose elements are all empty.
// Scalars are never empty.
func IsEmpty(coords any) bool {
	if isNil(coords) {
		return true
	}
	s, ok := asSequence(coords)
	if !ok {
		return false
	}
	for i, n := 0, s.Len(); i < n; i++ {
		if !IsEmpty(s.At(i)) {
			return false
		}
	}
	return true
}

func toFloat(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCoordinates, fmt.Sprintf(format, args...))
}

// tuple copies a single coordinate. An empty tuple yields nil.
func tuple(v any) (geom.Coord, error) {
	if isNil(v) {
		return nil, nil
	}
	s, ok := asSequence(v)
	if !ok {
		return nil, invalid("expected coordinate tuple, got %T", v)
	}
	n := s.Len()
	if n == 0 {
		return nil, nil
	}
	if n < 2 || n > 4 {
		return nil, invalid("coordinate tuple has %d values, want 2 to 4", n)
	}
	c := make(geom.Coord, n)
	for i := range c {
		f, ok := toFloat(s.At(i))
		if !ok {
			return nil, invalid("non-numeric value %v (%T)", s.At(i), s.At(i))
		}
		c[i] = f
	}
	return c, nil
}

func tuples(v any) ([]geom.Coord, error) {
	if isNil(v) {
		return nil, nil
	}
	s, ok := asSequence(v)
	if !ok {
		return nil, invalid("expected sequence of coordinates, got %T", v)
	}
	out := make([]geom.Coord, s.Len())
	for i := range out {
		c, err := tuple(s.At(i))
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func tuples2(v any) ([][]geom.Coord, error) {
	if isNil(v) {
		return nil, nil
	}
	s, ok := asSequence(v)
	if !ok {
		return nil, invalid("expected sequence of coordinate sequences, got %T", v)
	}
	out := make([][]geom.Coord, s.Len())
	for i := range out {
		cs, err := tuples(s.At(i))
		if err != nil {
			return nil, err
		}
		out[i] = cs
	}
	return out, nil
}

func tuples3(v any) ([][][]geom.Coord, error) {
	if isNil(v) {
		return nil, nil
	}
	s, ok := asSequence(v)
	if !ok {
		return nil, invalid("expected sequence of polygons, got %T", v)
	}
	out := make([][][]geom.Coord, s.Len())
	for i := range out {
		css, err := tuples2(s.At(i))
		if err != nil {
			return nil, err
		}
		out[i] = css
	}
	return out, nil
}

// layoutFor maps a tuple length to a go-geom layout.
func layoutFor(stride int) geom.Layout {
	switch stride {
	case 3:
		return geom.XYZ
	case 4:
		return geom.XYZM
	default:
		return geom.XY
	}
}

// strideTracker remembers the first tuple length seen and rejects others.
type strideTracker struct {
	stride int
}

func (t *strideTracker) add(c geom.Coord) error {
	if len(c) == 0 {
		return nil
	}
	if t.stride == 0 {
		t.stride = len(c)
		return nil
	}
	if len(c) != t.stride {
		return invalid("mixed coordinate dimensions %d and %d", t.stride, len(c))
	}
	return nil
}

func (t *strideTracker) addAll(cs []geom.Coord) error {
	for _, c := range cs {
		if err := t.add(c); err != nil {
			return err
		}
	}
	return nil
}

func (t *strideTracker) layout() geom.Layout {
	return layoutFor(t.stride)
}

// closeRing appends the first coordinate when the ring is open.
func closeRing(ring []geom.Coord) []geom.Coord {
	if len(ring) == 0 || sameCoord(ring[0], ring[len(ring)-1]) {
		return ring
	}
	first := make(geom.Coord, len(ring[0]))
	copy(first, ring[0])
	return append(ring, first)
}

func sameCoord(a, b geom.Coord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
