package geo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"Point", Point},
		{"point", Point},
		{"POINT", Point},
		{"LineString", LineString},
		{"polygon", Polygon},
		{"MultiPoint", MultiPoint},
		{"multilinestring", MultiLineString},
		{"MULTIPOLYGON", MultiPolygon},
		{"GeometryCollection", GeometryCollection},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k, err := ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, k)
		})
	}
}

func TestParseKindUnknown(t *testing.T) {
	for _, s := range []string{"", "Curve", "Feature", "point ", "LinearRing"} {
		k, err := ParseKind(s)
		assert.Equal(t, Unknown, k)

		var ute *UnknownTypeError
		require.True(t, errors.As(err, &ute), "input %q", s)
		assert.Equal(t, s, ute.Type)
		assert.ErrorIs(t, err, ErrUnknownType)
	}
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "MultiPolygon", MultiPolygon.String())
	assert.Equal(t, "multipolygon", MultiPolygon.Name())
	assert.Equal(t, "Unknown", Kind(42).String())
	assert.True(t, GeometryCollection.IsCollection())
	assert.False(t, Polygon.IsCollection())
	assert.Len(t, Kinds(), 7)

	for _, k := range Kinds() {
		parsed, err := ParseKind(k.Name())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		g    geom.T
		want Kind
	}{
		{geom.NewPointFlat(geom.XY, []float64{1, 2}), Point},
		{geom.NewLineString(geom.XY), LineString},
		{geom.NewPolygon(geom.XY), Polygon},
		{geom.NewMultiPoint(geom.XY), MultiPoint},
		{geom.NewMultiLineString(geom.XY), MultiLineString},
		{geom.NewMultiPolygon(geom.XY), MultiPolygon},
		{geom.NewGeometryCollection(), GeometryCollection},
		{geom.NewLinearRing(geom.XY), Unknown},
		{nil, Unknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.g))
	}
}
