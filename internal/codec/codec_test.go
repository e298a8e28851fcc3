package codec

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/woozymasta/geoshape/internal/config"
	"github.com/woozymasta/geoshape/internal/geo"
	"github.com/woozymasta/geoshape/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func samples() map[string]geom.T {
	return map[string]geom.T{
		"point":      geom.NewPointFlat(geom.XY, []float64{1, 2}),
		"linestring": geom.NewLineStringFlat(geom.XYZ, []float64{0, 0, 1, 1, 1, 2}),
		"polygon": geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{
			{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			{{2, 2}, {2, 4}, {4, 4}, {2, 2}},
		}),
		"multipoint":      geom.NewMultiPointFlat(geom.XY, []float64{0, 0, 3, 4}),
		"multilinestring": geom.NewMultiLineString(geom.XY).MustSetCoords([][]geom.Coord{{{0, 0}, {1, 1}}, {{2, 2}, {3, 5}}}),
		"multipolygon":    geom.NewMultiPolygon(geom.XY).MustSetCoords([][][]geom.Coord{{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}}),
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
		assert.NotEmpty(t, f.Extension())
		assert.NotEmpty(t, f.ContentType())
	}

	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, GeoJSON, f)

	f, err = ParseFormat(" yml ")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)

	_, err = ParseFormat("shapefile")
	assert.Error(t, err)

	assert.True(t, SVG.OutputOnly())
	assert.True(t, WebP.Binary())
	assert.False(t, WKT.Binary())
	assert.Equal(t, "unknown", Format(99).String())
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, GeoJSON, FormatFromPath("a/b.geojson"))
	assert.Equal(t, GeoJSON, FormatFromPath("b.JSON"))
	assert.Equal(t, YAML, FormatFromPath("b.yml"))
	assert.Equal(t, WKBHex, FormatFromPath("b.hex"))
	assert.Equal(t, WebP, FormatFromPath("preview.webp"))
	assert.Equal(t, Unknown, FormatFromPath("README"))
	assert.Equal(t, Unknown, FormatFromPath("x.shp"))
}

func TestParseByteOrder(t *testing.T) {
	o, err := ParseByteOrder("")
	require.NoError(t, err)
	assert.Equal(t, binary.LittleEndian, o)

	o, err = ParseByteOrder("XDR")
	require.NoError(t, err)
	assert.Equal(t, binary.BigEndian, o)

	_, err = ParseByteOrder("pdp")
	assert.Error(t, err)
}

func TestEncodeGeoJSON(t *testing.T) {
	out, err := Encode(geom.NewPointFlat(geom.XY, []float64{1, 2}), GeoJSON, Options{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Point","coordinates":[1,2]}`, string(out))

	out, err = Encode(geom.NewPointFlat(geom.XY, []float64{1, 2}), GeoJSON, Options{Indent: 2})
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n  \"type\": \"Point\"")

	out, err = Encode(geom.NewGeometryCollection(), GeoJSON, Options{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"GeometryCollection","geometries":[]}`, string(out))

	_, err = Encode(nil, GeoJSON, Options{})
	assert.Error(t, err)

	_, err = Encode(geom.NewPointFlat(geom.XY, []float64{1, 2}), Unknown, Options{})
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{GeoJSON, YAML, BSON, WKT, WKB, WKBHex, EWKB} {
		for name, g := range samples() {
			t.Run(f.String()+"/"+name, func(t *testing.T) {
				data, err := Encode(g, f, Options{ByteOrder: binary.BigEndian})
				require.NoError(t, err)

				back, err := Decode(data, f)
				require.NoError(t, err)
				assert.Equal(t, geo.Export(g), geo.Export(back))
				assert.Equal(t, g.Layout(), back.Layout())
			})
		}
	}
}

func TestRoundTripCollection(t *testing.T) {
	gc := geom.NewGeometryCollection()
	gc.MustPush(geom.NewPointFlat(geom.XY, []float64{1, 2}), geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1}))

	for _, f := range []Format{GeoJSON, YAML, BSON, WKT} {
		t.Run(f.String(), func(t *testing.T) {
			data, err := Encode(gc, f, Options{})
			require.NoError(t, err)
			back, err := Decode(data, f)
			require.NoError(t, err)
			assert.Equal(t, geo.GeometryCollection, geo.KindOf(back))
			require.Equal(t, 2, back.(*geom.GeometryCollection).NumGeoms())
		})
	}
}

func TestEWKBSRID(t *testing.T) {
	p := geom.NewPointFlat(geom.XY, []float64{30, 10})
	data, err := Encode(p, EWKB, Options{SRID: 4326})
	require.NoError(t, err)
	assert.Zero(t, p.SRID())

	f, err := Sniff(data)
	require.NoError(t, err)
	assert.Equal(t, EWKB, f)

	back, err := Decode(data, EWKB)
	require.NoError(t, err)
	assert.Equal(t, 4326, back.SRID())
	assert.Equal(t, []float64{30, 10}, back.FlatCoords())
}

func TestEncodeWKT(t *testing.T) {
	out, err := Encode(geo.BoxCCW(0, 0, 1, 1), WKT, Options{})
	require.NoError(t, err)
	assert.Equal(t, "POLYGON ((1 0, 1 1, 0 1, 0 0, 1 0))", string(out))
}

func TestEncodePreviews(t *testing.T) {
	opts := Options{Render: render.Options{Width: 32, Height: 32, Fill: "#ff0000"}}
	box := geo.BoxCCW(0, 0, 1, 1)

	out, err := Encode(box, SVG, opts)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("<svg")))

	out, err = Encode(box, WebP, opts)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("RIFF")))

	_, err = Decode(out, WebP)
	assert.ErrorIs(t, err, ErrOutputOnly)
	_, err = Decode([]byte("<svg/>"), SVG)
	assert.ErrorIs(t, err, ErrOutputOnly)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte(`{"type":"Curve","coordinates":[]}`), GeoJSON)
	assert.ErrorIs(t, err, geo.ErrUnknownType)
	assert.Contains(t, err.Error(), "decode geojson")

	_, err = Decode([]byte("POINT (1"), WKT)
	assert.Error(t, err)

	_, err = Decode([]byte{0x07}, WKB)
	assert.Error(t, err)
}

func TestSniff(t *testing.T) {
	p := geom.NewPointFlat(geom.XY, []float64{1, 2})
	encoded := func(f Format) []byte {
		data, err := Encode(p, f, Options{})
		require.NoError(t, err)
		return data
	}

	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"geojson", []byte(` {"type":"Point","coordinates":[1,2]}`), GeoJSON},
		{"wkt", []byte("point (1 2)"), WKT},
		{"wkt collection", []byte("GEOMETRYCOLLECTION EMPTY"), WKT},
		{"wkbhex", encoded(WKBHex), WKBHex},
		{"wkb", encoded(WKB), WKB},
		{"bson", encoded(BSON), BSON},
		{"yaml", []byte("type: Point\ncoordinates: [1, 2]\n"), YAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sniff(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range [][]byte{nil, []byte("   "), []byte("hello world")} {
		_, err := Sniff(bad)
		assert.ErrorIs(t, err, ErrUnknownFormat)
	}
}

func TestDecodeAny(t *testing.T) {
	g, f, err := DecodeAny([]byte("LINESTRING (0 0, 1 1)"))
	require.NoError(t, err)
	assert.Equal(t, WKT, f)
	assert.Equal(t, geo.LineString, geo.KindOf(g))

	_, _, err = DecodeAny([]byte("???"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.ByteOrder = "xdr"
	cfg.SRID = 3857
	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, binary.BigEndian, opts.ByteOrder)
	assert.Equal(t, 3857, opts.SRID)
	assert.Equal(t, 512, opts.Render.Width)

	cfg.ByteOrder = "bogus"
	_, err = OptionsFromConfig(cfg)
	assert.Error(t, err)
}
