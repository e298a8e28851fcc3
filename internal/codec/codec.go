package codec

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/woozymasta/geoshape/internal/config"
	"github.com/woozymasta/geoshape/internal/geo"
	"github.com/woozymasta/geoshape/internal/render"

	"github.com/juju/mgo/v3/bson"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkbhex"
	"github.com/twpayne/go-geom/encoding/wkt"
	"gopkg.in/yaml.v3"
)

// ErrOutputOnly is returned when decoding a preview format.
var ErrOutputOnly = errors.New("format is output only")

// Options tune encoding.
type Options struct {
	ByteOrder binary.ByteOrder
	Render    render.Options
	Indent    int
	SRID      int
}

// OptionsFromConfig builds encoder options from the configuration file.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	order, err := ParseByteOrder(cfg.ByteOrder)
	if err != nil {
		return Options{}, err
	}
	return Options{
		ByteOrder: order,
		Render:    render.FromConfig(cfg.Render),
		Indent:    cfg.Indent,
		SRID:      cfg.SRID,
	}, nil
}

func (o Options) byteOrder() binary.ByteOrder {
	if o.ByteOrder == nil {
		return wkb.NDR
	}
	return o.ByteOrder
}

// Encode serializes g in format f.
func Encode(g geom.T, f Format, opts Options) ([]byte, error) {
	if g == nil {
		return nil, errors.New("encode: nil geometry")
	}
	switch f {
	case GeoJSON:
		if opts.Indent > 0 {
			return json.MarshalIndent(geo.Export(g), "", strings.Repeat(" ", opts.Indent))
		}
		return json.Marshal(geo.Export(g))
	case YAML:
		return yaml.Marshal(geo.Export(g))
	case BSON:
		return bson.Marshal(geo.Export(g))
	case WKT:
		s, err := wkt.Marshal(g)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case WKB:
		return wkb.Marshal(g, opts.byteOrder())
	case WKBHex:
		s, err := wkbhex.Encode(g, opts.byteOrder())
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case EWKB:
		return ewkb.Marshal(withSRID(g, opts.SRID), opts.byteOrder())
	case SVG:
		return render.SVG(g, opts.Render)
	case WebP:
		var buf bytes.Buffer
		if err := render.WebP(&buf, g, opts.Render); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("encode: unsupported format %s", f)
	}
}

// Decode parses data in format f into a geometry.
func Decode(data []byte, f Format) (geom.T, error) {
	g, err := decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f, err)
	}
	return g, nil
}

// DecodeAny sniffs the format of data and decodes it.
func DecodeAny(data []byte) (geom.T, Format, error) {
	f, err := Sniff(data)
	if err != nil {
		return nil, Unknown, err
	}
	g, err := Decode(data, f)
	return g, f, err
}

func decode(data []byte, f Format) (geom.T, error) {
	if f.OutputOnly() {
		return nil, ErrOutputOnly
	}
	switch f {
	case GeoJSON:
		doc, err := geo.ParseDocumentJSON(data)
		if err != nil {
			return nil, err
		}
		return doc.Shape()
	case YAML:
		doc, err := geo.ParseDocumentYAML(data)
		if err != nil {
			return nil, err
		}
		return doc.Shape()
	case BSON:
		var m geo.Mapping
		if err := bson.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return geo.Shape(m)
	case WKT:
		return wkt.Unmarshal(strings.TrimSpace(string(data)))
	case WKB:
		return wkb.Unmarshal(data)
	case WKBHex:
		return wkbhex.Decode(strings.TrimSpace(string(data)))
	case EWKB:
		return ewkb.Unmarshal(data)
	default:
		return nil, fmt.Errorf("unsupported format %s", f)
	}
}

// withSRID returns a copy of g carrying srid; g itself is left unchanged.
func withSRID(g geom.T, srid int) geom.T {
	if srid == 0 {
		return g
	}
	switch t := g.(type) {
	case *geom.Point:
		return t.Clone().SetSRID(srid)
	case *geom.LineString:
		return t.Clone().SetSRID(srid)
	case *geom.Polygon:
		return t.Clone().SetSRID(srid)
	case *geom.MultiPoint:
		return t.Clone().SetSRID(srid)
	case *geom.MultiLineString:
		return t.Clone().SetSRID(srid)
	case *geom.MultiPolygon:
		return t.Clone().SetSRID(srid)
	case *geom.GeometryCollection:
		gc := geom.NewGeometryCollection()
		gc.MustPush(t.Geoms()...)
		return gc.SetSRID(srid)
	default:
		return g
	}
}
