// Package codec encodes and decodes geometries in the supported interchange formats.
package codec

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/twpayne/go-geom/encoding/wkb"
)

// Format identifies an interchange format.
type Format int

// Supported formats.
const (
	Unknown Format = iota
	GeoJSON
	YAML
	BSON
	WKT
	WKB
	WKBHex
	EWKB
	SVG
	WebP
)

type formatInfo struct {
	name        string
	ext         string
	contentType string
	outputOnly  bool
	binary      bool
}

var formats = [...]formatInfo{
	Unknown: {name: "unknown"},
	GeoJSON: {name: "geojson", ext: ".geojson", contentType: "application/geo+json"},
	YAML:    {name: "yaml", ext: ".yaml", contentType: "application/yaml"},
	BSON:    {name: "bson", ext: ".bson", contentType: "application/bson", binary: true},
	WKT:     {name: "wkt", ext: ".wkt", contentType: "text/plain; charset=utf-8"},
	WKB:     {name: "wkb", ext: ".wkb", contentType: "application/octet-stream", binary: true},
	WKBHex:  {name: "wkbhex", ext: ".hex", contentType: "text/plain; charset=utf-8"},
	EWKB:    {name: "ewkb", ext: ".ewkb", contentType: "application/octet-stream", binary: true},
	SVG:     {name: "svg", ext: ".svg", contentType: "image/svg+xml", outputOnly: true},
	WebP:    {name: "webp", ext: ".webp", contentType: "image/webp", outputOnly: true, binary: true},
}

var aliases = map[string]Format{
	"json": GeoJSON,
	"yml":  YAML,
	"hex":  WKBHex,
}

func (f Format) info() formatInfo {
	if f < 0 || int(f) >= len(formats) {
		return formats[Unknown]
	}
	return formats[f]
}

func (f Format) String() string { return f.info().name }

// Extension returns the file extension including the leading dot.
func (f Format) Extension() string { return f.info().ext }

// ContentType returns the MIME type.
func (f Format) ContentType() string { return f.info().contentType }

// OutputOnly reports whether the format cannot be decoded.
func (f Format) OutputOnly() bool { return f.info().outputOnly }

// Binary reports whether encoded output is not text.
func (f Format) Binary() bool { return f.info().binary }

// Formats lists every known format.
func Formats() []Format {
	out := make([]Format, 0, len(formats)-1)
	for f := GeoJSON; int(f) < len(formats); f++ {
		out = append(out, f)
	}
	return out
}

// ParseFormat looks a format up by name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range Formats() {
		if f.String() == name {
			return f, nil
		}
	}
	if f, ok := aliases[name]; ok {
		return f, nil
	}
	return Unknown, fmt.Errorf("unknown format %q", s)
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case "":
		return Unknown
	case ".json":
		return GeoJSON
	case ".yml":
		return YAML
	}
	for _, f := range Formats() {
		if f.Extension() == ext {
			return f
		}
	}
	return Unknown
}

// ParseByteOrder maps ndr (little endian, the default) and xdr (big endian).
func ParseByteOrder(s string) (binary.ByteOrder, error) {
	switch strings.ToLower(s) {
	case "", "ndr":
		return wkb.NDR, nil
	case "xdr":
		return wkb.XDR, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q", s)
	}
}
