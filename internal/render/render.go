// Package render draws preview images of geometries.
package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/woozymasta/geoshape/internal/config"
	"github.com/woozymasta/geoshape/internal/geo"

	"github.com/twpayne/go-geom"
)

// Options controls the preview canvas and style.
type Options struct {
	Stroke      string
	Fill        string
	Width       int
	Height      int
	Padding     int
	StrokeWidth float64
	PointRadius float64
	Quality     float32
	Lossless    bool
	Minify      bool
}

// DefaultOptions returns the options of config.Default.
func DefaultOptions() Options {
	return FromConfig(config.Default().Render)
}

// FromConfig converts the render configuration section.
func FromConfig(c config.Render) Options {
	return Options{
		Stroke:      c.Stroke,
		Fill:        c.Fill,
		Width:       c.Width,
		Height:      c.Height,
		Padding:     c.Padding,
		StrokeWidth: c.StrokeWidth,
		PointRadius: c.PointRadius,
		Quality:     c.Quality,
		Lossless:    c.Lossless,
		Minify:      c.Minify,
	}
}

func (o Options) withDefaults() Options {
	def := config.Default().Render
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if 2*o.Padding >= o.Width || 2*o.Padding >= o.Height {
		o.Padding = 0
	}
	return o
}

// ParseColor parses #rrggbb or #rrggbbaa. An empty string or "none" yields a
// fully transparent color.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return color.NRGBA{}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// frame maps geometry coordinates onto the pixel canvas. The y axis points down.
type frame struct {
	minx, maxy float64
	scale      float64
	offx, offy float64
}

func newFrame(g geom.T, o Options) frame {
	availW := float64(o.Width - 2*o.Padding)
	availH := float64(o.Height - 2*o.Padding)
	if geo.IsEmptyGeometry(g) {
		return frame{scale: 1}
	}

	b := g.Bounds()
	minx, maxx := b.Min(0), b.Max(0)
	miny, maxy := b.Min(1), b.Max(1)
	dx, dy := maxx-minx, maxy-miny

	var scale float64
	switch {
	case dx == 0 && dy == 0:
		scale = 1
	case dx == 0:
		scale = availH / dy
	case dy == 0:
		scale = availW / dx
	default:
		scale = math.Min(availW/dx, availH/dy)
	}

	return frame{
		minx:  minx,
		maxy:  maxy,
		scale: scale,
		offx:  float64(o.Padding) + (availW-dx*scale)/2,
		offy:  float64(o.Padding) + (availH-dy*scale)/2,
	}
}

func (f frame) project(c geom.Coord) (x, y float64) {
	return f.offx + (c[0]-f.minx)*f.scale, f.offy + (f.maxy-c[1])*f.scale
}

// painter receives the primitives of a geometry.
type painter interface {
	polygon(rings [][]geom.Coord)
	line(cs []geom.Coord)
	point(c geom.Coord)
}

func walk(g geom.T, p painter) {
	switch t := g.(type) {
	case *geom.Point:
		if len(t.FlatCoords()) > 0 {
			p.point(t.Coords())
		}
	case *geom.LineString:
		if t.NumCoords() > 0 {
			p.line(t.Coords())
		}
	case *geom.Polygon:
		if t.NumLinearRings() > 0 {
			p.polygon(t.Coords())
		}
	case *geom.MultiPoint:
		for i := 0; i < t.NumPoints(); i++ {
			walk(t.Point(i), p)
		}
	case *geom.MultiLineString:
		for i := 0; i < t.NumLineStrings(); i++ {
			walk(t.LineString(i), p)
		}
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			walk(t.Polygon(i), p)
		}
	case *geom.GeometryCollection:
		for _, member := range t.Geoms() {
			walk(member, p)
		}
	}
}
