package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
	"github.com/twpayne/go-geom"
)

const svgMime = "image/svg+xml"

// SVG renders g as a standalone SVG document.
func SVG(g geom.T, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	stroke, err := ParseColor(opts.Stroke)
	if err != nil {
		return nil, err
	}
	fill, err := ParseColor(opts.Fill)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		opts.Width, opts.Height, opts.Width, opts.Height)
	walk(g, &svgPainter{
		buf:    &buf,
		frame:  newFrame(g, opts),
		opts:   opts,
		stroke: stroke,
		fill:   fill,
	})
	buf.WriteString("</svg>\n")

	if !opts.Minify {
		return buf.Bytes(), nil
	}

	m := minify.New()
	m.AddFunc(svgMime, svg.Minify)
	out, err := m.Bytes(svgMime, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("minify svg: %w", err)
	}
	return out, nil
}

type svgPainter struct {
	buf    *bytes.Buffer
	frame  frame
	opts   Options
	stroke color.NRGBA
	fill   color.NRGBA
}

func (p *svgPainter) polygon(rings [][]geom.Coord) {
	p.buf.WriteString(`  <path d="`)
	for _, ring := range rings {
		p.path(ring)
		p.buf.WriteString("Z")
	}
	fmt.Fprintf(p.buf, `" fill-rule="evenodd" %s %s/>`+"\n", paint("fill", p.fill), p.strokeAttrs())
}

func (p *svgPainter) line(cs []geom.Coord) {
	p.buf.WriteString(`  <path d="`)
	p.path(cs)
	fmt.Fprintf(p.buf, `" fill="none" %s stroke-linecap="round" stroke-linejoin="round"/>`+"\n", p.strokeAttrs())
}

func (p *svgPainter) point(c geom.Coord) {
	x, y := p.frame.project(c)
	fmt.Fprintf(p.buf, `  <circle cx="%s" cy="%s" r="%s" %s/>`+"\n",
		num(x), num(y), num(p.opts.PointRadius), paint("fill", p.stroke))
}

func (p *svgPainter) path(cs []geom.Coord) {
	for i, c := range cs {
		x, y := p.frame.project(c)
		if i == 0 {
			p.buf.WriteString("M")
		} else {
			p.buf.WriteString(" L")
		}
		p.buf.WriteString(num(x))
		p.buf.WriteByte(' ')
		p.buf.WriteString(num(y))
	}
}

func (p *svgPainter) strokeAttrs() string {
	if p.stroke.A == 0 || p.opts.StrokeWidth <= 0 {
		return `stroke="none"`
	}
	return paint("stroke", p.stroke) + ` stroke-width="` + num(p.opts.StrokeWidth) + `"`
}

// paint writes a color attribute with a separate opacity when not opaque.
func paint(attr string, c color.NRGBA) string {
	if c.A == 0 {
		return attr + `="none"`
	}
	s := fmt.Sprintf(`%s="#%02x%02x%02x"`, attr, c.R, c.G, c.B)
	if c.A != 0xff {
		s += fmt.Sprintf(` %s-opacity="%s"`, attr, num(float64(c.A)/0xff))
	}
	return s
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
