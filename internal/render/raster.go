package render

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/woozymasta/geoshape/internal/geo"

	"github.com/chai2010/webp"
	"github.com/twpayne/go-geom"
	"golang.org/x/image/vector"
)

// Raster paints g onto a transparent canvas.
func Raster(g geom.T, opts Options) (*image.NRGBA, error) {
	opts = opts.withDefaults()
	stroke, err := ParseColor(opts.Stroke)
	if err != nil {
		return nil, err
	}
	fill, err := ParseColor(opts.Fill)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	if geo.IsEmptyGeometry(g) {
		return img, nil
	}

	fills := vector.NewRasterizer(opts.Width, opts.Height)
	strokes := vector.NewRasterizer(opts.Width, opts.Height)
	p := &rasterPainter{
		frame:   newFrame(g, opts),
		opts:    opts,
		img:     img,
		fills:   fills,
		strokes: strokes,
		fill:    fill,
	}
	walk(g, p)

	if stroke.A > 0 {
		strokes.Draw(img, img.Bounds(), image.NewUniform(stroke), image.Point{})
	}
	return img, nil
}

// WebP encodes the raster preview of g.
func WebP(w io.Writer, g geom.T, opts Options) error {
	img, err := Raster(g, opts)
	if err != nil {
		return err
	}
	quality := opts.Quality
	if quality <= 0 {
		quality = DefaultOptions().Quality
	}
	return webp.Encode(w, img, &webp.Options{Lossless: opts.Lossless, Quality: quality})
}

type point struct{ x, y float32 }

type rasterPainter struct {
	frame   frame
	opts    Options
	img     *image.NRGBA
	fills   *vector.Rasterizer
	strokes *vector.Rasterizer
	fill    color.NRGBA
}

// polygon is filled on its own so that separate polygons never cancel out.
// Holes are wound against the exterior, which makes them transparent.
func (p *rasterPainter) polygon(rings [][]geom.Coord) {
	if p.fill.A > 0 {
		p.fills.Reset(p.opts.Width, p.opts.Height)
		var exteriorCCW bool
		for i, ring := range rings {
			pts := p.projectAll(ring)
			ccw := signedArea(pts) > 0
			if i == 0 {
				exteriorCCW = ccw
			} else if ccw == exteriorCCW {
				reverse(pts)
			}
			addPath(p.fills, pts)
		}
		p.fills.Draw(p.img, p.img.Bounds(), image.NewUniform(p.fill), image.Point{})
	}
	for _, ring := range rings {
		p.line(ring)
	}
}

func (p *rasterPainter) line(cs []geom.Coord) {
	w := p.opts.StrokeWidth
	if w <= 0 {
		return
	}
	pts := p.projectAll(cs)
	for i := 1; i < len(pts); i++ {
		p.segment(pts[i-1], pts[i], float32(w/2))
	}
}

func (p *rasterPainter) point(c geom.Coord) {
	r := float32(p.opts.PointRadius)
	if r <= 0 {
		return
	}
	x, y := p.frame.project(c)
	cx, cy := float32(x), float32(y)
	addPath(p.strokes, []point{{cx - r, cy - r}, {cx + r, cy - r}, {cx + r, cy + r}, {cx - r, cy + r}})
}

// segment adds a quad of half width hw around a-b. All quads share one
// orientation so overlapping joints accumulate instead of cancelling.
func (p *rasterPainter) segment(a, b point, hw float32) {
	dx, dy := b.x-a.x, b.y-a.y
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	nx, ny := -dy/length*hw, dx/length*hw
	quad := []point{
		{a.x + nx, a.y + ny},
		{b.x + nx, b.y + ny},
		{b.x - nx, b.y - ny},
		{a.x - nx, a.y - ny},
	}
	if signedArea(quad) < 0 {
		reverse(quad)
	}
	addPath(p.strokes, quad)
}

func (p *rasterPainter) projectAll(cs []geom.Coord) []point {
	out := make([]point, len(cs))
	for i, c := range cs {
		x, y := p.frame.project(c)
		out[i] = point{float32(x), float32(y)}
	}
	return out
}

func addPath(z *vector.Rasterizer, pts []point) {
	if len(pts) < 3 {
		return
	}
	z.MoveTo(pts[0].x, pts[0].y)
	for _, pt := range pts[1:] {
		z.LineTo(pt.x, pt.y)
	}
	z.ClosePath()
}

// signedArea is the shoelace sum; its sign gives the ring orientation.
func signedArea(pts []point) float64 {
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += float64(pts[i].x)*float64(pts[j].y) - float64(pts[j].x)*float64(pts[i].y)
	}
	return sum / 2
}

func reverse(pts []point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
