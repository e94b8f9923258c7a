package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"pkt.systems/cardsmith"
	"pkt.systems/cardsmith/icons"
)

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498

const cornerSegments = 8

// Canvas implements cardsmith.Canvas on an *image.RGBA with anti-aliased
// vector fills.
type Canvas struct {
	img   *image.RGBA
	faces *Faces
	icons *icons.Catalog
	log   zerolog.Logger
	z     *vector.Rasterizer
}

// NewCanvas draws onto img. A nil catalog uses generated icons.
func NewCanvas(img *image.RGBA, faces *Faces, catalog *icons.Catalog, logger zerolog.Logger) *Canvas {
	if catalog == nil {
		catalog = icons.Default()
	}
	b := img.Bounds()
	return &Canvas{
		img:   img,
		faces: faces,
		icons: catalog,
		log:   logger,
		z:     vector.NewRasterizer(b.Dx(), b.Dy()),
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) FillRect(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *Canvas) FillRoundedRect(r image.Rectangle, radius int, col color.Color) {
	c.fill(col, func() {
		c.polygon(cardsmith.RoundedRectPolygon(r, radius, cornerSegments), false)
	})
}

func (c *Canvas) StrokeRoundedRect(r image.Rectangle, radius, width int, col color.Color) {
	if width <= 0 {
		return
	}
	c.fill(col, func() {
		c.polygon(cardsmith.RoundedRectPolygon(r, radius, cornerSegments), false)
		inner := r.Inset(width)
		if inner.Empty() {
			return
		}
		c.polygon(cardsmith.RoundedRectPolygon(inner, max(0, radius-width), cornerSegments), true)
	})
}

func (c *Canvas) FillEllipse(r image.Rectangle, col color.Color) {
	c.fill(col, func() {
		cx := float32(r.Min.X+r.Max.X) / 2
		cy := float32(r.Min.Y+r.Max.Y) / 2
		rx := float32(r.Dx()) / 2
		ry := float32(r.Dy()) / 2
		kx, ky := rx*kappa, ry*kappa
		c.moveTo(cx+rx, cy)
		c.cubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
		c.cubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
		c.cubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
		c.cubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
		c.z.ClosePath()
	})
}

func (c *Canvas) FillPolygon(points []image.Point, col color.Color) {
	if len(points) < 3 {
		return
	}
	c.fill(col, func() {
		c.polygon(points, false)
	})
}

// StrokePolyline draws each segment as its own quad with square caps so
// overlapping segments never cancel out.
func (c *Canvas) StrokePolyline(points []image.Point, width int, col color.Color) {
	if width <= 0 || len(points) < 2 {
		return
	}
	half := float64(width) / 2
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		ux, uy := dx/length*half, dy/length*half
		nx, ny := -uy, ux
		ax, ay := float64(a.X)-ux, float64(a.Y)-uy
		bx, by := float64(b.X)+ux, float64(b.Y)+uy
		c.fill(col, func() {
			c.moveTo(float32(ax+nx), float32(ay+ny))
			c.lineTo(float32(bx+nx), float32(by+ny))
			c.lineTo(float32(bx-nx), float32(by-ny))
			c.lineTo(float32(ax-nx), float32(ay-ny))
			c.z.ClosePath()
		})
	}
}

func (c *Canvas) DrawText(face cardsmith.Face, text string, at image.Point, anchor cardsmith.Anchor, col color.Color) {
	if text == "" {
		return
	}
	ff := c.faces.Face(face)
	m := ff.Metrics()
	x, y := fixed.I(at.X), fixed.I(at.Y)
	switch anchor {
	case cardsmith.AnchorLeftMiddle:
		y += (m.Ascent - m.Descent) / 2
	case cardsmith.AnchorCenter:
		x -= font.MeasureString(ff, text) / 2
		y += (m.Ascent - m.Descent) / 2
	case cardsmith.AnchorRightBottom:
		x -= font.MeasureString(ff, text)
		y -= m.Descent
	}
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: ff,
		Dot:  fixed.Point26_6{X: x, Y: y},
	}
	d.DrawString(text)
}

func (c *Canvas) DrawIcon(key string, r image.Rectangle) {
	icon, err := c.icons.Image(key, r.Dx(), r.Dy())
	if err != nil {
		c.log.Warn().Err(err).Str("icon", key).Msg("skipping icon")
		return
	}
	draw.Draw(c.img, r, icon, icon.Bounds().Min, draw.Over)
}

func (c *Canvas) fill(col color.Color, path func()) {
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	path()
	c.z.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// polygon adds a closed path through points, optionally in reverse so it
// cuts a hole in a path added before it.
func (c *Canvas) polygon(points []image.Point, reverse bool) {
	n := len(points)
	at := func(i int) image.Point {
		if reverse {
			return points[n-1-i]
		}
		return points[i]
	}
	p := at(0)
	c.moveTo(float32(p.X), float32(p.Y))
	for i := 1; i < n; i++ {
		p = at(i)
		c.lineTo(float32(p.X), float32(p.Y))
	}
	c.z.ClosePath()
}

func (c *Canvas) moveTo(x, y float32) {
	c.z.MoveTo(c.clamp(x, y))
}

func (c *Canvas) lineTo(x, y float32) {
	c.z.LineTo(c.clamp(x, y))
}

func (c *Canvas) cubeTo(bx, by, cx, cy, dx, dy float32) {
	bx, by = c.clamp(bx, by)
	cx, cy = c.clamp(cx, cy)
	dx, dy = c.clamp(dx, dy)
	c.z.CubeTo(bx, by, cx, cy, dx, dy)
}

// clamp maps image coordinates into the rasterizer's space and keeps them
// inside it.
func (c *Canvas) clamp(x, y float32) (float32, float32) {
	b := c.img.Bounds()
	x -= float32(b.Min.X)
	y -= float32(b.Min.Y)
	return min(max(x, 0), float32(b.Dx())), min(max(y, 0), float32(b.Dy()))
}
