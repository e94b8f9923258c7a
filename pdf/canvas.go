package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"pkt.systems/cardsmith"
	"pkt.systems/cardsmith/icons"
)

const cornerSegments = 6

// sheet wraps a document and the per-document state shared by every card
// canvas on it.
type sheet struct {
	pdf        *gofpdf.Fpdf
	family     string
	layout     cardsmith.LayoutConfig
	scale      float64
	icons      *icons.Catalog
	registered map[string]bool
	log        zerolog.Logger
}

func (s *sheet) setFont(face cardsmith.Face) {
	s.pdf.SetFont(s.family, fontStyle(face), s.layout.FaceSize(face)*s.scale)
}

// Metrics measures text in layout pixels using the document's fonts.
type Metrics struct {
	sheet *sheet
}

func (m Metrics) TextWidth(face cardsmith.Face, text string) int {
	m.sheet.setFont(face)
	return int(math.Ceil(m.sheet.pdf.GetStringWidth(text) / m.sheet.scale))
}

// Canvas draws one card at an offset on the current page. Pixel
// coordinates are scaled to points.
type Canvas struct {
	sheet  *sheet
	ox, oy float64
}

func (c *Canvas) x(px int) float64 { return c.ox + float64(px)*c.sheet.scale }
func (c *Canvas) y(px int) float64 { return c.oy + float64(px)*c.sheet.scale }

func (c *Canvas) points(pts []image.Point) []gofpdf.PointType {
	out := make([]gofpdf.PointType, len(pts))
	for i, p := range pts {
		out[i] = gofpdf.PointType{X: c.x(p.X), Y: c.y(p.Y)}
	}
	return out
}

func (c *Canvas) FillRect(r image.Rectangle, col color.Color) {
	c.sheet.pdf.SetFillColor(rgb(col))
	c.sheet.pdf.Rect(c.x(r.Min.X), c.y(r.Min.Y), float64(r.Dx())*c.sheet.scale, float64(r.Dy())*c.sheet.scale, "F")
}

func (c *Canvas) FillRoundedRect(r image.Rectangle, radius int, col color.Color) {
	c.FillPolygon(cardsmith.RoundedRectPolygon(r, radius, cornerSegments), col)
}

func (c *Canvas) StrokeRoundedRect(r image.Rectangle, radius, width int, col color.Color) {
	if width <= 0 {
		return
	}
	inset := width / 2
	c.sheet.pdf.SetDrawColor(rgb(col))
	c.sheet.pdf.SetLineWidth(float64(width) * c.sheet.scale)
	pts := cardsmith.RoundedRectPolygon(r.Inset(inset), max(0, radius-inset), cornerSegments)
	c.sheet.pdf.Polygon(c.points(pts), "D")
}

func (c *Canvas) FillEllipse(r image.Rectangle, col color.Color) {
	s := c.sheet.scale
	c.sheet.pdf.SetFillColor(rgb(col))
	cx := c.ox + float64(r.Min.X+r.Max.X)/2*s
	cy := c.oy + float64(r.Min.Y+r.Max.Y)/2*s
	c.sheet.pdf.Ellipse(cx, cy, float64(r.Dx())/2*s, float64(r.Dy())/2*s, 0, "F")
}

func (c *Canvas) FillPolygon(points []image.Point, col color.Color) {
	if len(points) < 3 {
		return
	}
	c.sheet.pdf.SetFillColor(rgb(col))
	c.sheet.pdf.Polygon(c.points(points), "F")
}

func (c *Canvas) StrokePolyline(points []image.Point, width int, col color.Color) {
	if width <= 0 || len(points) < 2 {
		return
	}
	c.sheet.pdf.SetDrawColor(rgb(col))
	c.sheet.pdf.SetLineWidth(float64(width) * c.sheet.scale)
	c.sheet.pdf.SetLineCapStyle("square")
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		c.sheet.pdf.Line(c.x(a.X), c.y(a.Y), c.x(b.X), c.y(b.Y))
	}
	c.sheet.pdf.SetLineCapStyle("butt")
}

func (c *Canvas) DrawText(face cardsmith.Face, text string, at image.Point, anchor cardsmith.Anchor, col color.Color) {
	if text == "" {
		return
	}
	pdf := c.sheet.pdf
	c.sheet.setFont(face)
	pdf.SetTextColor(rgb(col))
	size := c.sheet.layout.FaceSize(face) * c.sheet.scale
	x, y := c.x(at.X), c.y(at.Y)
	switch anchor {
	case cardsmith.AnchorLeftMiddle:
		y += (embeddedAscent - embeddedDescent) / 2 * size
	case cardsmith.AnchorCenter:
		x -= pdf.GetStringWidth(text) / 2
		y += (embeddedAscent - embeddedDescent) / 2 * size
	case cardsmith.AnchorRightBottom:
		x -= pdf.GetStringWidth(text)
		y -= embeddedDescent * size
	}
	pdf.Text(x, y, text)
}

func (c *Canvas) DrawIcon(key string, r image.Rectangle) {
	name := fmt.Sprintf("icon%s%dx%d", key, r.Dx(), r.Dy())
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	if !c.sheet.registered[name] {
		data, err := c.sheet.icons.PNG(key, r.Dx(), r.Dy())
		if err != nil {
			c.sheet.log.Warn().Err(err).Str("icon", key).Msg("skipping icon")
			return
		}
		c.sheet.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		c.sheet.registered[name] = true
	}
	s := c.sheet.scale
	c.sheet.pdf.ImageOptions(name, c.x(r.Min.X), c.y(r.Min.Y), float64(r.Dx())*s, float64(r.Dy())*s, false, opts, 0, "")
}
