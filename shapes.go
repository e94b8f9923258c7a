package cardsmith

import (
	"image"
	"image/color"
	"math"
)

const heartSamples = 32

// HeartPolygon returns a heart outline filling r.
func HeartPolygon(r image.Rectangle) []image.Point {
	// x = 16 sin^3 t, y = 13 cos t - 5 cos 2t - 2 cos 3t - cos 4t spans
	// x in [-16, 16] and y in [-17, 12].
	const minY, maxY = -17.0, 12.0
	w, h := float64(r.Dx()), float64(r.Dy())
	pts := make([]image.Point, 0, heartSamples)
	for i := 0; i < heartSamples; i++ {
		t := 2 * math.Pi * float64(i) / heartSamples
		x := 16 * math.Pow(math.Sin(t), 3)
		y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
		px := float64(r.Min.X) + (x+16)/32*w
		py := float64(r.Min.Y) + (maxY-y)/(maxY-minY)*h
		pts = append(pts, image.Pt(int(math.Round(px)), int(math.Round(py))))
	}
	return pts
}

// DiamondPolygon returns the rhombus inscribed in r.
func DiamondPolygon(r image.Rectangle) []image.Point {
	c := center(r)
	return []image.Point{
		{X: c.X, Y: r.Min.Y},
		{X: r.Max.X, Y: c.Y},
		{X: c.X, Y: r.Max.Y},
		{X: r.Min.X, Y: c.Y},
	}
}

// RoundedRectPolygon approximates a rounded rectangle with arcs of
// segments points per corner.
func RoundedRectPolygon(r image.Rectangle, radius, segments int) []image.Point {
	radius = min(radius, r.Dx()/2, r.Dy()/2)
	if radius <= 0 || segments < 1 {
		return []image.Point{r.Min, {X: r.Max.X, Y: r.Min.Y}, r.Max, {X: r.Min.X, Y: r.Max.Y}}
	}
	corners := [4]struct {
		cx, cy int
		start  float64
	}{
		{r.Max.X - radius, r.Min.Y + radius, -math.Pi / 2},
		{r.Max.X - radius, r.Max.Y - radius, 0},
		{r.Min.X + radius, r.Max.Y - radius, math.Pi / 2},
		{r.Min.X + radius, r.Min.Y + radius, math.Pi},
	}
	pts := make([]image.Point, 0, 4*(segments+1))
	for _, c := range corners {
		for i := 0; i <= segments; i++ {
			a := c.start + math.Pi/2*float64(i)/float64(segments)
			pts = append(pts, image.Pt(
				c.cx+int(math.Round(float64(radius)*math.Cos(a))),
				c.cy+int(math.Round(float64(radius)*math.Sin(a))),
			))
		}
	}
	return pts
}

// drawCrosshair draws a disc with a cross of bars through it.
func drawCrosshair(c Canvas, r image.Rectangle, fill color.Color) {
	side := min(r.Dx(), r.Dy())
	inset := side / 10
	c.FillEllipse(r.Inset(inset), fill)
	bar := max(1, side/8)
	mid := center(r)
	c.FillRect(image.Rect(r.Min.X, mid.Y-bar/2, r.Max.X, mid.Y-bar/2+bar), fill)
	c.FillRect(image.Rect(mid.X-bar/2, r.Min.Y, mid.X-bar/2+bar, r.Max.Y), fill)
}
