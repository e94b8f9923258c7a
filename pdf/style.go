package pdf

import (
	"image/color"

	"pkt.systems/cardsmith"
)

// fontStyle maps a face to the gofpdf style string of the registered family.
func fontStyle(face cardsmith.Face) string {
	switch face {
	case cardsmith.FaceIcon, cardsmith.FaceTitle:
		return "B"
	case cardsmith.FaceFlavor:
		return "I"
	default:
		return ""
	}
}

// rgb converts c to 8-bit components, compositing translucent colours
// over white since PDF fills here are opaque.
func rgb(c color.Color) (r, g, b int) {
	cr, cg, cb, ca := c.RGBA()
	if ca == 0 {
		return 255, 255, 255
	}
	over := func(v uint32) int {
		return int((v + (0xffff - ca)) >> 8)
	}
	return over(cr), over(cg), over(cb)
}
