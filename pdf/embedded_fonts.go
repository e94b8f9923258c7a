package pdf

import "pkt.systems/cardsmith/raster"

// EmbeddedFontFamily is the family name the Go fonts are registered under.
const EmbeddedFontFamily = "GoFont"

// Vertical metrics of the Go fonts as fractions of the font size.
const (
	embeddedAscent  = 0.928
	embeddedDescent = 0.244
)

// EmbeddedGoFonts returns the regular, bold and italic Go font TTFs.
func EmbeddedGoFonts() (regular, bold, italic []byte) {
	set := raster.GoFonts()
	return set.Regular, set.Bold, set.Italic
}
