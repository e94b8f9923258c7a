package raster

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"pkt.systems/cardsmith"
)

// FontSet holds TrueType/OpenType font data for the three styles a card uses.
type FontSet struct {
	Regular []byte
	Bold    []byte
	Italic  []byte
}

// GoFonts returns the embedded Go font family.
func GoFonts() FontSet {
	return FontSet{
		Regular: goregular.TTF,
		Bold:    gobold.TTF,
		Italic:  goitalic.TTF,
	}
}

func (s FontSet) forFace(face cardsmith.Face) []byte {
	switch face {
	case cardsmith.FaceIcon, cardsmith.FaceTitle:
		return s.Bold
	case cardsmith.FaceFlavor:
		return s.Italic
	default:
		return s.Regular
	}
}

// Faces maps every cardsmith face to a sized font.Face. A font.Face keeps
// glyph caches, so a Faces value must not be shared between goroutines.
type Faces struct {
	faces map[cardsmith.Face]font.Face
}

// NewFaces sizes set for cfg. Missing styles fall back to Regular, and an
// empty set falls back to the Go fonts.
func NewFaces(cfg cardsmith.LayoutConfig, set FontSet) (*Faces, error) {
	if len(set.Regular) == 0 {
		set = GoFonts()
	}
	if len(set.Bold) == 0 {
		set.Bold = set.Regular
	}
	if len(set.Italic) == 0 {
		set.Italic = set.Regular
	}
	parsed := make(map[*byte]*opentype.Font, 3)
	faces := &Faces{faces: make(map[cardsmith.Face]font.Face, len(cardsmith.Faces()))}
	for _, face := range cardsmith.Faces() {
		data := set.forFace(face)
		f, ok := parsed[&data[0]]
		if !ok {
			var err error
			f, err = opentype.Parse(data)
			if err != nil {
				return nil, fmt.Errorf("raster: parse %s font: %w", face, err)
			}
			parsed[&data[0]] = f
		}
		ff, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    cfg.FaceSize(face),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("raster: %s face: %w", face, err)
		}
		faces.faces[face] = ff
	}
	return faces, nil
}

// Face returns the font for face, or the body font for unknown faces.
func (f *Faces) Face(face cardsmith.Face) font.Face {
	if ff, ok := f.faces[face]; ok {
		return ff
	}
	return f.faces[cardsmith.FaceBody]
}

// Close releases every face.
func (f *Faces) Close() error {
	var errs []error
	for _, ff := range f.faces {
		if err := ff.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Metrics measures text with a Faces set.
type Metrics struct {
	faces *Faces
}

// NewMetrics returns metrics backed by faces.
func NewMetrics(faces *Faces) Metrics {
	return Metrics{faces: faces}
}

// TextWidth returns the advance width of text rounded up to whole pixels.
func (m Metrics) TextWidth(face cardsmith.Face, text string) int {
	return font.MeasureString(m.faces.Face(face), text).Ceil()
}
