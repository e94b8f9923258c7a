package cardsmith

import (
	"image/color"
	"sort"
	"strings"
)

// Palette is the set of colours a card is drawn with.
type Palette struct {
	BodyText        color.NRGBA
	BodyBackground  color.NRGBA
	CostBackground  color.NRGBA
	SegmentBorder   color.NRGBA
	SegmentLabel    color.NRGBA
	IconText        color.NRGBA
	Damage          color.NRGBA
	Health          color.NRGBA
	Strength        color.NRGBA
	Placeholder     color.NRGBA
	TitleBackground color.NRGBA
	TitleText       color.NRGBA
	ArtBackground   color.NRGBA
	Outline         color.NRGBA
	Flavor          color.NRGBA
	Elements        map[Element]color.NRGBA
}

// ElementColor returns the colour of e, falling back to the Generic colour.
func (p Palette) ElementColor(e Element) color.NRGBA {
	if c, ok := p.Elements[e]; ok {
		return c
	}
	return p.Elements[ElementGeneric]
}

// Theme provides a named palette.
type Theme interface {
	Name() string
	Palette() Palette
}

type theme struct {
	name    string
	palette Palette
}

func (t theme) Name() string     { return t.name }
func (t theme) Palette() Palette { return t.palette }

// NewTheme returns a Theme from a Palette definition.
func NewTheme(name string, p Palette) Theme {
	return theme{name: name, palette: p}
}

func rgb(hex uint32) color.NRGBA {
	return color.NRGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}

// Material colours.
var (
	black        = rgb(0x000000)
	white        = rgb(0xffffff)
	grey50       = rgb(0xfafafa)
	grey300      = rgb(0xe0e0e0)
	grey500      = rgb(0x9e9e9e)
	grey700      = rgb(0x616161)
	grey800      = rgb(0x424242)
	blueGrey500  = rgb(0x607d8b)
	blueGrey800  = rgb(0x37474f)
	amber200     = rgb(0xffe082)
	amber600     = rgb(0xffb300)
	redA400      = rgb(0xff1744)
	red700       = rgb(0xd32f2f)
	blue700      = rgb(0x1976d2)
	deepPurple   = rgb(0x512da8)
	green700     = rgb(0x388e3c)
	brown100     = rgb(0xd7ccc8)
	brown700     = rgb(0x5d4037)
	lightGreen50 = rgb(0xf1f8e9)
)

var (
	paletteDefault = Palette{
		BodyText:        black,
		BodyBackground:  grey50,
		CostBackground:  amber200,
		SegmentBorder:   blueGrey800,
		SegmentLabel:    blueGrey800,
		IconText:        white,
		Damage:          redA400,
		Health:          redA400,
		Strength:        blueGrey800,
		Placeholder:     redA400,
		TitleBackground: grey50,
		TitleText:       black,
		ArtBackground:   grey300,
		Outline:         black,
		Flavor:          grey700,
		Elements: map[Element]color.NRGBA{
			ElementFire:    red700,
			ElementWater:   blue700,
			ElementDark:    deepPurple,
			ElementLight:   amber600,
			ElementNature:  green700,
			ElementGeneric: blueGrey500,
		},
	}
	paletteParchment = Palette{
		BodyText:        brown700,
		BodyBackground:  brown100,
		CostBackground:  amber200,
		SegmentBorder:   brown700,
		SegmentLabel:    brown700,
		IconText:        white,
		Damage:          red700,
		Health:          red700,
		Strength:        brown700,
		Placeholder:     red700,
		TitleBackground: lightGreen50,
		TitleText:       brown700,
		ArtBackground:   brown100,
		Outline:         brown700,
		Flavor:          brown700,
		Elements:        paletteDefault.Elements,
	}
	paletteBoring = Palette{
		BodyText:        black,
		BodyBackground:  white,
		CostBackground:  grey300,
		SegmentBorder:   black,
		SegmentLabel:    black,
		IconText:        white,
		Damage:          grey800,
		Health:          grey800,
		Strength:        grey800,
		Placeholder:     black,
		TitleBackground: white,
		TitleText:       black,
		ArtBackground:   white,
		Outline:         black,
		Flavor:          grey700,
		Elements: map[Element]color.NRGBA{
			ElementFire:    grey800,
			ElementWater:   grey700,
			ElementDark:    black,
			ElementLight:   grey500,
			ElementNature:  grey700,
			ElementGeneric: grey500,
		},
	}
)

var builtinThemes = map[string]Theme{
	"default":   theme{name: "default", palette: paletteDefault},
	"parchment": theme{name: "parchment", palette: paletteParchment},
	"boring":    theme{name: "boring", palette: paletteBoring},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// BoringTheme returns the grayscale theme used for print-friendly output.
func BoringTheme() Theme {
	return builtinThemes["boring"]
}
