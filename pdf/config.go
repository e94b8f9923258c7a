package pdf

// Config holds PDF sheet settings. Lengths are in points.
type Config struct {
	PageSize string
	Margin   float64
	// Gutter is the space between neighbouring cards.
	Gutter float64
	// PixelsPerInch is the layout resolution cards are composed at before
	// being scaled to points.
	PixelsPerInch int
	CutMarks      bool
	CutMarkLength float64
	OpenLayerPane bool
	Boring        bool
	FontFamily    string
	// Font bytes override the embedded Go fonts; all three must be set together.
	RegularFontBytes []byte
	BoldFontBytes    []byte
	ItalicFontBytes  []byte
}

// DefaultConfig returns a baseline configuration.
func DefaultConfig() Config {
	return Config{
		PageSize:      "A4",
		Margin:        18,
		Gutter:        0,
		PixelsPerInch: 300,
		CutMarkLength: 9,
		FontFamily:    EmbeddedFontFamily,
	}
}

func applyConfig(dst *Config, src Config) {
	if src.PageSize != "" {
		dst.PageSize = src.PageSize
	}
	if src.Margin > 0 {
		dst.Margin = src.Margin
	}
	if src.Gutter > 0 {
		dst.Gutter = src.Gutter
	}
	if src.PixelsPerInch > 0 {
		dst.PixelsPerInch = src.PixelsPerInch
	}
	if src.CutMarks {
		dst.CutMarks = src.CutMarks
	}
	if src.CutMarkLength > 0 {
		dst.CutMarkLength = src.CutMarkLength
	}
	if src.OpenLayerPane {
		dst.OpenLayerPane = src.OpenLayerPane
	}
	if src.Boring {
		dst.Boring = src.Boring
	}
	if src.FontFamily != "" {
		dst.FontFamily = src.FontFamily
	}
	if len(src.RegularFontBytes) > 0 {
		dst.RegularFontBytes = src.RegularFontBytes
	}
	if len(src.BoldFontBytes) > 0 {
		dst.BoldFontBytes = src.BoldFontBytes
	}
	if len(src.ItalicFontBytes) > 0 {
		dst.ItalicFontBytes = src.ItalicFontBytes
	}
}
