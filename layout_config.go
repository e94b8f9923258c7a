package cardsmith

// DefaultPixelsPerInch is the canvas resolution assumed when none is given.
const DefaultPixelsPerInch = 100

// LayoutConfig holds the pixel constants of body-text layout. Every value
// is derived from PixelsPerInch by DefaultLayoutConfig; backends size
// their fonts from the same config so measurement and drawing agree.
type LayoutConfig struct {
	PixelsPerInch int
	// LineHeight is the body font size and the height of one visual row.
	LineHeight int
	// IconSize is the width of every icon token.
	IconSize        int
	TokenPaddingX   int
	TokenPaddingY   int
	CostPaddingX    int
	BodyMargin      int
	SegmentPaddingY int
	// SegmentLabelPaddingY is the height of the label tab above a segment frame.
	SegmentLabelPaddingY int
	SegmentBorderWidth   int
	BackgroundRadius     int
}

// DefaultLayoutConfig derives the layout constants for ppi. A non-positive
// ppi selects DefaultPixelsPerInch.
func DefaultLayoutConfig(ppi int) LayoutConfig {
	if ppi <= 0 {
		ppi = DefaultPixelsPerInch
	}
	lineHeight := inches(ppi, 0.16)
	return LayoutConfig{
		PixelsPerInch:        ppi,
		LineHeight:           lineHeight,
		IconSize:             lineHeight,
		TokenPaddingX:        inches(ppi, 0.02),
		TokenPaddingY:        inches(ppi, 0.02),
		CostPaddingX:         inches(ppi, 0.05),
		BodyMargin:           inches(ppi, 0.05),
		SegmentPaddingY:      inches(ppi, 0.03),
		SegmentLabelPaddingY: int(1.2 * float64(lineHeight/2)),
		SegmentBorderWidth:   max(1, inches(ppi, 0.01)),
		BackgroundRadius:     inches(ppi, 0.05),
	}
}

// FaceSize returns the pixel size backends should use for face.
func (c LayoutConfig) FaceSize(face Face) float64 {
	ppi := float64(c.PixelsPerInch)
	switch face {
	case FaceIcon:
		return 0.8 * float64(c.LineHeight)
	case FaceLabel:
		return float64(c.LineHeight / 2)
	case FaceTitle:
		return 0.2 * ppi
	case FaceAttribute:
		return 0.13 * ppi
	default:
		return float64(c.LineHeight)
	}
}

func applyLayoutConfig(dst *LayoutConfig, src LayoutConfig) {
	if src.PixelsPerInch > 0 && src.PixelsPerInch != dst.PixelsPerInch {
		*dst = DefaultLayoutConfig(src.PixelsPerInch)
	}
	if src.LineHeight > 0 {
		dst.LineHeight = src.LineHeight
	}
	if src.IconSize > 0 {
		dst.IconSize = src.IconSize
	}
	if src.TokenPaddingX > 0 {
		dst.TokenPaddingX = src.TokenPaddingX
	}
	if src.TokenPaddingY > 0 {
		dst.TokenPaddingY = src.TokenPaddingY
	}
	if src.CostPaddingX > 0 {
		dst.CostPaddingX = src.CostPaddingX
	}
	if src.BodyMargin > 0 {
		dst.BodyMargin = src.BodyMargin
	}
	if src.SegmentPaddingY > 0 {
		dst.SegmentPaddingY = src.SegmentPaddingY
	}
	if src.SegmentLabelPaddingY > 0 {
		dst.SegmentLabelPaddingY = src.SegmentLabelPaddingY
	}
	if src.SegmentBorderWidth > 0 {
		dst.SegmentBorderWidth = src.SegmentBorderWidth
	}
	if src.BackgroundRadius > 0 {
		dst.BackgroundRadius = src.BackgroundRadius
	}
}

func inches(ppi int, v float64) int {
	return int(float64(ppi) * v)
}
