package cardsmith

import (
	"image"
	"image/color"
)

// Face selects one of the fonts a backend provides.
type Face uint8

const (
	// FaceBody is the body-text font; its size is LayoutConfig.LineHeight.
	FaceBody Face = iota
	// FaceIcon is used for amounts printed on mana and stat icons.
	FaceIcon
	// FaceLabel is the small font of segment labels.
	FaceLabel
	// FaceTitle is the bold card title font.
	FaceTitle
	// FaceAttribute is used for the type line.
	FaceAttribute
	// FaceFlavor is the italic flavor-text font.
	FaceFlavor
)

func (f Face) String() string {
	switch f {
	case FaceBody:
		return "body"
	case FaceIcon:
		return "icon"
	case FaceLabel:
		return "label"
	case FaceTitle:
		return "title"
	case FaceAttribute:
		return "attribute"
	case FaceFlavor:
		return "flavor"
	}
	return "unknown"
}

// Faces lists every face in declaration order.
func Faces() []Face {
	return []Face{FaceBody, FaceIcon, FaceLabel, FaceTitle, FaceAttribute, FaceFlavor}
}

// Anchor positions text relative to the point passed to DrawText.
type Anchor uint8

const (
	// AnchorLeftMiddle puts the left edge at the point, vertically centred.
	AnchorLeftMiddle Anchor = iota
	// AnchorCenter centres the text on the point both ways.
	AnchorCenter
	// AnchorRightBottom puts the right edge and the descender line at the point.
	AnchorRightBottom
)

// Metrics measures text for layout. Widths are in canvas pixels.
type Metrics interface {
	TextWidth(face Face, text string) int
}

// Canvas is the drawing surface a backend implements. Coordinates are
// pixels with the origin at the top-left of the card.
type Canvas interface {
	FillRect(r image.Rectangle, c color.Color)
	FillRoundedRect(r image.Rectangle, radius int, c color.Color)
	StrokeRoundedRect(r image.Rectangle, radius, width int, c color.Color)
	FillEllipse(r image.Rectangle, c color.Color)
	FillPolygon(points []image.Point, c color.Color)
	StrokePolyline(points []image.Point, width int, c color.Color)
	DrawText(face Face, text string, at image.Point, anchor Anchor, c color.Color)
	// DrawIcon draws the icon for a markup key such as "<REVEAL>" scaled into r.
	DrawIcon(key string, r image.Rectangle)
}
