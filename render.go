package cardsmith

import (
	"image"
	"image/color"
)

// Render lays out text inside box and draws it onto c. The returned cursor
// marks where content after the body text may start.
func (e *Engine) Render(c Canvas, card CardDescription, text string, box image.Rectangle) (Cursor, error) {
	layout, err := e.Layout(card, text, box)
	if err != nil {
		return Cursor{}, err
	}
	e.Draw(c, layout)
	return layout.End, nil
}

// Draw replays a computed layout onto c: frames first, then cost pills,
// then tokens.
func (e *Engine) Draw(c Canvas, layout *Layout) {
	palette := e.theme.Palette()
	for _, frame := range layout.Frames {
		c.DrawText(FaceLabel, frame.Label, frame.LabelAt, AnchorRightBottom, palette.SegmentLabel)
		c.StrokePolyline(frame.Outline, e.cfg.SegmentBorderWidth, palette.SegmentBorder)
	}
	for _, pill := range layout.CostPills {
		c.FillRoundedRect(pill, pill.Dy()/2, palette.CostBackground)
	}
	for _, p := range layout.Placements {
		e.drawToken(c, p, palette)
	}
}

func (e *Engine) drawToken(c Canvas, p Placement, palette Palette) {
	tok := p.Token
	half := e.cfg.LineHeight / 2
	square := image.Rect(p.At.X, p.At.Y-half, p.At.X+e.cfg.IconSize, p.At.Y-half+e.cfg.IconSize)
	switch tok.Kind {
	case TokenText:
		c.DrawText(FaceBody, tok.Raw, p.At, AnchorLeftMiddle, palette.BodyText)
	case TokenAction, TokenIcon:
		c.DrawIcon(tok.Raw, image.Rect(p.At.X, p.At.Y-half, p.At.X+e.cfg.IconSize, p.At.Y+half))
	case TokenMana:
		DrawMana(c, square, tok.Element, tok.Amount, palette)
	case TokenHealth:
		DrawStat(c, square, TokenHealth, tok.Amount, palette)
	case TokenStrength:
		DrawStat(c, square, TokenStrength, tok.Amount, palette)
	case TokenDamage:
		DrawStat(c, square, TokenDamage, tok.Amount, palette)
	case TokenUnknown:
		c.DrawText(FaceBody, PlaceholderUnknown, p.At, AnchorLeftMiddle, palette.Placeholder)
	}
}

// DrawMana draws a mana badge: a circle in the element colour with the
// amount centred on it.
func DrawMana(c Canvas, r image.Rectangle, element Element, amount string, palette Palette) {
	c.FillEllipse(r, palette.ElementColor(element))
	c.DrawText(FaceIcon, amount, center(r), AnchorCenter, palette.IconText)
}

// DrawStat draws a health heart, strength diamond or damage crosshair
// inside r with the amount centred on it.
func DrawStat(c Canvas, r image.Rectangle, kind TokenKind, amount string, palette Palette) {
	var fill color.Color
	switch kind {
	case TokenHealth:
		fill = palette.Health
		c.FillPolygon(HeartPolygon(r), fill)
	case TokenStrength:
		fill = palette.Strength
		c.FillPolygon(DiamondPolygon(r), fill)
	case TokenDamage:
		fill = palette.Damage
		drawCrosshair(c, r, fill)
	default:
		return
	}
	c.DrawText(FaceIcon, amount, center(r), AnchorCenter, palette.IconText)
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}
