package cardsmith

import (
	"fmt"
	"image"
)

// CardLayout holds the fixed geometry of a card face in pixels.
type CardLayout struct {
	Width, Height   int
	Margin          int
	SmallIcon       int
	LargeIcon       int
	ArtBottom       int
	AttributeHeight int
}

// DefaultCardLayout returns a 2.5in x 3.5in card at ppi.
func DefaultCardLayout(ppi int) CardLayout {
	if ppi <= 0 {
		ppi = DefaultPixelsPerInch
	}
	return CardLayout{
		Width:           inches(ppi, 2.5),
		Height:          inches(ppi, 3.5),
		Margin:          inches(ppi, 0.1),
		SmallIcon:       inches(ppi, 0.3),
		LargeIcon:       inches(ppi, 0.5),
		ArtBottom:       inches(ppi, 1.5),
		AttributeHeight: inches(ppi, 0.2),
	}
}

// Bounds is the whole card.
func (l CardLayout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.Width, l.Height)
}

// TitleBox is the title pill, 80% of the card wide.
func (l CardLayout) TitleBox() image.Rectangle {
	return image.Rect(l.Margin, l.Margin, l.Margin+l.Width*8/10, l.Margin+l.SmallIcon)
}

// ArtBox is the flat art panel below the title.
func (l CardLayout) ArtBox() image.Rectangle {
	return image.Rect(l.Margin, l.Margin+l.SmallIcon/2, l.Width-l.Margin, l.ArtBottom)
}

// AttributeBox holds the type line.
func (l CardLayout) AttributeBox() image.Rectangle {
	return image.Rect(l.Margin, l.ArtBottom, l.Width-l.Margin, l.ArtBottom+l.AttributeHeight)
}

// BodyBackground is the body-text panel; text is inset from it by the
// body margin.
func (l CardLayout) BodyBackground() image.Rectangle {
	return image.Rect(l.Margin, l.ArtBottom+l.AttributeHeight+l.Margin, l.Width-l.Margin, l.StatCenterY())
}

// StatCenterY is the vertical centre of the strength and health icons.
func (l CardLayout) StatCenterY() int {
	return l.Height - l.LargeIcon/2 - l.Margin
}

// StatBox returns the square of a stat icon centred at fraction fx of the
// card width.
func (l CardLayout) StatBox(fx float64) image.Rectangle {
	cx := int(float64(l.Width) * fx)
	cy := l.StatCenterY()
	half := l.LargeIcon / 2
	return image.Rect(cx-half, cy-half, cx-half+l.LargeIcon, cy-half+l.LargeIcon)
}

// RenderCard draws a complete card face onto c.
func (e *Engine) RenderCard(c Canvas, card CardDescription, cl CardLayout) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("card %q: %w", card.Title, err)
	}
	if err := validateBox(cl.Bounds()); err != nil {
		return err
	}
	palette := e.theme.Palette()
	border := max(1, e.cfg.PixelsPerInch/100)

	c.FillRoundedRect(cl.Bounds(), cl.Margin, palette.ElementColor(card.PrimaryElement))
	art := cl.ArtBox()
	c.FillRect(art, palette.ArtBackground)
	if card.SecondaryElement != "" {
		band := image.Rect(art.Min.X, art.Max.Y-cl.Margin/2, art.Max.X, art.Max.Y)
		c.FillRect(band, palette.ElementColor(card.SecondaryElement))
	}

	e.renderTitle(c, card, cl, palette, border)

	attr := cl.AttributeBox()
	c.FillRoundedRect(attr, attr.Dy()/2, palette.TitleBackground)
	c.StrokeRoundedRect(attr, attr.Dy()/2, border, palette.Outline)
	c.DrawText(FaceAttribute, truncateWithEllipsis(e.metrics, FaceAttribute, card.TypeLine(), attr.Dx()-attr.Dy()),
		center(attr), AnchorCenter, palette.TitleText)

	end, err := e.RenderBody(c, card, cl.BodyBackground())
	if err != nil {
		return err
	}
	e.renderFlavor(c, card, end, cl.BodyBackground().Inset(e.cfg.BodyMargin))

	if card.Strength != "" {
		DrawStat(c, cl.StatBox(0.2), TokenStrength, card.Strength, palette)
	}
	if card.Health != "" {
		DrawStat(c, cl.StatBox(0.8), TokenHealth, card.Health, palette)
	}
	c.StrokeRoundedRect(cl.Bounds(), cl.Margin, border, palette.Outline)
	return nil
}

// RenderBody fills the body background and renders the body text inside
// it. Memory cards get a square background. With no body text the cursor
// returned is the first row of the inset box.
func (e *Engine) RenderBody(c Canvas, card CardDescription, background image.Rectangle) (Cursor, error) {
	palette := e.theme.Palette()
	if card.CardType == CardTypeMemory {
		c.FillRect(background, palette.BodyBackground)
	} else {
		c.FillRoundedRect(background, e.cfg.BackgroundRadius, palette.BodyBackground)
	}
	box := background.Inset(e.cfg.BodyMargin)
	if card.BodyText == "" {
		return Cursor{X: box.Min.X, Y: box.Min.Y + e.cfg.LineHeight/2}, nil
	}
	return e.Render(c, card, card.BodyText, box)
}

func (e *Engine) renderTitle(c Canvas, card CardDescription, cl CardLayout, palette Palette, border int) {
	title := cl.TitleBox()
	radius := title.Dy() / 2
	c.FillRoundedRect(title, radius, palette.TitleBackground)
	c.StrokeRoundedRect(title, radius, border, palette.Outline)

	textLeft := title.Min.X + radius
	if card.Cost != "" {
		badge := image.Rect(title.Min.X, title.Min.Y, title.Min.X+title.Dy(), title.Max.Y)
		c.FillEllipse(badge, palette.ElementColor(card.PrimaryElement))
		c.DrawText(FaceTitle, card.Cost, center(badge), AnchorCenter, palette.IconText)
		textLeft = badge.Max.X + e.cfg.CostPaddingX
	}
	limit := title.Max.X - radius - textLeft
	text := truncateWithEllipsis(e.metrics, FaceTitle, card.Title, limit)
	c.DrawText(FaceTitle, text, image.Pt(textLeft, center(title).Y), AnchorLeftMiddle, palette.TitleText)
}

func (e *Engine) renderFlavor(c Canvas, card CardDescription, cur Cursor, box image.Rectangle) {
	lines := wrapWords(e.metrics, FaceFlavor, card.FlavorText, box.Dx())
	y := cur.Y
	if card.BodyText != "" {
		y += e.cfg.TokenPaddingY
	}
	for _, line := range lines {
		c.DrawText(FaceFlavor, line, image.Pt(box.Min.X, y), AnchorLeftMiddle, e.theme.Palette().Flavor)
		y += e.cfg.LineHeight + e.cfg.TokenPaddingY
	}
}
