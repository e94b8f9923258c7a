package cardsmith

import (
	"image"
	"image/color"
	"strings"
	"unicode/utf8"
)

// fixedMetrics gives every rune a fixed width: 10px in most faces, 5px in
// the label face.
type fixedMetrics struct{}

func (fixedMetrics) TextWidth(face Face, text string) int {
	n := utf8.RuneCountInString(text)
	if face == FaceLabel {
		return n * 5
	}
	return n * 10
}

type canvasOp struct {
	name   string
	face   Face
	text   string
	at     image.Point
	anchor Anchor
	rect   image.Rectangle
	points []image.Point
	color  color.Color
}

type recordingCanvas struct {
	ops []canvasOp
}

func (c *recordingCanvas) FillRect(r image.Rectangle, col color.Color) {
	c.ops = append(c.ops, canvasOp{name: "FillRect", rect: r, color: col})
}

func (c *recordingCanvas) FillRoundedRect(r image.Rectangle, radius int, col color.Color) {
	c.ops = append(c.ops, canvasOp{name: "FillRoundedRect", rect: r, color: col})
}

func (c *recordingCanvas) StrokeRoundedRect(r image.Rectangle, radius, width int, col color.Color) {
	c.ops = append(c.ops, canvasOp{name: "StrokeRoundedRect", rect: r, color: col})
}

func (c *recordingCanvas) FillEllipse(r image.Rectangle, col color.Color) {
	c.ops = append(c.ops, canvasOp{name: "FillEllipse", rect: r, color: col})
}

func (c *recordingCanvas) FillPolygon(points []image.Point, col color.Color) {
	c.ops = append(c.ops, canvasOp{name: "FillPolygon", points: points, color: col})
}

func (c *recordingCanvas) StrokePolyline(points []image.Point, width int, col color.Color) {
	c.ops = append(c.ops, canvasOp{name: "StrokePolyline", points: points, color: col})
}

func (c *recordingCanvas) DrawText(face Face, text string, at image.Point, anchor Anchor, col color.Color) {
	c.ops = append(c.ops, canvasOp{name: "DrawText", face: face, text: text, at: at, anchor: anchor, color: col})
}

func (c *recordingCanvas) DrawIcon(key string, r image.Rectangle) {
	c.ops = append(c.ops, canvasOp{name: "DrawIcon", text: key, rect: r})
}

func (c *recordingCanvas) named(name string) []canvasOp {
	var out []canvasOp
	for _, op := range c.ops {
		if op.name == name {
			out = append(out, op)
		}
	}
	return out
}

func testCard() CardDescription {
	return CardDescription{
		PrimaryElement: ElementFire,
		CardType:       CardTypeUnit,
		Title:          "Goblin",
	}
}

func rawOf(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Raw)
	}
	return b.String()
}

func kindsOf(tokens []Token) []TokenKind {
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

// rowTexts returns the raw token text of every visual row.
func rowTexts(l *Layout) [][]string {
	rows := make([][]string, len(l.Rows))
	for _, p := range l.Placements {
		rows[p.Row] = append(rows[p.Row], p.Token.Raw)
	}
	return rows
}
