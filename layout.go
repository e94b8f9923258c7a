package cardsmith

import (
	"fmt"
	"image"

	"github.com/rs/zerolog"
)

// Cursor is the layout position: X is the left edge of the next token, Y
// the vertical centre of the current row.
type Cursor struct {
	X, Y int
}

// Point converts the cursor to an image.Point.
func (c Cursor) Point() image.Point { return image.Pt(c.X, c.Y) }

// Placement is a token positioned by layout.
type Placement struct {
	Token Token
	// At is the token's left edge on the row's vertical centre.
	At    image.Point
	Width int
	// Row indexes Layout.Rows.
	Row int
}

// Frame is the outline drawn around a Tether segment.
type Frame struct {
	Kind  SegmentKind
	Label string
	// LabelAt is the right-bottom anchor of the label.
	LabelAt image.Point
	// Outline is a closed polyline with a tab on the right for the label.
	Outline []image.Point
	Top     int
	Bottom  int
}

// Layout is the computed geometry of one body text.
type Layout struct {
	Box        image.Rectangle
	Placements []Placement
	// CostPills are the rounded backgrounds behind action costs.
	CostPills []image.Rectangle
	Frames    []Frame
	// Rows holds the centre Y of every visual row in drawing order.
	Rows []int
	// End is the cursor after the last line; content below the body text
	// may start at End.Y.
	End Cursor
}

// RowTokens groups placements by visual row.
func (l *Layout) RowTokens() [][]Placement {
	rows := make([][]Placement, len(l.Rows))
	for _, p := range l.Placements {
		rows[p.Row] = append(rows[p.Row], p)
	}
	return rows
}

// Engine lays out and renders body text. An Engine holds no mutable state
// and may be shared between goroutines if its Metrics may be.
type Engine struct {
	metrics Metrics
	cfg     LayoutConfig
	theme   Theme
	log     zerolog.Logger
	title   string
}

// NewEngine returns an Engine measuring text with metrics.
func NewEngine(metrics Metrics, opts ...RenderOption) *Engine {
	cfg := defaultRenderConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Engine{
		metrics: metrics,
		cfg:     cfg.layout,
		theme:   cfg.theme,
		log:     cfg.logger,
		title:   cfg.title,
	}
}

// Config returns the layout constants in use.
func (e *Engine) Config() LayoutConfig { return e.cfg }

// Theme returns the engine's theme.
func (e *Engine) Theme() Theme { return e.theme }

// Metrics returns the metrics provider.
func (e *Engine) Metrics() Metrics { return e.metrics }

// Lines tokenizes, segments and line-breaks text for card.
func (e *Engine) Lines(card CardDescription, text string) ([]Segment, [][]Line, error) {
	if e.title != "" {
		card.Title = e.title
	}
	segments, err := SegmentTokens(Tokenize(card, text))
	if err != nil {
		return nil, nil, fmt.Errorf("body text %q: %w", card.Title, err)
	}
	lines := make([][]Line, len(segments))
	for i, seg := range segments {
		lines[i] = BreakLines(seg)
	}
	return segments, lines, nil
}

// Layout computes placements for text inside box without drawing.
func (e *Engine) Layout(card CardDescription, text string, box image.Rectangle) (*Layout, error) {
	if err := validateBox(box); err != nil {
		return nil, err
	}
	segments, lines, err := e.Lines(card, text)
	if err != nil {
		return nil, err
	}
	out := &Layout{Box: box}
	p := &pass{engine: e}
	cur := Cursor{X: box.Min.X, Y: box.Min.Y + e.cfg.LineHeight/2}
	for i, seg := range segments {
		if seg.Kind == SegmentMain {
			cur = p.lines(lines[i], cur, box.Min.X, box.Max.X)
			continue
		}
		var frame Frame
		cur, frame = e.tether(p, seg.Kind, lines[i], cur, box)
		out.Frames = append(out.Frames, frame)
	}
	out.Placements = p.placements
	out.CostPills = p.pills
	out.Rows = p.rows
	out.End = cur
	return out, nil
}

// Measure lays out lines starting at cur between left and right and
// returns the resulting cursor and the centre Y of each visual row. It runs
// the same code as Layout, so a dry run always matches the real pass.
func (e *Engine) Measure(lines []Line, cur Cursor, left, right int) (Cursor, []int) {
	p := &pass{engine: e, dry: true}
	end := p.lines(lines, cur, left, right)
	return end, p.rows
}

func (e *Engine) tether(p *pass, kind SegmentKind, lines []Line, cur Cursor, box image.Rectangle) (Cursor, Frame) {
	half := e.cfg.LineHeight / 2
	labelPad := e.cfg.SegmentLabelPaddingY
	segPad := e.cfg.SegmentPaddingY
	margin := e.cfg.BodyMargin
	left, right := box.Min.X, box.Max.X

	cur.Y += labelPad
	start := cur.Y
	top := cur.Y - half
	measured, _ := e.Measure(lines, Cursor{X: cur.X, Y: start + segPad}, left, right)
	bottom := measured.Y - half + segPad

	label := kind.String()
	labelWidth := e.metrics.TextWidth(FaceLabel, label)
	frame := Frame{
		Kind:    kind,
		Label:   label,
		LabelAt: image.Pt(right, top),
		Top:     top,
		Bottom:  bottom,
		Outline: []image.Point{
			{X: left - margin, Y: top},
			{X: right - labelWidth - margin, Y: top},
			{X: right - labelWidth - margin, Y: top - labelPad},
			{X: right + margin, Y: top - labelPad},
			{X: right + margin, Y: bottom},
			{X: left - margin, Y: bottom},
			{X: left - margin, Y: top},
		},
	}

	p.lines(lines, Cursor{X: cur.X, Y: start + segPad}, left, right)
	return Cursor{X: left, Y: bottom + segPad + half}, frame
}

// pass accumulates the output of one layout run. A dry pass records rows
// only and stays silent.
type pass struct {
	engine     *Engine
	dry        bool
	placements []Placement
	pills      []image.Rectangle
	rows       []int
}

func (p *pass) row(cur Cursor) {
	p.rows = append(p.rows, cur.Y)
}

func (p *pass) place(tok Token, cur Cursor, width int) {
	if p.dry {
		return
	}
	if tok.Kind == TokenUnknown {
		p.engine.log.Warn().Str("token", tok.Raw).Int("pos", tok.Pos).Msg("unknown markup, using placeholder")
	}
	p.placements = append(p.placements, Placement{
		Token: tok,
		At:    cur.Point(),
		Width: width,
		Row:   len(p.rows) - 1,
	})
}

func (p *pass) lines(lines []Line, cur Cursor, left, right int) Cursor {
	for _, line := range lines {
		p.row(cur)
		if line.IsAction() {
			cur = p.actionLine(line, cur, left, right)
		} else {
			cur = p.flow(line.Tokens, cur, left, right, 0)
		}
		cur = p.engine.newline(cur, left, 0)
	}
	return cur
}

func (p *pass) actionLine(line Line, cur Cursor, left, right int) Cursor {
	e := p.engine
	action, cost, content := line.Split()
	actionWidth := e.tokenWidth(action)
	p.place(action, cur, actionWidth)
	cur.X += actionWidth + e.cfg.TokenPaddingX

	if len(cost) > 0 {
		widths := make([]int, len(cost))
		pill := 2*e.cfg.CostPaddingX + e.cfg.TokenPaddingX*(len(cost)-1)
		for i, tok := range cost {
			widths[i] = e.tokenWidth(tok)
			pill += widths[i]
		}
		if !p.dry {
			half := e.cfg.LineHeight / 2
			p.pills = append(p.pills, image.Rect(cur.X, cur.Y-half, cur.X+pill, cur.Y+half))
		}
		cur.X += e.cfg.CostPaddingX
		for i, tok := range cost {
			p.place(tok, cur, widths[i])
			cur.X += widths[i] + e.cfg.TokenPaddingX
		}
		cur.X += e.cfg.CostPaddingX
	}
	return p.flow(content, cur, left, right, actionWidth)
}

// flow places tokens left to right, wrapping to left+indent when a token
// would cross right. A token already at the start of a row is placed there
// even if it overflows. Spaces take no width and never start a row.
func (p *pass) flow(tokens []Token, cur Cursor, left, right, indent int) Cursor {
	e := p.engine
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenSpace:
			continue
		case TokenEndCost, TokenNewline, TokenSegmentStart, TokenSegmentEnd:
			if !p.dry {
				e.log.Warn().Str("token", tok.Raw).Int("pos", tok.Pos).Msg("dropping marker outside its context")
			}
			continue
		}
		width := e.tokenWidth(tok)
		if cur.X+width > right && cur.X > left+indent {
			cur = e.newline(cur, left, indent)
			p.row(cur)
		}
		p.place(tok, cur, width)
		cur.X += width + e.cfg.TokenPaddingX
	}
	return cur
}

func (e *Engine) newline(cur Cursor, left, indent int) Cursor {
	return Cursor{X: left + indent, Y: cur.Y + e.cfg.LineHeight + e.cfg.TokenPaddingY}
}

func (e *Engine) tokenWidth(tok Token) int {
	switch {
	case tok.IsIcon():
		return e.cfg.IconSize
	case tok.Kind == TokenText:
		return e.metrics.TextWidth(FaceBody, tok.Raw)
	case tok.Kind == TokenUnknown:
		return e.metrics.TextWidth(FaceBody, PlaceholderUnknown)
	}
	return 0
}
