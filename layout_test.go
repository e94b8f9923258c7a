package cardsmith

import (
	"bytes"
	"errors"
	"image"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestEngine(opts ...RenderOption) *Engine {
	return NewEngine(fixedMetrics{}, opts...)
}

func TestDefaultLayoutConfigAt100PPI(t *testing.T) {
	cfg := DefaultLayoutConfig(0)
	want := LayoutConfig{
		PixelsPerInch:        100,
		LineHeight:           16,
		IconSize:             16,
		TokenPaddingX:        2,
		TokenPaddingY:        2,
		CostPaddingX:         5,
		BodyMargin:           5,
		SegmentPaddingY:      3,
		SegmentLabelPaddingY: 9,
		SegmentBorderWidth:   1,
		BackgroundRadius:     5,
	}
	if cfg != want {
		t.Fatalf("got %+v want %+v", cfg, want)
	}
}

func TestLayoutPlainWrap(t *testing.T) {
	l, err := newTestEngine().Layout(testCard(), "alpha beta gamma", image.Rect(0, 0, 110, 200))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if got, want := rowTexts(l), [][]string{{"alpha", "beta"}, {"gamma"}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("rows got %q want %q", got, want)
	}
	wantAt := []image.Point{{0, 8}, {52, 8}, {0, 26}}
	for i, p := range l.Placements {
		if p.At != wantAt[i] {
			t.Fatalf("placement %d at %v want %v", i, p.At, wantAt[i])
		}
	}
	if l.End != (Cursor{X: 0, Y: 44}) {
		t.Fatalf("end cursor got %+v", l.End)
	}
	for _, p := range l.Placements {
		if p.Token.Kind == TokenSpace {
			t.Fatalf("space token placed at %v", p.At)
		}
	}
}

func TestLayoutWrapBoundaryIsStrict(t *testing.T) {
	e := newTestEngine()
	fits, err := e.Layout(testCard(), "aaa bbb", image.Rect(0, 0, 62, 100))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(fits.Rows) != 1 {
		t.Fatalf("x+w == right should fit, got %d rows", len(fits.Rows))
	}
	wraps, err := e.Layout(testCard(), "aaa bbb", image.Rect(0, 0, 61, 100))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(wraps.Rows) != 2 {
		t.Fatalf("x+w == right+1 should wrap, got %d rows", len(wraps.Rows))
	}
}

func TestLayoutActionLineWithCost(t *testing.T) {
	l, err := newTestEngine().Layout(testCard(), "<COMBAT_ACTION> <1F> <END_COST> Deal", image.Rect(0, 0, 300, 200))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(l.CostPills) != 1 {
		t.Fatalf("expected 1 cost pill, got %d", len(l.CostPills))
	}
	if got, want := l.CostPills[0], image.Rect(18, 0, 44, 16); got != want {
		t.Fatalf("pill got %v want %v", got, want)
	}
	want := []struct {
		raw string
		at  image.Point
	}{
		{"<COMBAT_ACTION>", image.Pt(0, 8)},
		{"<1F>", image.Pt(23, 8)},
		{"Deal", image.Pt(46, 8)},
	}
	if len(l.Placements) != len(want) {
		t.Fatalf("expected %d placements, got %d", len(want), len(l.Placements))
	}
	for i, w := range want {
		p := l.Placements[i]
		if p.Token.Raw != w.raw || p.At != w.at {
			t.Fatalf("placement %d got %q at %v want %q at %v", i, p.Token.Raw, p.At, w.raw, w.at)
		}
	}
	if l.End != (Cursor{X: 0, Y: 26}) {
		t.Fatalf("end cursor got %+v", l.End)
	}
}

func TestLayoutActionLineWithoutCost(t *testing.T) {
	l, err := newTestEngine().Layout(testCard(), "<ANY_ACTION> <END_COST> Go", image.Rect(0, 0, 300, 200))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(l.CostPills) != 0 {
		t.Fatalf("expected no pill, got %v", l.CostPills)
	}
	if l.Placements[1].At.X != 18 {
		t.Fatalf("content should follow action directly, got x=%d", l.Placements[1].At.X)
	}
}

func TestLayoutActionContentWrapsToIndent(t *testing.T) {
	l, err := newTestEngine().Layout(testCard(), "<COMBAT_ACTION> Strike the target", image.Rect(0, 0, 100, 200))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if got, want := l.Rows, []int{8, 26, 44}; !reflect.DeepEqual(got, want) {
		t.Fatalf("rows got %v want %v", got, want)
	}
	wantAt := []image.Point{{0, 8}, {18, 8}, {16, 26}, {16, 44}}
	for i, p := range l.Placements {
		if p.At != wantAt[i] {
			t.Fatalf("placement %d (%q) at %v want %v", i, p.Token.Raw, p.At, wantAt[i])
		}
	}
}

func TestLayoutTetherSegment(t *testing.T) {
	e := newTestEngine()
	card := testCard()
	text := "Before <TETHER> Inside </TETHER> After"
	box := image.Rect(0, 0, 200, 200)
	l, err := e.Layout(card, text, box)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if got, want := rowTexts(l), [][]string{{"Before"}, {"Inside"}, {"After"}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("rows got %q want %q", got, want)
	}
	if got, want := l.Rows, []int{8, 38, 62}; !reflect.DeepEqual(got, want) {
		t.Fatalf("row ys got %v want %v", got, want)
	}
	if len(l.Frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(l.Frames))
	}
	f := l.Frames[0]
	if f.Label != "Tether" || f.Top != 27 || f.Bottom != 51 || f.LabelAt != image.Pt(200, 27) {
		t.Fatalf("unexpected frame %+v", f)
	}
	wantOutline := []image.Point{{-5, 27}, {165, 27}, {165, 18}, {205, 18}, {205, 51}, {-5, 51}, {-5, 27}}
	if !reflect.DeepEqual(f.Outline, wantOutline) {
		t.Fatalf("outline got %v want %v", f.Outline, wantOutline)
	}
	if l.End != (Cursor{X: 0, Y: 80}) {
		t.Fatalf("end cursor got %+v", l.End)
	}

	segments, lines, err := e.Lines(card, text)
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	end, rows := e.Measure(lines[1], Cursor{X: 0, Y: 38}, box.Min.X, box.Max.X)
	if !reflect.DeepEqual(rows, []int{38}) || end != (Cursor{X: 0, Y: 56}) {
		t.Fatalf("measure got rows %v end %+v", rows, end)
	}
}

func TestLayoutDryRunMatchesRealPass(t *testing.T) {
	e := newTestEngine()
	text := "<TETHER> one two three <ANY_ACTION> <2W> <END_COST> four five six seven <NEWLINE> eight </TETHER>"
	box := image.Rect(10, 10, 120, 400)
	l, err := e.Layout(testCard(), text, box)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	_, lines, err := e.Lines(testCard(), text)
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	cfg := e.Config()
	start := Cursor{X: box.Min.X, Y: box.Min.Y + cfg.LineHeight/2 + cfg.SegmentLabelPaddingY + cfg.SegmentPaddingY}
	end, rows := e.Measure(lines[1], start, box.Min.X, box.Max.X)
	if !reflect.DeepEqual(rows, l.Rows) {
		t.Fatalf("dry run rows %v differ from real rows %v", rows, l.Rows)
	}
	if want := end.Y - cfg.LineHeight/2 + cfg.SegmentPaddingY; l.Frames[0].Bottom != want {
		t.Fatalf("frame bottom got %d want %d", l.Frames[0].Bottom, want)
	}
	if len(rows) < 4 {
		t.Fatalf("expected wrapped rows, got %v", rows)
	}
}

func TestLayoutNestedTetherFails(t *testing.T) {
	_, err := newTestEngine().Layout(testCard(), "<TETHER> a <TETHER> b </TETHER>", image.Rect(0, 0, 100, 100))
	if !errors.Is(err, ErrNestedSegment) {
		t.Fatalf("expected ErrNestedSegment, got %v", err)
	}
	var segErr *SegmentError
	if !errors.As(err, &segErr) || segErr.Pos != 11 {
		t.Fatalf("expected SegmentError at byte 11, got %v", err)
	}
}

func TestLayoutRejectsInvalidBox(t *testing.T) {
	box := image.Rectangle{Min: image.Pt(10, 10), Max: image.Pt(5, 20)}
	if _, err := newTestEngine().Layout(testCard(), "x", box); !errors.Is(err, ErrInvalidBox) {
		t.Fatalf("expected ErrInvalidBox, got %v", err)
	}
}

func TestRenderUnknownMarkupDrawsPlaceholder(t *testing.T) {
	var logs bytes.Buffer
	e := newTestEngine(WithLogger(zerolog.New(&logs)))
	var c recordingCanvas
	if _, err := e.Render(&c, testCard(), "Hello <FOO> world", image.Rect(0, 0, 300, 100)); err != nil {
		t.Fatalf("render: %v", err)
	}
	var texts []string
	for _, op := range c.named("DrawText") {
		texts = append(texts, op.text)
	}
	if want := []string{"Hello", PlaceholderUnknown, "world"}; !reflect.DeepEqual(texts, want) {
		t.Fatalf("texts got %q want %q", texts, want)
	}
	if n := strings.Count(logs.String(), "<FOO>"); n != 1 {
		t.Fatalf("expected one warning naming the token, got %d in %q", n, logs.String())
	}
}

func TestLayoutWarnsOnUnknownMarkupWithoutDrawing(t *testing.T) {
	var logs bytes.Buffer
	e := newTestEngine(WithLogger(zerolog.New(&logs)))
	l, err := e.Layout(testCard(), "Hello <FOO> world", image.Rect(0, 0, 300, 100))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if got := rowTexts(l); !reflect.DeepEqual(got, [][]string{{"Hello", "<FOO>", "world"}}) {
		t.Fatalf("rows got %q", got)
	}
	if !strings.Contains(logs.String(), "<FOO>") {
		t.Fatalf("expected warning from layout alone, got %q", logs.String())
	}

	logs.Reset()
	lines := BreakLines(Segment{Tokens: Tokenize(testCard(), "Hello <FOO>")})
	e.Measure(lines, Cursor{X: 0, Y: 8}, 0, 300)
	if logs.Len() != 0 {
		t.Fatalf("dry run must stay silent, got %q", logs.String())
	}
}

func TestLayoutOversizeTokenStaysOnRowStart(t *testing.T) {
	l, err := newTestEngine().Layout(testCard(), "Supercalifragilistic a", image.Rect(0, 0, 50, 100))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if got, want := rowTexts(l), [][]string{{"Supercalifragilistic"}, {"a"}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("rows got %q want %q", got, want)
	}
	if want := []int{8, 26}; !reflect.DeepEqual(l.Rows, want) {
		t.Fatalf("row centres got %v want %v", l.Rows, want)
	}
	if at := l.Placements[0].At; at != image.Pt(0, 8) {
		t.Fatalf("oversize token placed at %v", at)
	}
}

func TestLayoutCostEndsAtFirstEndCost(t *testing.T) {
	var logs bytes.Buffer
	l, err := newTestEngine(WithLogger(zerolog.New(&logs))).Layout(testCard(), "<ANY_ACTION> <1G> <END_COST> Pay <END_COST> Go", image.Rect(0, 0, 300, 100))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if want := []image.Rectangle{image.Rect(18, 0, 44, 16)}; !reflect.DeepEqual(l.CostPills, want) {
		t.Fatalf("pills got %v want %v", l.CostPills, want)
	}
	if got, want := rowTexts(l), [][]string{{"<ANY_ACTION>", "<1G>", "Pay", "Go"}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("rows got %q want %q", got, want)
	}
	if pay := l.Placements[2]; pay.At.X != 46 {
		t.Fatalf("content should start after the pill, got x=%d", pay.At.X)
	}
	if !strings.Contains(logs.String(), "<END_COST>") {
		t.Fatalf("expected warning for the second marker, got %q", logs.String())
	}
}

func TestRenderDropsStrayEndCost(t *testing.T) {
	var logs bytes.Buffer
	l, err := newTestEngine(WithLogger(zerolog.New(&logs))).Layout(testCard(), "Pay <END_COST> now", image.Rect(0, 0, 300, 100))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if got := rowTexts(l); !reflect.DeepEqual(got, [][]string{{"Pay", "now"}}) {
		t.Fatalf("rows got %q", got)
	}
	if !strings.Contains(logs.String(), "<END_COST>") {
		t.Fatalf("expected warning, got %q", logs.String())
	}
}

func TestRenderDrawOrder(t *testing.T) {
	var c recordingCanvas
	e := newTestEngine()
	_, err := e.Render(&c, testCard(), "<TETHER> <READY_ACTION> <ANY_ACTION> <1L> <END_COST> <REVEAL> <2_HEALTH> </TETHER>", image.Rect(0, 0, 300, 200))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var names []string
	for _, op := range c.ops {
		names = append(names, op.name)
	}
	want := []string{
		"DrawText", "StrokePolyline",
		"FillRoundedRect",
		"DrawText",
		"DrawIcon",
		"FillEllipse", "DrawText",
		"DrawIcon",
		"FillPolygon", "DrawText",
	}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("ops got %v want %v", names, want)
	}
	if c.ops[0].anchor != AnchorRightBottom || c.ops[0].text != "Tether" {
		t.Fatalf("unexpected label op %+v", c.ops[0])
	}
}

func TestWithTitleSubstitution(t *testing.T) {
	l, err := newTestEngine(WithTitleSubstitution("Gob")).Layout(testCard(), "<THIS> attacks", image.Rect(0, 0, 300, 100))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if l.Placements[0].Token.Raw != "Gob" {
		t.Fatalf("expected substituted title, got %q", l.Placements[0].Token.Raw)
	}
}
