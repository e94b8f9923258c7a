package preview

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"pkt.systems/cardsmith"
)

func layoutFor(t *testing.T, text string, box image.Rectangle) *cardsmith.Layout {
	t.Helper()
	cfg := cardsmith.DefaultLayoutConfig(100)
	engine := cardsmith.NewEngine(NewMetrics(cfg), cardsmith.WithLayoutConfig(cfg))
	card := cardsmith.CardDescription{PrimaryElement: cardsmith.ElementFire, CardType: cardsmith.CardTypeSpell, Title: "Flare"}
	l, err := engine.Layout(card, text, box)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	return l
}

func TestRenderBoring(t *testing.T) {
	l := layoutFor(t, "<COMBAT_ACTION> <1F> <END_COST> Deal <2_DAMAGE> to each unit. <TETHER> <REVEAL> Draw a card. </TETHER>", image.Rect(0, 0, 200, 300))
	var out bytes.Buffer
	if err := Render(&out, l, Options{Boring: true}); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "[COMBAT] (1F) Deal ⊕2 to each unit." {
		t.Fatalf("line 0 got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "── Tether ─") {
		t.Fatalf("line 1 got %q", lines[1])
	}
	if lines[2] != "[REVEAL] Draw a card." {
		t.Fatalf("line 2 got %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "──") || strings.Contains(lines[3], "Tether") {
		t.Fatalf("line 3 got %q", lines[3])
	}
}

func TestRenderFollowsLayoutWrapping(t *testing.T) {
	l := layoutFor(t, "one two three four five six", image.Rect(0, 0, 80, 300))
	var out bytes.Buffer
	if err := Render(&out, l, Options{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	got := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(got) != len(l.Rows) {
		t.Fatalf("expected %d rows, got %d: %q", len(l.Rows), len(got), got)
	}
	if !strings.HasPrefix(got[0], "one two") {
		t.Fatalf("first row got %q", got[0])
	}
}

func TestBadge(t *testing.T) {
	cases := map[string]string{
		"<DRAW_CARD>":     "[DRAW_CARD]",
		"<RANGED_ACTION>": "[RANGED]",
		"<XG>":            "(XG)",
		"<4_HEALTH>":      "♥4",
		"<2_STRENGTH>":    "◆2",
		"<BOGUS>":         "[?]",
		"word":            "word",
	}
	for raw, want := range cases {
		if got := Badge(cardsmith.Classify(raw, 0)); got != want {
			t.Fatalf("Badge(%q) got %q want %q", raw, got, want)
		}
	}
}

func TestMetricsCountsCells(t *testing.T) {
	m := Metrics{CellWidth: 8}
	if got := m.TextWidth(cardsmith.FaceBody, "abc"); got != 24 {
		t.Fatalf("got %d", got)
	}
	if got := m.TextWidth(cardsmith.FaceBody, "漢字"); got != 32 {
		t.Fatalf("wide runes got %d", got)
	}
}
