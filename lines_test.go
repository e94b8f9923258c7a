package cardsmith

import (
	"reflect"
	"testing"
)

func lineRaws(lines []Line) [][]string {
	out := make([][]string, len(lines))
	for i, line := range lines {
		for _, tok := range line.Tokens {
			out[i] = append(out[i], tok.Raw)
		}
	}
	return out
}

func TestBreakLines(t *testing.T) {
	seg := Segment{Tokens: Tokenize(testCard(), "Intro <NEWLINE> <NEWLINE> <COMBAT_ACTION> <1F> <END_COST> Hit <RANGED_ACTION> Shoot")}
	got := lineRaws(BreakLines(seg))
	want := [][]string{
		{"Intro"},
		{"<COMBAT_ACTION>", " ", "<1F>", " ", "<END_COST>", " ", "Hit"},
		{"<RANGED_ACTION>", " ", "Shoot"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("lines got %q want %q", got, want)
	}
}

func TestBreakLinesActionOnlyAtStart(t *testing.T) {
	seg := Segment{Tokens: Tokenize(testCard(), "a <ANY_ACTION> b <ANY_ACTION> <MEMORY_ACTION> c <NEWLINE>")}
	for i, line := range BreakLines(seg) {
		if len(line.Tokens) == 0 {
			t.Fatalf("line %d is empty", i)
		}
		for j, tok := range line.Tokens {
			if tok.Kind == TokenAction && j != 0 {
				t.Fatalf("line %d has action at index %d", i, j)
			}
		}
		if line.Tokens[0].Kind == TokenSpace || line.Tokens[len(line.Tokens)-1].Kind == TokenSpace {
			t.Fatalf("line %d not trimmed", i)
		}
	}
}

func TestLineSplit(t *testing.T) {
	seg := Segment{Tokens: Tokenize(testCard(), "<COMBAT_ACTION> <1F> <EXHAUST> <END_COST> Deal <2_DAMAGE>")}
	lines := BreakLines(seg)
	action, cost, content := lines[0].Split()
	if action.Raw != IconCombatAction {
		t.Fatalf("action got %q", action.Raw)
	}
	if got := kindsOf(cost); !reflect.DeepEqual(got, []TokenKind{TokenMana, TokenIcon}) {
		t.Fatalf("cost kinds got %v", got)
	}
	if got := kindsOf(content); !reflect.DeepEqual(got, []TokenKind{TokenText, TokenSpace, TokenDamage}) {
		t.Fatalf("content kinds got %v", got)
	}
}

func TestLineSplitStopsAtFirstEndCost(t *testing.T) {
	seg := Segment{Tokens: Tokenize(testCard(), "<ANY_ACTION> <1G> <END_COST> Pay <END_COST> Go")}
	_, cost, content := BreakLines(seg)[0].Split()
	if len(cost) != 1 || cost[0].Raw != "<1G>" {
		t.Fatalf("cost got %+v", cost)
	}
	if got := rawOf(content); got != "Pay <END_COST> Go" {
		t.Fatalf("content got %q", got)
	}
}

func TestLineSplitWithoutEndCost(t *testing.T) {
	seg := Segment{Tokens: Tokenize(testCard(), "<SUMMON_ACTION> Summon a token")}
	_, cost, content := BreakLines(seg)[0].Split()
	if cost != nil {
		t.Fatalf("expected no cost, got %+v", cost)
	}
	if rawOf(content) != "Summon a token" {
		t.Fatalf("content got %q", rawOf(content))
	}
}
