// Package preview prints a laid-out body text to a terminal. Rows break
// exactly where the layout wrapped them; icons become short badges.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"

	"pkt.systems/cardsmith"
)

// Metrics is a monospace cardsmith.Metrics: every terminal cell is
// CellWidth pixels wide.
type Metrics struct {
	CellWidth int
}

// NewMetrics sizes cells at half the line height, roughly the aspect of a
// terminal cell.
func NewMetrics(cfg cardsmith.LayoutConfig) Metrics {
	return Metrics{CellWidth: max(1, cfg.LineHeight/2)}
}

func (m Metrics) TextWidth(_ cardsmith.Face, text string) int {
	return runewidth.StringWidth(text) * m.CellWidth
}

// Options controls preview styling.
type Options struct {
	Theme cardsmith.Theme
	// Boring disables colour.
	Boring bool
}

// Badge returns the terminal form of a token.
func Badge(tok cardsmith.Token) string {
	switch tok.Kind {
	case cardsmith.TokenAction, cardsmith.TokenIcon:
		return "[" + strings.TrimSuffix(strings.Trim(tok.Raw, "<>"), "_ACTION") + "]"
	case cardsmith.TokenMana:
		return "(" + tok.Amount + string(tok.Element) + ")"
	case cardsmith.TokenHealth:
		return "♥" + tok.Amount
	case cardsmith.TokenStrength:
		return "◆" + tok.Amount
	case cardsmith.TokenDamage:
		return "⊕" + tok.Amount
	case cardsmith.TokenUnknown:
		return cardsmith.PlaceholderUnknown
	default:
		return tok.Raw
	}
}

type styles struct {
	text, cost, label, placeholder lipgloss.Style
	elements                       map[cardsmith.Element]lipgloss.Style
	health, strength, damage       lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, opts Options) styles {
	if opts.Boring {
		plain := r.NewStyle()
		return styles{text: plain, cost: plain, label: plain, placeholder: plain, health: plain, strength: plain, damage: plain}
	}
	theme := opts.Theme
	if theme == nil {
		theme = cardsmith.DefaultTheme()
	}
	p := theme.Palette()
	fg := func(c color.NRGBA) lipgloss.Style { return r.NewStyle().Foreground(hex(c)) }
	s := styles{
		text:        r.NewStyle(),
		cost:        r.NewStyle().Background(hex(p.CostBackground)).Foreground(hex(p.BodyText)),
		label:       fg(p.SegmentLabel).Bold(true),
		placeholder: fg(p.Placeholder).Bold(true),
		health:      fg(p.Health).Bold(true),
		strength:    fg(p.Strength).Bold(true),
		damage:      fg(p.Damage).Bold(true),
		elements:    make(map[cardsmith.Element]lipgloss.Style),
	}
	for _, e := range cardsmith.Elements() {
		s.elements[e] = fg(p.ElementColor(e)).Bold(true)
	}
	return s
}

func (s styles) token(tok cardsmith.Token) lipgloss.Style {
	switch tok.Kind {
	case cardsmith.TokenMana:
		if st, ok := s.elements[tok.Element]; ok {
			return st
		}
	case cardsmith.TokenHealth:
		return s.health
	case cardsmith.TokenStrength:
		return s.strength
	case cardsmith.TokenDamage:
		return s.damage
	case cardsmith.TokenAction, cardsmith.TokenIcon:
		return s.label
	case cardsmith.TokenUnknown:
		return s.placeholder
	}
	return s.text
}

func hex(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// Render writes one line per visual row of l. Tether frames are shown as
// labelled rules above and below their rows.
func Render(w io.Writer, l *cardsmith.Layout, opts Options) error {
	r := lipgloss.NewRenderer(w)
	st := newStyles(r, opts)
	rows := l.RowTokens()

	lines := make([]string, len(rows))
	width := 0
	for i, row := range rows {
		parts := make([]string, 0, len(row))
		for _, p := range row {
			s := st.token(p.Token).Render(Badge(p.Token))
			if inPill(l.CostPills, p.At) {
				s = st.cost.Render(Badge(p.Token))
			}
			parts = append(parts, s)
		}
		lines[i] = strings.Join(parts, " ")
		width = max(width, ansi.PrintableRuneWidth(lines[i]))
	}

	for i, line := range lines {
		y := l.Rows[i]
		for _, f := range l.Frames {
			if firstRowIn(l.Rows, i, f) {
				if _, err := fmt.Fprintln(w, rule(st, f.Label, width)); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		for _, f := range l.Frames {
			if y > f.Top && y < f.Bottom && (i+1 == len(l.Rows) || l.Rows[i+1] >= f.Bottom) {
				if _, err := fmt.Fprintln(w, rule(st, "", width)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func firstRowIn(rows []int, i int, f cardsmith.Frame) bool {
	y := rows[i]
	if y <= f.Top || y >= f.Bottom {
		return false
	}
	return i == 0 || rows[i-1] <= f.Top
}

func inPill(pills []image.Rectangle, at image.Point) bool {
	for _, p := range pills {
		if at.In(p) {
			return true
		}
	}
	return false
}

func rule(st styles, label string, width int) string {
	width = max(width, runewidth.StringWidth(label)+4)
	if label == "" {
		return st.label.Render(strings.Repeat("─", width))
	}
	head := "── " + label + " "
	return st.label.Render(head + strings.Repeat("─", max(0, width-runewidth.StringWidth(head))))
}
