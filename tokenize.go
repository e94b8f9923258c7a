package cardsmith

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	actionPattern   = regexp.MustCompile(`^<[A-Z]+_ACTION>$`)
	manaPattern     = regexp.MustCompile(`^<([0-9X]+)([FWDLNG])>$`)
	healthPattern   = regexp.MustCompile(`^<([0-9X]+)_HEALTH>$`)
	strengthPattern = regexp.MustCompile(`^<([0-9X]+)_STRENGTH>$`)
	damagePattern   = regexp.MustCompile(`^<([0-9X]+)_DAMAGE>$`)
)

// matcher classifies one atom. match returns nil when the atom is not of
// this kind, otherwise the submatches (index 0 is the whole atom).
type matcher struct {
	kind  TokenKind
	match func(raw string) []string
}

// matchers is evaluated in order; the first hit wins.
var matchers = []matcher{
	{kind: TokenSpace, match: exact(" ")},
	{kind: TokenNewline, match: exact(MarkupNewline)},
	{kind: TokenEndCost, match: exact(MarkupEndCost)},
	{kind: TokenAction, match: func(raw string) []string {
		if IsIconKey(raw) && actionPattern.MatchString(raw) {
			return []string{raw}
		}
		return nil
	}},
	{kind: TokenIcon, match: func(raw string) []string {
		if IsIconKey(raw) {
			return []string{raw}
		}
		return nil
	}},
	{kind: TokenMana, match: manaPattern.FindStringSubmatch},
	{kind: TokenDamage, match: damagePattern.FindStringSubmatch},
	{kind: TokenHealth, match: healthPattern.FindStringSubmatch},
	{kind: TokenStrength, match: strengthPattern.FindStringSubmatch},
	{kind: TokenText, match: func(raw string) []string {
		if strings.HasPrefix(raw, "<") && strings.HasSuffix(raw, ">") {
			return nil
		}
		return []string{raw}
	}},
	{kind: TokenSegmentStart, match: exact(MarkupTetherStart)},
	{kind: TokenSegmentEnd, match: exact(MarkupTetherEnd)},
}

func exact(want string) func(string) []string {
	return func(raw string) []string {
		if raw == want {
			return []string{raw}
		}
		return nil
	}
}

// Tokenize turns raw body text into a flat token sequence. <THIS> is
// replaced with the card title before whitespace is normalized, so the
// concatenated Raw of the result equals NormalizeText of the substituted
// text. Unrecognized markup yields TokenUnknown; Tokenize never fails.
func Tokenize(card CardDescription, raw string) []Token {
	text := NormalizeText(strings.ReplaceAll(raw, MarkupThis, card.Title))
	atoms := splitAtoms(text)
	tokens := make([]Token, 0, len(atoms))
	for _, a := range atoms {
		tokens = append(tokens, Classify(a.text, a.pos))
	}
	return tokens
}

// Classify maps a single atom to its token. It is idempotent:
// Classify(t.Raw, t.Pos) == t for every token Tokenize produces.
func Classify(raw string, pos int) Token {
	for _, m := range matchers {
		sub := m.match(raw)
		if sub == nil {
			continue
		}
		tok := Token{Kind: m.kind, Raw: raw, Pos: pos}
		switch m.kind {
		case TokenMana:
			tok.Amount = sub[1]
			tok.Element = Element(sub[2])
		case TokenHealth, TokenStrength, TokenDamage:
			tok.Amount = sub[1]
		}
		return tok
	}
	return Token{Kind: TokenUnknown, Raw: raw, Pos: pos}
}

// NormalizeText NFC-normalizes s, drops control characters and collapses
// whitespace runs to a single space with no leading or trailing space.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(sanitizeText(s))), " ")
}

type atom struct {
	text string
	pos  int
}

// splitAtoms cuts normalized text so that an atom starts at every space and
// every '<' and ends at every space and every '>'. Spaces are atoms of their
// own. The delimiters are ASCII, so scanning bytes is safe for UTF-8 input.
func splitAtoms(s string) []atom {
	atoms := make([]atom, 0, strings.Count(s, " ")*2+1)
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			atoms = append(atoms, atom{text: s[start:end], pos: start})
		}
		start = -1
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ':
			flush(i)
			atoms = append(atoms, atom{text: " ", pos: i})
		case '<':
			flush(i)
			start = i
		case '>':
			if start < 0 {
				start = i
			}
			flush(i + 1)
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(s))
	return atoms
}
