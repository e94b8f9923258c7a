package cardsmith

import "sort"

// Token is one classified atom of body-text markup.
type Token struct {
	Kind TokenKind
	// Raw is the exact source text of the atom.
	Raw string
	// Pos is the byte offset of Raw in the normalized text.
	Pos int
	// Amount holds the numeric part of Mana, Health, Strength and Damage
	// tokens ("2", "X", "10").
	Amount string
	// Element is set for Mana tokens only.
	Element Element
}

// TokenKind discriminates Token variants.
type TokenKind uint8

const (
	// TokenUnknown is markup that matched no known form; it renders as a placeholder.
	TokenUnknown TokenKind = iota
	// TokenSpace is a single normalized space.
	TokenSpace
	// TokenNewline forces a line break.
	TokenNewline
	// TokenEndCost terminates the cost part of an action line.
	TokenEndCost
	// TokenSegmentStart opens a Tether segment.
	TokenSegmentStart
	// TokenSegmentEnd closes a Tether segment.
	TokenSegmentEnd
	// TokenAction is an icon whose key ends in _ACTION; it always starts a line.
	TokenAction
	// TokenIcon is any other known icon.
	TokenIcon
	// TokenMana is an amount of mana of one element.
	TokenMana
	// TokenHealth is a health stat badge.
	TokenHealth
	// TokenStrength is a strength stat badge.
	TokenStrength
	// TokenDamage is a damage badge.
	TokenDamage
	// TokenText is a plain word.
	TokenText
)

var tokenKindNames = [...]string{
	TokenUnknown:      "Unknown",
	TokenSpace:        "Space",
	TokenNewline:      "Newline",
	TokenEndCost:      "EndCost",
	TokenSegmentStart: "SegmentStart",
	TokenSegmentEnd:   "SegmentEnd",
	TokenAction:       "Action",
	TokenIcon:         "Icon",
	TokenMana:         "Mana",
	TokenHealth:       "Health",
	TokenStrength:     "Strength",
	TokenDamage:       "Damage",
	TokenText:         "Text",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(?)"
}

// IsIcon reports whether the token is drawn as a square icon of IconSize.
func (t Token) IsIcon() bool {
	switch t.Kind {
	case TokenAction, TokenIcon, TokenMana, TokenHealth, TokenStrength, TokenDamage:
		return true
	}
	return false
}

// Markup keywords.
const (
	MarkupThis         = "<THIS>"
	MarkupNewline      = "<NEWLINE>"
	MarkupEndCost      = "<END_COST>"
	MarkupTetherStart  = "<TETHER>"
	MarkupTetherEnd    = "</TETHER>"
	PlaceholderUnknown = "[?]"
)

// Icon keys recognised in body text.
const (
	IconReveal       = "<REVEAL>"
	IconExhaust      = "<EXHAUST>"
	IconReady        = "<READY>"
	IconDrawCard     = "<DRAW_CARD>"
	IconSacrifice    = "<SACRIFICE>"
	IconMemoryAction = "<MEMORY_ACTION>"
	IconSummonAction = "<SUMMON_ACTION>"
	IconCombatAction = "<COMBAT_ACTION>"
	IconRangedAction = "<RANGED_ACTION>"
	IconAnyAction    = "<ANY_ACTION>"
	IconBreakAction  = "<BREAK_ACTION>"
)

var iconKeys = map[string]struct{}{
	IconReveal:       {},
	IconExhaust:      {},
	IconReady:        {},
	IconDrawCard:     {},
	IconSacrifice:    {},
	IconMemoryAction: {},
	IconSummonAction: {},
	IconCombatAction: {},
	IconRangedAction: {},
	IconAnyAction:    {},
	IconBreakAction:  {},
}

// IconKeys returns the known icon markup keys, sorted.
func IconKeys() []string {
	keys := make([]string, 0, len(iconKeys))
	for k := range iconKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsIconKey reports whether key is a known icon markup key.
func IsIconKey(key string) bool {
	_, ok := iconKeys[key]
	return ok
}
