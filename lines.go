package cardsmith

// Line is one logical line of a segment: it ends at <NEWLINE>, at the next
// action icon or at the end of the segment. Wrapping may spread it over
// several visual rows.
type Line struct {
	Tokens []Token
}

// IsAction reports whether the line starts with an action icon.
func (l Line) IsAction() bool {
	return len(l.Tokens) > 0 && l.Tokens[0].Kind == TokenAction
}

// Split divides an action line into its action icon, the cost tokens
// before the first <END_COST> and the content after it. Later <END_COST>
// markers stay in the content, where layout drops them. Without an
// <END_COST> the cost is empty and everything after the icon is content.
// Spaces are removed from the cost and trimmed from the content ends.
// Split on a text line returns a zero action, no cost and the whole line
// as content.
func (l Line) Split() (action Token, cost, content []Token) {
	if !l.IsAction() {
		return Token{}, nil, trimSpaces(l.Tokens)
	}
	action = l.Tokens[0]
	rest := l.Tokens[1:]
	end := -1
	for i, tok := range rest {
		if tok.Kind == TokenEndCost {
			end = i
			break
		}
	}
	if end < 0 {
		return action, nil, trimSpaces(rest)
	}
	for _, tok := range rest[:end] {
		if tok.Kind == TokenSpace {
			continue
		}
		cost = append(cost, tok)
	}
	return action, cost, trimSpaces(rest[end+1:])
}

// BreakLines splits a segment into logical lines. Newline tokens close a
// line and are dropped; an Action token closes the current line and opens
// a new one with itself first. Leading and trailing spaces are stripped and
// lines left empty are discarded.
func BreakLines(seg Segment) []Line {
	var lines []Line
	var current []Token
	flush := func() {
		if trimmed := trimSpaces(current); len(trimmed) > 0 {
			lines = append(lines, Line{Tokens: trimmed})
		}
		current = nil
	}
	for _, tok := range seg.Tokens {
		switch tok.Kind {
		case TokenNewline:
			flush()
		case TokenAction:
			flush()
			current = append(current, tok)
		default:
			current = append(current, tok)
		}
	}
	flush()
	return lines
}

func trimSpaces(tokens []Token) []Token {
	start, end := 0, len(tokens)
	for start < end && tokens[start].Kind == TokenSpace {
		start++
	}
	for end > start && tokens[end-1].Kind == TokenSpace {
		end--
	}
	if start == end {
		return nil
	}
	return tokens[start:end]
}
