package cardsmith

import "strings"

const ellipsis = "…"

// truncateWithEllipsis shortens text rune by rune until it, plus an
// ellipsis, measures within limit pixels.
func truncateWithEllipsis(m Metrics, face Face, text string, limit int) string {
	if m.TextWidth(face, text) <= limit {
		return text
	}
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := strings.TrimRight(string(runes[:n]), " ") + ellipsis
		if m.TextWidth(face, candidate) <= limit {
			return candidate
		}
	}
	return ellipsis
}

// wrapWords greedily fills lines of at most width pixels. A word wider
// than width gets a line of its own.
func wrapWords(m Metrics, face Face, text string, width int) []string {
	words := strings.Fields(NormalizeText(text))
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		if m.TextWidth(face, candidate) <= width {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = word
	}
	return append(lines, line)
}
