// Package cardsmith renders trading-card images from structured card
// descriptions.
//
// The core of the package is the body-text pipeline: markup is tokenized,
// split into segments at <TETHER> markers, broken into logical lines and
// then laid out against a bounding box using font and icon metrics supplied
// by a backend. Layout is pure; rendering replays a computed Layout onto a
// Canvas, so the same placements drive PNG, PDF and terminal output.
//
// Pipeline:
//   - Tokenize: substitute <THIS>, normalize whitespace, classify atoms
//   - SegmentTokens: Main and Tether segments, nesting depth at most one
//   - BreakLines: logical lines, action icons always start a line
//   - Engine.Layout / Engine.Render: wrapping, cost pills, tether frames
//
// Example:
//
//	engine := cardsmith.NewEngine(metrics, cardsmith.WithTheme(cardsmith.DefaultTheme()))
//	end, err := engine.Render(canvas, card, card.BodyText, image.Rect(10, 10, 240, 330))
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = end // flavor text may start at end.Y
//
// Backends live in sub-packages: raster (PNG), pdf (printable sheets) and
// preview (terminal).
package cardsmith
