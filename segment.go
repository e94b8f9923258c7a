package cardsmith

import (
	"errors"
	"fmt"
)

var (
	// ErrNestedSegment reports a <TETHER> inside an open Tether segment.
	ErrNestedSegment = errors.New("nested segment")
	// ErrUnmatchedSegmentEnd reports a </TETHER> with no open Tether segment.
	ErrUnmatchedSegmentEnd = errors.New("segment end without start")
)

// SegmentKind identifies a region of body text.
type SegmentKind uint8

const (
	// SegmentMain is ordinary body text.
	SegmentMain SegmentKind = iota
	// SegmentTether is text framed by a labelled outline.
	SegmentTether
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentMain:
		return "Main"
	case SegmentTether:
		return "Tether"
	default:
		return fmt.Sprintf("SegmentKind(%d)", uint8(k))
	}
}

// Segment is a run of tokens between segment markers. Marker tokens are
// not included.
type Segment struct {
	Kind   SegmentKind
	Tokens []Token
}

// SegmentError locates a structural markup error.
type SegmentError struct {
	Marker string
	// Index is the offending token's index in the token sequence.
	Index int
	// Pos is the byte offset in the normalized text.
	Pos int
	Err error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment marker %s at byte %d (token %d): %v", e.Marker, e.Pos, e.Index, e.Err)
}

func (e *SegmentError) Unwrap() error { return e.Err }

// SegmentTokens partitions tokens into Main and Tether segments. Every
// marker closes the current segment, so N balanced pairs yield 2N+1
// segments alternating Main, Tether, Main. Segments may be empty. A Tether
// left open at the end of input is returned as the last segment.
func SegmentTokens(tokens []Token) ([]Segment, error) {
	segments := make([]Segment, 0, 1)
	current := Segment{Kind: SegmentMain}
	for i, tok := range tokens {
		switch tok.Kind {
		case TokenSegmentStart:
			if current.Kind != SegmentMain {
				return nil, &SegmentError{Marker: tok.Raw, Index: i, Pos: tok.Pos, Err: ErrNestedSegment}
			}
			segments = append(segments, current)
			current = Segment{Kind: SegmentTether}
		case TokenSegmentEnd:
			if current.Kind == SegmentMain {
				return nil, &SegmentError{Marker: tok.Raw, Index: i, Pos: tok.Pos, Err: ErrUnmatchedSegmentEnd}
			}
			segments = append(segments, current)
			current = Segment{Kind: SegmentMain}
		default:
			current.Tokens = append(current.Tokens, tok)
		}
	}
	return append(segments, current), nil
}
