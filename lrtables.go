package lrtables

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// Token represents an input token, as produced by a scanner. K is the token's
// category, which is usually identical to the terminal type of a grammar.
//
// An example would be a token for an identifier:
//
//    Kind    = "ident"     // terminal of the grammar (application specific)
//    Lexeme  = "Factor"    // lexeme how it appeared in the input stream
//    Span    = 67…73       // occured from position 67 in the input stream
//
type Token[K any] interface {
	Kind() K
	Lexeme() string
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. For every
// terminal and non-terminal, a parser will track which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering both s and other. A null span
// does not contribute.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
