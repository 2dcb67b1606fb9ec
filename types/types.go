package types

import (
	"fmt"
)

type Position struct {
	Offset   int
	Line     int
	Column   int
	Filename string
}

// Category is the class a single source character falls into.
type Category int

const (
	Unrecognized Category = iota

	Letter
	Digit
	Quote
	Operator
	Open
	Close
	Whitespace
)

func (c Category) String() string {
	data := map[Category]string{
		Unrecognized: "UNRECOGNIZED",
		Letter:       "LETTER",
		Digit:        "DIGIT",
		Quote:        "QUOTE",
		Operator:     "OPERATOR",
		Open:         "OPEN",
		Close:        "CLOSE",
		Whitespace:   "WHITESPACE",
	}
	return data[c]
}

type Bracket int

const (
	NoBracket Bracket = iota
	Round
	Square
	Curly
)

func (b Bracket) String() string {
	data := map[Bracket]string{
		NoBracket: "NONE",
		Round:     "ROUND",
		Square:    "SQUARE",
		Curly:     "CURLY",
	}
	return data[b]
}

type QuoteKind int

const (
	NoQuote QuoteKind = iota
	Single
	Double
)

func (q QuoteKind) String() string {
	data := map[QuoteKind]string{
		NoQuote: "NONE",
		Single:  "SINGLE",
		Double:  "DOUBLE",
	}
	return data[q]
}

// Symbol is a classified character. Bracket is only set for Open and Close,
// Quote only for Quote.
type Symbol struct {
	Category Category
	Value    rune
	Bracket  Bracket
	Quote    QuoteKind
}

func (s Symbol) String() string {
	switch s.Category {
	case Open, Close:
		return fmt.Sprintf("%s(%s %q)", s.Category, s.Bracket, s.Value)
	case Quote:
		return fmt.Sprintf("%s(%s %q)", s.Category, s.Quote, s.Value)
	}
	return fmt.Sprintf("%s(%q)", s.Category, s.Value)
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// PositionOf computes the line and column of offset within src. Lines and
// columns start at 1; offsets past the end clamp to the end.
func PositionOf(filename string, src []rune, offset int) Position {
	if offset > len(src) {
		offset = len(src)
	}
	p := Position{Offset: offset, Line: 1, Column: 1, Filename: filename}
	for _, r := range src[:offset] {
		if r == '\n' {
			p.Line++
			p.Column = 1
			continue
		}
		p.Column++
	}
	return p
}
