package lexer

import (
	"unicode"

	"github.com/pontaoski/tawa/types"
)

// Alphabet names the characters the classifier recognizes. Digits are the
// numeral digits; IdentDigits is the subset of them allowed inside
// identifiers.
type Alphabet struct {
	Letters     string
	Digits      string
	IdentDigits string
}

const (
	operators  = "`~!@#$%^&*-_=+|\\;:,<.>/?"
	quotes     = "'\""
	open       = "([{"
	close      = ")]}"
	whitespace = " \t\n\r"
)

// DefaultAlphabet only admits 1, 2 and 3 inside identifiers. The rest of the
// digits are valid in numerals.
var DefaultAlphabet = Alphabet{
	Letters:     "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
	Digits:      "0123456789",
	IdentDigits: "123",
}

// Table is an immutable classification table built from an Alphabet.
type Table struct {
	symbols     map[rune]types.Symbol
	identDigits map[rune]struct{}
}

var defaultTable = NewTable(DefaultAlphabet)

// Default returns the table for DefaultAlphabet.
func Default() *Table {
	return defaultTable
}

func NewTable(a Alphabet) *Table {
	t := &Table{
		symbols:     make(map[rune]types.Symbol),
		identDigits: make(map[rune]struct{}),
	}

	add := func(set string, c types.Category) {
		for _, r := range set {
			t.symbols[r] = types.Symbol{Category: c, Value: r}
		}
	}

	add(operators, types.Operator)
	add(whitespace, types.Whitespace)
	add(a.Letters, types.Letter)
	add(a.Digits, types.Digit)

	for _, r := range quotes {
		kind := types.Single
		if r == '"' {
			kind = types.Double
		}
		t.symbols[r] = types.Symbol{Category: types.Quote, Value: r, Quote: kind}
	}

	brackets := []types.Bracket{types.Round, types.Square, types.Curly}
	for i, r := range []rune(open) {
		t.symbols[r] = types.Symbol{Category: types.Open, Value: r, Bracket: brackets[i]}
	}
	for i, r := range []rune(close) {
		t.symbols[r] = types.Symbol{Category: types.Close, Value: r, Bracket: brackets[i]}
	}

	for _, r := range a.IdentDigits {
		if s, ok := t.symbols[r]; ok && s.Category == types.Digit {
			t.identDigits[r] = struct{}{}
		}
	}

	return t
}

// Classify maps r to its symbol. It reports false for characters outside
// every category.
func (t *Table) Classify(r rune) (types.Symbol, bool) {
	s, ok := t.symbols[r]
	return s, ok
}

func (t *Table) category(r rune) types.Category {
	return t.symbols[r].Category
}

func (t *Table) IsLower(r rune) bool {
	return t.category(r) == types.Letter && unicode.IsLower(r)
}

func (t *Table) IsUpper(r rune) bool {
	return t.category(r) == types.Letter && unicode.IsUpper(r)
}

func (t *Table) IsDigit(r rune) bool {
	return t.category(r) == types.Digit
}

func (t *Table) IsIdentDigit(r rune) bool {
	_, ok := t.identDigits[r]
	return ok
}

func (t *Table) IsSpace(r rune) bool {
	return t.category(r) == types.Whitespace
}
