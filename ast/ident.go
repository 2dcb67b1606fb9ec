package ast

import (
	"strings"
	"unicode"
)

type Case int

const (
	Snake Case = iota
	Pascal
)

func (c Case) String() string {
	if c == Pascal {
		return "pascal"
	}
	return "snake"
}

// Ident is a case disciplined name. Word parts are stored case folded, so
// foo_bar and FooBar are the same identifier; which case it was written in is
// recorded by whoever parsed it. Ident is comparable and used as a map key.
type Ident struct {
	key string
}

// NewIdent builds an identifier from its word parts.
func NewIdent(parts ...string) Ident {
	lowered := make([]string, len(parts))
	for i, part := range parts {
		lowered[i] = strings.ToLower(part)
	}
	return Ident{key: strings.Join(lowered, "_")}
}

// MustIdent splits s into word parts at underscores (snake_case) or before
// upper case letters (PascalCase). It performs no validation.
func MustIdent(s string) Ident {
	if strings.ContainsAny(s, "_") || strings.ToLower(s) == s {
		return NewIdent(strings.Split(s, "_")...)
	}

	var parts []string
	start := 0
	for i, r := range s {
		if i > start && unicode.IsUpper(r) {
			parts = append(parts, s[start:i])
			start = i
		}
	}
	parts = append(parts, s[start:])
	return NewIdent(parts...)
}

func (i Ident) IsZero() bool {
	return i.key == ""
}

func (i Ident) Parts() []string {
	if i.key == "" {
		return nil
	}
	return strings.Split(i.key, "_")
}

func (i Ident) Snake() string {
	return i.key
}

func (i Ident) Pascal() string {
	var b strings.Builder
	for _, part := range i.Parts() {
		r := []rune(part)
		if len(r) == 0 {
			continue
		}
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

// In renders the identifier in case c.
func (i Ident) In(c Case) string {
	if c == Pascal {
		return i.Pascal()
	}
	return i.Snake()
}

func (i Ident) String() string {
	return i.key
}

// Less orders identifiers by their snake form.
func (i Ident) Less(o Ident) bool {
	return i.key < o.key
}
