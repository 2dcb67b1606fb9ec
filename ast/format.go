package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"
)

func sortedIdents[V any](m map[Ident]V) []Ident {
	keys := make([]Ident, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

func (p Path) String() string {
	var b strings.Builder
	for _, part := range p.Base {
		b.WriteString(part.Snake())
		b.WriteString("::")
	}
	b.WriteString(p.Name.In(p.Case))
	return b.String()
}

// Format renders the body of m as source text. Declarations are sorted by
// kind then name, so equal trees render identically.
func Format(m *Module) string {
	var b strings.Builder
	formatBody(&b, m, "")
	return b.String()
}

func formatBody(b *strings.Builder, m *Module, indent string) {
	for _, name := range sortedIdents(m.Functions) {
		fn := m.Functions[name]
		if fn.IsExternal {
			fmt.Fprintf(b, "%sextern fn %s\n", indent, name.Snake())
			continue
		}
		fmt.Fprintf(b, "%sfn %s { %s }\n", indent, name.Snake(), FormatExpression(fn.Body))
	}
	for _, name := range sortedIdents(m.Types) {
		fmt.Fprintf(b, "%stype %s%s\n", indent, name.Pascal(), formatType(m.Types[name]))
	}
	for _, name := range sortedIdents(m.Modules) {
		sub := m.Modules[name]
		if len(sub.Functions)+len(sub.Types)+len(sub.Modules) == 0 {
			fmt.Fprintf(b, "%smod %s {}\n", indent, name.Snake())
			continue
		}
		fmt.Fprintf(b, "%smod %s {\n", indent, name.Snake())
		formatBody(b, sub, indent+"\t")
		fmt.Fprintf(b, "%s}\n", indent)
	}
}

func formatType(t TypeDecl) string {
	pairs := func(m map[Ident]Path) string {
		if len(m) == 0 {
			return "{}"
		}
		var parts []string
		for _, name := range sortedIdents(m) {
			parts = append(parts, fmt.Sprintf("%s = %s", name.Pascal(), m[name]))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	}

	switch v := t.(type) {
	case Alias:
		return " = " + v.Target.String()
	case Record:
		return " " + pairs(v.Fields)
	case Union:
		return " : " + pairs(v.Variants)
	}

	panic("unhandled")
}

// atomic renders e so that it can be followed by another token without
// changing how it parses.
func atomic(e Expression) string {
	switch e.(type) {
	case Variable, Member, Number, Mul:
		return FormatExpression(e)
	}
	return "(" + FormatExpression(e) + ")"
}

func FormatExpression(e Expression) string {
	switch v := e.(type) {
	case Variable:
		return v.Name.Snake()
	case Member:
		return v.Of.Snake() + "." + v.Name.Pascal()
	case Number:
		if v.Fraction != nil {
			return v.Whole.Digits + "." + v.Fraction.Digits
		}
		return v.Whole.Digits
	case Call:
		return v.Path.String() + " " + atomic(v.Input)
	case Sum:
		return fmt.Sprintf("%s:%s %s", v.Path, v.Tag.Pascal(), atomic(v.Body))
	case Mul:
		var fields []string
		for _, name := range sortedIdents(v.Fields) {
			fields = append(fields, fmt.Sprintf("%s = %s", name.Pascal(), FormatExpression(v.Fields[name])))
		}
		return v.Path.String() + "{" + strings.Join(fields, ", ") + "}"
	case Match:
		var arms []string
		for _, name := range sortedIdents(v.Variants) {
			arms = append(arms, fmt.Sprintf("%s = %s", name.Pascal(), FormatExpression(v.Variants[name])))
		}
		if len(arms) == 0 {
			return fmt.Sprintf("match %s {}", atomic(v.On))
		}
		return fmt.Sprintf("match %s { %s }", atomic(v.On), strings.Join(arms, ", "))
	}

	panic("unhandled")
}

func FormatPattern(p Pattern) string {
	switch v := p.(type) {
	case Any:
		return v.Name.Pascal()
	case Tag:
		return v.Name.Pascal() + " " + FormatPattern(v.Inner)
	case Equals:
		return "(" + FormatExpression(v.Value) + ")"
	case Fields:
		if len(v) == 0 {
			return "{}"
		}
		var fields []string
		for _, name := range sortedIdents(v) {
			fields = append(fields, fmt.Sprintf("%s = %s", name.Pascal(), FormatPattern(v[name])))
		}
		return "{ " + strings.Join(fields, ", ") + " }"
	}

	panic("unhandled")
}

// Fingerprint hashes the canonical rendering of m. Structurally equal trees
// share a fingerprint.
func Fingerprint(m *Module) uint64 {
	return xxh3.HashString(Format(m))
}

// Equal reports whether a and b declare the same items.
func Equal(a, b *Module) bool {
	return Format(a) == Format(b)
}
