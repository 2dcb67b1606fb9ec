package ast

import (
	"testing"
)

func path(c Case, segments ...string) Path {
	ids := make([]Ident, len(segments))
	for i, s := range segments {
		ids[i] = MustIdent(s)
	}
	return NewPath(c, ids...)
}

func TestPathString(t *testing.T) {
	tests := []struct {
		in   Path
		want string
	}{
		{path(Snake, "print"), "print"},
		{path(Snake, "std", "io", "write_line"), "std::io::write_line"},
		{path(Pascal, "prelude", "OptionalValue"), "prelude::OptionalValue"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("expected %s, got %s", tt.want, got)
		}
	}
}

func TestPathEqual(t *testing.T) {
	a := path(Snake, "a", "b")
	if !a.Equal(path(Snake, "a", "b")) {
		t.Error("expected equal paths")
	}
	if a.Equal(path(Pascal, "a", "B")) {
		t.Error("expected the case to matter")
	}
	if a.Equal(path(Snake, "b")) {
		t.Error("expected the base to matter")
	}
}

func TestFormatExpression(t *testing.T) {
	fraction := Numeral{Digits: "5"}
	x := Variable{Name: MustIdent("x")}

	tests := []struct {
		name string
		in   Expression
		want string
	}{
		{"variable", x, "x"},
		{"member", Member{Of: MustIdent("point"), Name: MustIdent("X")}, "point.X"},
		{"number", Number{Whole: Numeral{Digits: "1"}, Fraction: &fraction}, "1.5"},
		{"call", Call{Path: path(Snake, "f"), Input: x}, "f x"},
		{
			"nested call",
			Call{Path: path(Snake, "f"), Input: Call{Path: path(Snake, "g"), Input: x}},
			"f (g x)",
		},
		{
			"sum",
			Sum{Path: path(Pascal, "Option"), Tag: MustIdent("Some"), Body: x},
			"Option:Some x",
		},
		{
			"mul",
			Mul{Path: path(Pascal, "Point"), Fields: map[Ident]Expression{
				MustIdent("Y"): x,
				MustIdent("X"): Number{Whole: Numeral{Digits: "0"}},
			}},
			"Point{X = 0, Y = x}",
		},
		{"empty match", Match{On: x}, "match x {}"},
		{
			"match",
			Match{On: Call{Path: path(Snake, "f"), Input: x}, Variants: map[Ident]Expression{
				MustIdent("B"): x,
				MustIdent("A"): x,
			}},
			"match (f x) { A = x, B = x }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatExpression(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	inner := NewModule()
	inner.Functions[MustIdent("g")] = &Function{Body: Variable{Name: MustIdent("y")}}

	m := NewModule()
	m.Modules[MustIdent("sub")] = inner
	m.Modules[MustIdent("empty")] = NewModule()
	m.Types[MustIdent("Id")] = Alias{Target: path(Pascal, "Num")}
	m.Functions[MustIdent("main")] = &Function{Body: Variable{Name: MustIdent("x")}}
	m.Functions[MustIdent("print")] = &Function{IsExternal: true}

	want := "fn main { x }\n" +
		"extern fn print\n" +
		"type Id = Num\n" +
		"mod empty {}\n" +
		"mod sub {\n" +
		"\tfn g { y }\n" +
		"}\n"
	if got := Format(m); got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestEqualAndFingerprint(t *testing.T) {
	build := func(body string) *Module {
		m := NewModule()
		m.Functions[MustIdent("main")] = &Function{Body: Variable{Name: MustIdent(body)}}
		return m
	}

	if !Equal(build("x"), build("x")) || Fingerprint(build("x")) != Fingerprint(build("x")) {
		t.Error("expected equal modules")
	}
	if Equal(build("x"), build("y")) || Fingerprint(build("x")) == Fingerprint(build("y")) {
		t.Error("expected different modules")
	}
}

func TestItemKind(t *testing.T) {
	tests := []struct {
		in   Item
		want string
	}{
		{&Function{}, "fn"},
		{&Function{IsExternal: true}, "extern fn"},
		{NewModule(), "mod"},
		{Union{}, "type"},
	}
	for _, tt := range tests {
		if got := ItemKind(tt.in); got != tt.want {
			t.Errorf("expected %s, got %s", tt.want, got)
		}
	}
}
