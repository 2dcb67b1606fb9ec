package ast

import (
	"reflect"
	"testing"
)

func TestMustIdent(t *testing.T) {
	tests := []struct {
		in     string
		parts  []string
		snake  string
		pascal string
	}{
		{"foo", []string{"foo"}, "foo", "Foo"},
		{"foo_bar", []string{"foo", "bar"}, "foo_bar", "FooBar"},
		{"FooBar", []string{"foo", "bar"}, "foo_bar", "FooBar"},
		{"X", []string{"x"}, "x", "X"},
		{"x1_2", []string{"x1", "2"}, "x1_2", "X12"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			id := MustIdent(tt.in)
			if !reflect.DeepEqual(id.Parts(), tt.parts) {
				t.Errorf("expected parts %v, got %v", tt.parts, id.Parts())
			}
			if id.Snake() != tt.snake {
				t.Errorf("expected %s, got %s", tt.snake, id.Snake())
			}
			if id.Pascal() != tt.pascal {
				t.Errorf("expected %s, got %s", tt.pascal, id.Pascal())
			}
		})
	}
}

func TestIdentIdentity(t *testing.T) {
	if MustIdent("FooBar") != NewIdent("foo", "bar") {
		t.Error("expected FooBar and foo_bar to be the same identifier")
	}
	if NewIdent("FOO") != NewIdent("foo") {
		t.Error("expected parts to be case folded")
	}
	if NewIdent("foo", "bar") == NewIdent("foobar") {
		t.Error("expected part boundaries to matter")
	}
}

func TestIdentZero(t *testing.T) {
	var zero Ident
	if !zero.IsZero() || zero.Parts() != nil || zero.Pascal() != "" {
		t.Errorf("unexpected zero identifier %q", zero.Snake())
	}
	if NewIdent("a").IsZero() {
		t.Error("expected a non-zero identifier")
	}
}

func TestIdentIn(t *testing.T) {
	id := NewIdent("read", "all")
	if id.In(Snake) != "read_all" || id.In(Pascal) != "ReadAll" {
		t.Errorf("unexpected renderings %s and %s", id.In(Snake), id.In(Pascal))
	}
	if Snake.String() != "snake" || Pascal.String() != "pascal" {
		t.Error("unexpected case names")
	}
}

func TestIdentLess(t *testing.T) {
	if !NewIdent("a").Less(NewIdent("b")) || NewIdent("b").Less(NewIdent("a")) {
		t.Error("expected a to sort before b")
	}
}
