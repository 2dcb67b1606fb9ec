package resolve

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/tawa/ast"
	"github.com/pontaoski/tawa/parser"
	"github.com/pontaoski/tawa/tree"
)

const source = `
fn main { a::b::f x }
type Id = a::Key

mod a {
	type Key = Int32
	mod b {
		fn f { y }
		fn g { super::super::main z }
	}
}
`

func id(s string) ast.Ident {
	return ast.MustIdent(s)
}

func path(t *testing.T, s string) ast.Path {
	t.Helper()
	p, err := parser.New(s).Path()
	if err != nil {
		t.Fatalf("%q: %v", s, err)
	}
	return p
}

func build(t *testing.T, src string) *Resolver {
	t.Helper()
	m, err := parser.Parse("test", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return New(tree.Build(m))
}

func handle(t *testing.T, r *Resolver, names ...string) tree.Handle {
	t.Helper()
	h := r.Tree().Root()
	for _, name := range names {
		var ok bool
		h, ok = r.Tree().Child(h, id(name))
		if !ok {
			t.Fatalf("no module %s", name)
		}
	}
	return h
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   []string
		want []Step
	}{
		{nil, []Step{}},
		{[]string{"a", "b"}, []Step{Descend(id("a")), Descend(id("b"))}},
		{[]string{"a", "super", "b"}, []Step{Descend(id("b"))}},
		{[]string{"super", "a"}, []Step{Ascend, Descend(id("a"))}},
		{[]string{"a", "super", "super", "super", "b"}, []Step{Ascend, Ascend, Descend(id("b"))}},
		{[]string{"a", "b", "super"}, []Step{Descend(id("a"))}},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.in, "::"), func(t *testing.T) {
			base := make([]ast.Ident, len(tt.in))
			for i, s := range tt.in {
				base[i] = id(s)
			}
			got := Normalize(base)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %s, got %s", repr.String(tt.want), repr.String(got))
			}
		})
	}
}

func TestNavigate(t *testing.T) {
	r := build(t, source)
	root := r.Tree().Root()
	a := handle(t, r, "a")
	b := handle(t, r, "a", "b")

	if h, ok := r.Navigate(root, []Step{Descend(id("a")), Descend(id("b"))}); !ok || h != b {
		t.Errorf("expected a::b, got %d (%v)", h, ok)
	}
	if h, ok := r.Navigate(b, []Step{Ascend}); !ok || h != a {
		t.Errorf("expected to ascend from b to a, got %d (%v)", h, ok)
	}
	if h, ok := r.Navigate(b, nil); !ok || h != b {
		t.Errorf("expected no steps to stay put, got %d (%v)", h, ok)
	}
	if _, ok := r.Navigate(root, []Step{Ascend}); ok {
		t.Error("expected ascending above the root to be not found")
	}
	if _, ok := r.Navigate(root, []Step{Descend(id("b"))}); ok {
		t.Error("expected a missing submodule to be not found")
	}
}

func TestInvalidStart(t *testing.T) {
	r := build(t, source)

	_, ok := r.Navigate(r.Tree().Root(), []Step{Descend(id("nowhere"))})
	if ok {
		t.Fatal("expected nowhere to be not found")
	}
	for _, from := range []tree.Handle{tree.None, tree.Handle(r.Tree().Len())} {
		if _, ok := r.Navigate(from, []Step{Descend(id("a"))}); ok {
			t.Errorf("%d: expected navigation to be not found", from)
		}
		if _, ok := r.Function(from, path(t, "main")); ok {
			t.Errorf("%d: expected main to be not found", from)
		}
		if _, ok := r.Type(from, path(t, "Id")); ok {
			t.Errorf("%d: expected Id to be not found", from)
		}
		if _, ok := r.Module(from, path(t, "a")); ok {
			t.Errorf("%d: expected a to be not found", from)
		}
		if got := r.Suggest(from, path(t, "man"), FunctionKind); got != nil {
			t.Errorf("%d: expected no suggestions, got %v", from, got)
		}
	}
}

func TestFunction(t *testing.T) {
	r := build(t, source)
	root := r.Tree().Root()
	b := handle(t, r, "a", "b")

	f, ok := r.Function(root, path(t, "a::b::f"))
	if !ok {
		t.Fatal("expected a::b::f to resolve from the root")
	}
	if f != r.Tree().Module(b).Functions[id("f")] {
		t.Error("expected the declared function")
	}

	tests := []struct {
		from tree.Handle
		path string
		ok   bool
	}{
		{b, "f", true},
		{b, "super::b::g", true},
		{b, "super::super::main", true},
		{b, "super::super::super::main", false},
		{root, "super::main", false},
		{root, "main", true},
		{root, "f", false},
		{root, "a::c::f", false},
	}
	for _, tt := range tests {
		if _, ok := r.Function(tt.from, path(t, tt.path)); ok != tt.ok {
			t.Errorf("%s from %s: expected %v, got %v", tt.path, r.Tree().Qualified(tt.from), tt.ok, ok)
		}
	}
}

func TestType(t *testing.T) {
	r := build(t, source)
	root := r.Tree().Root()
	a := handle(t, r, "a")

	decl, ok := r.Type(root, path(t, "a::Key"))
	if !ok {
		t.Fatal("expected a::Key to resolve")
	}
	if !reflect.DeepEqual(decl, ast.Alias{Target: path(t, "Int32")}) {
		t.Errorf("unexpected declaration %s", repr.String(decl))
	}
	if _, ok := r.Type(a, path(t, "super::Id")); !ok {
		t.Error("expected super::Id to resolve from a")
	}
	if _, ok := r.Type(root, path(t, "Key")); ok {
		t.Error("expected Key to be out of scope at the root")
	}
	if _, ok := r.Type(root, path(t, "id")); ok {
		t.Error("expected a snake path not to name a type")
	}
}

func TestModule(t *testing.T) {
	r := build(t, source)
	root := r.Tree().Root()
	a := handle(t, r, "a")
	b := handle(t, r, "a", "b")

	if h, ok := r.Module(root, path(t, "a::b")); !ok || h != b {
		t.Errorf("expected a::b, got %d (%v)", h, ok)
	}
	if h, ok := r.Module(b, path(t, "super")); !ok || h != a {
		t.Errorf("expected super from b to be a, got %d (%v)", h, ok)
	}
	if _, ok := r.Module(root, path(t, "super")); ok {
		t.Error("expected super from the root to be not found")
	}
	if _, ok := r.Module(root, path(t, "A")); ok {
		t.Error("expected a Pascal path not to name a module")
	}
}

func TestBuiltin(t *testing.T) {
	r := build(t, source)
	if !r.Builtin(FunctionKind, path(t, "print")) {
		t.Error("expected print to be builtin")
	}
	if r.Builtin(FunctionKind, path(t, "a::print")) {
		t.Error("expected builtins to need an empty base")
	}
	if !r.Builtin(TypeKind, path(t, "Int32")) || r.Builtin(TypeKind, path(t, "Key")) {
		t.Error("unexpected builtin types")
	}

	custom := New(r.Tree(), WithBuiltins(Builtins{}))
	if custom.Builtin(FunctionKind, path(t, "print")) {
		t.Error("expected no builtins")
	}
}

func TestSuggest(t *testing.T) {
	r := build(t, "fn print_line { x }\nfn parse { x }\nmod net { fn send { x } }")
	root := r.Tree().Root()

	got := r.Suggest(root, path(t, "prnt"), FunctionKind)
	if len(got) == 0 || !contains(got, "print") || !contains(got, "print_line") {
		t.Errorf("expected print and print_line, got %v", got)
	}
	if contains(got, "parse") {
		t.Errorf("expected parse not to match, got %v", got)
	}
	if got := r.Suggest(root, path(t, "net::snd"), FunctionKind); !reflect.DeepEqual(got, []string{"send"}) {
		t.Errorf("expected send, got %v", got)
	}
	if got := r.Suggest(root, path(t, "nowhere::snd"), FunctionKind); got != nil {
		t.Errorf("expected no suggestions, got %v", got)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestCheck(t *testing.T) {
	r := build(t, `
fn main { print (a::helpr x) }
fn ok { a::helper Point{X = 1} }
type Point { X = Int32, Y = Coord }
mod a {
	fn helper { Option:Some y }
	fn walk { match x { Some = super::main y, None = super::gone z } }
}
`)

	got := Check(r)
	var lines []string
	for _, u := range got {
		lines = append(lines, u.String())
	}
	want := []string{
		"<root>: fn main: unresolved fn a::helpr (did you mean helper?)",
		"<root>: type Point: unresolved type Coord",
		"a: fn helper: unresolved type Option",
		"a: fn walk: unresolved fn super::gone",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("expected\n%s\ngot\n%s", strings.Join(want, "\n"), strings.Join(lines, "\n"))
	}
}

func TestCheckClean(t *testing.T) {
	r := build(t, source)
	if got := Check(r); len(got) != 0 {
		t.Errorf("expected no unresolved paths, got %s", repr.String(got))
	}
}

func TestConcurrentLookups(t *testing.T) {
	r := build(t, source)
	root := r.Tree().Root()
	b := handle(t, r, "a", "b")
	want := fmt.Sprint(Check(r))

	main := path(t, "super::super::main")
	key := path(t, "a::Key")
	mod := path(t, "super")
	typo := path(t, "man")

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if _, ok := r.Function(b, main); !ok {
					errs <- "expected super::super::main to resolve"
					return
				}
				if _, ok := r.Type(root, key); !ok {
					errs <- "expected a::Key to resolve"
					return
				}
				if _, ok := r.Module(b, mod); !ok {
					errs <- "expected super to resolve"
					return
				}
				if got := r.Suggest(root, typo, FunctionKind); !contains(got, "main") {
					errs <- fmt.Sprintf("expected main among %v", got)
					return
				}
				if got := fmt.Sprint(Check(r)); got != want {
					errs <- "expected Check to be stable, got " + got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
