// Package resolve looks paths up in a module tree. Lookups never fail with
// an error: a path that does not lead anywhere is reported as not found.
package resolve

import (
	"io"
	"log/slog"
	"sort"

	"github.com/pontaoski/tawa/ast"
	"github.com/pontaoski/tawa/tree"
	"github.com/sahilm/fuzzy"
)

// Kind is the kind of declaration a path refers to.
type Kind int

const (
	FunctionKind Kind = iota
	TypeKind
	ModuleKind
)

var kindStrings = map[Kind]string{
	FunctionKind: "fn",
	TypeKind:     "type",
	ModuleKind:   "mod",
}

func (k Kind) String() string {
	return kindStrings[k]
}

// Case is the case names of this kind are written in.
func (k Kind) Case() ast.Case {
	if k == TypeKind {
		return ast.Pascal
	}
	return ast.Snake
}

type config struct {
	log      *slog.Logger
	builtins Builtins
}

type Option func(config) config

func WithLogger(l *slog.Logger) Option {
	return func(c config) config {
		if l != nil {
			c.log = l
		}
		return c
	}
}

// WithBuiltins replaces DefaultBuiltins.
func WithBuiltins(b Builtins) Option {
	return func(c config) config {
		c.builtins = b
		return c
	}
}

// Resolver is safe for concurrent use.
type Resolver struct {
	tree *tree.Tree
	cfg  config
}

func New(t *tree.Tree, opts ...Option) *Resolver {
	c := config{
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		builtins: DefaultBuiltins,
	}
	for _, opt := range opts {
		c = opt(c)
	}
	return &Resolver{tree: t, cfg: c}
}

func (r *Resolver) Tree() *tree.Tree {
	return r.tree
}

// Navigate follows steps starting at from. An invalid start, ascending above
// the root or descending into a missing submodule is not found.
func (r *Resolver) Navigate(from tree.Handle, steps []Step) (tree.Handle, bool) {
	if !r.tree.Valid(from) {
		return tree.None, false
	}
	cur := from
	for _, s := range steps {
		var ok bool
		if s.Ascend {
			cur, ok = r.tree.Parent(cur)
		} else {
			cur, ok = r.tree.Child(cur, s.Name)
		}
		if !ok {
			r.cfg.log.Debug("navigation stopped",
				"from", r.tree.Qualified(from),
				"steps", formatSteps(steps),
				"at", s.String(),
			)
			return tree.None, false
		}
	}
	return cur, true
}

// scope is the module the base of path leads to from from.
func (r *Resolver) scope(from tree.Handle, path ast.Path) (tree.Handle, bool) {
	return r.Navigate(from, Normalize(path.Base))
}

// Function resolves a snake_case path to a function.
func (r *Resolver) Function(from tree.Handle, path ast.Path) (*ast.Function, bool) {
	if path.Case != ast.Snake {
		return nil, false
	}
	h, ok := r.scope(from, path)
	if !ok {
		return nil, false
	}
	fn, ok := r.tree.Module(h).Functions[path.Name]
	return fn, ok
}

// Type resolves a PascalCase path to a type declaration.
func (r *Resolver) Type(from tree.Handle, path ast.Path) (ast.TypeDecl, bool) {
	if path.Case != ast.Pascal {
		return nil, false
	}
	h, ok := r.scope(from, path)
	if !ok {
		return nil, false
	}
	t, ok := r.tree.Module(h).Types[path.Name]
	return t, ok
}

// Module resolves a snake_case path to a module. The name may be super.
func (r *Resolver) Module(from tree.Handle, path ast.Path) (tree.Handle, bool) {
	if path.Case != ast.Snake {
		return tree.None, false
	}
	steps := Normalize(append(append([]ast.Ident(nil), path.Base...), path.Name))
	return r.Navigate(from, steps)
}

// Builtin reports whether path names a builtin of kind. Builtins are only
// reachable without a base.
func (r *Resolver) Builtin(kind Kind, path ast.Path) bool {
	return len(path.Base) == 0 && path.Case == kind.Case() && r.cfg.builtins.has(kind, path.Name)
}

// Suggest ranks the names declared in the scope of path that fuzzily match
// its name. Builtins are offered for paths without a base.
func (r *Resolver) Suggest(from tree.Handle, path ast.Path, kind Kind) []string {
	h, ok := r.scope(from, path)
	if !ok {
		return nil
	}

	m := r.tree.Module(h)
	var candidates []string
	switch kind {
	case FunctionKind:
		for name := range m.Functions {
			candidates = append(candidates, name.Snake())
		}
	case TypeKind:
		for name := range m.Types {
			candidates = append(candidates, name.Pascal())
		}
	case ModuleKind:
		for name := range m.Modules {
			candidates = append(candidates, name.Snake())
		}
	}
	if len(path.Base) == 0 {
		candidates = append(candidates, r.cfg.builtins.names(kind)...)
	}
	sort.Strings(candidates)

	matches := fuzzy.Find(path.Name.In(kind.Case()), candidates)
	out := make([]string, len(matches))
	for i, match := range matches {
		out[i] = match.Str
	}
	return out
}
