// Package tree flattens a parsed module hierarchy into an arena so that
// modules can be reached by handle and can find their parent.
package tree

import (
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/pontaoski/tawa/ast"
)

// Handle identifies a module in a Tree.
type Handle int

// None is the parent of the root.
const None Handle = -1

type node struct {
	name     ast.Ident
	parent   Handle
	module   *ast.Module
	children map[ast.Ident]Handle
}

// Tree is read-only after Build and safe for concurrent use.
type Tree struct {
	nodes []node
}

type config struct {
	log *slog.Logger
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

// Build walks root with an explicit stack. Handles are assigned in pre-order
// with siblings sorted by name, so the root is always handle 0.
func Build(root *ast.Module, opts ...Option) *Tree {
	c := config{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		c = opt(c)
	}

	type pending struct {
		name   ast.Ident
		parent Handle
		module *ast.Module
	}

	t := &Tree{}
	stack := []pending{{parent: None, module: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		h := Handle(len(t.nodes))
		t.nodes = append(t.nodes, node{
			name:     top.name,
			parent:   top.parent,
			module:   top.module,
			children: make(map[ast.Ident]Handle, len(top.module.Modules)),
		})
		if top.parent != None {
			t.nodes[top.parent].children[top.name] = h
		}

		names := make([]ast.Ident, 0, len(top.module.Modules))
		for name := range top.module.Modules {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool { return names[j].Less(names[i]) })
		for _, name := range names {
			stack = append(stack, pending{name: name, parent: h, module: top.module.Modules[name]})
		}
	}

	c.log.Debug("built module tree", "modules", len(t.nodes))
	return t
}

func (t *Tree) Root() Handle {
	return 0
}

// Len is the number of modules, the root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Valid reports whether h names a module of t. Lookups on an invalid handle
// find nothing.
func (t *Tree) Valid(h Handle) bool {
	return h >= 0 && int(h) < len(t.nodes)
}

// Parent returns the enclosing module; the root has none.
func (t *Tree) Parent(h Handle) (Handle, bool) {
	if !t.Valid(h) {
		return None, false
	}
	p := t.nodes[h].parent
	return p, p != None
}

func (t *Tree) Child(h Handle, name ast.Ident) (Handle, bool) {
	if !t.Valid(h) {
		return None, false
	}
	c, ok := t.nodes[h].children[name]
	return c, ok
}

// Module is nil for an invalid handle.
func (t *Tree) Module(h Handle) *ast.Module {
	if !t.Valid(h) {
		return nil
	}
	return t.nodes[h].module
}

// Name is the module's own name. The root's name is zero.
func (t *Tree) Name(h Handle) ast.Ident {
	if !t.Valid(h) {
		return ast.Ident{}
	}
	return t.nodes[h].name
}

// Path lists the names from the root down to h. The root's path is empty,
// an invalid handle has none.
func (t *Tree) Path(h Handle) []ast.Ident {
	if !t.Valid(h) {
		return nil
	}
	var names []ast.Ident
	for cur := h; cur != t.Root(); cur = t.nodes[cur].parent {
		names = append(names, t.nodes[cur].name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// Qualified renders the path of h joined with "::", or "<root>" for the
// root and "<none>" for an invalid handle.
func (t *Tree) Qualified(h Handle) string {
	if !t.Valid(h) {
		return "<none>"
	}
	names := t.Path(h)
	if len(names) == 0 {
		return "<root>"
	}
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name.Snake()
	}
	return strings.Join(parts, "::")
}

// Walk visits every module in pre-order until fn returns false.
func (t *Tree) Walk(fn func(h Handle) bool) {
	for h := range t.nodes {
		if !fn(Handle(h)) {
			return
		}
	}
}
