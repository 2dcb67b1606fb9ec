package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pontaoski/tawa/ast"
	"github.com/pontaoski/tawa/tree"
)

// Unresolved is a path in a declaration that does not lead to anything.
type Unresolved struct {
	Module      tree.Handle
	Scope       string
	Item        string
	Kind        Kind
	Path        ast.Path
	Suggestions []string
}

func (u Unresolved) String() string {
	msg := fmt.Sprintf("%s: %s: unresolved %s %s", u.Scope, u.Item, u.Kind, u.Path)
	if len(u.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(u.Suggestions, ", "))
	}
	return msg
}

// Check looks up every call path, construction path and type reference
// declared anywhere in the tree. Variables and members are not checked.
func Check(r *Resolver) []Unresolved {
	c := checker{r: r}
	r.tree.Walk(func(h tree.Handle) bool {
		c.module(h)
		return true
	})
	r.cfg.log.Debug("checked module tree", "modules", r.tree.Len(), "unresolved", len(c.out))
	return c.out
}

type checker struct {
	r   *Resolver
	out []Unresolved

	from tree.Handle
	item string
}

func sorted[V any](m map[ast.Ident]V) []ast.Ident {
	keys := make([]ast.Ident, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

func (c *checker) module(h tree.Handle) {
	m := c.r.tree.Module(h)
	c.from = h

	for _, name := range sorted(m.Functions) {
		fn := m.Functions[name]
		if fn.IsExternal {
			continue
		}
		c.item = "fn " + name.Snake()
		c.expression(fn.Body)
	}

	for _, name := range sorted(m.Types) {
		c.item = "type " + name.Pascal()
		switch t := m.Types[name].(type) {
		case ast.Alias:
			c.typePath(t.Target)
		case ast.Record:
			for _, field := range sorted(t.Fields) {
				c.typePath(t.Fields[field])
			}
		case ast.Union:
			for _, variant := range sorted(t.Variants) {
				c.typePath(t.Variants[variant])
			}
		}
	}
}

func (c *checker) report(kind Kind, path ast.Path) {
	c.out = append(c.out, Unresolved{
		Module:      c.from,
		Scope:       c.r.tree.Qualified(c.from),
		Item:        c.item,
		Kind:        kind,
		Path:        path,
		Suggestions: c.r.Suggest(c.from, path, kind),
	})
}

func (c *checker) typePath(path ast.Path) {
	if c.r.Builtin(TypeKind, path) {
		return
	}
	if _, ok := c.r.Type(c.from, path); !ok {
		c.report(TypeKind, path)
	}
}

func (c *checker) expression(e ast.Expression) {
	switch v := e.(type) {
	case ast.Call:
		if !c.r.Builtin(FunctionKind, v.Path) {
			if _, ok := c.r.Function(c.from, v.Path); !ok {
				c.report(FunctionKind, v.Path)
			}
		}
		c.expression(v.Input)
	case ast.Sum:
		c.typePath(v.Path)
		c.expression(v.Body)
	case ast.Mul:
		c.typePath(v.Path)
		for _, name := range sorted(v.Fields) {
			c.expression(v.Fields[name])
		}
	case ast.Match:
		c.expression(v.On)
		for _, name := range sorted(v.Variants) {
			c.expression(v.Variants[name])
		}
	case ast.Variable, ast.Member, ast.Number:
	default:
		panic(fmt.Sprintf("unhandled expression %T", e))
	}
}
