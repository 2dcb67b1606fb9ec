package resolve

import "github.com/pontaoski/tawa/ast"

// Builtins are names that resolve from any module without a path base. The
// default set only uses names the default identifier alphabet can spell.
type Builtins struct {
	Functions map[ast.Ident]bool
	Types     map[ast.Ident]bool
}

func newSet(names ...string) map[ast.Ident]bool {
	set := make(map[ast.Ident]bool, len(names))
	for _, name := range names {
		set[ast.MustIdent(name)] = true
	}
	return set
}

var DefaultBuiltins = Builtins{
	Functions: newSet("print"),
	Types:     newSet("Int", "Int32", "Float", "Float32", "Bool", "Text", "Niets"),
}

func (b Builtins) has(kind Kind, name ast.Ident) bool {
	switch kind {
	case FunctionKind:
		return b.Functions[name]
	case TypeKind:
		return b.Types[name]
	}
	return false
}

func (b Builtins) names(kind Kind) []string {
	var set map[ast.Ident]bool
	switch kind {
	case FunctionKind:
		set = b.Functions
	case TypeKind:
		set = b.Types
	}
	var out []string
	for name := range set {
		out = append(out, name.In(kind.Case()))
	}
	return out
}
