//go:generate sh -c "cd ../tool && go run . ../ast/ast.types ../ast/nodes.go ast"

package ast

import "strconv"

// Path is a possibly module qualified reference. Case is the case the
// terminal segment was written in.
type Path struct {
	Base []Ident
	Name Ident
	Case Case
}

func NewPath(c Case, segments ...Ident) Path {
	p := Path{Name: segments[len(segments)-1], Case: c}
	if len(segments) > 1 {
		p.Base = append([]Ident(nil), segments[:len(segments)-1]...)
	}
	return p
}

func (p Path) Equal(o Path) bool {
	if p.Name != o.Name || p.Case != o.Case || len(p.Base) != len(o.Base) {
		return false
	}
	for i := range p.Base {
		if p.Base[i] != o.Base[i] {
			return false
		}
	}
	return true
}

// Numeral is a run of digit characters, kept as written.
type Numeral struct {
	Digits string
}

func (n Numeral) Uint64() (uint64, error) {
	return strconv.ParseUint(n.Digits, 10, 64)
}

// Item is anything a module can declare.
type Item interface {
	is_Item()
}

// Function bodies are nil exactly when IsExternal is set.
type Function struct {
	IsExternal bool
	Body       Expression
}

func (v *Function) is_Item() {}

type Module struct {
	Functions map[Ident]*Function
	Types     map[Ident]TypeDecl
	Modules   map[Ident]*Module
}

func (v *Module) is_Item() {}

func NewModule() *Module {
	return &Module{
		Functions: map[Ident]*Function{},
		Types:     map[Ident]TypeDecl{},
		Modules:   map[Ident]*Module{},
	}
}

// Has reports whether name is already declared as the same kind of item as
// item.
func (m *Module) Has(name Ident, item Item) bool {
	var ok bool
	switch item.(type) {
	case *Function:
		_, ok = m.Functions[name]
	case *Module:
		_, ok = m.Modules[name]
	case TypeDecl:
		_, ok = m.Types[name]
	}
	return ok
}

// Add folds item into the mapping for its kind, replacing an earlier item
// with the same name.
func (m *Module) Add(name Ident, item Item) {
	switch v := item.(type) {
	case *Function:
		m.Functions[name] = v
	case *Module:
		m.Modules[name] = v
	case TypeDecl:
		m.Types[name] = v
	default:
		panic("unhandled item")
	}
}

// ItemKind names the declaration keyword for item.
func ItemKind(item Item) string {
	switch v := item.(type) {
	case *Function:
		if v.IsExternal {
			return "extern fn"
		}
		return "fn"
	case *Module:
		return "mod"
	case TypeDecl:
		return "type"
	}
	panic("unhandled item")
}
