// Package exports describes what a built module declares, and embeds that
// description into the LLVM IR of the module so that it can be read back
// from the linked library.
package exports

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/pontaoski/tawa/ast"
	"github.com/pontaoski/tawa/tree"
	"github.com/ztrue/tracerr"
)

// Symbol is the name of the global holding the table.
const Symbol = "__tawa_exports"

// Table maps qualified names to the kind of declaration behind them.
type Table struct {
	Package   string            `json:"package"`
	Build     string            `json:"build,omitempty"`
	Functions map[string]string `json:"functions"`
	Types     map[string]string `json:"types"`
	Modules   []string          `json:"modules"`
}

func qualify(prefix []ast.Ident, name string) string {
	parts := make([]string, 0, len(prefix)+1)
	for _, p := range prefix {
		parts = append(parts, p.Snake())
	}
	return strings.Join(append(parts, name), "::")
}

func typeKind(t ast.TypeDecl) string {
	switch t.(type) {
	case ast.Alias:
		return "alias"
	case ast.Record:
		return "record"
	case ast.Union:
		return "union"
	}
	panic("unhandled type declaration")
}

// Collect lists every declaration in t.
func Collect(t *tree.Tree, pkg string) Table {
	table := Table{
		Package:   pkg,
		Functions: map[string]string{},
		Types:     map[string]string{},
		Modules:   []string{},
	}

	t.Walk(func(h tree.Handle) bool {
		prefix := t.Path(h)
		if h != t.Root() {
			table.Modules = append(table.Modules, t.Qualified(h))
		}

		m := t.Module(h)
		for name, fn := range m.Functions {
			table.Functions[qualify(prefix, name.Snake())] = ast.ItemKind(fn)
		}
		for name, decl := range m.Types {
			table.Types[qualify(prefix, name.Pascal())] = typeKind(decl)
		}
		return true
	})

	return table
}

func (t Table) Marshal() ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return data, nil
}

func Decode(data string) (Table, error) {
	var t Table
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return Table{}, tracerr.Wrap(err)
	}
	return t, nil
}

// Mangle is the linker name of a function declared at qualified.
func Mangle(pkg, qualified string) string {
	return pkg + "::" + qualified
}

// Emit builds an IR module holding the table as an immutable, NUL
// terminated global, plus a declaration for every external function.
func Emit(t Table) (*ir.Module, error) {
	data, err := t.Marshal()
	if err != nil {
		return nil, err
	}

	m := ir.NewModule()
	g := m.NewGlobalDef(Symbol, constant.NewCharArray(append(data, 0)))
	g.Immutable = true

	var externs []string
	for name, kind := range t.Functions {
		if kind == "extern fn" {
			externs = append(externs, name)
		}
	}
	sort.Strings(externs)
	for _, name := range externs {
		m.NewFunc(Mangle(t.Package, name), types.Void, ir.NewParam("input", types.I8Ptr))
	}

	return m, nil
}
