// adtgen turns sum type declarations into Go interfaces with one marker
// method, plus one type per case implementing it.
//
//	adtgen <in.types> <out.go> <package>
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type TypeDecls struct {
	Declarations []*Declaration `@@*`
}

type TCase struct {
	Name string `@Ident "of"`
	Kind string `(@Ident | @String | @RawString)`
}

type Declaration struct {
	Name    string   `"type" @Ident`
	Extends *string  `("extends" @Ident)? "="`
	Plain   *string  `(  (@Ident | @String | @RawString)`
	Many    *[]TCase ` | ("|" (@@))*)`
	I       struct{} `";"`
}

func (t *TypeDecls) IsSumType(name string) bool {
	for _, decls := range t.Declarations {
		if decls.Name == name && decls.Many != nil {
			return true
		}
	}
	return false
}

func GenerateDecls(source, pkgname string, t *TypeDecls) string {
	f := NewFile(pkgname)
	f.HeaderComment(fmt.Sprintf("Code generated by adtgen from %s. DO NOT EDIT.", filepath.Base(source)))

	for _, decl := range t.Declarations {
		if decl.Plain != nil {
			f.Type().Id(decl.Name).Id(*decl.Plain)
			continue
		}
		if decl.Many == nil {
			continue
		}

		var methods []Code
		if decl.Extends != nil {
			methods = append(methods, Id(*decl.Extends))
		}
		f.Type().Id(decl.Name).Interface(append(methods, Id("is_" + decl.Name).Params())...)

		for _, it := range *decl.Many {
			if t.IsSumType(it.Kind) {
				f.Type().Id(it.Name).Struct(Id(it.Kind))
			} else {
				f.Type().Id(it.Name).Id(it.Kind)
			}

			if decl.Extends != nil {
				f.Func().Params(Id("v").Id(it.Name)).Id("is_" + *decl.Extends).Params().Block()
			}
			f.Func().Params(Id("v").Id(it.Name)).Id("is_" + decl.Name).Params().Block()
		}
	}

	return fmt.Sprintf("%#v", f)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: adtgen <in.types> <out.go> <package>")
		os.Exit(2)
	}
	in, out, pkgname := os.Args[1], os.Args[2], os.Args[3]

	parser := participle.MustBuild(&TypeDecls{}, participle.Unquote("String", "RawString"))

	inData, err := os.ReadFile(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	decls := TypeDecls{}
	if err := parser.ParseBytes(inData, &decls); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := os.WriteFile(out, []byte(GenerateDecls(in, pkgname, &decls)), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
