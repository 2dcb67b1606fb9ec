package parser

import (
	"github.com/pontaoski/tawa/ast"
	"github.com/pontaoski/tawa/errors"
)

// Item parses one declaration: fn, extern fn, mod or type.
func (p *Parser) Item() (name ast.Ident, item ast.Item, err error) {
	item, err = run(p, func() (ast.Item, bool) {
		var ok bool
		name, item, ok = p.item()
		return item, ok
	})
	return name, item, err
}

func (p *Parser) item() (ast.Ident, ast.Item, bool) {
	p.enter()
	defer p.leave()

	switch {
	case p.keyword("fn"):
		name := p.declName("fn")
		p.skipSpace()
		p.expect("{", errors.KindOpenBraceExpected)
		p.skipSpace()
		body := within(p, errors.KindFnBody, name.Snake(), p.expectExpression)
		p.skipSpace()
		p.expect("}", errors.KindCloseBraceExpected)
		return name, &ast.Function{Body: body}, true

	case p.keyword("extern"):
		p.skipSpace()
		if !p.keyword("fn") {
			p.failNamed(errors.KindItemExpected, "fn")
		}
		return p.declName("extern fn"), &ast.Function{IsExternal: true}, true

	case p.keyword("mod"):
		name := p.declName("mod")
		p.skipSpace()
		p.expect("{", errors.KindOpenBraceExpected)
		m := within(p, errors.KindModuleItem, name.Snake(), func() *ast.Module {
			return p.moduleBody(true)
		})
		return name, m, true

	case p.keyword("type"):
		name, decl := p.typeDecl()
		return name, decl, true
	}

	return ast.Ident{}, nil, false
}

// declName parses the snake_case name after a declaration keyword.
func (p *Parser) declName(keyword string) ast.Ident {
	p.skipSpace()
	start := p.pos
	name, ok := p.snake()
	if !ok {
		p.failNamed(errors.KindNameExpected, keyword)
	}
	if reserved[name] {
		p.failAt(start, errors.KindReserved, name.Snake())
	}
	return name
}

// moduleBody folds items into a new module until a closing brace, or until
// the end of input when braced is false.
func (p *Parser) moduleBody(braced bool) *ast.Module {
	m := ast.NewModule()

	for {
		p.skipSpace()
		if braced && p.strip("}") {
			return m
		}
		if p.eof() {
			if braced {
				p.fail(errors.KindCloseBraceExpected)
			}
			return m
		}

		start := p.pos
		name, item, ok := p.item()
		if !ok {
			p.fail(errors.KindItemExpected)
		}
		if p.cfg.duplicates == RejectDuplicates && m.Has(name, item) {
			p.failAt(start, errors.KindDuplicate, ast.ItemKind(item)+" "+name.In(caseOf(item)))
		}
		m.Add(name, item)
	}
}

func caseOf(item ast.Item) ast.Case {
	if _, ok := item.(ast.TypeDecl); ok {
		return ast.Pascal
	}
	return ast.Snake
}

// typeDecl is called after the type keyword. The forms are
//
//	type Name = path::To
//	type Name { Field = Type, ... }
//	type Name : { Tag = Type, ... }
func (p *Parser) typeDecl() (ast.Ident, ast.TypeDecl) {
	p.skipSpace()
	name, ok := p.pascal()
	if !ok {
		p.failNamed(errors.KindNameExpected, "type")
	}
	p.skipSpace()

	switch {
	case p.strip("="):
		p.skipSpace()
		return name, ast.Alias{Target: p.typePath()}
	case p.strip(":"):
		p.skipSpace()
		p.expect("{", errors.KindOpenBraceExpected)
		return name, ast.Union{Variants: p.typeFields("variant")}
	case p.strip("{"):
		return name, ast.Record{Fields: p.typeFields("field")}
	}

	p.fail(errors.KindOpenBraceExpected)
	return name, nil
}

func (p *Parser) typePath() ast.Path {
	path, ok := p.path()
	if !ok || path.Case != ast.Pascal {
		p.fail(errors.KindTypeExpected)
	}
	return path
}

// typeFields is called after the opening brace.
func (p *Parser) typeFields(what string) map[ast.Ident]ast.Path {
	fields := map[ast.Ident]ast.Path{}
	for {
		p.skipSpace()
		if p.strip("}") {
			return fields
		}
		if p.eof() {
			p.fail(errors.KindCloseBraceExpected)
		}

		start := p.pos
		var name ast.Ident
		path := within(p, errors.KindTypeField, "", func() ast.Path {
			var ok bool
			name, ok = p.pascal()
			if !ok {
				p.fail(errors.KindFieldNameExpected)
			}
			p.skipSpace()
			p.expect("=", errors.KindEqualsExpected)
			p.skipSpace()
			path := p.typePath()
			p.skipSpace()
			p.strip(",")
			return path
		})
		insert(p, fields, name, path, what, start)
	}
}
