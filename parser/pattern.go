package parser

import (
	"github.com/pontaoski/tawa/ast"
	"github.com/pontaoski/tawa/errors"
)

// Pattern parses a match pattern:
//
//	Name               binds anything to Name
//	Name pattern       matches variant Name whose payload matches pattern
//	{ Field = pattern } matches record fields one by one
//	(expression)       matches values equal to expression
func (p *Parser) Pattern() (ast.Pattern, error) {
	return run(p, p.pattern)
}

func (p *Parser) pattern() (ast.Pattern, bool) {
	p.enter()
	defer p.leave()

	if name, ok := p.pascal(); ok {
		after := p.pos
		p.skipSpace()
		if inner, ok := p.pattern(); ok {
			return ast.Tag{Name: name, Inner: inner}, true
		}
		p.pos = after
		return ast.Any{Name: name}, true
	}

	if p.strip("{") {
		return p.fieldPatterns(), true
	}

	if p.strip("(") {
		p.skipSpace()
		e := p.expectExpression()
		p.skipSpace()
		p.expect(")", errors.KindCloseParenExpected)
		return ast.Equals{Value: e}, true
	}

	return nil, false
}

func (p *Parser) fieldPatterns() ast.Fields {
	fields := ast.Fields{}
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
		inner := within(p, errors.KindFieldPattern, "", func() ast.Pattern {
			var ok bool
			name, ok = p.pascal()
			if !ok {
				p.fail(errors.KindFieldNameExpected)
			}
			p.skipSpace()
			p.expect("=", errors.KindEqualsExpected)
			p.skipSpace()
			inner, ok := p.pattern()
			if !ok {
				p.fail(errors.KindPatternExpected)
			}
			p.skipSpace()
			p.strip(",")
			return inner
		})
		insert(p, fields, name, inner, "field", start)
	}
}
