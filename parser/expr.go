package parser

import (
	"github.com/pontaoski/tawa/ast"
	"github.com/pontaoski/tawa/errors"
)

// Expression parses one expression. ErrNoMatch means the input does not
// start with anything an expression can start with.
func (p *Parser) Expression() (ast.Expression, error) {
	return run(p, p.expression)
}

func (p *Parser) expression() (ast.Expression, bool) {
	p.enter()
	defer p.leave()

	if p.keyword("match") {
		return p.match(), true
	}

	if path, ok := p.path(); ok {
		if path.Case == ast.Snake {
			return p.callOrVariable(path), true
		}
		return p.construction(path), true
	}

	if n, ok := p.number(); ok {
		return n, true
	}

	if p.strip("(") {
		p.skipSpace()
		e := p.expectExpression()
		p.skipSpace()
		p.expect(")", errors.KindCloseParenExpected)
		return e, true
	}

	return nil, false
}

// expectExpression is expression for positions that have already committed.
func (p *Parser) expectExpression() ast.Expression {
	e, ok := p.expression()
	if !ok {
		p.fail(errors.KindExpressionExpected)
	}
	return e
}

func (p *Parser) callOrVariable(path ast.Path) ast.Expression {
	if len(path.Base) > 0 {
		p.skipSpace()
		input := within(p, errors.KindArgument, path.String(), p.expectExpression)
		return ast.Call{Path: path, Input: input}
	}

	after := p.pos
	if p.strip(".") {
		if name, ok := p.pascal(); ok {
			return ast.Member{Of: path.Name, Name: name}
		}
		p.pos = after
	}

	p.skipSpace()
	if input, ok := p.expression(); ok {
		return ast.Call{Path: path, Input: input}
	}
	p.pos = after
	return ast.Variable{Name: path.Name}
}

// construction parses what follows a type path: ':' starts a sum, '{' a
// record.
func (p *Parser) construction(path ast.Path) ast.Expression {
	p.skipSpace()

	switch {
	case p.strip(":"):
		p.skipSpace()
		tag, ok := p.pascal()
		if !ok {
			p.fail(errors.KindTagExpected)
		}
		p.skipSpace()
		body := within(p, errors.KindSumValue, "", p.expectExpression)
		return ast.Sum{Path: path, Tag: tag, Body: body}

	case p.strip("{"):
		fields := map[ast.Ident]ast.Expression{}
		for {
			p.skipSpace()
			if p.strip("}") {
				break
			}
			if p.eof() {
				p.fail(errors.KindCloseBraceExpected)
			}
			start := p.pos
			name, value := p.assignment(errors.KindMulField, errors.KindFieldNameExpected)
			insert(p, fields, name, value, "field", start)
		}
		return ast.Mul{Path: path, Fields: fields}
	}

	p.fail(errors.KindUnexpectedTypeSuffix)
	return nil
}

// assignment parses `Name = expression` followed by an optional comma, as
// used by record fields and match arms.
func (p *Parser) assignment(context, missing errors.Kind) (ast.Ident, ast.Expression) {
	var name ast.Ident
	value := within(p, context, "", func() ast.Expression {
		var ok bool
		name, ok = p.pascal()
		if !ok {
			p.fail(missing)
		}
		p.skipSpace()
		p.expect("=", errors.KindEqualsExpected)
		p.skipSpace()
		e := p.expectExpression()
		p.skipSpace()
		p.strip(",")
		return e
	})
	return name, value
}

func (p *Parser) number() (ast.Expression, bool) {
	whole, ok := p.numeral()
	if !ok {
		return nil, false
	}

	n := ast.Number{Whole: whole}
	if p.at(0) == '.' && p.cfg.table.IsDigit(p.at(1)) {
		p.pos++
		fraction, _ := p.numeral()
		n.Fraction = &fraction
	}
	return n, true
}

// match is called after the match keyword.
func (p *Parser) match() ast.Expression {
	p.skipSpace()
	on := p.expectExpression()
	p.skipSpace()
	p.expect("{", errors.KindOpenBraceExpected)

	variants := map[ast.Ident]ast.Expression{}
	for {
		p.skipSpace()
		if p.strip("}") {
			break
		}
		if p.eof() {
			p.fail(errors.KindCloseBraceExpected)
		}
		start := p.pos
		tag, value := p.assignment(errors.KindMatchArm, errors.KindTagExpected)
		insert(p, variants, tag, value, "variant", start)
	}

	return ast.Match{On: on, Variants: variants}
}
