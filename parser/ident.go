package parser

import (
	"github.com/pontaoski/tawa/ast"
	"github.com/pontaoski/tawa/errors"
)

// SnakeIdent parses a snake_case identifier. An underscore that is not
// followed by another word part is a hard failure.
func (p *Parser) SnakeIdent() (ast.Ident, error) {
	return run(p, p.snake)
}

// PascalIdent parses a PascalCase identifier, stopping at the first position
// that cannot begin a new capitalized word part.
func (p *Parser) PascalIdent() (ast.Ident, error) {
	return run(p, p.pascal)
}

// Ident parses either form, trying snake_case first.
func (p *Parser) Ident() (id ast.Ident, c ast.Case, err error) {
	id, err = run(p, func() (ast.Ident, bool) {
		var ok bool
		id, c, ok = p.ident()
		return id, ok
	})
	return id, c, err
}

func (p *Parser) ident() (ast.Ident, ast.Case, bool) {
	if id, ok := p.snake(); ok {
		return id, ast.Snake, true
	}
	if id, ok := p.pascal(); ok {
		return id, ast.Pascal, true
	}
	return ast.Ident{}, ast.Snake, false
}

// part consumes one word part: a character accepted by first, then any run
// of lower case letters and identifier digits.
func (p *Parser) part(first func(rune) bool) (string, bool) {
	if p.eof() || !first(p.src[p.pos]) {
		return "", false
	}
	start := p.pos
	p.pos++
	for !p.eof() && p.continues(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos]), true
}

func (p *Parser) continues(r rune) bool {
	return p.cfg.table.IsLower(r) || p.cfg.table.IsIdentDigit(r)
}

func (p *Parser) snake() (ast.Ident, bool) {
	first, ok := p.part(p.cfg.table.IsLower)
	if !ok {
		return ast.Ident{}, false
	}

	parts := []string{first}
	for p.strip("_") {
		part, ok := p.part(p.continues)
		if !ok {
			p.fail(errors.KindTrailingUnderscore)
		}
		parts = append(parts, part)
	}

	return ast.NewIdent(parts...), true
}

func (p *Parser) pascal() (ast.Ident, bool) {
	var parts []string
	for {
		part, ok := p.part(p.cfg.table.IsUpper)
		if !ok {
			break
		}
		parts = append(parts, part)
	}

	if len(parts) == 0 {
		return ast.Ident{}, false
	}
	return ast.NewIdent(parts...), true
}

// Numeral parses a run of digits.
func (p *Parser) Numeral() (ast.Numeral, error) {
	return run(p, p.numeral)
}

func (p *Parser) numeral() (ast.Numeral, bool) {
	start := p.pos
	for !p.eof() && p.cfg.table.IsDigit(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return ast.Numeral{}, false
	}
	return ast.Numeral{Digits: string(p.src[start:p.pos])}, true
}
