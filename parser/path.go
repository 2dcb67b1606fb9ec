package parser

import (
	"github.com/pontaoski/tawa/ast"
	"github.com/pontaoski/tawa/errors"
)

// Path parses a '::' separated sequence of identifiers. The case of the
// last segment becomes the case of the path.
func (p *Parser) Path() (ast.Path, error) {
	return run(p, p.path)
}

func (p *Parser) path() (ast.Path, bool) {
	var segments []ast.Ident
	var c ast.Case

	for {
		id, segCase, ok := p.ident()
		if !ok {
			if len(segments) == 0 {
				return ast.Path{}, false
			}
			p.fail(errors.KindSegmentExpected)
		}
		segments = append(segments, id)
		c = segCase

		if !p.strip("::") {
			break
		}
	}

	return ast.NewPath(c, segments...), true
}
