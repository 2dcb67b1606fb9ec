package parser

import (
	"strings"

	"github.com/pontaoski/tawa/ast"
	"github.com/pontaoski/tawa/errors"
	"github.com/pontaoski/tawa/lexer"
	"github.com/pontaoski/tawa/types"
	"github.com/ztrue/tracerr"
)

// DuplicatePolicy decides what happens when a name is declared twice in the
// same scope.
type DuplicatePolicy int

const (
	RejectDuplicates DuplicatePolicy = iota
	OverwriteDuplicates
)

func (d DuplicatePolicy) String() string {
	if d == OverwriteDuplicates {
		return "overwrite"
	}
	return "reject"
}

// ParseDuplicatePolicy accepts "reject" and "overwrite". Anything else is
// reported as not ok.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, bool) {
	switch strings.ToLower(s) {
	case "reject":
		return RejectDuplicates, true
	case "overwrite":
		return OverwriteDuplicates, true
	}
	return RejectDuplicates, false
}

const DefaultMaxDepth = 256

// reserved names cannot be declared: super is the parent step in paths and
// match starts a match expression.
var reserved = map[ast.Ident]bool{
	ast.NewIdent("super"): true,
	ast.NewIdent("match"): true,
}

type config struct {
	filename   string
	table      *lexer.Table
	maxDepth   int
	duplicates DuplicatePolicy
}

type Option func(config) config

func WithFilename(name string) Option {
	return func(c config) config {
		c.filename = name
		return c
	}
}

func WithAlphabet(a lexer.Alphabet) Option {
	return func(c config) config {
		c.table = lexer.NewTable(a)
		return c
	}
}

func WithTable(t *lexer.Table) Option {
	return func(c config) config {
		if t != nil {
			c.table = t
		}
		return c
	}
}

// WithMaxDepth bounds the nesting of expressions, items and patterns.
// Non-positive values keep the default.
func WithMaxDepth(n int) Option {
	return func(c config) config {
		if n > 0 {
			c.maxDepth = n
		}
		return c
	}
}

func WithDuplicates(d DuplicatePolicy) Option {
	return func(c config) config {
		c.duplicates = d
		return c
	}
}

// Parser is a cursor over source text. Each grammar method parses a prefix
// of the remaining text and advances past it on success.
type Parser struct {
	src   []rune
	pos   int
	depth int
	cfg   config
}

func New(src string, opts ...Option) *Parser {
	c := config{
		table:    lexer.Default(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		c = opt(c)
	}
	return &Parser{src: []rune(src), cfg: c}
}

// Parse parses a whole source file as the body of an implicit root module.
func Parse(filename, src string, opts ...Option) (*ast.Module, error) {
	return New(src, append(opts, WithFilename(filename))...).File()
}

// File parses the rest of the input as a sequence of items.
func (p *Parser) File() (*ast.Module, error) {
	return run(p, func() (*ast.Module, bool) {
		return p.moduleBody(false), true
	})
}

// Rest returns the unconsumed remainder.
func (p *Parser) Rest() string {
	return string(p.src[p.pos:])
}

func (p *Parser) Pos() types.Position {
	return p.position(p.pos)
}

// run calls fn and turns its outcome into the exported form: a soft miss
// becomes ErrNoMatch, a hard failure becomes a traced *errors.Failure. Either
// way the cursor is left where it started.
func run[T any](p *Parser, fn func() (T, bool)) (v T, err error) {
	start := p.pos
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(*errors.Failure)
			if !ok {
				panic(r)
			}
			var zero T
			v = zero
			p.pos = start
			p.depth = 0
			err = tracerr.Wrap(f)
		}
	}()

	v, ok := fn()
	if !ok {
		p.pos = start
		return v, errors.ErrNoMatch
	}
	return v, nil
}

// within runs fn and wraps any failure it raises in a failure of kind k.
func within[T any](p *Parser, k errors.Kind, name string, fn func() T) T {
	start := p.pos
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(*errors.Failure)
			if !ok {
				panic(r)
			}
			panic(&errors.Failure{
				Kind:  k,
				Name:  name,
				Pos:   p.position(start),
				Cause: f,
			})
		}
	}()
	return fn()
}

// insert adds v under name, honoring the duplicate policy. what names the
// entry in the failure message.
func insert[V any](p *Parser, m map[ast.Ident]V, name ast.Ident, v V, what string, at int) {
	if _, ok := m[name]; ok && p.cfg.duplicates == RejectDuplicates {
		p.failAt(at, errors.KindDuplicate, what+" "+name.Pascal())
	}
	m[name] = v
}

func (p *Parser) position(offset int) types.Position {
	return types.PositionOf(p.cfg.filename, p.src, offset)
}

func (p *Parser) fail(k errors.Kind) {
	p.failAt(p.pos, k, "")
}

func (p *Parser) failNamed(k errors.Kind, name string) {
	p.failAt(p.pos, k, name)
}

func (p *Parser) failAt(offset int, k errors.Kind, name string) {
	panic(&errors.Failure{Kind: k, Name: name, Pos: p.position(offset)})
}

func (p *Parser) enter() {
	p.depth++
	if p.depth > p.cfg.maxDepth {
		p.fail(errors.KindTooDeep)
	}
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) eof() bool {
	return p.pos >= len(p.src)
}

// at returns the rune i positions ahead, or 0 past the end.
func (p *Parser) at(i int) rune {
	if p.pos+i >= len(p.src) {
		return 0
	}
	return p.src[p.pos+i]
}

func (p *Parser) hasPrefix(s string) bool {
	i := 0
	for _, r := range s {
		if p.pos+i >= len(p.src) || p.src[p.pos+i] != r {
			return false
		}
		i++
	}
	return true
}

// strip consumes s if the input continues with it.
func (p *Parser) strip(s string) bool {
	if !p.hasPrefix(s) {
		return false
	}
	p.pos += len([]rune(s))
	return true
}

func (p *Parser) expect(s string, k errors.Kind) {
	if !p.strip(s) {
		p.fail(k)
	}
}

// keyword consumes word when it is not the start of a longer identifier.
func (p *Parser) keyword(word string) bool {
	if !p.hasPrefix(word) {
		return false
	}
	n := len([]rune(word))
	next := p.at(n)
	t := p.cfg.table
	if next == '_' || t.IsDigit(next) || t.IsLower(next) || t.IsUpper(next) {
		return false
	}
	p.pos += n
	return true
}

func (p *Parser) skipSpace() {
	for !p.eof() && p.cfg.table.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}
