package parser

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"rcc/internal/ast"
	"rcc/internal/diag"
	"rcc/internal/lexer"
	"rcc/internal/source"
	"rcc/internal/token"
)

// Parser holds the state for one file. It stops at the first error.
type Parser struct {
	lx        *lexer.Lexer
	file      *ast.File
	lastSpan  source.Span
	nextScope ast.ScopeID
	// noStruct disables `Name { ... }` literals in condition position.
	noStruct bool
	err      *diag.Error
}

// ParseFile parses one source file into an AST whose blocks carry scope ids
// numbered in source order.
func ParseFile(src *source.File) (*ast.File, error) {
	capHint, err := safecast.Conv[uint](len(src.Content) / 4)
	if err != nil {
		capHint = 0
	}
	p := &Parser{
		lx: lexer.New(src),
		file: &ast.File{
			Builder: ast.NewBuilder(capHint),
			Path:    src.Path,
		},
		nextScope: ast.FileScopeID + 1,
	}
	p.parseItems()
	if lexErr := p.lx.Err(); lexErr != nil {
		return nil, lexErr
	}
	if p.err != nil {
		return nil, p.err
	}
	p.file.NumScopes = uint32(p.nextScope)
	return p.file, nil
}

func (p *Parser) parseItems() {
	start := p.peek().Span
	for !p.at(token.EOF) && p.ok() {
		id, ok := p.parseItem()
		if !ok {
			return
		}
		p.file.TopLevel = append(p.file.TopLevel, id)
	}
	p.file.Span = start.Cover(p.lastSpan)
}

func (p *Parser) ok() bool {
	return p.err == nil && p.lx.Err() == nil
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOneOf(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// advance consumes the next token and remembers its span.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of kind k or records "expected `k`, found ...".
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errExpected("`" + k.String() + "`")
	return token.Token{}, false
}

func (p *Parser) expectIdent() (token.Token, bool) {
	if p.at(token.Ident) {
		return p.advance(), true
	}
	p.errExpected("identifier")
	return token.Token{}, false
}

func (p *Parser) errExpected(what string) {
	tok := p.peek()
	p.errAt(tok.Span, fmt.Sprintf("expected %s, found %s", what, describe(tok)))
}

func (p *Parser) errAt(sp source.Span, msg string) {
	if p.err == nil && p.lx.Err() == nil {
		p.err = diag.At(sp, msg).InPhase(diag.PhaseParse)
	}
}

func (p *Parser) newScope() ast.ScopeID {
	id := p.nextScope
	p.nextScope++
	return id
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return "identifier `" + tok.Text + "`"
	case token.IntLit, token.FloatLit:
		return "literal `" + tok.Text + "`"
	case token.StringLit:
		return "string literal"
	case token.CharLit:
		return "char literal"
	default:
		return "`" + tok.Kind.String() + "`"
	}
}
