package parser

import (
	"rcc/internal/ast"
	"rcc/internal/token"
)

// parseType parses a type annotation.
func (p *Parser) parseType() (ast.TypeExprID, bool) {
	tok := p.peek()
	types := p.file.Types
	switch tok.Kind {
	case token.Bang:
		p.advance()
		return types.New(ast.TypeExpr{Kind: ast.TypeNever, Span: tok.Span}), true
	case token.Amp, token.AndAnd:
		p.advance()
		mut := p.eat(token.KwMut)
		elem, ok := p.parseType()
		if !ok {
			return ast.NoTypeExprID, false
		}
		if tok.Kind == token.AndAnd {
			// `&&T` is `& &T`
			elem = types.New(ast.TypeExpr{Kind: ast.TypeRef, Span: tok.Span.Cover(p.lastSpan), Mut: mut, Elem: elem})
			mut = false
		}
		return types.New(ast.TypeExpr{Kind: ast.TypeRef, Span: tok.Span.Cover(p.lastSpan), Mut: mut, Elem: elem}), true
	case token.Star:
		p.advance()
		var mut bool
		switch {
		case p.eat(token.KwMut):
			mut = true
		case p.eat(token.KwConst):
		default:
			p.errExpected("`mut` or `const`")
			return ast.NoTypeExprID, false
		}
		elem, ok := p.parseType()
		if !ok {
			return ast.NoTypeExprID, false
		}
		return types.New(ast.TypeExpr{Kind: ast.TypeRawPtr, Span: tok.Span.Cover(p.lastSpan), Mut: mut, Elem: elem}), true
	case token.LParen:
		p.advance()
		var elems []ast.TypeExprID
		for !p.at(token.RParen) {
			elem, ok := p.parseType()
			if !ok {
				return ast.NoTypeExprID, false
			}
			elems = append(elems, elem)
			if !p.eat(token.Comma) {
				break
			}
		}
		if _, ok := p.expect(token.RParen); !ok {
			return ast.NoTypeExprID, false
		}
		if len(elems) == 0 {
			return types.New(ast.TypeExpr{Kind: ast.TypeUnit, Span: tok.Span.Cover(p.lastSpan)}), true
		}
		return types.New(ast.TypeExpr{Kind: ast.TypeTuple, Span: tok.Span.Cover(p.lastSpan), Params: elems}), true
	case token.LBracket:
		p.advance()
		elem, ok := p.parseType()
		if !ok {
			return ast.NoTypeExprID, false
		}
		if _, ok = p.expect(token.Semicolon); !ok {
			return ast.NoTypeExprID, false
		}
		n, ok := p.parseExpr()
		if !ok {
			return ast.NoTypeExprID, false
		}
		if _, ok = p.expect(token.RBracket); !ok {
			return ast.NoTypeExprID, false
		}
		return types.New(ast.TypeExpr{Kind: ast.TypeArray, Span: tok.Span.Cover(p.lastSpan), Elem: elem, Len: n}), true
	case token.KwFn:
		return p.parseFnType()
	case token.Ident:
		p.advance()
		name := tok.Text
		for p.eat(token.ColonColon) {
			seg, ok := p.expectIdent()
			if !ok {
				return ast.NoTypeExprID, false
			}
			name = seg.Text
		}
		return types.New(ast.TypeExpr{Kind: ast.TypePath, Span: tok.Span.Cover(p.lastSpan), Name: name}), true
	default:
		p.errExpected("type")
		return ast.NoTypeExprID, false
	}
}

// parseFnType parses `fn(A, B) -> R`.
func (p *Parser) parseFnType() (ast.TypeExprID, bool) {
	start := p.advance().Span
	if _, ok := p.expect(token.LParen); !ok {
		return ast.NoTypeExprID, false
	}
	var params []ast.TypeExprID
	for !p.at(token.RParen) {
		param, ok := p.parseType()
		if !ok {
			return ast.NoTypeExprID, false
		}
		params = append(params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen); !ok {
		return ast.NoTypeExprID, false
	}
	ret := ast.NoTypeExprID
	if p.eat(token.Arrow) {
		var ok bool
		if ret, ok = p.parseType(); !ok {
			return ast.NoTypeExprID, false
		}
	}
	return p.file.Types.New(ast.TypeExpr{Kind: ast.TypeFn, Span: start.Cover(p.lastSpan), Params: params, Ret: ret}), true
}
