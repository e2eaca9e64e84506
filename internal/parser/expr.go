package parser

import (
	"rcc/internal/ast"
	"rcc/internal/source"
	"rcc/internal/token"
)

// parseExpr is the entry point for expressions.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(precAssignment)
}

// parseBinaryExpr is a Pratt loop over binaryPrec.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	var left ast.ExprID
	var ok bool
	if p.atOneOf(token.DotDot, token.DotDotEq) {
		left, ok = p.parseRange(ast.NoExprID)
	} else {
		left, ok = p.parseUnaryExpr()
	}
	if !ok {
		return ast.NoExprID, false
	}

	for {
		opTok := p.peek()
		prec, rightAssoc := binaryPrec(opTok.Kind)
		if prec < minPrec {
			return left, true
		}
		if prec == precRange {
			if left, ok = p.parseRange(left); !ok {
				return ast.NoExprID, false
			}
			continue
		}
		p.advance()
		next := prec + 1
		if rightAssoc {
			next = prec
		}
		right, ok := p.parseBinaryExpr(next)
		if !ok {
			return ast.NoExprID, false
		}
		span := p.file.Exprs.Get(left).Span.Cover(p.file.Exprs.Get(right).Span)
		if opTok.Kind == token.Assign {
			left = p.file.Exprs.NewAssign(span, left, right)
		} else {
			left = p.file.Exprs.NewBinary(span, binaryOps[opTok.Kind], left, right)
		}
	}
}

// parseRange consumes `..`/`..=` after start (or at the front when start is
// NoExprID) and an optional end operand.
func (p *Parser) parseRange(start ast.ExprID) (ast.ExprID, bool) {
	opTok := p.advance()
	span := opTok.Span
	if start.IsValid() {
		span = p.file.Exprs.Get(start).Span.Cover(span)
	}
	end := ast.NoExprID
	if p.atExprStart() {
		var ok bool
		if end, ok = p.parseBinaryExpr(precRange + 1); !ok {
			return ast.NoExprID, false
		}
		span = span.Cover(p.file.Exprs.Get(end).Span)
	}
	return p.file.Exprs.NewRange(span, start, end, opTok.Kind == token.DotDotEq), true
}

func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	tok := p.peek()
	var ops []ast.UnaryOp
	switch tok.Kind {
	case token.Minus:
		ops = []ast.UnaryOp{ast.UnNeg}
	case token.Bang:
		ops = []ast.UnaryOp{ast.UnNot}
	case token.Star:
		ops = []ast.UnaryOp{ast.UnDeref}
	case token.Amp:
		ops = []ast.UnaryOp{ast.UnRef}
	case token.AndAnd:
		ops = []ast.UnaryOp{ast.UnRef, ast.UnRef}
	default:
		return p.parsePostfixExpr()
	}
	p.advance()
	if ops[len(ops)-1] == ast.UnRef && p.eat(token.KwMut) {
		ops[len(ops)-1] = ast.UnRefMut
	}
	operand, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := tok.Span.Cover(p.file.Exprs.Get(operand).Span)
	for i := len(ops) - 1; i >= 0; i-- {
		operand = p.file.Exprs.NewUnary(span, ops[i], operand)
	}
	return operand, true
}

func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		start := p.file.Exprs.Get(expr).Span
		switch {
		case p.eat(token.LParen):
			args, ok := p.parseExprList(token.RParen)
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.file.Exprs.NewCall(start.Cover(p.lastSpan), expr, args)
		case p.eat(token.LBracket):
			index, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok = p.expect(token.RBracket); !ok {
				return ast.NoExprID, false
			}
			expr = p.file.Exprs.NewIndex(start.Cover(p.lastSpan), expr, index)
		case p.eat(token.Dot):
			if expr, ok = p.parseMember(expr, start); !ok {
				return ast.NoExprID, false
			}
		default:
			return expr, true
		}
	}
}

// parseMember handles `.field`, `.0` and the lexer's `.0.1` float token.
func (p *Parser) parseMember(target ast.ExprID, start source.Span) (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.file.Exprs.NewField(start.Cover(tok.Span), target, tok.Text), true
	case token.IntLit:
		p.advance()
		idx, ok := parseTupleIndex(tok.Text)
		if !ok {
			p.errAt(tok.Span, "invalid tuple index `"+tok.Text+"`")
			return ast.NoExprID, false
		}
		return p.file.Exprs.NewTupleIndex(start.Cover(tok.Span), target, idx), true
	case token.FloatLit:
		p.advance()
		first, second, ok := splitTupleIndexPair(tok.Text)
		if !ok {
			p.errAt(tok.Span, "invalid tuple index `"+tok.Text+"`")
			return ast.NoExprID, false
		}
		inner := p.file.Exprs.NewTupleIndex(start.Cover(tok.Span), target, first)
		return p.file.Exprs.NewTupleIndex(start.Cover(tok.Span), inner, second), true
	default:
		p.errExpected("field name")
		return ast.NoExprID, false
	}
}

// parseExprList parses `a, b, c` up to and including the closing token.
func (p *Parser) parseExprList(closing token.Kind) ([]ast.ExprID, bool) {
	var out []ast.ExprID
	for !p.at(closing) {
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		out = append(out, e)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(closing); !ok {
		return nil, false
	}
	return out, true
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit, token.FloatLit, token.CharLit, token.StringLit, token.KwTrue, token.KwFalse:
		return p.parseLiteral()
	case token.Ident:
		return p.parsePathOrStruct()
	case token.LParen:
		return p.parseParenExpr()
	case token.LBracket:
		return p.parseArrayExpr()
	case token.LBrace, token.KwWhile, token.KwLoop, token.KwIf:
		return p.parseBlockLike()
	case token.KwReturn, token.KwBreak:
		p.advance()
		value := ast.NoExprID
		if p.atExprStart() {
			var ok bool
			if value, ok = p.parseExpr(); !ok {
				return ast.NoExprID, false
			}
		}
		span := tok.Span.Cover(p.lastSpan)
		if tok.Kind == token.KwReturn {
			return p.file.Exprs.NewReturn(span, value), true
		}
		return p.file.Exprs.NewBreak(span, value), true
	case token.KwContinue:
		p.advance()
		return p.file.Exprs.NewContinue(tok.Span), true
	default:
		p.errExpected("expression")
		return ast.NoExprID, false
	}
}

// atExprStart reports whether the next token can begin an expression. It
// decides whether `break`, `return` and `..` carry an operand.
func (p *Parser) atExprStart() bool {
	switch p.peek().Kind {
	case token.IntLit, token.FloatLit, token.CharLit, token.StringLit, token.KwTrue, token.KwFalse,
		token.Ident, token.LParen, token.LBracket, token.KwWhile, token.KwLoop, token.KwIf,
		token.KwReturn, token.KwBreak, token.KwContinue, token.Minus, token.Bang, token.Star,
		token.Amp, token.AndAnd, token.DotDot, token.DotDotEq:
		return true
	case token.LBrace:
		return !p.noStruct
	default:
		return false
	}
}

func (p *Parser) parsePathOrStruct() (ast.ExprID, bool) {
	first := p.advance()
	segments := []string{first.Text}
	for p.eat(token.ColonColon) {
		seg, ok := p.expectIdent()
		if !ok {
			return ast.NoExprID, false
		}
		segments = append(segments, seg.Text)
	}
	span := first.Span.Cover(p.lastSpan)
	if p.noStruct || !p.at(token.LBrace) {
		return p.file.Exprs.NewPath(span, segments), true
	}

	p.advance() // {
	var fields []ast.StructFieldInit
	for !p.at(token.RBrace) {
		name, ok := p.expectIdent()
		if !ok {
			return ast.NoExprID, false
		}
		var value ast.ExprID
		if p.eat(token.Colon) {
			if value, ok = p.parseExpr(); !ok {
				return ast.NoExprID, false
			}
		} else {
			// shorthand `S { x }`
			value = p.file.Exprs.NewPath(name.Span, []string{name.Text})
		}
		fields = append(fields, ast.StructFieldInit{Name: name.Text, Value: value, Span: name.Span.Cover(p.lastSpan)})
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RBrace); !ok {
		return ast.NoExprID, false
	}
	return p.file.Exprs.NewStruct(span.Cover(p.lastSpan), segments, fields), true
}

// parseParenExpr handles `()`, `(e)` and tuples `(e,)`, `(a, b)`.
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	open := p.advance()
	if p.eat(token.RParen) {
		return p.file.Exprs.NewLiteral(open.Span.Cover(p.lastSpan), ast.ExprLitData{Kind: ast.LitUnit}), true
	}
	outer := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = outer }()

	first, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if p.eat(token.RParen) {
		return p.file.Exprs.NewGroup(open.Span.Cover(p.lastSpan), first), true
	}
	if _, ok = p.expect(token.Comma); !ok {
		return ast.NoExprID, false
	}
	rest, ok := p.parseExprList(token.RParen)
	if !ok {
		return ast.NoExprID, false
	}
	return p.file.Exprs.NewTuple(open.Span.Cover(p.lastSpan), append([]ast.ExprID{first}, rest...)), true
}

// parseArrayExpr handles `[a, b]` and `[v; n]`.
func (p *Parser) parseArrayExpr() (ast.ExprID, bool) {
	open := p.advance()
	if p.eat(token.RBracket) {
		return p.file.Exprs.NewArray(open.Span.Cover(p.lastSpan), nil), true
	}
	first, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if p.eat(token.Semicolon) {
		count, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok = p.expect(token.RBracket); !ok {
			return ast.NoExprID, false
		}
		return p.file.Exprs.NewArrayRepeat(open.Span.Cover(p.lastSpan), first, count), true
	}
	elems := []ast.ExprID{first}
	if p.eat(token.Comma) {
		rest, ok := p.parseExprList(token.RBracket)
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, rest...)
	} else if _, ok = p.expect(token.RBracket); !ok {
		return ast.NoExprID, false
	}
	return p.file.Exprs.NewArray(open.Span.Cover(p.lastSpan), elems), true
}
