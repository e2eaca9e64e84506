package parser

import (
	"rcc/internal/ast"
	"rcc/internal/token"
)

// parseBlock parses `{ stmts [tail] }` and hands the block the next scope id.
// A trailing expression without `;` becomes the tail unless it is block-like,
// in which case it stays an expression statement without semicolon.
func (p *Parser) parseBlock() (ast.BlockID, bool) {
	open, ok := p.expect(token.LBrace)
	if !ok {
		return ast.NoBlockID, false
	}
	block := ast.Block{Scope: p.newScope()}

	outerNoStruct := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = outerNoStruct }()

	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.errExpected("`}`")
			return ast.NoBlockID, false
		}
		start := p.peek().Span
		switch {
		case p.at(token.Semicolon):
			p.advance()
			block.Stmts = append(block.Stmts, p.file.Stmts.NewEmpty(start))
		case p.at(token.KwLet):
			st, ok := p.parseLet()
			if !ok {
				return ast.NoBlockID, false
			}
			block.Stmts = append(block.Stmts, st)
		case p.atItemStart():
			item, ok := p.parseItem()
			if !ok {
				return ast.NoBlockID, false
			}
			block.Stmts = append(block.Stmts, p.file.Stmts.NewItem(p.file.Items.Get(item).Span, item))
		default:
			blockLike := p.atBlockLikeStart()
			var expr ast.ExprID
			if blockLike {
				expr, ok = p.parseBlockLike()
			} else {
				expr, ok = p.parseExpr()
			}
			if !ok {
				return ast.NoBlockID, false
			}
			switch {
			case p.eat(token.Semicolon):
				block.Stmts = append(block.Stmts, p.file.Stmts.NewExpr(start.Cover(p.lastSpan), expr, true))
			case blockLike:
				block.Stmts = append(block.Stmts, p.file.Stmts.NewExpr(start.Cover(p.lastSpan), expr, false))
			case p.at(token.RBrace):
				block.Tail = expr
			default:
				p.errExpected("`;` or `}`")
				return ast.NoBlockID, false
			}
		}
	}
	closeTok := p.advance()
	block.Span = open.Span.Cover(closeTok.Span)
	return p.file.Blocks.New(block), true
}

// parseLet handles `let [mut] name [: T] [= expr];`.
func (p *Parser) parseLet() (ast.StmtID, bool) {
	start := p.advance().Span // let
	mut := p.eat(token.KwMut)
	name, ok := p.expectIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtLetData{Name: name.Text, NameSpan: name.Span, Mut: mut}
	if p.eat(token.Colon) {
		if data.Ty, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}
	if p.eat(token.Assign) {
		if data.Init, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok = p.expect(token.Semicolon); !ok {
		return ast.NoStmtID, false
	}
	return p.file.Stmts.NewLet(start.Cover(p.lastSpan), data), true
}

func (p *Parser) atBlockLikeStart() bool {
	return p.atOneOf(token.LBrace, token.KwWhile, token.KwLoop, token.KwIf)
}

// parseBlockLike parses `{...}`, while, loop or if without trailing operators.
func (p *Parser) parseBlockLike() (ast.ExprID, bool) {
	switch p.peek().Kind {
	case token.LBrace:
		block, ok := p.parseBlock()
		if !ok {
			return ast.NoExprID, false
		}
		return p.file.Exprs.NewBlock(p.file.Blocks.Get(block).Span, block), true
	case token.KwWhile:
		return p.parseWhile()
	case token.KwLoop:
		return p.parseLoop()
	case token.KwIf:
		return p.parseIf()
	default:
		p.errExpected("block")
		return ast.NoExprID, false
	}
}

func (p *Parser) parseWhile() (ast.ExprID, bool) {
	start := p.advance().Span // while
	cond, ok := p.parseCond()
	if !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoExprID, false
	}
	return p.file.Exprs.NewWhile(start.Cover(p.lastSpan), cond, body), true
}

func (p *Parser) parseLoop() (ast.ExprID, bool) {
	start := p.advance().Span // loop
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoExprID, false
	}
	return p.file.Exprs.NewLoop(start.Cover(p.lastSpan), body), true
}

func (p *Parser) parseIf() (ast.ExprID, bool) {
	start := p.advance().Span // if
	cond, ok := p.parseCond()
	if !ok {
		return ast.NoExprID, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return ast.NoExprID, false
	}
	els := ast.NoExprID
	if p.eat(token.KwElse) {
		if p.at(token.KwIf) {
			els, ok = p.parseIf()
		} else {
			var block ast.BlockID
			block, ok = p.parseBlock()
			if ok {
				els = p.file.Exprs.NewBlock(p.file.Blocks.Get(block).Span, block)
			}
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
	return p.file.Exprs.NewIf(start.Cover(p.lastSpan), cond, then, els), true
}

// parseCond parses a condition where `Name {` opens the body, not a struct literal.
func (p *Parser) parseCond() (ast.ExprID, bool) {
	outer := p.noStruct
	p.noStruct = true
	defer func() { p.noStruct = outer }()
	return p.parseExpr()
}
