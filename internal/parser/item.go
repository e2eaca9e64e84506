package parser

import (
	"fortio.org/safecast"

	"rcc/internal/ast"
	"rcc/internal/source"
	"rcc/internal/token"
)

func (p *Parser) atItemStart() bool {
	return p.atOneOf(token.KwFn, token.KwStruct, token.KwEnum, token.KwConst, token.KwStatic, token.KwPub)
}

// parseItem dispatches on the leading keyword of a declaration.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	start := p.peek().Span
	pub := p.eat(token.KwPub)
	switch p.peek().Kind {
	case token.KwFn:
		return p.parseFnItem(start, pub)
	case token.KwStruct:
		return p.parseStructItem(start, pub)
	case token.KwEnum:
		return p.parseEnumItem(start, pub)
	case token.KwConst, token.KwStatic:
		return p.parseValueItem(start, pub)
	default:
		p.errExpected("item")
		return ast.NoItemID, false
	}
}

func (p *Parser) parseFnItem(start source.Span, pub bool) (ast.ItemID, bool) {
	p.advance() // fn
	name, ok := p.expectIdent()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.LParen); !ok {
		return ast.NoItemID, false
	}
	var params []ast.FnParam
	for !p.at(token.RParen) {
		param, ok := p.parseFnParam()
		if !ok {
			return ast.NoItemID, false
		}
		params = append(params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok = p.expect(token.RParen); !ok {
		return ast.NoItemID, false
	}
	ret := ast.NoTypeExprID
	if p.eat(token.Arrow) {
		if ret, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoItemID, false
	}
	return p.file.Items.NewFn(start.Cover(p.lastSpan), ast.FnItem{
		Name:   name.Text,
		Pub:    pub,
		Params: params,
		Ret:    ret,
		Body:   body,
	}), true
}

func (p *Parser) parseFnParam() (ast.FnParam, bool) {
	start := p.peek().Span
	mut := p.eat(token.KwMut)
	name, ok := p.expectIdent()
	if !ok {
		return ast.FnParam{}, false
	}
	if _, ok = p.expect(token.Colon); !ok {
		return ast.FnParam{}, false
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.FnParam{}, false
	}
	return ast.FnParam{Name: name.Text, Mut: mut, Ty: ty, Span: start.Cover(p.lastSpan)}, true
}

func (p *Parser) parseStructItem(start source.Span, pub bool) (ast.ItemID, bool) {
	p.advance() // struct
	name, ok := p.expectIdent()
	if !ok {
		return ast.NoItemID, false
	}
	var fields []ast.FieldDecl
	if !p.eat(token.Semicolon) {
		if _, ok = p.expect(token.LBrace); !ok {
			return ast.NoItemID, false
		}
		for !p.at(token.RBrace) {
			fstart := p.peek().Span
			fpub := p.eat(token.KwPub)
			fname, ok := p.expectIdent()
			if !ok {
				return ast.NoItemID, false
			}
			if _, ok = p.expect(token.Colon); !ok {
				return ast.NoItemID, false
			}
			ty, ok := p.parseType()
			if !ok {
				return ast.NoItemID, false
			}
			fields = append(fields, ast.FieldDecl{Name: fname.Text, Pub: fpub, Ty: ty, Span: fstart.Cover(p.lastSpan)})
			if !p.eat(token.Comma) {
				break
			}
		}
		if _, ok = p.expect(token.RBrace); !ok {
			return ast.NoItemID, false
		}
	}
	index, err := safecast.Conv[uint32](len(p.file.StructDefs))
	if err != nil {
		panic(err)
	}
	id := p.file.Items.NewStruct(start.Cover(p.lastSpan), ast.StructItem{
		Name:   name.Text,
		Pub:    pub,
		Fields: fields,
		Index:  index,
	})
	p.file.StructDefs = append(p.file.StructDefs, id)
	return id, true
}

func (p *Parser) parseEnumItem(start source.Span, pub bool) (ast.ItemID, bool) {
	p.advance() // enum
	name, ok := p.expectIdent()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.LBrace); !ok {
		return ast.NoItemID, false
	}
	var variants []string
	for !p.at(token.RBrace) {
		v, ok := p.expectIdent()
		if !ok {
			return ast.NoItemID, false
		}
		variants = append(variants, v.Text)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok = p.expect(token.RBrace); !ok {
		return ast.NoItemID, false
	}
	index, err := safecast.Conv[uint32](len(p.file.EnumDefs))
	if err != nil {
		panic(err)
	}
	id := p.file.Items.NewEnum(start.Cover(p.lastSpan), ast.EnumItem{
		Name:     name.Text,
		Pub:      pub,
		Variants: variants,
		Index:    index,
	})
	p.file.EnumDefs = append(p.file.EnumDefs, id)
	return id, true
}

// parseValueItem handles `const NAME: T = e;` and `static [mut] NAME: T = e;`.
func (p *Parser) parseValueItem(start source.Span, pub bool) (ast.ItemID, bool) {
	isStatic := p.advance().Kind == token.KwStatic
	mut := isStatic && p.eat(token.KwMut)
	name, ok := p.expectIdent()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.Colon); !ok {
		return ast.NoItemID, false
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.Assign); !ok {
		return ast.NoItemID, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.Semicolon); !ok {
		return ast.NoItemID, false
	}
	item := ast.ValueItem{Name: name.Text, Pub: pub, Mut: mut, Ty: ty, Value: value}
	if isStatic {
		return p.file.Items.NewStatic(start.Cover(p.lastSpan), item), true
	}
	return p.file.Items.NewConst(start.Cover(p.lastSpan), item), true
}
