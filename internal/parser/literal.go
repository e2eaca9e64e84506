package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"

	"rcc/internal/ast"
	"rcc/internal/token"
	"rcc/internal/types"
)

func (p *Parser) parseLiteral() (ast.ExprID, bool) {
	tok := p.advance()
	var lit ast.ExprLitData
	switch tok.Kind {
	case token.KwTrue, token.KwFalse:
		lit = ast.ExprLitData{Kind: ast.LitBool, Bool: tok.Kind == token.KwTrue}
	case token.CharLit:
		r, _ := utf8.DecodeRuneInString(tok.Text)
		lit = ast.ExprLitData{Kind: ast.LitChar, Char: r}
	case token.StringLit:
		lit = ast.ExprLitData{Kind: ast.LitStr, Str: tok.Text}
	case token.IntLit, token.FloatLit:
		var msg string
		lit, msg = decodeNumber(tok.Text, tok.Kind == token.FloatLit)
		if msg != "" {
			p.errAt(tok.Span, msg)
			return ast.NoExprID, false
		}
	}
	return p.file.Exprs.NewLiteral(tok.Span, lit), true
}

// decodeNumber splits a numeric lexeme into value and optional suffix.
// It returns a non-empty message when the value does not fit.
func decodeNumber(text string, isFloat bool) (ast.ExprLitData, string) {
	body, suffix, radix := splitNumber(text)
	body = strings.ReplaceAll(body, "_", "")
	lit := ast.ExprLitData{}
	if suffix != "" {
		tag, ok := types.LookupLitNum(suffix)
		if !ok {
			return lit, "invalid suffix `" + suffix + "` for number literal"
		}
		lit.Suffix, lit.HasSuffix = tag, true
	}
	if isFloat {
		f, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return lit, "invalid float literal `" + text + "`"
		}
		lit.Kind, lit.Float = ast.LitFloat, f
		return lit, ""
	}
	if radix != 10 {
		body = body[2:]
	}
	v, err := strconv.ParseUint(body, radix, 64)
	if err != nil {
		return lit, "integer literal is too large"
	}
	lit.Kind, lit.Int = ast.LitInt, v
	return lit, ""
}

// splitNumber finds where the suffix of a number lexeme starts.
func splitNumber(text string) (body, suffix string, radix int) {
	radix = 10
	if len(text) > 2 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			radix = 16
		case 'o', 'O':
			radix = 8
		case 'b', 'B':
			radix = 2
		}
	}
	i := 0
	if radix != 10 {
		i = 2
		for i < len(text) && text[i] != 'i' && text[i] != 'u' &&
			(radix == 16 && isHexByte(text[i]) || radix != 16 && (isDecByte(text[i]) || text[i] == '_')) {
			i++
		}
		return text[:i], text[i:], radix
	}
	for i < len(text) && (isDecByte(text[i]) || text[i] == '_' || text[i] == '.') {
		i++
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}
		if j < len(text) && isDecByte(text[j]) {
			for j < len(text) && (isDecByte(text[j]) || text[j] == '_') {
				j++
			}
			i = j
		}
	}
	return text[:i], text[i:], radix
}

func isDecByte(b byte) bool { return b >= '0' && b <= '9' }

func isHexByte(b byte) bool {
	return isDecByte(b) || b == '_' || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func parseTupleIndex(text string) (uint32, bool) {
	if text == "" || strings.ContainsAny(text, "_xob") || (len(text) > 1 && text[0] == '0') {
		return 0, false
	}
	v, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, false
	}
	idx, err := safecast.Conv[uint32](v)
	return idx, err == nil
}

// splitTupleIndexPair splits the `0.1` the lexer produces for `t.0.1`.
func splitTupleIndexPair(text string) (first, second uint32, ok bool) {
	a, b, found := strings.Cut(text, ".")
	if !found {
		return 0, 0, false
	}
	if first, ok = parseTupleIndex(a); !ok {
		return 0, 0, false
	}
	second, ok = parseTupleIndex(b)
	return first, second, ok
}
