package lexer

import (
	"rcc/internal/token"
	"rcc/internal/types"
)

// scanNumber handles 0, 1_000, 0b1010, 0o17, 0xff, 1.5, 1e-3, 2.5e+10 and an
// optional primitive suffix (3i64, 7_u8, 1.0f32). A float suffix turns an
// integer literal into a float literal.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	radix := 10
	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			radix = 2
		case 'o', 'O':
			radix = 8
		case 'x', 'X':
			radix = 16
		}
	}

	if radix != 10 {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digits := 0
		for {
			b := lx.cursor.Peek()
			if b == '_' {
				lx.cursor.Bump()
				continue
			}
			if !isDigitOf(b, radix) {
				break
			}
			lx.cursor.Bump()
			digits++
		}
		if digits == 0 {
			return lx.fail(lx.cursor.SpanFrom(start), "missing digits after integer base prefix")
		}
		return lx.numberSuffix(start, kind)
	}

	lx.eatDecDigits()

	// `1..2` and `x.0.foo` keep the dot for the parser.
	if lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) != '.' && !isIdentStartByte(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		kind = token.FloatLit
		lx.eatDecDigits()
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			kind = token.FloatLit
			lx.eatDecDigits()
		} else {
			lx.cursor.Reset(mark)
		}
	}
	return lx.numberSuffix(start, kind)
}

func (lx *Lexer) eatDecDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) numberSuffix(start Mark, kind token.Kind) token.Token {
	if isIdentStartByte(lx.cursor.Peek()) {
		sufStart := lx.cursor.Mark()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		suffix := lx.text(lx.cursor.SpanFrom(sufStart))
		lit, ok := types.LookupLitNum(suffix)
		if !ok {
			return lx.fail(lx.cursor.SpanFrom(start), "invalid suffix `"+suffix+"` for number literal")
		}
		if lit.IsFloat() {
			kind = token.FloatLit
		} else if kind == token.FloatLit {
			return lx.fail(lx.cursor.SpanFrom(start), "invalid suffix `"+suffix+"` for float literal")
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func isDigitOf(b byte, radix int) bool {
	switch radix {
	case 2:
		return b == '0' || b == '1'
	case 8:
		return b >= '0' && b <= '7'
	case 16:
		return isHex(b)
	default:
		return isDec(b)
	}
}
