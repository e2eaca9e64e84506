package lexer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"rcc/internal/token"
)

// scanString lexes "..." and stores the unescaped, NFC-normalized value in
// Token.Text. Strings may span lines.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	var b strings.Builder
	for !lx.cursor.EOF() {
		c := lx.cursor.Peek()
		if c == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: norm.NFC.String(b.String())}
		}
		if c == '\\' {
			r, ok := lx.scanEscape()
			if !ok {
				return token.Token{Kind: token.Invalid}
			}
			b.WriteRune(r)
			continue
		}
		r, sz := lx.peekRune()
		if r == utf8.RuneError && sz <= 1 {
			lx.cursor.Bump()
			return lx.fail(lx.cursor.SpanFrom(start), "invalid utf-8 in string literal")
		}
		lx.bumpRune()
		b.WriteRune(r)
	}
	return lx.fail(lx.cursor.SpanFrom(start), "unterminated double quote string")
}

// scanChar lexes 'c' or an escape like '\n'.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	var r rune
	switch lx.cursor.Peek() {
	case '\\':
		esc, ok := lx.scanEscape()
		if !ok {
			return token.Token{Kind: token.Invalid}
		}
		r = esc
	case '\'', '\n':
		lx.cursor.Bump()
		return lx.fail(lx.cursor.SpanFrom(start), "empty character literal")
	default:
		var sz int
		r, sz = lx.peekRune()
		if sz == 0 {
			return lx.fail(lx.cursor.SpanFrom(start), "unterminated character literal")
		}
		lx.bumpRune()
	}
	if !lx.cursor.Eat('\'') {
		return lx.fail(lx.cursor.SpanFrom(start), "unterminated character literal")
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.CharLit, Span: sp, Text: string(r)}
}

func (lx *Lexer) scanEscape() (rune, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\\'
	c := lx.cursor.Bump()
	switch c {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\', '"', '\'':
		return rune(c), true
	default:
		lx.fail(lx.cursor.SpanFrom(start), "unknown character escape")
		return 0, false
	}
}
