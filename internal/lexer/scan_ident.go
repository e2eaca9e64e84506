package lexer

import (
	"unicode/utf8"

	"rcc/internal/token"
)

// scanIdentOrKeyword consumes the longest identifier at the cursor and
// returns it as a keyword when it spells one.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	if r, _ := lx.peekRune(); r >= utf8.RuneSelf && !isIdentStartRune(r) {
		lx.bumpRune()
		return lx.fail(lx.cursor.SpanFrom(start), "unknown character")
	}
	for ok := true; ok; {
		lx.bumpRune()
		r, size := lx.peekRune()
		ok = size > 0 && isIdentContinueRune(r)
	}

	sp := lx.cursor.SpanFrom(start)
	tok := token.Token{Kind: token.Ident, Span: sp, Text: lx.text(sp)}
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}
