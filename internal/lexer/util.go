package lexer

import (
	"unicode"
	"unicode/utf8"
)

// peekRune decodes the rune at the cursor; size is 0 at EOF.
func (lx *Lexer) peekRune() (r rune, size int) {
	rest := lx.cursor.Rest()
	switch {
	case len(rest) == 0:
		return utf8.RuneError, 0
	case rest[0] < utf8.RuneSelf:
		return rune(rest[0]), 1
	}
	return utf8.DecodeRune(rest)
}

func (lx *Lexer) bumpRune() {
	_, size := lx.peekRune()
	lx.cursor.Off += uint32(size) //nolint:gosec // a rune is at most 4 bytes
}

// tryOp consumes op when the input continues with it.
func (lx *Lexer) tryOp(op string) bool { return lx.cursor.EatPrefix(op) }

// Identifiers follow Rust: ASCII letters, digits and '_', plus Unicode
// letters and digits outside ASCII.
func isIdentStartByte(b byte) bool {
	return b == '_' || 'a' <= b|0x20 && b|0x20 <= 'z'
}

func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

func isIdentStartRune(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentContinueRune(r rune) bool { return isIdentStartRune(r) || unicode.IsDigit(r) }

func isDec(b byte) bool { return '0' <= b && b <= '9' }

func isHex(b byte) bool { return isDec(b) || 'a' <= b|0x20 && b|0x20 <= 'f' }
