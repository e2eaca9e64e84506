// Package token defines lexical token kinds for rcc.
// Invariants:
//   - Token.Text is a slice of the original source, except for string and
//     char literals whose Text holds the unescaped, NFC-normalized value.
//   - Token.Span covers the whole lexeme including quotes and suffixes.
//   - Primitive type names (i32, u8, bool, str, ...) are identifiers.
//     They are recognized by the parser's type grammar, not the lexer.
package token
