package lexer

import (
	"unicode/utf8"

	"rcc/internal/diag"
	"rcc/internal/source"
	"rcc/internal/token"
)

// Lexer turns a file into tokens. It stops at the first error: every later
// call to Next returns EOF and Err reports the failure.
type Lexer struct {
	file   *source.File
	cursor Cursor
	look   *token.Token
	err    *diag.Error
}

func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.err != nil {
		return lx.eof()
	}

	lx.skipTrivia()
	if lx.err != nil || lx.cursor.EOF() {
		return lx.eof()
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStartByte(ch) || ch >= utf8.RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	case ch == '\'':
		tok = lx.scanChar()
	default:
		tok = lx.scanOperatorOrPunct()
	}
	if lx.err != nil {
		return lx.eof()
	}
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Err returns the first lexical error, if any.
func (lx *Lexer) Err() error {
	if lx.err == nil {
		return nil
	}
	return lx.err
}

// Tokenize lexes the whole file, EOF token included.
func Tokenize(file *source.File) ([]token.Token, error) {
	lx := New(file)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	if err := lx.Err(); err != nil {
		return nil, err
	}
	return toks, nil
}

func (lx *Lexer) fail(sp source.Span, msg string) token.Token {
	if lx.err == nil {
		lx.err = diag.At(sp, msg).InPhase(diag.PhaseLex)
	}
	return token.Token{Kind: token.Invalid, Span: sp}
}

func (lx *Lexer) eof() token.Token {
	return token.Token{
		Kind: token.EOF,
		Span: source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off},
	}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
