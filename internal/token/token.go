package token

import "rcc/internal/source"

// Token is one lexeme. Text is the exact source slice; it is empty for EOF.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// Class groups token kinds for tools that do not care about the exact kind.
type Class string

const (
	ClassIdent    Class = "ident"
	ClassKeyword  Class = "keyword"
	ClassLiteral  Class = "literal"
	ClassOperator Class = "operator"
	ClassEOF      Class = "eof"
	ClassInvalid  Class = "invalid"
)

// Class reports the token's class. true and false are literals even though
// they are spelled as keywords.
func (t Token) Class() Class {
	switch k := t.Kind; {
	case k == IntLit, k == FloatLit, k == CharLit, k == StringLit, k == KwTrue, k == KwFalse:
		return ClassLiteral
	case k.IsKeyword():
		return ClassKeyword
	case k == Ident:
		return ClassIdent
	case k == EOF:
		return ClassEOF
	case k >= Plus && k < numKinds:
		return ClassOperator
	}
	return ClassInvalid
}
