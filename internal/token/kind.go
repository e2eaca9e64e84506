package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident

	KwFn
	KwLet
	KwMut
	KwConst
	KwStatic
	KwStruct
	KwEnum
	KwPub
	KwWhile
	KwLoop
	KwIf
	KwElse
	KwBreak
	KwContinue
	KwReturn
	KwTrue
	KwFalse
	KwAs

	// IntLit is an integer literal, possibly with a type suffix (`3i64`).
	IntLit
	// FloatLit is a float literal, possibly with a type suffix (`1.5f32`).
	FloatLit
	CharLit
	StringLit

	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Caret      // ^
	Amp        // &
	Pipe       // |
	Shl        // <<
	Shr        // >>
	AndAnd     // &&
	OrOr       // ||
	EqEq       // ==
	BangEq     // !=
	Lt         // <
	LtEq       // <=
	Gt         // >
	GtEq       // >=
	Assign     // =
	Bang       // !
	Dot        // .
	DotDot     // ..
	DotDotEq   // ..=
	Comma      // ,
	Semicolon  // ;
	Colon      // :
	ColonColon // ::
	Arrow      // ->
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]

	numKinds
)

var kindNames = [numKinds]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	KwFn:       "fn",
	KwLet:      "let",
	KwMut:      "mut",
	KwConst:    "const",
	KwStatic:   "static",
	KwStruct:   "struct",
	KwEnum:     "enum",
	KwPub:      "pub",
	KwWhile:    "while",
	KwLoop:     "loop",
	KwIf:       "if",
	KwElse:     "else",
	KwBreak:    "break",
	KwContinue: "continue",
	KwReturn:   "return",
	KwTrue:     "true",
	KwFalse:    "false",
	KwAs:       "as",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	CharLit:    "CharLit",
	StringLit:  "StringLit",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Caret:      "^",
	Amp:        "&",
	Pipe:       "|",
	Shl:        "<<",
	Shr:        ">>",
	AndAnd:     "&&",
	OrOr:       "||",
	EqEq:       "==",
	BangEq:     "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	Assign:     "=",
	Bang:       "!",
	Dot:        ".",
	DotDot:     "..",
	DotDotEq:   "..=",
	Comma:      ",",
	Semicolon:  ";",
	Colon:      ":",
	ColonColon: "::",
	Arrow:      "->",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwFn && k <= KwAs
}
