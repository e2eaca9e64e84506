package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	for lexeme, want := range keywords {
		got, ok := LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v", lexeme, got, ok, want)
		}
		if got.String() != lexeme {
			t.Fatalf("keyword %v prints as %q", got, got.String())
		}
		if !got.IsKeyword() {
			t.Fatalf("%v should be a keyword", got)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	notKw := []string{"Fn", "LET", "i32", "u8", "bool", "str", "self", "identifier"}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestTokenClass(t *testing.T) {
	cases := map[Kind]Class{
		IntLit:    ClassLiteral,
		StringLit: ClassLiteral,
		KwTrue:    ClassLiteral,
		KwWhile:   ClassKeyword,
		Ident:     ClassIdent,
		Plus:      ClassOperator,
		DotDotEq:  ClassOperator,
		RBracket:  ClassOperator,
		EOF:       ClassEOF,
		Invalid:   ClassInvalid,
	}
	for k, want := range cases {
		if got := (Token{Kind: k}).Class(); got != want {
			t.Fatalf("%v has class %q, want %q", k, got, want)
		}
	}
}
