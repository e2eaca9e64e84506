package lexer_test

import (
	"testing"

	"rcc/internal/lexer"
	"rcc/internal/source"
	"rcc/internal/token"
)

func lexAll(t *testing.T, input string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	toks, err := lexer.Tokenize(fs.Get(fs.AddVirtual("test.rs", []byte(input))))
	if err != nil {
		t.Fatalf("unexpected lex error for %q: %v", input, err)
	}
	return toks
}

func lexErr(t *testing.T, input string) error {
	t.Helper()
	fs := source.NewFileSet()
	_, err := lexer.Tokenize(fs.Get(fs.AddVirtual("test.rs", []byte(input))))
	if err == nil {
		t.Fatalf("expected lex error for %q", input)
	}
	return err
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	toks := lexAll(t, input)
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: expected %v, got %v", input, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d expected %v, got %v (all %v)", input, i, want[i], got[i], got)
		}
	}
	return toks
}

func TestFunctionHeader(t *testing.T) {
	expectKinds(t, "pub fn main(mut a: i32) -> i64 { let b = a; }",
		token.KwPub, token.KwFn, token.Ident, token.LParen, token.KwMut, token.Ident, token.Colon,
		token.Ident, token.RParen, token.Arrow, token.Ident, token.LBrace, token.KwLet, token.Ident,
		token.Assign, token.Ident, token.Semicolon, token.RBrace)
}

func TestOperatorsAreGreedy(t *testing.T) {
	expectKinds(t, "a<<=b..=c..d::e&&f||g!=h>>i",
		token.Ident, token.Shl, token.Assign, token.Ident, token.DotDotEq, token.Ident, token.DotDot,
		token.Ident, token.ColonColon, token.Ident, token.AndAnd, token.Ident, token.OrOr, token.Ident,
		token.BangEq, token.Ident, token.Shr, token.Ident)
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		in   string
		kind token.Kind
	}{
		{"0", token.IntLit},
		{"1_000", token.IntLit},
		{"0xff", token.IntLit},
		{"0b1010u8", token.IntLit},
		{"0o17", token.IntLit},
		{"3i64", token.IntLit},
		{"7_usize", token.IntLit},
		{"1.5", token.FloatLit},
		{"1e3", token.FloatLit},
		{"2.5E-2", token.FloatLit},
		{"1f32", token.FloatLit},
		{"1.0f64", token.FloatLit},
	}
	for _, tc := range cases {
		toks := expectKinds(t, tc.in, tc.kind)
		if toks[0].Text != tc.in {
			t.Fatalf("%q: text %q", tc.in, toks[0].Text)
		}
	}
}

func TestRangeAfterInteger(t *testing.T) {
	expectKinds(t, "1..2", token.IntLit, token.DotDot, token.IntLit)
	expectKinds(t, "t.0.1", token.Ident, token.Dot, token.FloatLit)
}

func TestBadSuffix(t *testing.T) {
	if err := lexErr(t, "3abc"); err.Error() != "invalid suffix `abc` for number literal" {
		t.Fatalf("unexpected error %q", err)
	}
	if err := lexErr(t, "1.5i32"); err.Error() != "invalid suffix `i32` for float literal" {
		t.Fatalf("unexpected error %q", err)
	}
}

func TestStringsAndChars(t *testing.T) {
	toks := expectKinds(t, `"a\tb\n" 'x' '\''`, token.StringLit, token.CharLit, token.CharLit)
	if toks[0].Text != "a\tb\n" {
		t.Fatalf("unescape failed: %q", toks[0].Text)
	}
	if toks[1].Text != "x" || toks[2].Text != "'" {
		t.Fatalf("char values: %q %q", toks[1].Text, toks[2].Text)
	}
	if toks[0].Span.Len() != 8 {
		t.Fatalf("span should cover the quoted lexeme, got %v", toks[0].Span)
	}
}

func TestStringIsNFCNormalized(t *testing.T) {
	// e + combining acute accent
	toks := expectKinds(t, "\"e\u0301\"", token.StringLit)
	if toks[0].Text != "\u00e9" {
		t.Fatalf("expected NFC form, got %q", toks[0].Text)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	expectKinds(t, "a // line\n/* block /* nested */ still */ b", token.Ident, token.Ident)
}

func TestLexErrors(t *testing.T) {
	cases := map[string]string{
		"let $a":      "unknown character",
		`"abc`:        "unterminated double quote string",
		"/* open":     "unterminated block comment",
		`"\q"`:        "unknown character escape",
		"''":          "empty character literal",
		"0x":          "missing digits after integer base prefix",
		"'ab'":        "unterminated character literal",
	}
	for in, want := range cases {
		if err := lexErr(t, in); err.Error() != want {
			t.Fatalf("%q: expected %q, got %q", in, want, err.Error())
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("p.rs", []byte("a b"))))
	if lx.Peek().Text != "a" || lx.Next().Text != "a" || lx.Next().Text != "b" {
		t.Fatalf("peek consumed a token")
	}
	if lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatalf("EOF must be sticky")
	}
}
