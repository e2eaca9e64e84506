package fuzztests

import (
	"testing"

	"rcc/internal/lexer"
	"rcc/internal/source"
	"rcc/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input, maxFuzzInput)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.rs", input))

		toks, err := lexer.Tokenize(file)
		if err != nil {
			return
		}
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("token stream must end with EOF")
		}
		var prevEnd uint32
		for _, tok := range toks {
			if tok.Span.Start < prevEnd {
				t.Fatalf("token %v overlaps the previous one", tok.Span)
			}
			prevEnd = tok.Span.End
		}
	})
}
