package fuzztests

import (
	"context"
	"testing"

	"rcc/internal/cfg"
	"rcc/internal/codegen"
	"rcc/internal/driver"
	"rcc/internal/ir"
)

// FuzzPipeline compiles arbitrary input at both levels. Errors are fine;
// panics and malformed graphs are not.
func FuzzPipeline(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input, maxFuzzInput)
		for _, level := range []ir.OptimizeLevel{ir.OptZero, ir.OptOne} {
			res, err := driver.CompileSource(context.Background(), "fuzz.rs", input,
				driver.Options{Level: level, Target: codegen.Riscv32})
			if err != nil {
				continue
			}
			if err := cfg.ValidateIR(res.CFG); err != nil {
				t.Fatalf("level %v: invalid CFG: %v", level, err)
			}
			for _, fr := range res.Frames {
				if fr.Size%16 != 0 {
					t.Fatalf("level %v: frame of %s is %d bytes, not 16-aligned", level, fr.Func, fr.Size)
				}
			}
		}
	})
}
