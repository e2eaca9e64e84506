package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10
	maxFuzzInput = 1 << 16
)

// languageSeeds cover each construct the front end accepts.
var languageSeeds = []string{
	"",
	"fn main() {}",
	"fn main() { let a = 2 + 3 + 4 * 1; }",
	"fn main() { let r = add(1, 2); }\nfn add(a: i32, b: i32) -> i32 { a + b }",
	"fn main() { let mut i = 0; while i < 10 { i = i + 1; } }",
	"fn f(c: bool) -> i32 { while c { return 1; } 2 }",
	"fn f() -> i32 { let x = loop { break 4; }; if x > 3 { x } else { 0 } }",
	"fn f() { let s = \"hi\\n\"; let c = 'x'; let p = &s; }",
	"const LIMIT: i32 = 10;\nstatic mut COUNT: u8 = 0;\nfn f() -> bool { LIMIT >= 3 && !false }",
	"fn f() { loop {} }",
	// malformed
	"fn f( { let",
	"fn f() { break; }",
	"fn f() -> i32 { true }",
	"fn f() { 'unterminated }",
	"/* open comment",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".rs" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

func clamp(src []byte, n int) []byte {
	if len(src) <= n {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:n]...)
}
