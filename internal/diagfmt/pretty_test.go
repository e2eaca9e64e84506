package diagfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"rcc/internal/diag"
	"rcc/internal/lexer"
	"rcc/internal/source"
)

func TestPrettyCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.rs", []byte("fn f() { x; }\n"))
	err := diag.At(source.Span{File: id, Start: 9, End: 10}, "identifier `x` not found").InPhase(diag.PhaseResolve)

	var buf bytes.Buffer
	if werr := Pretty(&buf, fmt.Errorf("main.rs: %w", err), fs, PrettyOpts{}); werr != nil {
		t.Fatalf("pretty: %v", werr)
	}
	want := "main.rs:1:10: error[resolve]: identifier `x` not found\n" +
		"1 | fn f() { x; }\n" +
		"  |          ^\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyWideRunesAndContext(t *testing.T) {
	fs := source.NewFileSet()
	src := "fn main() {\n    let s = \"日本\"; s + 1;\n}\n"
	id := fs.AddVirtual("/work/src/main.rs", []byte(src))
	start := uint32(strings.Index(src, "s + 1")) //nolint:gosec // small test input
	err := diag.At(source.Span{File: id, Start: start, End: start + 5}, "binary op mismatch")

	var buf bytes.Buffer
	if werr := Pretty(&buf, err, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename}); werr != nil {
		t.Fatalf("pretty: %v", werr)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, two source lines and a caret line, got:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[0], "main.rs:2:") || !strings.HasSuffix(lines[0], "error: binary op mismatch") {
		t.Fatalf("header = %q", lines[0])
	}
	// The two wide runes take four columns.
	wantCaret := "  | " + strings.Repeat(" ", len("    let s = \"")+4+len("\"; ")) + "^~~~~"
	if lines[3] != wantCaret {
		t.Fatalf("caret line = %q, want %q", lines[3], wantCaret)
	}
}

func TestPrettyWithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, errors.New("open x.rs: no such file"), nil, PrettyOpts{}); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	if buf.String() != "error: open x.rs: no such file\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, errors.New("boom"), nil, PrettyOpts{Color: true}); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes, got %q", buf.String())
	}
}

func TestPathModes(t *testing.T) {
	cases := []struct {
		mode PathMode
		want string
	}{
		{PathModeRelative, "src/test.rs"},
		{PathModeBasename, "test.rs"},
		{PathModeAbsolute, "/home/user/project/src/test.rs"},
		{PathModeAuto, "src/test.rs"},
	}
	for _, tc := range cases {
		if got := displayPath("/home/user/project/src/test.rs", tc.mode, "/home/user/project"); got != tc.want {
			t.Fatalf("mode %d: got %q, want %q", tc.mode, got, tc.want)
		}
	}
	if got := displayPath("/elsewhere/a.rs", PathModeAuto, "/home/user/project"); got != "/elsewhere/a.rs" {
		t.Fatalf("auto outside base = %q", got)
	}
}

func TestJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.rs", []byte("fn f() {\n  [1];\n}"))
	errs := []error{
		diag.Unimplemented(source.Span{File: id, Start: 11, End: 14}, "array").InPhase(diag.PhaseResolve),
		errors.New("plain"),
	}
	var buf bytes.Buffer
	if err := JSON(&buf, errs, fs, JSONOpts{}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var got []ErrorJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	first := got[0]
	if first.Message != "unimplemented: array" || !first.Unimplemented || first.Phase != "resolve" {
		t.Fatalf("unexpected first entry %+v", first)
	}
	if first.Location == nil || first.Location.StartLine != 2 || first.Location.StartCol != 3 {
		t.Fatalf("unexpected location %+v", first.Location)
	}
	if got[1].Location != nil || got[1].Message != "plain" {
		t.Fatalf("unexpected second entry %+v", got[1])
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.rs", []byte("let x"))
	toks, err := lexer.Tokenize(fs.Get(id))
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatalf("format: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 || !strings.Contains(lines[1], `Ident`) || !strings.Contains(lines[1], "at 1:5-1:6") {
		t.Fatalf("unexpected pretty tokens:\n%s", buf.String())
	}
	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatalf("format json: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 3 || out[0].Class != "keyword" || out[1].Class != "ident" || out[2].Kind != "EOF" {
		t.Fatalf("unexpected json tokens %+v", out)
	}
}
