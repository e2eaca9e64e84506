package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with args; flag values persist between
// calls, so every test sets the flags it relies on.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--color", "off"}, args...))
	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestCFGCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.rs")
	writeFile(t, path, "fn main() { let mut i = 0; while i < 10 { i = i + 1; } }\n")

	out, stderr, err := runCLI(t, "cfg", "--opt", "1", "--liveness", "--frames", path)
	if err != nil {
		t.Fatalf("cfg: %v\n%s", err, stderr)
	}
	for _, want := range []string{".L2_1:", "liveness main", "max pressure:", "frame main:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output misses %q:\n%s", want, out)
		}
	}
}

func TestIRCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.rs")
	writeFile(t, path, "fn main() { let a = 1 + 2; }\n")

	out, stderr, err := runCLI(t, "ir", "--opt", "0", path)
	if err != nil {
		t.Fatalf("ir: %v\n%s", err, stderr)
	}
	if !strings.Contains(out, "a_2") {
		t.Fatalf("ir output misses the local:\n%s", out)
	}
}

func TestCheckReportsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.rs")
	writeFile(t, path, "fn main() {\n    let y = x;\n}\n")

	_, stderr, err := runCLI(t, "check", "--format", "pretty", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	for _, want := range []string{"bad.rs:2:13:", "error[resolve]:", "identifier `x` not found", "^"} {
		if !strings.Contains(stderr, want) {
			t.Fatalf("stderr misses %q:\n%s", want, stderr)
		}
	}
}

func TestCheckJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.rs")
	writeFile(t, path, "fn main() { let y = x; }\n")

	out, _, err := runCLI(t, "check", "--format", "json", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.Contains(out, `"phase": "resolve"`) || !strings.Contains(out, `"start_line": 1`) {
		t.Fatalf("unexpected json:\n%s", out)
	}
}

func TestBuildCommand(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, manifestName), "[package]\nname = \"demo\"\n")
	writeFile(t, filepath.Join(root, "src", "a.rs"), "fn main() { let a = 1; }\n")
	writeFile(t, filepath.Join(root, "src", "sub", "b.rs"), "fn f(x: i32) -> i32 { x * 2 }\n")
	out := filepath.Join(root, "out")

	stdout, stderr, err := runCLI(t, "build", "--ui", "off", "--cache=false", "--jobs", "2", "--out", out, filepath.Join(root, "src"))
	if err != nil {
		t.Fatalf("build: %v\n%s", err, stderr)
	}
	for _, rel := range []string{"a.cfg.mp", filepath.Join("sub", "b.cfg.mp")} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Fatalf("missing output %s: %v", rel, err)
		}
	}
	if !strings.Contains(stdout, "built 2 of 2 files (0 cached, 0 failed)") {
		t.Fatalf("unexpected summary: %q", stdout)
	}
}

func TestBuildReportsFailedFiles(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "ok.rs"), "fn main() {}\n")
	writeFile(t, filepath.Join(src, "bad.rs"), "fn main() { break; }\n")
	out := filepath.Join(t.TempDir(), "out")

	stdout, stderr, err := runCLI(t, "build", "--ui", "off", "--cache=false", "--jobs", "1", "--out", out, src)
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.Contains(stderr, "bad.rs") {
		t.Fatalf("stderr misses the failed file:\n%s", stderr)
	}
	if !strings.Contains(stdout, "built 1 of 2 files (0 cached, 1 failed)") {
		t.Fatalf("unexpected summary: %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(out, "ok.cfg.mp")); err != nil {
		t.Fatalf("ok.rs should still be written: %v", err)
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := runCLI(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, `"version":`) {
		t.Fatalf("unexpected output: %s", out)
	}
}
