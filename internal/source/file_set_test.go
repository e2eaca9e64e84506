package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()
	id1 := fs.Add("main.rs", []byte("fn main() {}"), 0)
	id2 := fs.Add("main.rs", []byte("fn main() { 1; }"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("unexpected ids %d, %d", id1, id2)
	}
	latest, ok := fs.GetLatest("./main.rs")
	if !ok || latest != id2 {
		t.Fatalf("expected latest %d, got %d (ok=%v)", id2, latest, ok)
	}
	if got := string(fs.Get(id1).Content); got != "fn main() {}" {
		t.Fatalf("old version lost: %q", got)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.rs", []byte("ab\ncd\n\nef"))
	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start != tc.want {
			t.Fatalf("offset %d: expected %+v, got %+v", tc.off, tc.want, start)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x.rs", []byte("first\r\nsecond\nthird")))
	for n, want := range map[uint32]string{1: "first", 2: "second", 3: "third", 4: "", 0: ""} {
		if got := f.GetLine(n); got != want {
			t.Fatalf("line %d: expected %q, got %q", n, want, got)
		}
	}
}

func TestLoadStripsBOMAndCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.rs")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFfn a() {}\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "fn a() {}\n" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
}

func TestInternerEncounterOrder(t *testing.T) {
	in := NewInterner()
	a := in.Intern("hello")
	b := in.Intern("world")
	if a != 1 || b != 2 || in.Intern("hello") != a {
		t.Fatalf("unexpected ids %d %d", a, b)
	}
	if s := in.MustLookup(b); s != "world" {
		t.Fatalf("lookup mismatch %q", s)
	}
	if in.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", in.Len())
	}
}
