package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelGatesScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeModule, false},
		{LevelDetail, ScopeModule, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
		{LevelError, ScopeNode, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestStreamSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), tr)

	ctx, outer := BeginCtx(ctx, ScopeDriver, "cfg")
	_, inner := BeginCtx(ctx, ScopePass, "parse")
	inner.WithExtra("tokens", "12").End("")
	_, hidden := BeginCtx(ctx, ScopeNode, "fn main")
	hidden.End("")
	outer.End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasSuffix(lines[0], "→ cfg") {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "  → parse") {
		t.Fatalf("line 1 = %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "  ← parse {tokens=12}") {
		t.Fatalf("line 2 = %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "← cfg (ok)") {
		t.Fatalf("line 3 = %q", lines[3])
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeNode, "lower fn", "main", 7)
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["kind"] != "point" || got["name"] != "lower fn" || got["detail"] != "main" || got["parent_id"] != float64(7) {
		t.Fatalf("unexpected event %v", got)
	}
}

func TestRingKeepsNewest(t *testing.T) {
	r := NewRingTracer(3, LevelError)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeNode, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 || snap[0].Name != "c" || snap[2].Name != "e" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if r.Dropped() != 2 {
		t.Fatalf("dropped = %d", r.Dropped())
	}
	if !strings.HasPrefix(buf.String(), "... 2 earlier events dropped\n") || strings.Count(buf.String(), "\n") != 4 {
		t.Fatalf("dump = %q", buf.String())
	}
}

func TestNewSelectsStorage(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off tracer: %v %v", tr, err)
	}
	tr, err = New(Config{Level: LevelError, Mode: ModeStream})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := Ring(tr); !ok {
		t.Fatalf("error level must record into a ring")
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	Begin(tr, ScopePass, "lex", 0).End("")
	ring, ok := Ring(tr)
	if !ok || len(ring.Snapshot()) != 2 {
		t.Fatalf("ring missing events")
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("stream = %q", buf.String())
	}
}

func TestNopIsInert(t *testing.T) {
	span := Begin(Nop, ScopeDriver, "x", 0)
	if span.ID() != 0 {
		t.Fatalf("nop span has id %d", span.ID())
	}
	span.WithExtra("k", "v").End("")
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
}
