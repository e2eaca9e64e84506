package buildpipeline

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDisplayFiles(t *testing.T) {
	base := t.TempDir()
	got := DisplayFiles([]string{
		filepath.Join(base, "src", "b.rs"),
		filepath.Join(base, "a.rs"),
		filepath.Join(base, "src", "..", "a.rs"),
		"",
	}, base)
	want := []string{"a.rs", "src/b.rs"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DisplayFiles = %v, want %v", got, want)
	}
}

func TestRecorder(t *testing.T) {
	var rec Recorder
	sink := Multi(&rec, nil)
	EmitQueued(sink, []string{"a.rs", "b.rs"})
	sink.OnEvent(Event{File: "a.rs", Stage: StageParse, Status: StatusDone, Elapsed: 2 * time.Millisecond})
	sink.OnEvent(Event{File: "b.rs", Stage: StageParse, Status: StatusDone, Elapsed: 3 * time.Millisecond})

	if n := len(rec.Events()); n != 4 {
		t.Fatalf("expected 4 events, got %d", n)
	}
	last, ok := rec.Last("a.rs")
	if !ok || last.Status != StatusDone {
		t.Fatalf("unexpected last event %+v", last)
	}
	timings := rec.Timings()
	if !timings.Has(StageParse) || timings.Duration(StageParse) != 5*time.Millisecond {
		t.Fatalf("parse timing = %v", timings.Duration(StageParse))
	}
	if timings.Has(StageLex) {
		t.Fatalf("queued events must not record timings")
	}
}

func TestDisplayNameOutsideBase(t *testing.T) {
	base := t.TempDir()
	outside := filepath.Join(filepath.Dir(base), "other", "c.rs")
	if got := DisplayName(outside, base); got != filepath.ToSlash(outside) {
		t.Fatalf("DisplayName = %q", got)
	}
	if got := DisplayName("x/./y.rs", ""); got != "x/y.rs" {
		t.Fatalf("DisplayName without base = %q", got)
	}
}
