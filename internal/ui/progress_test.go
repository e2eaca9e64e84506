package ui

import (
	"errors"
	"strings"
	"testing"

	"rcc/internal/buildpipeline"
)

func TestProgressFollowsEvents(t *testing.T) {
	events := make(chan buildpipeline.Event)
	m := NewProgressModel("building demo", []string{"a.rs", "b.rs"}, events).(*progressModel)

	m.Update(eventMsg{File: "a.rs", Stage: buildpipeline.StageResolve, Status: buildpipeline.StatusWorking})
	if got := m.percent(); got != 2.0/6/2 {
		t.Fatalf("percent = %v", got)
	}
	m.Update(eventMsg{File: "a.rs", Stage: buildpipeline.StageEmit, Status: buildpipeline.StatusDone})
	m.Update(eventMsg{File: "b.rs", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusError, Err: errors.New("bad")})
	m.Update(eventMsg{File: "b.rs", Stage: buildpipeline.StageLower, Status: buildpipeline.StatusWorking})
	m.Update(eventMsg{File: "unknown.rs", Stage: buildpipeline.StageLex, Status: buildpipeline.StatusWorking})

	if m.items[1].status != buildpipeline.StatusError {
		t.Fatalf("an errored file must stay errored, got %s", m.items[1].status)
	}
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v", got)
	}
	m.Update(doneMsg{})
	view := m.View()
	for _, want := range []string{"done: building demo (1 failed)", "done", "error", "a.rs", "b.rs"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view misses %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("src/very/long/path.rs", 10); got != "src/ver..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short.rs", 20); got != "short.rs" {
		t.Fatalf("truncate = %q", got)
	}
}
