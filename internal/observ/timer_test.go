package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.Begin("parse").End("3 items")
	tm.Add("lower", 2*time.Millisecond)
	tm.Add("lower", 3*time.Millisecond)

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[1].Name != "lower" || report.Phases[1].DurationMS != 5 {
		t.Fatalf("unexpected lower phase %+v", report.Phases[1])
	}
	if report.TotalMS < 5 {
		t.Fatalf("total %.2f below summed phases", report.TotalMS)
	}
	var sb strings.Builder
	if err := tm.WriteSummary(&sb, "timings"); err != nil {
		t.Fatalf("summary: %v", err)
	}
	sum := sb.String()
	if !strings.HasPrefix(sum, "timings:\n") || !strings.Contains(sum, "// 3 items") || !strings.Contains(sum, "total") {
		t.Fatalf("summary = %q", sum)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Begin("x").End("")
	tm.Add("y", time.Second)
}
