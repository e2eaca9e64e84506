// Package observ measures how long compile phases take.
package observ

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Phase is one timed compile phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects phases, possibly from several goroutines. A nil *Timer
// accepts every call and records nothing.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{} }

// Mark is a running phase returned by Begin.
type Mark struct {
	t   *Timer
	idx int
}

// Begin starts the phase name; call End on the result to stop it.
func (t *Timer) Begin(name string) Mark {
	if t == nil {
		return Mark{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return Mark{t: t, idx: len(t.phases) - 1}
}

// End stops the phase and attaches note to it.
func (m Mark) End(note string) {
	if m.t == nil {
		return
	}
	m.t.mu.Lock()
	defer m.t.mu.Unlock()
	p := &m.t.phases[m.idx]
	p.Dur, p.Note = time.Since(p.Start), note
}

// Add folds an externally measured duration into the phase name, creating
// it on first use.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.phases {
		if t.phases[i].Name == name {
			t.phases[i].Dur += d
			return
		}
	}
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now(), Dur: d})
}

// PhaseReport is the serialized form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report lists the phases in start order with durations in milliseconds.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := Report{Phases: make([]PhaseReport, 0, len(t.phases))}
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: ms(p.Dur), Note: p.Note})
	}
	r.TotalMS = ms(total)
	return r
}

// WriteSummary prints title, then one aligned row per phase and a total row.
func (t *Timer) WriteSummary(w io.Writer, title string) error {
	r := t.Report()
	var b strings.Builder
	b.WriteString(title + ":\n")
	row := func(name string, v float64, note string) {
		fmt.Fprintf(&b, "  %-12s %8.2f ms", name, v)
		if note != "" {
			b.WriteString("  // " + note)
		}
		b.WriteByte('\n')
	}
	for _, p := range r.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", r.TotalMS, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
