package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq orders events across goroutines.
func NextSeq() uint64 { return seqCounter.Add(1) }

func NextSpanID() uint64 { return spanCounter.Add(1) }

// goroutineID reads N from the "goroutine N [...]" stack header. Parallel
// directory builds use it to tell files apart in a trace.
func goroutineID() uint64 {
	var buf [64]byte
	header := bytes.TrimPrefix(buf[:runtime.Stack(buf[:], false)], []byte("goroutine "))
	n, _, ok := bytes.Cut(header, []byte(" "))
	if !ok {
		return 0
	}
	gid, err := strconv.ParseUint(string(n), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span brackets one pass, file or command. A Span whose tracer ignores its
// scope is inert: End only measures time.
type Span struct {
	tracer  Tracer
	base    Event // identity fields shared by the begin and end events
	started time.Time
}

// Begin opens a span under parent (0 for a root).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	now := time.Now()
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop, started: now}
	}
	s := &Span{
		tracer: t,
		base: Event{
			Scope:    scope,
			SpanID:   NextSpanID(),
			ParentID: parent,
			GID:      goroutineID(),
			Name:     name,
		},
		started: now,
	}
	s.emit(KindSpanBegin, now, "")
	return s
}

func (s *Span) emit(kind Kind, at time.Time, detail string) {
	ev := s.base
	ev.Kind = kind
	ev.Time = at
	ev.Seq = NextSeq()
	ev.Detail = detail
	s.tracer.Emit(&ev)
}

// End closes the span with detail (an item count, "cached", an error) and
// returns its duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	now := time.Now()
	if s.tracer != nil && s.tracer.Enabled() {
		s.emit(KindSpanEnd, now, detail)
	}
	return now.Sub(s.started)
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return s
	}
	if s.base.Extra == nil {
		s.base.Extra = make(map[string]string)
	}
	s.base.Extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.base.SpanID
}

// Point records an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      goroutineID(),
		Name:     name,
		Detail:   detail,
	})
}
