package trace

import (
	"io"
	"sync"
)

// StreamTracer writes each event to w as soon as it is emitted.
type StreamTracer struct {
	level  Level
	format Format

	mu       sync.Mutex
	w        io.Writer
	writeErr error
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: w, level: level, format: format}
}

// Emit never fails the caller; the first write error surfaces from Flush.
func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	line := FormatEvent(ev, t.format)
	t.mu.Lock()
	_, err := t.w.Write(line)
	if t.writeErr == nil {
		t.writeErr = err
	}
	t.mu.Unlock()
}

type flusher interface{ Flush() error }

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return err
		}
	}
	return t.writeErr
}

func (t *StreamTracer) Close() error {
	err := t.Flush()
	if c, ok := t.w.(io.Closer); ok && err == nil {
		err = c.Close()
	}
	return err
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
