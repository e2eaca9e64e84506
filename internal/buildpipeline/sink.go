package buildpipeline

import (
	"maps"
	"sync"
)

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// FuncSink adapts a function.
type FuncSink func(Event)

func (f FuncSink) OnEvent(evt Event) {
	if f != nil {
		f(evt)
	}
}

// Recorder keeps every event and the latest status per file. It also sums
// the elapsed time of finished stages.
type Recorder struct {
	mu      sync.Mutex
	events  []Event
	last    map[string]Event
	timings Timings
}

func (r *Recorder) OnEvent(evt Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	if r.last == nil {
		r.last = make(map[string]Event)
	}
	r.last[evt.File] = evt
	if evt.Status == StatusDone && evt.Elapsed > 0 {
		if r.timings == nil {
			r.timings = make(Timings)
		}
		r.timings[evt.Stage] += evt.Elapsed
	}
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Last returns the latest event for file.
func (r *Recorder) Last(file string) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	evt, ok := r.last[file]
	return evt, ok
}

// Timings returns the summed stage durations.
func (r *Recorder) Timings() Timings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.timings)
}

// Multi fans events out to every sink.
func Multi(sinks ...ProgressSink) ProgressSink {
	return FuncSink(func(evt Event) {
		for _, s := range sinks {
			if s != nil {
				s.OnEvent(evt)
			}
		}
	})
}
