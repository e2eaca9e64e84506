package trace

import "time"

// Kind tells span boundaries from instantaneous points.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	return nameOf(uint8(k), "begin", "end", "point")
}

// Scope is the granularity of an event. Coarser scopes compare lower.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one CLI command
	ScopePass                    // one compile phase of one file
	ScopeModule                  // one source file
	ScopeNode                    // one function
)

func (s Scope) String() string {
	return nameOf(uint8(s), "driver", "pass", "module", "node")
}

func nameOf(v uint8, names ...string) string {
	if v == 0 || int(v) > len(names) {
		return "unknown"
	}
	return names[v-1]
}

// Event is one record emitted by a tracer.
type Event struct {
	Time     time.Time
	Seq      uint64 // increases across the whole tracer
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	GID      uint64
	Name     string
	Detail   string
	Extra    map[string]string
}
