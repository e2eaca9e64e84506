package trace

import (
	"fmt"
	"strings"
)

// Level controls how much a tracer records.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // record into the ring, dump on failure
	LevelPhase        // commands and compile phases
	LevelDetail       // plus per-file spans
	LevelDebug        // plus per-function events
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// deepest scope recorded at each level; 0 records nothing
var levelMaxScope = [...]Scope{0, ScopeNode, ScopePass, ScopeModule, ScopeNode}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by String, case-insensitively.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level %q (want one of %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope are recorded at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(levelMaxScope) && scope <= levelMaxScope[l]
}
