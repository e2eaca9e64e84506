// Package buildpipeline is the progress protocol between the driver and the
// build UI: which file is in which compile stage.
package buildpipeline

import "time"

// Stage names one compile phase of a file.
type Stage string

const (
	StageLex     Stage = "lex"
	StageParse   Stage = "parse"
	StageResolve Stage = "resolve"
	StageLower   Stage = "lower"
	StageCFG     Stage = "cfg"
	StageEmit    Stage = "emit" // msgpack CFG IR written for the backend
)

// Stages is the pipeline order.
var Stages = []Stage{StageLex, StageParse, StageResolve, StageLower, StageCFG, StageEmit}

// Status is where a file stands within its current stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusCached  Status = "cached"
	StatusError   Status = "error"
)

// Event is one progress report. Elapsed is set on Done and Error.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink receives events, concurrently when the driver runs more than
// one job.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings sums stage durations across files. The zero value is ready to use.
type Timings map[Stage]time.Duration

func (t Timings) Has(stage Stage) bool {
	_, ok := t[stage]
	return ok
}

func (t Timings) Duration(stage Stage) time.Duration { return t[stage] }
