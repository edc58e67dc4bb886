package engine

import (
	"time"

	"github.com/vantasec/zcrack/internal/reporter"
)

// Phase is the closed set of progress-event phases a CrackProgress event
// can carry, re-exported from internal/reporter so callers never need to
// import an internal package to read an event's Phase field.
type Phase = reporter.Phase

const (
	PhaseDictionary = reporter.PhaseDictionary
	PhaseRunning    = reporter.PhaseRunning
	PhaseDone       = reporter.PhaseDone
	PhaseError      = reporter.PhaseError
)

// CrackProgress is one event pushed to the sink supplied to Start:
// attempt counter, most recently sampled candidate, elapsed wall time,
// derived rate, and a phase tag. The host must tolerate loss or bursts of
// duplicate events — the sink channel is sized and drained non-blocking.
type CrackProgress struct {
	Phase    Phase
	Attempts uint64
	Sample   string
	Elapsed  time.Duration
	Rate     float64
	Password string
	Err      error
}

func fromReporter(p reporter.Progress) CrackProgress {
	return CrackProgress{
		Phase:    p.Phase,
		Attempts: p.Attempts,
		Sample:   p.Sample,
		Elapsed:  p.Elapsed,
		Rate:     p.Rate,
	}
}

// SinkCapacity is the buffered channel size Start uses for its progress
// sink, matching the teacher's statsCh capacity of 8.
const SinkCapacity = 8
