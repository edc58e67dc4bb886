// Package reporter runs the background progress-publishing goroutine used
// by a crack run: on a fixed cadence it samples the shared attempts
// counter and the most recent candidate, derives a rate, and pushes a
// progress event to a host-supplied sink. Grounded on the teacher's
// Runner.Start "Stats publisher" goroutine (a time.Ticker plus a
// non-blocking channel send), generalized to emit the engine's
// CrackProgress shape instead of a raw per-thread []uint64.
package reporter

import (
	"sync/atomic"
	"time"

	"github.com/vantasec/zcrack/internal/control"
)

// Phase is the closed set of progress-event phases.
type Phase string

const (
	PhaseDictionary Phase = "Dictionary"
	PhaseRunning    Phase = "Running"
	PhaseDone       Phase = "Done"
	PhaseError      Phase = "Error"
)

// Progress is one emitted event. Fields mirror spec.md's CrackProgress.
type Progress struct {
	Phase     Phase
	Attempts  uint64
	Sample    string
	Elapsed   time.Duration
	Rate      float64
	Password  string
	Err       error
}

// Sample is a shared slot holding the most recently attempted candidate,
// updated by workers and read by the reporter each tick. Updates are not
// synchronized with attempt-counting: the sample is advisory display data,
// never used for correctness.
type Sample struct {
	value atomic.Value
}

// Set records candidate as the latest sampled attempt.
func (s *Sample) Set(candidate string) { s.value.Store(candidate) }

// Get returns the most recently sampled candidate, or "" if none yet.
func (s *Sample) Get() string {
	v, _ := s.value.Load().(string)
	return v
}

// PhaseTracker is a shared slot the driver updates at phase transitions
// (Dictionary, then Running for the brute-force phase) and the reporter
// reads each tick, so the Dictionary tag spec.md §3 defines is actually
// reachable by a host instead of the reporter always emitting Running.
type PhaseTracker struct {
	value atomic.Value
}

// Set records the current phase.
func (p *PhaseTracker) Set(phase Phase) { p.value.Store(phase) }

// Get returns the current phase, defaulting to PhaseRunning before the
// driver has recorded anything.
func (p *PhaseTracker) Get() Phase {
	v, ok := p.value.Load().(Phase)
	if !ok {
		return PhaseRunning
	}
	return v
}

// MinCadence and MaxCadence are the 200-500 ms range DefaultCadence is
// chosen from; DefaultCadence is used when the driver does not override
// it. New does not clamp a caller-supplied cadence to this range.
const (
	MinCadence     = 200 * time.Millisecond
	MaxCadence     = 500 * time.Millisecond
	DefaultCadence = 250 * time.Millisecond
)

// Reporter wakes on Cadence, reads Counter/Sample/start time, and sends a
// Progress event to Sink. It exits as soon as Found latches; the driver,
// not the reporter, emits the terminal PhaseDone event.
type Reporter struct {
	Counter *control.Counter
	Sample  *Sample
	Phase   *PhaseTracker
	Found   *control.Found
	Pause   *control.Pause
	Sink    chan<- Progress
	Cadence time.Duration
	start   time.Time
}

// New builds a Reporter bound to the given shared state, defaulting
// Cadence to DefaultCadence when cadence is zero. phase may be nil, in
// which case every event is tagged PhaseRunning.
func New(counter *control.Counter, sample *Sample, phase *PhaseTracker, found *control.Found, pause *control.Pause, sink chan<- Progress, cadence time.Duration) *Reporter {
	if cadence <= 0 {
		cadence = DefaultCadence
	}
	return &Reporter{
		Counter: counter,
		Sample:  sample,
		Phase:   phase,
		Found:   found,
		Pause:   pause,
		Sink:    sink,
		Cadence: cadence,
	}
}

// Run blocks, publishing progress events until Found latches or stop is
// closed. Call it from its own goroutine. The caller must close stop once
// the run concludes for any reason — including exhaustion, where Found
// never latches — so this goroutine does not outlive the run it reports on.
func (r *Reporter) Run(stop <-chan struct{}) {
	r.start = time.Now()
	ticker := time.NewTicker(r.Cadence)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if r.Found.Is() {
				return
			}
			r.emit()
		}
	}
}

func (r *Reporter) emit() {
	elapsed := time.Since(r.start)
	attempts := r.Counter.Load()

	var rate float64
	if !r.Pause.Is() && elapsed > 0 {
		rate = float64(attempts) / elapsed.Seconds()
	}

	phase := PhaseRunning
	if r.Phase != nil {
		phase = r.Phase.Get()
	}

	p := Progress{
		Phase:    phase,
		Attempts: attempts,
		Sample:   r.Sample.Get(),
		Elapsed:  elapsed,
		Rate:     rate,
	}
	send(r.Sink, p)
}

// send is a non-blocking publish: a slow or absent consumer must never
// stall a worker, matching spec.md's "events are small, back-pressure is
// not expected, host must tolerate loss" contract.
func send(sink chan<- Progress, p Progress) {
	select {
	case sink <- p:
	default:
	}
}
