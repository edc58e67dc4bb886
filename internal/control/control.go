// Package control holds the cooperative control-plane primitives shared
// across a driver run: the found-flag latch, the batched attempts counter,
// and the process-wide pause flag.
package control

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausePollInterval is how often a paused worker re-checks the pause flag.
const PausePollInterval = 50 * time.Millisecond

// Found is a latch that transitions false->true exactly once per run, with
// the winning password written before the flag is observed true by any
// other reader. Multiple workers may race to claim success; only the first
// is recorded, matching the spec's "idempotent under races" requirement.
type Found struct {
	mu       sync.Mutex
	flag     atomic.Bool
	password string
}

// TrySet attempts to latch password as the result. It returns true only
// for the caller that actually wins the race; later callers (including
// ones racing with the same password) get false and must not act on it
// again.
func (f *Found) TrySet(password string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.flag.Load() {
		return false
	}
	f.password = password
	f.flag.Store(true)
	return true
}

// Is reports whether the flag has latched.
func (f *Found) Is() bool { return f.flag.Load() }

// Password returns the latched password, or "" if not yet found.
func (f *Found) Password() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.password
}

// Counter is a batched, relaxed-ordering attempts counter: workers
// accumulate locally and flush in fixed-size batches to keep cache-line
// contention bounded, per spec.md §4.8.
type Counter struct {
	total atomic.Uint64
}

// Add adds n attempts to the shared total. Safe for concurrent use.
func (c *Counter) Add(n uint64) {
	if n != 0 {
		c.total.Add(n)
	}
}

// Load returns the current total. Monitoring only — relaxed ordering, no
// happens-before guarantee relative to any particular Add.
func (c *Counter) Load() uint64 { return c.total.Load() }

// BatchFlusher accumulates a local count and flushes it to a shared
// Counter every FlushEvery attempts, with any residual flushed explicitly
// on Close. This is the mechanism spec.md §4.8 calls "batch flushing".
type BatchFlusher struct {
	counter *Counter
	local   atomic.Uint64
}

// FlushEvery is the batch size at which a worker's local attempt count is
// flushed to the shared counter.
const FlushEvery = 1 << 11

// NewBatchFlusher returns a flusher that accumulates into counter.
func NewBatchFlusher(counter *Counter) *BatchFlusher {
	return &BatchFlusher{counter: counter}
}

// Tick records one attempt, flushing to the shared counter every
// FlushEvery calls.
func (b *BatchFlusher) Tick() {
	if b.local.Add(1) >= FlushEvery {
		b.counter.Add(b.local.Swap(0))
	}
}

// Add records n attempts at once (used once per odometer chunk with the
// number of candidates checked in it), flushing immediately since n is
// already a batch-sized unit of work.
func (b *BatchFlusher) Add(n uint64) {
	b.local.Add(n)
	b.counter.Add(b.local.Swap(0))
}

// Close flushes any residual local count on worker exit.
func (b *BatchFlusher) Close() {
	b.counter.Add(b.local.Swap(0))
}

// Pause is a process-wide, asynchronously-set pause flag. It has process
// lifetime by design (spec.md §5 "Global state") rather than being scoped
// to one run.
type Pause struct {
	paused atomic.Bool
}

// GlobalPause is the one pause flag with process lifetime; engine.SetPause
// and engine.IsPaused operate on this instance so pause state survives
// across runs, unlike the found-flag and attempts counter which are
// scoped to a single Start call.
var GlobalPause Pause

// Set latches or clears the pause flag. Calling Set(true) twice in a row
// is idempotent: the second call is a no-op observably.
func (p *Pause) Set(v bool) { p.paused.Store(v) }

// Is reports whether the flag is currently set.
func (p *Pause) Is() bool { return p.paused.Load() }

// Wait blocks the calling goroutine while the flag is set, polling every
// PausePollInterval, and returns early if found becomes set while waiting
// so a worker can exit promptly instead of waiting out a pause.
func (p *Pause) Wait(found *Found) {
	for p.Is() && !found.Is() {
		time.Sleep(PausePollInterval)
	}
}
