// Package driver runs the two-phase parallel search: a dictionary pass
// over mutated wordlist candidates, then a brute-force pass over the
// odometer's enumeration of each configured length. Grounded on the
// teacher's internal/cracker/runner.go Runner.Start — a jobs channel, a
// worker pool, a generator goroutine, and a sync.WaitGroup coordinating
// shutdown — generalized from one random-candidate generator into
// spec.md §4.8's two deterministic, chunk-partitioned, work-stealing
// phases.
package driver

import (
	"fmt"
	"runtime"
	"sync"

	charmlog "github.com/charmbracelet/log"

	"github.com/vantasec/zcrack/internal/control"
	"github.com/vantasec/zcrack/internal/dictionary"
	"github.com/vantasec/zcrack/internal/gpuoracle"
	"github.com/vantasec/zcrack/internal/header"
	"github.com/vantasec/zcrack/internal/odometer"
	"github.com/vantasec/zcrack/internal/oracle"
	"github.com/vantasec/zcrack/internal/reporter"
	"github.com/vantasec/zcrack/internal/verifier"
)

// PollInterval is how many candidates a worker checks between found-flag
// and pause-flag polls, per spec.md §4.8 ("every 2^9-2^13 iterations").
const PollInterval = 1 << 11

// BruteChunkSize is the number of odometer positions handed to a worker
// per work-stealing chunk, per spec.md §4.8 ("power of two in 2^12-2^16").
const BruteChunkSize = 1 << 14

// DictChunkSize bounds how many mutated words one worker claims at a time
// during the dictionary phase.
const DictChunkSize = 2048

// Config holds everything one Run call needs. The caller (engine) is
// responsible for producing the alphabet and locating the crypto header
// before calling Run.
type Config struct {
	Archive     []byte
	Header      header.CryptoHeader
	Alphabet    []byte
	MinLen      int
	MaxLen      int
	Workers     int
	CustomWords []string
	Dictionary  bool
	Backend     string // "cpu" (default) or "vulkan"

	Found   *control.Found
	Counter *control.Counter
	Pause   *control.Pause
	Sample  *reporter.Sample
	Phase   *reporter.PhaseTracker
	Sink    chan<- reporter.Progress

	Logger *charmlog.Logger
}

// Result is the outcome of a Run call.
type Result struct {
	Found    bool
	Password string
}

// Run executes the dictionary phase (if enabled) followed by the
// brute-force phase across every length in [MinLen, MaxLen], stopping as
// soon as a password is confirmed by the full verifier. It blocks the
// calling goroutine until the search concludes, matching spec.md §5's
// "the driver call blocks the caller's thread until completion".
func Run(cfg Config) (Result, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	v, err := verifier.New(cfg.Archive)
	if err != nil {
		return Result{}, fmt.Errorf("driver: %w", err)
	}

	backend := selectBackend(cfg)
	defer func() {
		if backend != nil {
			backend.Close()
		}
	}()

	w := &worker{
		target:  cfg.Header,
		verify:  v,
		backend: backend,
		found:   cfg.Found,
		sample:  cfg.Sample,
		flusher: control.NewBatchFlusher(cfg.Counter),
	}
	defer w.flusher.Close()

	if cfg.Dictionary {
		setPhase(cfg.Phase, reporter.PhaseDictionary)
		logPhase(cfg.Logger, "dictionary", workers)
		if res := runDictionaryPhase(cfg, workers, w); res.Found {
			return res, nil
		}
	}

	setPhase(cfg.Phase, reporter.PhaseRunning)
	logPhase(cfg.Logger, "brute-force", workers)
	for length := cfg.MinLen; length <= cfg.MaxLen; length++ {
		if cfg.Found.Is() {
			break
		}
		if res := runBruteForceLength(cfg, workers, w, length); res.Found {
			return res, nil
		}
	}

	if cfg.Found.Is() {
		return Result{Found: true, Password: cfg.Found.Password()}, nil
	}
	return Result{Found: false}, nil
}

func selectBackend(cfg Config) *gpuoracle.Backend {
	if cfg.Backend != "vulkan" {
		return nil
	}
	b, err := gpuoracle.New()
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("vulkan backend init failed, falling back to cpu", "err", err)
		}
		return nil
	}
	if cfg.Logger != nil {
		cfg.Logger.Info("using vulkan gpu backend")
	}
	return b
}

func logPhase(logger *charmlog.Logger, phase string, workers int) {
	if logger != nil {
		logger.Info("phase starting", "phase", phase, "workers", workers)
	}
}

func setPhase(tracker *reporter.PhaseTracker, phase reporter.Phase) {
	if tracker != nil {
		tracker.Set(phase)
	}
}

// worker holds the per-run state shared (read-only, or internally
// synchronized) by every goroutine: the target header, the full verifier,
// optional GPU backend, and the control-plane handles. flusher is shared
// across worker goroutines deliberately: BatchFlusher's Tick/Add methods
// only ever grow a local counter before flushing through Counter.Add,
// which is itself safe for concurrent use, so sharing one flusher trades a
// small amount of extra contention on its local field for a simpler call
// site than one flusher per goroutine would need.
type worker struct {
	target  header.CryptoHeader
	verify  *verifier.Verifier
	backend *gpuoracle.Backend

	found   *control.Found
	sample  *reporter.Sample
	flusher *control.BatchFlusher
}

// confirm runs the expensive verifier on a fast-oracle hit and, if it
// checks out, latches the found-flag. It returns true only for the
// goroutine that actually wins the race, matching the found-flag's
// documented first-writer-wins contract.
func (w *worker) confirm(password string) bool {
	ok, err := w.verify.Verify(password)
	if err != nil || !ok {
		return false
	}
	return w.found.TrySet(password)
}

func runDictionaryPhase(cfg Config, workers int, w *worker) Result {
	words := dictionary.Build(cfg.CustomWords)
	chunks := make(chan []string, workers*2)

	var producerWg sync.WaitGroup
	producerWg.Add(1)
	go func() {
		defer producerWg.Done()
		defer close(chunks)
		for i := 0; i < len(words); i += DictChunkSize {
			if cfg.Found.Is() {
				return
			}
			end := i + DictChunkSize
			if end > len(words) {
				end = len(words)
			}
			chunks <- words[i:end]
		}
	}()

	var resultMu sync.Mutex
	var result Result
	var workersWg sync.WaitGroup
	workersWg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer workersWg.Done()
			for chunk := range chunks {
				if cfg.Found.Is() {
					continue
				}
				cfg.Pause.Wait(cfg.Found)
				for _, candidate := range chunk {
					w.sample.Set(candidate)
					w.flusher.Tick()
					if cfg.Found.Is() {
						break
					}
					if !oracle.FastCheck(w.target, []byte(candidate)) {
						continue
					}
					if w.confirm(candidate) {
						resultMu.Lock()
						result = Result{Found: true, Password: candidate}
						resultMu.Unlock()
					}
				}
			}
		}()
	}

	workersWg.Wait()
	producerWg.Wait()

	resultMu.Lock()
	defer resultMu.Unlock()
	if result.Found {
		return result
	}
	if cfg.Found.Is() {
		return Result{Found: true, Password: cfg.Found.Password()}
	}
	return Result{Found: false}
}

// bruteChunk is one work-stealing unit: the odometer index range
// [start, end) for a fixed candidate length.
type bruteChunk struct {
	start uint64
	end   uint64
}

func runBruteForceLength(cfg Config, workers int, w *worker, length int) Result {
	total := odometer.Total(len(cfg.Alphabet), length)
	if total == 0 {
		return Result{Found: false}
	}

	chunks := make(chan bruteChunk, workers*2)

	var producerWg sync.WaitGroup
	producerWg.Add(1)
	go func() {
		defer producerWg.Done()
		defer close(chunks)
		for start := uint64(0); start < total; start += BruteChunkSize {
			if cfg.Found.Is() {
				return
			}
			end := start + BruteChunkSize
			if end > total {
				end = total
			}
			chunks <- bruteChunk{start: start, end: end}
		}
	}()

	var resultMu sync.Mutex
	var result Result
	var workersWg sync.WaitGroup
	workersWg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer workersWg.Done()

			var gpuWorker *gpuoracle.Worker
			if w.backend != nil {
				gw, err := w.backend.NewWorker(w.target)
				if err != nil {
					if cfg.Logger != nil {
						cfg.Logger.Warn("gpu worker init failed, this goroutine falls back to cpu", "err", err)
					}
				} else {
					gpuWorker = gw
					defer gpuWorker.Close()
				}
			}

			buf := odometer.New(cfg.Alphabet, length)
			scratch := make([]byte, length)
			gpuBatch := make([]string, 0, gpuoracle.BatchSize)
			for chunk := range chunks {
				if cfg.Found.Is() {
					continue
				}
				cfg.Pause.Wait(cfg.Found)
				buf.Seed(chunk.start)
				n := chunk.end - chunk.start
				var checked uint64
				gpuBatch = gpuBatch[:0]

				// flushGPUBatch dispatches the pending batch and runs every
				// fast-oracle hit in it through the full verifier, re-dispatching
				// the rest of the batch after each hit that fails verification.
				flushGPUBatch := func() (candidate string, hit bool) {
					batch := gpuBatch
					gpuBatch = gpuBatch[:0]
					for len(batch) > 0 {
						idx := gpuWorker.BatchCheck(batch)
						if idx < 0 || idx >= len(batch) {
							return "", false
						}
						w.sample.Set(batch[idx])
						if w.confirm(batch[idx]) {
							return batch[idx], true
						}
						batch = batch[idx+1:]
					}
					return "", false
				}

				for i := uint64(0); i < n; i++ {
					if i > 0 {
						buf.Advance()
					}
					if i%PollInterval == 0 {
						if cfg.Found.Is() {
							break
						}
						cfg.Pause.Wait(cfg.Found)
					}
					buf.Bytes(scratch)
					checked++

					if gpuWorker != nil {
						gpuBatch = append(gpuBatch, string(scratch))
						if len(gpuBatch) < gpuoracle.BatchSize && i+1 < n {
							continue
						}
						candidate, hit := flushGPUBatch()
						if !hit {
							continue
						}
						resultMu.Lock()
						result = Result{Found: true, Password: candidate}
						resultMu.Unlock()
						break
					}

					if !oracle.FastCheck(w.target, scratch) {
						continue
					}
					candidate := string(scratch)
					w.sample.Set(candidate)
					if w.confirm(candidate) {
						resultMu.Lock()
						result = Result{Found: true, Password: candidate}
						resultMu.Unlock()
						break
					}
				}
				w.flusher.Add(checked)
			}
		}()
	}

	workersWg.Wait()
	producerWg.Wait()

	resultMu.Lock()
	defer resultMu.Unlock()
	if result.Found {
		return result
	}
	if cfg.Found.Is() {
		return Result{Found: true, Password: cfg.Found.Password()}
	}
	return Result{Found: false}
}
