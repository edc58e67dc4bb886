// Package engine is the public surface of the cracking core: Start runs
// the full two-phase pipeline, Test checks one candidate through the same
// fast+full path, Estimate sums the search space size, and
// SetPause/IsPaused toggle the process-wide pause flag. Grounded on
// spec.md §4.10 and shaped like the teacher's cracker.Config/NewRunner
// split between a config struct and a runner object — but, unlike the
// teacher (which keeps everything under internal/), this package is
// exported because spec.md treats it as the boundary a host (GUI, FFI
// bridge, or this repository's own TUI) consumes.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/vantasec/zcrack/internal/charset"
	"github.com/vantasec/zcrack/internal/control"
	"github.com/vantasec/zcrack/internal/dictionary"
	"github.com/vantasec/zcrack/internal/driver"
	"github.com/vantasec/zcrack/internal/header"
	"github.com/vantasec/zcrack/internal/logging"
	"github.com/vantasec/zcrack/internal/odometer"
	"github.com/vantasec/zcrack/internal/oracle"
	"github.com/vantasec/zcrack/internal/reporter"
	"github.com/vantasec/zcrack/internal/verifier"
)

// ErrEmptyAlphabet is returned when a Config's toggles produce an empty
// brute-force alphabet and dictionary search is also disabled, leaving
// nothing for the driver to search.
var ErrEmptyAlphabet = errors.New("engine: alphabet is empty and dictionary search is disabled")

// Config mirrors spec.md's CrackConfig: immutable input for one Start or
// Estimate call.
type Config struct {
	MinLen, MaxLen int

	Lowercase bool
	Uppercase bool
	Digits    bool
	Symbols   bool

	UseDictionary bool
	CustomWords   []string

	Workers int
	// Backend selects the fast-oracle backend: "" or "cpu" (default), or
	// "vulkan" for the optional GPU-accelerated path with automatic CPU
	// fallback on initialization failure.
	Backend string

	// ReportCadence overrides the progress reporter's wake interval;
	// zero uses reporter.DefaultCadence.
	ReportCadence time.Duration

	// LogPath overrides where the background structured logger writes;
	// empty uses logging.Open's default ("zcrack.log" in os.TempDir()).
	LogPath string
}

func (c Config) toggles() charset.Toggles {
	return charset.Toggles{Lowercase: c.Lowercase, Uppercase: c.Uppercase, Digits: c.Digits, Symbols: c.Symbols}
}

// Result is the outcome of a completed Start call.
type Result struct {
	Found    bool
	Password string
}

// Start runs the full pipeline against archive: it locates the crypto
// header, builds the alphabet, then runs the dictionary phase (if
// enabled) followed by the brute-force phase across every configured
// length, pushing CrackProgress events to sink as it goes. It blocks
// until the search concludes — a password is confirmed, the search space
// is exhausted, or the header locator fails before any worker starts —
// matching spec.md §5's "the driver call blocks the caller's thread
// until completion". sink may be nil, in which case progress events are
// simply dropped.
func Start(archive []byte, cfg Config, sink chan<- CrackProgress) (Result, error) {
	if cfg.MinLen <= 0 || cfg.MaxLen < cfg.MinLen {
		return Result{}, fmt.Errorf("engine: invalid length range [%d, %d]", cfg.MinLen, cfg.MaxLen)
	}

	alphabet := charset.Build(cfg.toggles())
	useDictionary := cfg.UseDictionary
	if cfg.toggles().DigitsOnly() {
		// spec.md §3: brute force is strictly faster over a pure-digit
		// space, so the dictionary phase is skipped even if requested.
		useDictionary = false
	}
	if len(alphabet) == 0 && !useDictionary {
		return Result{}, ErrEmptyAlphabet
	}

	h, err := header.Locate(archive)
	if err != nil {
		// spec.md §7: UnsupportedEncryption/Truncated/MalformedArchive are
		// user-facing conditions, not engine faults — the run emits an
		// Error-phase progress event and reports success, accomplishing
		// nothing, rather than failing Start outright.
		sendDone(sink, CrackProgress{Phase: PhaseError, Err: err})
		return Result{}, nil
	}

	logger, logFile, err := logging.Open(cfg.LogPath)
	if err != nil {
		return Result{}, fmt.Errorf("engine: %w", err)
	}
	defer logFile.Close()

	found := &control.Found{}
	counter := &control.Counter{}
	sample := &reporter.Sample{}
	phase := &reporter.PhaseTracker{}
	pause := &control.GlobalPause

	reporterSink := make(chan reporter.Progress, SinkCapacity)
	rep := reporter.New(counter, sample, phase, found, pause, reporterSink, cfg.ReportCadence)

	stopForwarding := make(chan struct{})
	stopReporter := make(chan struct{})
	go forwardProgress(reporterSink, sink, stopForwarding)
	go rep.Run(stopReporter)
	defer close(stopReporter)

	logger.Info("crack run starting", "min_len", cfg.MinLen, "max_len", cfg.MaxLen, "dictionary", useDictionary, "backend", cfg.Backend)

	res, err := driver.Run(driver.Config{
		Archive:     archive,
		Header:      h,
		Alphabet:    alphabet,
		MinLen:      cfg.MinLen,
		MaxLen:      cfg.MaxLen,
		Workers:     cfg.Workers,
		CustomWords: cfg.CustomWords,
		Dictionary:  useDictionary,
		Backend:     cfg.Backend,
		Found:       found,
		Counter:     counter,
		Pause:       pause,
		Sample:      sample,
		Phase:       phase,
		Logger:      logger,
	})
	close(stopForwarding)
	if err != nil {
		logger.Error("crack run failed", "err", err)
		sendDone(sink, CrackProgress{Phase: PhaseError, Err: err})
		return Result{}, err
	}

	logger.Info("crack run finished", "found", res.Found)
	sendDone(sink, CrackProgress{Phase: PhaseDone, Password: res.Password})
	return Result{Found: res.Found, Password: res.Password}, nil
}

// forwardProgress bridges internal/reporter's Progress events onto the
// caller's CrackProgress channel until stop closes, converting types and
// preserving the non-blocking, drop-on-full delivery contract.
func forwardProgress(from <-chan reporter.Progress, to chan<- CrackProgress, stop <-chan struct{}) {
	if to == nil {
		for {
			select {
			case <-from:
			case <-stop:
				return
			}
		}
	}
	for {
		select {
		case p := <-from:
			select {
			case to <- fromReporter(p):
			default:
			}
		case <-stop:
			return
		}
	}
}

func sendDone(sink chan<- CrackProgress, p CrackProgress) {
	if sink == nil {
		return
	}
	select {
	case sink <- p:
	default:
	}
}

// Test checks a single candidate password through the same fast-oracle
// then full-verifier path the driver uses, matching spec.md §4.10's
// `test(archive_bytes, password)`.
func Test(archive []byte, password string) (bool, error) {
	h, err := header.Locate(archive)
	if err != nil {
		return false, fmt.Errorf("engine: %w", err)
	}
	if !oracle.FastCheck(h, []byte(password)) {
		return false, nil
	}
	v, err := verifier.New(archive)
	if err != nil {
		return false, fmt.Errorf("engine: %w", err)
	}
	return v.Verify(password)
}

// Estimate sums alphabet_size^length across [MinLen, MaxLen] (saturating
// on overflow per odometer.Total), plus the dictionary's mutated word
// count when UseDictionary is set and the toggles are not digits-only
// (the case in which Start skips the dictionary phase), matching
// spec.md §4.10's `estimate`.
func Estimate(cfg Config) uint64 {
	var total uint64
	alphabetSize := len(charset.Build(cfg.toggles()))
	for length := cfg.MinLen; length <= cfg.MaxLen; length++ {
		total = saturatingAdd(total, odometer.Total(alphabetSize, length))
	}
	if cfg.UseDictionary && !cfg.toggles().DigitsOnly() {
		total = saturatingAdd(total, uint64(dictionary.WordCount()*dictionary.MutationsPerWord))
	}
	return total
}

func saturatingAdd(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return ^uint64(0)
	}
	return sum
}

// SetPause sets the process-wide pause flag; it affects every Start call
// in the process, including ones already running, per spec.md §5's
// "global state… has process lifetime".
func SetPause(paused bool) { control.GlobalPause.Set(paused) }

// IsPaused reports whether the process-wide pause flag is currently set.
func IsPaused() bool { return control.GlobalPause.Is() }
