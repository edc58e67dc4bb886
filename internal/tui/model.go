// Package tui renders a running crack job's progress. Adapted from the
// teacher's internal/tui/model.go: the same bubbletea model/progress-bar/ETA
// rendering approach, rewired to consume engine.CrackProgress events off a
// single channel instead of the teacher's separate per-thread stats and
// result channels, and extended to show the Dictionary/Running/Done/Error
// phase tags spec.md's CrackProgress carries that the teacher's stats
// struct never had.
package tui

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vantasec/zcrack/engine"
)

// Config configures one TUI run.
type Config struct {
	ProgressCh <-chan engine.CrackProgress
	Stop       func()

	// Optional, for the progress bar/ETA line.
	AlphabetLen int
	MinLen      int
	MaxLen      int
}

type progressMsg engine.CrackProgress
type progressClosedMsg struct{}

func listenProgress(ch <-chan engine.CrackProgress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return progressClosedMsg{}
		}
		return progressMsg(p)
	}
}

type model struct {
	cfg Config

	phase    engine.Phase
	attempts uint64
	sample   string
	rate     float64
	start    time.Time

	done     bool
	found    bool
	password string
	errMsg   string

	totalComb *big.Int // sum_{k=min..max} (alphabetLen^k)
}

// NewModel builds a model that listens on cfg.ProgressCh until it closes or
// a Done/Error phase event arrives.
func NewModel(cfg Config) model {
	m := model{
		cfg:   cfg,
		phase: engine.PhaseRunning,
		start: time.Now(),
	}
	if cfg.AlphabetLen > 0 && cfg.MaxLen > 0 {
		m.totalComb = computeTotalCombinations(cfg.AlphabetLen, cfg.MinLen, cfg.MaxLen)
	}
	return m
}

func (m model) Init() tea.Cmd {
	return listenProgress(m.cfg.ProgressCh)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.cfg.Stop != nil {
				m.cfg.Stop()
			}
			return m, tea.Quit
		}

	case progressMsg:
		m.phase = msg.Phase
		m.attempts = msg.Attempts
		m.sample = msg.Sample
		m.rate = msg.Rate
		switch msg.Phase {
		case engine.PhaseDone:
			m.done = true
			m.found = msg.Password != ""
			m.password = msg.Password
			return m, tea.Quit
		case engine.PhaseError:
			m.done = true
			if msg.Err != nil {
				m.errMsg = msg.Err.Error()
			}
			return m, tea.Quit
		}
		return m, listenProgress(m.cfg.ProgressCh)

	case progressClosedMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "zcrack — ZIP password recovery (q to quit)\n")
	fmt.Fprintf(&b, "Phase: %s | Elapsed: %s\n", m.phase, time.Since(m.start).Truncate(time.Second))

	fmt.Fprintf(&b, "Attempts: %d | Rate: %.0f p/s\n", m.attempts, m.rate)
	if m.sample != "" {
		fmt.Fprintf(&b, "Last tried: %s\n", m.sample)
	}

	if m.totalComb != nil && m.totalComb.Sign() > 0 {
		attempts := new(big.Int).SetUint64(m.attempts)
		if attempts.Cmp(m.totalComb) > 0 {
			attempts.Set(m.totalComb)
		}
		percent := percentOf(attempts, m.totalComb)
		bar := progressBar(percent, 40)
		eta := etaString(attempts, m.totalComb, m.rate)
		fmt.Fprintf(&b, "\nProgress: %s %5.1f%% | ETA: %s\n", bar, percent*100, eta)
	}

	if m.errMsg != "" {
		fmt.Fprintf(&b, "\nError: %s\n", m.errMsg)
	} else if m.done {
		if m.found {
			fmt.Fprintf(&b, "\nPassword found: %s\n", m.password)
		} else {
			fmt.Fprintf(&b, "\nSearch space exhausted, password not found.\n")
		}
	}
	return b.String()
}

// computeTotalCombinations = sum_{k=minLen..maxLen} (alpha^k)
func computeTotalCombinations(alpha, minLen, maxLen int) *big.Int {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	A := big.NewInt(int64(alpha))
	total := big.NewInt(0)
	tmp := new(big.Int)
	for k := minLen; k <= maxLen; k++ {
		tmp.Exp(A, big.NewInt(int64(k)), nil)
		total.Add(total, tmp)
	}
	return total
}

func percentOf(cur, total *big.Int) float64 {
	if total.Sign() == 0 {
		return 0
	}
	fCur := new(big.Float).SetInt(cur)
	fTot := new(big.Float).SetInt(total)
	r := new(big.Float).Quo(fCur, fTot)
	out, _ := r.Float64()
	if out < 0 {
		return 0
	}
	if out > 1 {
		return 1
	}
	return out
}

func etaString(cur, total *big.Int, pps float64) string {
	if pps <= 0 {
		return "∞"
	}
	remain := new(big.Int).Sub(total, cur)
	if remain.Sign() <= 0 {
		return "0s"
	}
	fRem := new(big.Float).SetInt(remain)
	fPps := big.NewFloat(pps)
	secsF := new(big.Float).Quo(fRem, fPps)
	secs, _ := secsF.Float64()
	if math.IsInf(secs, 0) || math.IsNaN(secs) {
		return "∞"
	}
	d := time.Duration(secs * float64(time.Second))
	return humanizeDuration(d)
}

func humanizeDuration(d time.Duration) string {
	if d < time.Second {
		return d.String()
	}
	d = d.Truncate(time.Second)

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour

	h := d / time.Hour
	d -= h * time.Hour

	m := d / time.Minute
	d -= m * time.Minute

	s := d / time.Second

	parts := make([]string, 0, 4)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if h > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 || h > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	parts = append(parts, fmt.Sprintf("%ds", s))

	return strings.Join(parts, " ")
}

func progressBar(percent float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	filled := int(math.Round(percent * float64(width)))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return "[" + bar + "]"
}
