package reporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vantasec/zcrack/internal/control"
)

func TestReporterEmitsRunningEventsAtCadence(t *testing.T) {
	var counter control.Counter
	var sample Sample
	var found control.Found
	var pause control.Pause
	sink := make(chan Progress, 8)

	counter.Add(1000)
	sample.Set("abc123")

	r := New(&counter, &sample, nil, &found, &pause, sink, 20*time.Millisecond)
	stop := make(chan struct{})
	defer close(stop)
	done := make(chan struct{})
	go func() {
		r.Run(stop)
		close(done)
	}()

	var got Progress
	select {
	case got = <-sink:
	case <-time.After(2 * time.Second):
		t.Fatal("no progress event received")
	}
	found.TrySet("irrelevant")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reporter did not exit after found-flag latched")
	}

	require.Equal(t, PhaseRunning, got.Phase)
	require.EqualValues(t, 1000, got.Attempts)
	require.Equal(t, "abc123", got.Sample)
	require.Greater(t, got.Rate, float64(0))
}

func TestReporterEmitsZeroRateWhilePaused(t *testing.T) {
	var counter control.Counter
	var sample Sample
	var found control.Found
	var pause control.Pause
	sink := make(chan Progress, 8)

	counter.Add(500)
	pause.Set(true)

	r := New(&counter, &sample, nil, &found, &pause, sink, 20*time.Millisecond)
	stop := make(chan struct{})
	defer close(stop)
	go r.Run(stop)

	var got Progress
	select {
	case got = <-sink:
	case <-time.After(2 * time.Second):
		t.Fatal("no progress event received")
	}
	found.TrySet("x")

	require.Equal(t, float64(0), got.Rate)
	require.EqualValues(t, 500, got.Attempts)
}

func TestReporterStopsAfterFoundLatches(t *testing.T) {
	var counter control.Counter
	var sample Sample
	var found control.Found
	var pause control.Pause
	sink := make(chan Progress, 8)

	found.TrySet("already-found")
	r := New(&counter, &sample, nil, &found, &pause, sink, 10*time.Millisecond)

	stop := make(chan struct{})
	defer close(stop)
	done := make(chan struct{})
	go func() {
		r.Run(stop)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reporter did not exit promptly when found-flag was already latched")
	}
}

func TestReporterStopsWhenStopChannelCloses(t *testing.T) {
	var counter control.Counter
	var sample Sample
	var found control.Found
	var pause control.Pause
	sink := make(chan Progress, 8)

	// Found never latches here, mirroring a search-space-exhaustion run: the
	// only way this goroutine is supposed to exit is the stop channel.
	r := New(&counter, &sample, nil, &found, &pause, sink, 10*time.Millisecond)

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		r.Run(stop)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("reporter exited before stop was closed")
	case <-time.After(50 * time.Millisecond):
	}

	close(stop)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reporter did not exit after stop was closed")
	}
}

func TestSampleGetOnFreshSampleIsEmpty(t *testing.T) {
	var s Sample
	require.Equal(t, "", s.Get())
	s.Set("hunter2")
	require.Equal(t, "hunter2", s.Get())
}

func TestPhaseTrackerDefaultsToRunning(t *testing.T) {
	var p PhaseTracker
	require.Equal(t, PhaseRunning, p.Get())
	p.Set(PhaseDictionary)
	require.Equal(t, PhaseDictionary, p.Get())
}

func TestReporterEmitsDictionaryPhaseWhenTrackerSaysSo(t *testing.T) {
	var counter control.Counter
	var sample Sample
	var phase PhaseTracker
	var found control.Found
	var pause control.Pause
	sink := make(chan Progress, 8)

	phase.Set(PhaseDictionary)
	r := New(&counter, &sample, &phase, &found, &pause, sink, 10*time.Millisecond)

	stop := make(chan struct{})
	defer close(stop)
	go r.Run(stop)

	var got Progress
	select {
	case got = <-sink:
	case <-time.After(2 * time.Second):
		t.Fatal("no progress event received")
	}
	require.Equal(t, PhaseDictionary, got.Phase)
}
