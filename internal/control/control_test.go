package control

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFoundLatchesOnce(t *testing.T) {
	var f Found
	require.False(t, f.Is())

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if f.TrySet("candidate") {
				wins++
			}
		}(i)
	}
	wg.Wait()

	require.True(t, f.Is())
	require.Equal(t, "candidate", f.Password())
	require.EqualValues(t, 1, wins)

	// Once latched, further attempts never win, and the flag stays set.
	require.False(t, f.TrySet("other"))
	require.Equal(t, "candidate", f.Password())
}

func TestFreshRunStartsClear(t *testing.T) {
	var f Found
	require.False(t, f.Is())
	require.Equal(t, "", f.Password())
}

func TestCounterMonotonic(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(5)
		}()
	}
	wg.Wait()
	require.EqualValues(t, 100, c.Load())
}

func TestBatchFlusherFlushesResidualOnClose(t *testing.T) {
	var c Counter
	bf := NewBatchFlusher(&c)
	for i := 0; i < FlushEvery+3; i++ {
		bf.Tick()
	}
	require.EqualValues(t, FlushEvery, c.Load())
	bf.Close()
	require.EqualValues(t, FlushEvery+3, c.Load())
}

func TestPauseSetIsIdempotent(t *testing.T) {
	var p Pause
	p.Set(true)
	p.Set(true)
	require.True(t, p.Is())
	p.Set(false)
	require.False(t, p.Is())
}

func TestPauseWaitReturnsWhenFoundLatches(t *testing.T) {
	var p Pause
	var f Found
	p.Set(true)
	go func() {
		time.Sleep(10 * time.Millisecond)
		f.TrySet("x")
	}()
	done := make(chan struct{})
	go func() {
		p.Wait(&f)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after found-flag latched")
	}
}
