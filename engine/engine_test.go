package engine

import (
	"encoding/binary"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vantasec/zcrack/internal/header"
	"github.com/vantasec/zcrack/internal/testzip"
)

// buildAESHeader constructs a minimal raw local-file-header record flagged
// as encrypted with compression method 99 (AES), independent of any
// ZIP-writing library — yeka/zip has no AES writer to build a fixture with.
func buildAESHeader(name string) []byte {
	buf := make([]byte, 30+len(name)+12)
	binary.LittleEndian.PutUint32(buf[0:], 0x04034b50)
	binary.LittleEndian.PutUint16(buf[6:], 0x01) // encrypted
	binary.LittleEndian.PutUint16(buf[8:], 99)   // AES
	binary.LittleEndian.PutUint16(buf[26:], uint16(len(name)))
	copy(buf[30:], name)
	return buf
}

func smallCfg(password string) Config {
	return Config{
		MinLen:    1,
		MaxLen:    len(password),
		Lowercase: true,
		Digits:    true,
		Workers:   2,
	}
}

// TestStartEmitsErrorPhaseOnAESAndReturnsSuccess is spec.md §8 end-to-end
// scenario 5: an AES-encrypted archive yields an Error-phase progress event
// mentioning the condition, and Start returns success — the run simply
// accomplishes nothing — rather than failing outright.
func TestStartEmitsErrorPhaseOnAESAndReturnsSuccess(t *testing.T) {
	archive := buildAESHeader("secret.txt")
	sink := make(chan CrackProgress, 4)

	res, err := Start(archive, smallCfg("ab"), sink)
	require.NoError(t, err)
	require.False(t, res.Found)

	var got CrackProgress
	select {
	case got = <-sink:
	case <-time.After(time.Second):
		t.Fatal("no progress event received")
	}
	require.Equal(t, PhaseError, got.Phase)
	require.ErrorIs(t, got.Err, header.ErrUnsupportedEncryption)
}

// TestStartEmitsErrorPhaseOnMalformedArchive covers MalformedArchive, one
// of the other locator-failure kinds spec.md §7 groups with AES: it is a
// user-facing condition, not an engine fault.
func TestStartEmitsErrorPhaseOnMalformedArchive(t *testing.T) {
	sink := make(chan CrackProgress, 4)

	res, err := Start([]byte("not a zip"), smallCfg("ab"), sink)
	require.NoError(t, err)
	require.False(t, res.Found)

	var got CrackProgress
	select {
	case got = <-sink:
	case <-time.After(time.Second):
		t.Fatal("no progress event received")
	}
	require.Equal(t, PhaseError, got.Phase)
	require.ErrorIs(t, got.Err, header.ErrMalformedArchive)
}

// TestStartDoesNotLeakReporterGoroutineOnExhaustion guards against the
// reporter goroutine outliving an unsuccessful Start call: on search-space
// exhaustion the found-flag never latches, so the reporter must be stopped
// by Start itself rather than relying on Found.Is() to end its loop.
func TestStartDoesNotLeakReporterGoroutineOnExhaustion(t *testing.T) {
	archive, err := testzip.SingleEncrypted("a.txt", "contents", "zz")
	require.NoError(t, err)

	cfg := Config{
		MinLen:        1,
		MaxLen:        1,
		Digits:        true,
		UseDictionary: false,
		Workers:       2,
		ReportCadence: 5 * time.Millisecond,
	}

	before := runtime.NumGoroutine()

	res, err := Start(archive, cfg, nil)
	require.NoError(t, err)
	require.False(t, res.Found)

	// Give any leaked goroutine a generous window to have shown up in the
	// count; a fixed goroutine leak would persist indefinitely, not just
	// transiently, so a short settle is enough to distinguish the two.
	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, time.Second, 10*time.Millisecond)
}
