package driver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vantasec/zcrack/internal/charset"
	"github.com/vantasec/zcrack/internal/control"
	"github.com/vantasec/zcrack/internal/header"
	"github.com/vantasec/zcrack/internal/reporter"
	"github.com/vantasec/zcrack/internal/testzip"
)

func newRunCfg(t *testing.T, archive []byte, password string) Config {
	t.Helper()
	h, err := header.Locate(archive)
	require.NoError(t, err)

	return Config{
		Archive:  archive,
		Header:   h,
		Alphabet: charset.Build(charset.Toggles{Lowercase: true, Digits: true}),
		MinLen:   1,
		MaxLen:   len(password),
		Workers:  2,
		Found:    &control.Found{},
		Counter:  &control.Counter{},
		Pause:    &control.Pause{},
		Sample:   &reporter.Sample{},
	}
}

func TestRunFindsShortBruteForcePassword(t *testing.T) {
	archive, err := testzip.SingleEncrypted("a.txt", "secret contents", "ab1")
	require.NoError(t, err)

	cfg := newRunCfg(t, archive, "ab1")
	res, err := Run(cfg)
	require.NoError(t, err)
	require.True(t, res.Found)
	require.Equal(t, "ab1", res.Password)
	require.True(t, cfg.Found.Is())
	require.Equal(t, "ab1", cfg.Found.Password())
}

func TestRunExhaustsWithoutMatchWhenPasswordOutOfRange(t *testing.T) {
	archive, err := testzip.SingleEncrypted("a.txt", "secret contents", "zz9")
	require.NoError(t, err)

	cfg := newRunCfg(t, archive, "zz9")
	cfg.Alphabet = charset.Build(charset.Toggles{Digits: true})
	cfg.MaxLen = 2

	res, err := Run(cfg)
	require.NoError(t, err)
	require.False(t, res.Found)
	require.False(t, cfg.Found.Is())
}

func TestRunFindsDictionaryWord(t *testing.T) {
	archive, err := testzip.SingleEncrypted("a.txt", "more contents", "Password1")
	require.NoError(t, err)

	cfg := newRunCfg(t, archive, "Password1")
	cfg.Dictionary = true
	cfg.MinLen = 20 // brute-force phase would never reach it; dictionary must find it first
	cfg.MaxLen = 20
	cfg.Alphabet = charset.Build(charset.Toggles{Lowercase: true})

	res, err := Run(cfg)
	require.NoError(t, err)
	require.True(t, res.Found)
	require.Equal(t, "Password1", res.Password)
}

func TestRunStopsImmediatelyWhenAlreadyFound(t *testing.T) {
	archive, err := testzip.SingleEncrypted("a.txt", "x", "q")
	require.NoError(t, err)

	cfg := newRunCfg(t, archive, "q")
	cfg.Found.TrySet("preexisting")

	res, err := Run(cfg)
	require.NoError(t, err)
	require.True(t, res.Found)
	require.Equal(t, "preexisting", res.Password)
}
