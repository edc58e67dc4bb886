package charset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildOrderIsDigitsLowerUpperSymbols(t *testing.T) {
	a := Build(Toggles{Lowercase: true, Uppercase: true, Digits: true, Symbols: true})
	require.Equal(t, byte('0'), a[0])
	require.Equal(t, byte('a'), a[10])
	require.Equal(t, byte('A'), a[36])
	require.Equal(t, byte(Symbols[0]), a[62])
	require.Len(t, a, MaxSize)
}

func TestBuildEmptyToggles(t *testing.T) {
	require.Empty(t, Build(Toggles{}))
}

func TestBuildDeduplicates(t *testing.T) {
	a := Build(Toggles{Digits: true})
	seen := map[byte]bool{}
	for _, b := range a {
		require.False(t, seen[b])
		seen[b] = true
	}
}

func TestDigitsOnly(t *testing.T) {
	require.True(t, Toggles{Digits: true}.DigitsOnly())
	require.False(t, Toggles{Digits: true, Lowercase: true}.DigitsOnly())
	require.False(t, Toggles{}.DigitsOnly())
}
