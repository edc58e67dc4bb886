package oracle

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vantasec/zcrack/internal/header"
	"github.com/vantasec/zcrack/internal/keyschedule"
)

// headerFor builds the CryptoHeader a correct password would produce by
// running the forward encryption direction of the schedule: the real
// ZipCrypto header bytes are the keystream XORed with arbitrary plaintext
// (conventionally a random 11-byte salt plus the check byte); this
// reconstructs that header for a known password so the oracle can be
// exercised without a real ZIP file.
func headerFor(password []byte, salt [11]byte, checkByte byte) header.CryptoHeader {
	s := keyschedule.Derive(password)
	var h header.CryptoHeader
	for i := 0; i < 11; i++ {
		ks := s.KeystreamByte()
		h.Bytes[i] = salt[i] ^ ks
		s = s.Update(salt[i])
	}
	ks := s.KeystreamByte()
	h.Bytes[11] = checkByte ^ ks
	h.CheckByte = checkByte
	return h
}

func TestFastCheckAcceptsCorrectPassword(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		pw := rapid.SliceOfN(rapid.Byte(), 1, 20).Draw(rt, "pw")
		var salt [11]byte
		for i := range salt {
			salt[i] = byte(rapid.IntRange(0, 255).Draw(rt, "salt"))
		}
		checkByte := byte(rapid.IntRange(0, 255).Draw(rt, "check"))
		h := headerFor(pw, salt, checkByte)
		require.True(t, FastCheck(h, pw))
	})
}

func TestFastCheckIsDeterministic(t *testing.T) {
	h := headerFor([]byte("hunter2"), [11]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, 0x42)
	a := FastCheck(h, []byte("hunter2"))
	b := FastCheck(h, []byte("hunter2"))
	require.Equal(t, a, b)
	require.True(t, a)
}

func TestFastCheckRejectsWrongPasswordWithHighProbability(t *testing.T) {
	h := headerFor([]byte("correcthorse"), [11]byte{9, 8, 7, 6, 5, 4, 3, 2, 1, 0, 11}, 0x99)
	misses := 0
	for i := 0; i < 1000; i++ {
		pw := []byte{byte(i), byte(i >> 8)}
		if !FastCheck(h, pw) {
			misses++
		}
	}
	// ~1/256 false-positive rate means the overwhelming majority of
	// unrelated candidates must be rejected.
	require.Greater(t, misses, 950)
}
