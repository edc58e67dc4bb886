package keyschedule

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewStateIsSpecConstant(t *testing.T) {
	s := New()
	require.Equal(t, uint32(0x12345678), s.K0)
	require.Equal(t, uint32(0x23456789), s.K1)
	require.Equal(t, uint32(0x34567890), s.K2)
}

func TestUpdateIsDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		pw := rapid.SliceOfN(rapid.Byte(), 0, 32).Draw(rt, "pw")
		a := Derive(pw)
		b := Derive(pw)
		require.Equal(t, a, b)
	})
}

func TestDerivePrefixExtendsState(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		prefix := rapid.SliceOfN(rapid.Byte(), 0, 16).Draw(rt, "prefix")
		extra := rapid.Byte().Draw(rt, "extra")
		viaPrefix := Derive(prefix)
		viaFull := Derive(append(append([]byte{}, prefix...), extra))
		require.Equal(t, viaPrefix.Update(extra), viaFull)
	})
}

func TestDecryptByteRoundTripsKeystream(t *testing.T) {
	s := New()
	const cipher = 0xAB
	plain, next := s.DecryptByte(cipher)
	require.Equal(t, cipher^s.KeystreamByte(), plain)
	require.Equal(t, s.Update(plain), next)
}
