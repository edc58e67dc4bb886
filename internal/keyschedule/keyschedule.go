// Package keyschedule implements the ZipCrypto stream-cipher key schedule:
// the three-word state update and keystream-byte derivation that both the
// fast oracle and the GPU oracle backend are built on.
package keyschedule

import "github.com/vantasec/zcrack/internal/crc32table"

// State is the three 32-bit key-schedule words.
type State struct {
	K0, K1, K2 uint32
}

// New returns the initial state defined by the ZIP specification.
func New() State {
	return State{K0: 0x12345678, K1: 0x23456789, K2: 0x34567890}
}

// Update folds one plaintext byte into the schedule, returning the new
// state. All arithmetic wraps at 32 bits, matching Go's uint32 semantics.
func (s State) Update(b byte) State {
	k0 := (s.K0 >> 8) ^ crc32table.Table[byte(s.K0)^b]
	k1 := (s.K1+(k0&0xFF))*134775813 + 1
	k2 := (s.K2 >> 8) ^ crc32table.Table[byte(s.K2)^byte(k1>>24)]
	return State{K0: k0, K1: k1, K2: k2}
}

// KeystreamByte derives the next keystream byte from the current state,
// without mutating it.
func (s State) KeystreamByte() byte {
	t := uint16(s.K2|2) & 0xFFFF
	return byte((uint32(t) * uint32(t^1)) >> 8)
}

// Derive runs the schedule across every byte of password, returning the
// resulting state. The password bytes feed the schedule directly (they are
// not themselves encrypted).
func Derive(password []byte) State {
	s := New()
	for _, b := range password {
		s = s.Update(b)
	}
	return s
}

// DecryptByte decrypts one header byte under the current state and returns
// both the recovered plaintext byte and the state advanced by it. The
// decrypted byte (not the ciphertext byte) is what feeds back into the
// schedule, per the ZipCrypto definition.
func (s State) DecryptByte(cipher byte) (plain byte, next State) {
	plain = cipher ^ s.KeystreamByte()
	next = s.Update(plain)
	return plain, next
}
