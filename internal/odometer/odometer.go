// Package odometer implements the in-place base-N candidate buffer the
// brute-force phase advances: the candidate buffer is treated as a
// big-endian base-N number, where N is the alphabet size.
package odometer

// Buffer is a fixed-length candidate over an alphabet, advanced in place.
type Buffer struct {
	alphabet []byte
	digits   []byte // indices into alphabet, most significant first
}

// New allocates a buffer of the given length over alphabet, seeded to
// index 0 (the all-first-character candidate).
func New(alphabet []byte, length int) *Buffer {
	return &Buffer{alphabet: alphabet, digits: make([]byte, length)}
}

// Seed writes index into the buffer as a big-endian base-N number by
// repeated div/mod from the rightmost position leftward. It is the only
// operation that may jump to an arbitrary position; everything else
// advances by exactly one.
func (b *Buffer) Seed(index uint64) {
	n := uint64(len(b.alphabet))
	for i := len(b.digits) - 1; i >= 0; i-- {
		b.digits[i] = byte(index % n)
		index /= n
	}
}

// Advance increments the rightmost position, carrying left on overflow.
// The common case touches only the last byte. Calling Advance past the
// length's enumeration space (alphabet_size^length candidates from the
// original seed) is undefined; the caller's chunk bound must prevent it.
func (b *Buffer) Advance() {
	n := byte(len(b.alphabet))
	for i := len(b.digits) - 1; i >= 0; i-- {
		b.digits[i]++
		if b.digits[i] < n {
			return
		}
		b.digits[i] = 0
	}
}

// String renders the current candidate as password bytes.
func (b *Buffer) String() string {
	out := make([]byte, len(b.digits))
	for i, d := range b.digits {
		out[i] = b.alphabet[d]
	}
	return string(out)
}

// Bytes renders the current candidate into dst, which must have length
// len(b.digits); it avoids the allocation String incurs, for the driver's
// hot loop.
func (b *Buffer) Bytes(dst []byte) {
	for i, d := range b.digits {
		dst[i] = b.alphabet[d]
	}
}

// Len returns the candidate length.
func (b *Buffer) Len() int { return len(b.digits) }

// Total returns alphabet_size^length, saturating at math.MaxUint64.
func Total(alphabetSize, length int) uint64 {
	if alphabetSize == 0 {
		if length == 0 {
			return 1
		}
		return 0
	}
	var total uint64 = 1
	for i := 0; i < length; i++ {
		next := total * uint64(alphabetSize)
		if total != 0 && next/total != uint64(alphabetSize) {
			return ^uint64(0) // overflow: saturate
		}
		total = next
	}
	return total
}
