// Package charset builds the fixed-capacity brute-force alphabet from a
// configuration of toggles. Concatenation order is an observable: it
// determines which password the odometer generator visits first among
// several matches, so it must stay fixed (digits, lowercase, uppercase,
// symbols).
package charset

// MaxSize is the size of the full union of all four subsets: 10 digits +
// 26 lowercase + 26 uppercase + 32 symbols.
const MaxSize = 94

// Symbols is the fixed 32-character special-character set.
const Symbols = "!@#$%^&*()-_=+[]{}|;:'\",.<>?/~`\\"

// Toggles selects which subsets of the alphabet are enabled.
type Toggles struct {
	Lowercase bool
	Uppercase bool
	Digits    bool
	Symbols   bool
}

// Digits returns ASCII digits 0-9.
func Digits() []byte {
	out := make([]byte, 0, 10)
	for b := byte('0'); b <= '9'; b++ {
		out = append(out, b)
	}
	return out
}

// Lowercase returns ASCII a-z.
func Lowercase() []byte {
	out := make([]byte, 0, 26)
	for b := byte('a'); b <= 'z'; b++ {
		out = append(out, b)
	}
	return out
}

// Uppercase returns ASCII A-Z.
func Uppercase() []byte {
	out := make([]byte, 0, 26)
	for b := byte('A'); b <= 'Z'; b++ {
		out = append(out, b)
	}
	return out
}

// Build concatenates the enabled subsets in the fixed order digits,
// lowercase, uppercase, symbols, de-duplicating byte-for-byte. An empty
// Toggles value yields an empty alphabet.
func Build(t Toggles) []byte {
	out := make([]byte, 0, MaxSize)
	var seen [256]bool
	add := func(bs []byte) {
		for _, b := range bs {
			if !seen[b] {
				seen[b] = true
				out = append(out, b)
			}
		}
	}
	if t.Digits {
		add(Digits())
	}
	if t.Lowercase {
		add(Lowercase())
	}
	if t.Uppercase {
		add(Uppercase())
	}
	if t.Symbols {
		add([]byte(Symbols))
	}
	return out
}

// DigitsOnly reports whether t enables digits and nothing else — the case
// in which the spec says the dictionary phase should be skipped because
// brute force is strictly faster over so small a space.
func (t Toggles) DigitsOnly() bool {
	return t.Digits && !t.Lowercase && !t.Uppercase && !t.Symbols
}
