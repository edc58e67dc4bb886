// Package oracle implements the fast, allocation-free ZipCrypto candidate
// check: it runs the key schedule across a password and the 12-byte crypto
// header and reports whether the decrypted check byte matches.
package oracle

import (
	"github.com/vantasec/zcrack/internal/header"
	"github.com/vantasec/zcrack/internal/keyschedule"
)

// FastCheck returns true if password's key schedule decrypts h's 12-byte
// header to the expected check byte. It performs no heap allocation and no
// I/O, so it is safe to call from the driver's hot loop.
func FastCheck(h header.CryptoHeader, password []byte) bool {
	s := keyschedule.Derive(password)
	for i := 0; i < 11; i++ {
		_, s = s.DecryptByte(h.Bytes[i])
	}
	plain, _ := s.DecryptByte(h.Bytes[11])
	return plain == h.CheckByte
}
