// Package header locates the first ZipCrypto-encrypted local file header in
// an in-memory ZIP archive and extracts the 12-byte crypto header the fast
// oracle and the GPU oracle backend both check candidates against.
package header

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrUnsupportedEncryption is returned when the located entry uses AES
	// (compression method 99) rather than traditional ZipCrypto.
	ErrUnsupportedEncryption = errors.New("header: AES encryption is not supported")
	// ErrTruncated is returned when the archive ends before a located
	// entry's crypto header.
	ErrTruncated = errors.New("header: archive truncated before crypto header")
	// ErrMalformedArchive is returned when no encrypted local file header
	// can be found at all.
	ErrMalformedArchive = errors.New("header: no encrypted ZipCrypto entry found")
)

const localFileHeaderSignature = 0x04034b50

// CryptoHeader is the 12 raw ZipCrypto header bytes for the first
// encrypted entry in an archive, plus the byte the 12th decrypted header
// byte must equal.
type CryptoHeader struct {
	Bytes     [12]byte
	CheckByte byte
	// Offset is the byte offset within the archive where Bytes begins,
	// kept for diagnostics only.
	Offset int
}

// Locate scans archive for the local-file-header signature 50 4B 03 04,
// returning the crypto header of the first entry whose general-purpose bit
// 0 (encrypted) is set. AES (method 99) entries fail the scan immediately
// with ErrUnsupportedEncryption: the spec treats mixing AES and ZipCrypto
// entries as out of scope, and any AES entry found this way means the
// whole archive cannot be attacked by this engine.
func Locate(archive []byte) (CryptoHeader, error) {
	n := len(archive)
	for i := 0; i+30 <= n; i++ {
		if binary.LittleEndian.Uint32(archive[i:]) != localFileHeaderSignature {
			continue
		}
		flags := binary.LittleEndian.Uint16(archive[i+6:])
		method := binary.LittleEndian.Uint16(archive[i+8:])
		modTime := binary.LittleEndian.Uint16(archive[i+10:])
		crc := binary.LittleEndian.Uint32(archive[i+14:])
		nameLen := int(binary.LittleEndian.Uint16(archive[i+26:]))
		extraLen := int(binary.LittleEndian.Uint16(archive[i+28:]))

		if flags&0x01 == 0 {
			// Not encrypted; keep scanning.
			continue
		}
		if method == 99 {
			return CryptoHeader{}, ErrUnsupportedEncryption
		}

		dataOffset := i + 30 + nameLen + extraLen
		if dataOffset+12 > n {
			return CryptoHeader{}, ErrTruncated
		}

		var ch CryptoHeader
		copy(ch.Bytes[:], archive[dataOffset:dataOffset+12])
		ch.Offset = dataOffset
		if flags&0x08 != 0 {
			ch.CheckByte = byte(modTime >> 8)
		} else {
			ch.CheckByte = byte(crc >> 24)
		}
		return ch, nil
	}
	return CryptoHeader{}, ErrMalformedArchive
}
