// Package verifier implements the expensive full-verification stage: on a
// fast-oracle hit, it opens the archive, decrypts every encrypted entry
// with the candidate password, and checks the decompressed stream's length
// and CRC32 against the entry's declared values. It eliminates the fast
// oracle's ~1/256 false-positive rate at the cost of one decompression per
// oracle hit.
package verifier

import (
	"bytes"
	"errors"
	"hash/crc32"
	"io"

	yzip "github.com/yeka/zip"
)

// ErrNoEncryptedEntries is returned when an archive has no ZipCrypto entry
// to verify against at all.
var ErrNoEncryptedEntries = errors.New("verifier: zip has no encrypted entries")

// Verifier holds the immutable archive bytes, opened once to confirm it
// has at least one encrypted entry. A fresh yeka/zip reader is created per
// Verify call rather than shared across goroutines: the underlying reader
// is not safe for concurrent SetPassword/Open, and opening is cheap
// relative to the decompression it gates (one per fast-oracle hit, about
// 1 in 256 candidates).
type Verifier struct {
	archive []byte
}

// New validates that archive contains at least one encrypted entry and
// returns a Verifier bound to it.
func New(archive []byte) (*Verifier, error) {
	zr, err := yzip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, err
	}
	if !hasEncryptedEntry(zr) {
		return nil, ErrNoEncryptedEntries
	}
	return &Verifier{archive: archive}, nil
}

// Verify opens a fresh view of the archive and attempts to decrypt every
// encrypted entry with password, reading each to completion and comparing
// both the decompressed byte count and its CRC32 against the entry's
// declared values. Any failure — open error, read error, size mismatch, or
// checksum mismatch — rejects the candidate silently (a collision, not a
// fault): the caller must never treat a rejection as an engine error.
func (v *Verifier) Verify(password string) (bool, error) {
	zr, err := yzip.NewReader(bytes.NewReader(v.archive), int64(len(v.archive)))
	if err != nil {
		return false, nil
	}
	any := false
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !f.IsEncrypted() {
			continue
		}
		any = true
		if !verifyEntry(f, password) {
			return false, nil
		}
	}
	return any, nil
}

func verifyEntry(f *yzip.File, password string) bool {
	f.SetPassword(password)
	rc, err := f.Open()
	if err != nil {
		return false
	}
	defer rc.Close()

	h := crc32.NewIEEE()
	n, err := io.Copy(h, rc)
	if err != nil {
		return false
	}
	if uint64(n) != f.UncompressedSize64 {
		return false
	}
	return h.Sum32() == f.CRC32
}

func hasEncryptedEntry(zr *yzip.Reader) bool {
	for _, f := range zr.File {
		if !f.FileInfo().IsDir() && f.IsEncrypted() {
			return true
		}
	}
	return false
}
