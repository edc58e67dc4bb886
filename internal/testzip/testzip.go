// Package testzip builds small in-memory ZipCrypto-encrypted archives for
// tests across the engine, so each package's tests don't hand-roll their
// own ZIP bytes.
package testzip

import (
	"bytes"
	"io"

	yzip "github.com/yeka/zip"
)

// Entry is one file to place in a built archive.
type Entry struct {
	Name     string
	Content  []byte
	Password string // empty means store unencrypted
}

// Build writes entries into a new in-memory ZIP archive, encrypting any
// entry with a non-empty Password using traditional ZipCrypto, and returns
// the archive bytes.
func Build(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := yzip.NewWriter(&buf)
	for _, e := range entries {
		var out io.Writer
		if e.Password != "" {
			fw, err := w.Encrypt(e.Name, e.Password, yzip.StandardEncryption)
			if err != nil {
				return nil, err
			}
			out = fw
		} else {
			fw, err := w.Create(e.Name)
			if err != nil {
				return nil, err
			}
			out = fw
		}
		if _, err := out.Write(e.Content); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SingleEncrypted is a convenience wrapper for the common one-entry case
// spec.md's end-to-end scenarios describe.
func SingleEncrypted(name, content, password string) ([]byte, error) {
	return Build([]Entry{{Name: name, Content: []byte(content), Password: password}})
}
