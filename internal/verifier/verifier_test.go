package verifier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vantasec/zcrack/internal/testzip"
)

func TestVerifyAcceptsCorrectPassword(t *testing.T) {
	archive, err := testzip.SingleEncrypted("hello.txt", "hi", "abc")
	require.NoError(t, err)

	v, err := New(archive)
	require.NoError(t, err)

	ok, err := v.Verify("abc")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	archive, err := testzip.SingleEncrypted("hello.txt", "hi", "abc")
	require.NoError(t, err)

	v, err := New(archive)
	require.NoError(t, err)

	ok, err := v.Verify("wrong")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyRequiresEveryEncryptedEntryToMatch(t *testing.T) {
	archive, err := testzip.Build([]testzip.Entry{
		{Name: "a.txt", Content: []byte("aaa"), Password: "shared"},
		{Name: "b.txt", Content: []byte("bbb"), Password: "different"},
	})
	require.NoError(t, err)

	v, err := New(archive)
	require.NoError(t, err)

	ok, err := v.Verify("shared")
	require.NoError(t, err)
	require.False(t, ok, "must reject when any encrypted entry fails to verify")
}

func TestNewRejectsArchiveWithNoEncryptedEntries(t *testing.T) {
	archive, err := testzip.Build([]testzip.Entry{{Name: "plain.txt", Content: []byte("hi")}})
	require.NoError(t, err)

	_, err = New(archive)
	require.ErrorIs(t, err, ErrNoEncryptedEntries)
}
