package odometer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedZeroIsAllFirstCharacter(t *testing.T) {
	alphabet := []byte("abc")
	b := New(alphabet, 3)
	b.Seed(0)
	require.Equal(t, "aaa", b.String())
}

func TestAdvanceEnumeratesEveryStringExactlyOnceInOrder(t *testing.T) {
	alphabet := []byte("abc")
	const length = 3
	total := Total(len(alphabet), length)
	require.EqualValues(t, 27, total)

	b := New(alphabet, length)
	b.Seed(0)
	seen := make(map[string]bool, total)
	var last string
	for i := uint64(0); i < total; i++ {
		s := b.String()
		require.False(t, seen[s], "candidate %q visited twice", s)
		seen[s] = true
		if i > 0 {
			require.Greater(t, s, last, "enumeration must be lexicographic w.r.t. alphabet order")
		}
		last = s
		if i+1 < total {
			b.Advance()
		}
	}
	require.Len(t, seen, int(total))
}

func TestSeedMidChunkMatchesAdvanceFromZero(t *testing.T) {
	alphabet := []byte("0123456789")
	const length = 4
	fromZero := New(alphabet, length)
	fromZero.Seed(0)
	for i := 0; i < 1234; i++ {
		fromZero.Advance()
	}

	seeded := New(alphabet, length)
	seeded.Seed(1234)

	require.Equal(t, fromZero.String(), seeded.String())
}

func TestTotalSaturatesOnOverflow(t *testing.T) {
	got := Total(94, 64)
	require.Equal(t, ^uint64(0), got)
}

func TestTotalSmall(t *testing.T) {
	require.EqualValues(t, 1, Total(10, 0))
	require.EqualValues(t, 10, Total(10, 1))
	require.EqualValues(t, 100, Total(10, 2))
}
