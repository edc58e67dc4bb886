package dictionary

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildIsSortedAndDeduplicated(t *testing.T) {
	out := Build([]string{"abc"})
	require.True(t, sort.StringsAreSorted(out))
	seen := map[string]bool{}
	for _, w := range out {
		require.False(t, seen[w], "duplicate candidate %q", w)
		seen[w] = true
	}
}

func TestBuildIncludesCustomWordMutations(t *testing.T) {
	out := Build([]string{"correcthorse"})
	require.Contains(t, out, "correcthorse")
	require.Contains(t, out, "CORRECTHORSE")
	require.Contains(t, out, "Correcthorse")
	require.Contains(t, out, "correcthorse1")
	require.Contains(t, out, "correcthorse123")
}

func TestMutationsLeetOnlyWhenDifferent(t *testing.T) {
	// "xyz" has no leet-substitutable characters, so it should not
	// duplicate the original in the mutation set.
	m := mutations("xyz")
	count := 0
	for _, w := range m {
		if w == "xyz" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestMutationsLeetSubstitution(t *testing.T) {
	m := mutations("password")
	require.Contains(t, m, "p@$$w0rd")
}

func TestPasswordCapitalizeSuffixMutation(t *testing.T) {
	// Mirrors spec.md scenario 4: "Password1" must be reachable from the
	// base word "password" via capitalize + "1" suffix.
	m := mutations("password")
	require.Contains(t, m, "Password1")
}

func TestWordCountMatchesEmbeddedWordlist(t *testing.T) {
	require.Greater(t, WordCount(), 0)
}
