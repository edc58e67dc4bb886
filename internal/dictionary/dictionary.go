// Package dictionary builds the bounded candidate list for the dictionary
// phase: the embedded wordlist plus caller-supplied custom words, each run
// through a fixed mutation ruleset, deduplicated and sorted.
package dictionary

import (
	_ "embed"
	"sort"
	"strings"
)

//go:embed wordlist.txt
var embeddedWordlist string

// BaseWords returns the embedded wordlist, CRLF-stripped and blank-line
// free, plus any caller-supplied custom words appended.
func BaseWords(custom []string) []string {
	lines := strings.Split(embeddedWordlist, "\n")
	out := make([]string, 0, len(lines)+len(custom))
	for _, l := range lines {
		l = strings.TrimRight(l, "\r")
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	out = append(out, custom...)
	return out
}

// Build runs every base word (wordlist + custom) through the mutation
// ruleset, then deduplicates and sorts the resulting candidate set.
func Build(custom []string) []string {
	base := BaseWords(custom)
	seen := make(map[string]struct{}, len(base)*MutationsPerWord)
	out := make([]string, 0, len(base)*MutationsPerWord)
	for _, w := range base {
		for _, m := range mutations(w) {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

// WordCount returns the number of embedded base words, ignoring any custom
// words — used by Estimate, which must reflect the built-in dictionary's
// size regardless of what a particular run adds.
func WordCount() int {
	return len(BaseWords(nil))
}
