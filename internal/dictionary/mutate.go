package dictionary

import "strings"

// suffixes is the fixed set of common numeric/symbol suffixes appended to
// every base word.
var suffixes = [...]string{"1", "12", "123", "!", "1!", "0", "00", "01", "69", "007"}

var leetReplacer = strings.NewReplacer(
	"a", "@", "A", "@",
	"e", "3", "E", "3",
	"o", "0", "O", "0",
	"i", "1", "I", "1",
	"s", "$", "S", "$",
)

// MutationsPerWord is the exact upper-bound count mutations() produces for
// a single base word (leet differs from the original, and capitalize
// differs from the original, the usual case): the original, the
// uppercased form, the capitalized form, one suffix appended to the
// original and one to the capitalized form per suffix, and the leet form.
// Estimate uses this instead of a guessed constant so it never drifts from
// the real ruleset below.
const MutationsPerWord = 1 + 1 + 1 + 2*len(suffixes) + 1

// mutations returns every password variant derived from word, per the
// fixed ruleset: the original, the all-uppercase form, the first-letter-
// capitalized form, each configured suffix appended to both the original
// and the capitalized form (the common "Word123" human pattern — spec.md's
// scenario of "Password1" being found via "capitalize + 1 suffix" requires
// suffixes to compose with capitalization, not just the bare word), and a
// leet-speak substitution (emitted only when it differs from word).
func mutations(word string) []string {
	capped := capitalize(word)
	out := make([]string, 0, MutationsPerWord)
	out = append(out, word)
	out = append(out, strings.ToUpper(word))
	out = append(out, capped)
	for _, suf := range suffixes {
		out = append(out, word+suf)
		if capped != word {
			out = append(out, capped+suf)
		}
	}
	if leet := leetReplacer.Replace(word); leet != word {
		out = append(out, leet)
	}
	return out
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
