package quiz

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// isCombiningDiacritic matches the Combining Diacritical Marks block only.
// Other combining marks, such as the Japanese voicing marks, are kept.
func isCombiningDiacritic(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
}

// Normalize prepares free-text input for comparison:
//   - canonical decomposition (NFD)
//   - combining diacritical marks removed
//   - lower-cased
//   - whitespace runs collapsed and the ends trimmed
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.Predicate(isCombiningDiacritic)))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	lowered := cases.Lower(language.Und).String(stripped)
	return strings.Join(strings.Fields(lowered), " ")
}

// Equivalent reports whether two answers match ignoring case, accents and
// incidental whitespace. Typos, word order and synonyms do not match.
func Equivalent(given, expected string) bool {
	return Normalize(given) == Normalize(expected)
}

// CheckAnswer grades input against the question. Multiple choice requires
// the exact option text; the other kinds use Equivalent.
func CheckAnswer(input string, q *Question) bool {
	if q == nil {
		return false
	}
	if q.Kind == KindMultipleChoice {
		return input == q.Answer
	}
	return Equivalent(input, q.Answer)
}
