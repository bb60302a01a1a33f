package quiz

import "github.com/abhisek/polyglot/internal/content"

// uniqueBy keeps the first item for each key, preserving order. Items that
// would show the learner the same prompt twice collapse to one.
func uniqueBy[T any](items []T, key func(T) string) []T {
	seen := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := key(it)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out
}

// Multiple choice asks for the translation of Source, fill-in for the source
// of Target, so each kind dedups on the text it prompts with.
func mcStems(pool []content.VocabItem) []content.VocabItem {
	return uniqueBy(pool, func(it content.VocabItem) string { return it.Source })
}

func fillStems(pool []content.VocabItem) []content.VocabItem {
	return uniqueBy(pool, func(it content.VocabItem) string { return it.Target })
}

func uniqueRecords(records []content.GrammarRecord) []content.GrammarRecord {
	return uniqueBy(records, func(r content.GrammarRecord) string {
		return r.Lemma + "\x00" + r.Tense + "\x00" + r.Person
	})
}
