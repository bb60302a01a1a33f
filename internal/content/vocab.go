package content

import "strings"

// NormalizedVocab returns the chapter's vocabulary regardless of which field
// name the content used. "vocab" wins when it is non-empty.
func NormalizedVocab(ch *Chapter) []VocabItem {
	if ch == nil {
		return nil
	}
	if len(ch.Vocab) > 0 {
		return ch.Vocab
	}
	if len(ch.Items) > 0 {
		return ch.Items
	}
	return []VocabItem{}
}

// Pool returns the vocabulary items eligible for quizzing: both source and
// target text must be non-empty.
func Pool(ch *Chapter) []VocabItem {
	vocab := NormalizedVocab(ch)
	pool := make([]VocabItem, 0, len(vocab))
	for _, it := range vocab {
		if strings.TrimSpace(it.Source) == "" || strings.TrimSpace(it.Target) == "" {
			continue
		}
		pool = append(pool, it)
	}
	return pool
}

// UsesVocabField reports whether edits to the chapter should be written back
// under "vocab" rather than the legacy "items" field.
func UsesVocabField(ch *Chapter) bool {
	return ch.Vocab != nil
}
