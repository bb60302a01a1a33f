package spacedrep

import (
	"slices"

	"github.com/abhisek/polyglot/internal/content"
)

// DefaultWindow is the number of recent picks excluded from selection.
const DefaultWindow = 5

// Selector picks the next flashcard, favoring the weakest items while
// avoiding anything shown in the last Window picks.
type Selector struct {
	Window int
}

// NewSelector returns a selector with the given recent-history window. A
// non-positive window uses DefaultWindow.
func NewSelector(window int) *Selector {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Selector{Window: window}
}

// PickNext orders items by ascending proficiency (stable, so content order
// breaks ties), drops those in the trailing history window and returns the
// first survivor. When every item was seen recently it falls back to the
// weakest item overall. ok is false only for an empty pool.
func (s *Selector) PickNext(items []content.VocabItem, history []string, prof Proficiency) (item content.VocabItem, ok bool) {
	if len(items) == 0 {
		return content.VocabItem{}, false
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b content.VocabItem) int {
		return prof.Score(a.ID) - prof.Score(b.ID)
	})

	recent := s.recent(history)
	for _, it := range sorted {
		if !slices.Contains(recent, it.ID) {
			return it, true
		}
	}
	return sorted[0], true
}

// Push appends id to the history, keeping only the last Window entries.
func (s *Selector) Push(history []string, id string) []string {
	out := append(slices.Clone(history), id)
	return s.recent(out)
}

func (s *Selector) recent(history []string) []string {
	w := s.Window
	if w <= 0 {
		w = DefaultWindow
	}
	if len(history) <= w {
		return history
	}
	return history[len(history)-w:]
}
