package spacedrep

import (
	"testing"

	"github.com/abhisek/polyglot/internal/content"
)

func items(ids ...string) []content.VocabItem {
	out := make([]content.VocabItem, len(ids))
	for i, id := range ids {
		out[i] = content.VocabItem{ID: id, Source: id, Target: id}
	}
	return out
}

func TestPickNext_Empty(t *testing.T) {
	s := NewSelector(0)
	if _, ok := s.PickNext(nil, nil, nil); ok {
		t.Error("expected ok=false for empty pool")
	}
}

func TestPickNext_LowestProficiencyFirst(t *testing.T) {
	s := NewSelector(5)
	prof := Proficiency{"a": 3, "b": 1, "c": 2}
	got, ok := s.PickNext(items("a", "b", "c"), nil, prof)
	if !ok || got.ID != "b" {
		t.Errorf("PickNext = %q, want b", got.ID)
	}
}

func TestPickNext_UnseenTiesWithZero(t *testing.T) {
	s := NewSelector(5)
	prof := Proficiency{"a": 0, "c": 1}
	// a (0) and b (unseen) tie; content order wins.
	got, _ := s.PickNext(items("a", "b", "c"), nil, prof)
	if got.ID != "a" {
		t.Errorf("PickNext = %q, want a", got.ID)
	}
}

func TestPickNext_SkipsRecent(t *testing.T) {
	s := NewSelector(5)
	got, _ := s.PickNext(items("a", "b", "c"), []string{"a"}, nil)
	if got.ID != "b" {
		t.Errorf("PickNext = %q, want b", got.ID)
	}
}

func TestPickNext_OnlyTrailingWindowCounts(t *testing.T) {
	s := NewSelector(2)
	// "a" is outside the last two picks.
	got, _ := s.PickNext(items("a", "b", "c"), []string{"a", "b", "c"}, nil)
	if got.ID != "a" {
		t.Errorf("PickNext = %q, want a", got.ID)
	}
}

func TestPickNext_FallbackWhenAllRecent(t *testing.T) {
	s := NewSelector(5)
	prof := Proficiency{"a": 2, "b": 1}
	got, ok := s.PickNext(items("a", "b"), []string{"a", "b"}, prof)
	if !ok || got.ID != "b" {
		t.Errorf("PickNext = %q, want b (weakest overall)", got.ID)
	}
}

func TestPickNext_DoesNotReorderInput(t *testing.T) {
	s := NewSelector(5)
	in := items("a", "b")
	s.PickNext(in, nil, Proficiency{"a": 5})
	if in[0].ID != "a" {
		t.Error("input slice was reordered")
	}
}

func TestPush_Bounded(t *testing.T) {
	s := NewSelector(3)
	var h []string
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		h = s.Push(h, id)
	}
	want := []string{"c", "d", "e"}
	if len(h) != len(want) {
		t.Fatalf("history = %v, want %v", h, want)
	}
	for i := range want {
		if h[i] != want[i] {
			t.Fatalf("history = %v, want %v", h, want)
		}
	}
}

func TestRecordOutcome(t *testing.T) {
	prof := Proficiency{}
	prof = RecordOutcome(prof, "a", true)
	prof = RecordOutcome(prof, "a", true)
	if prof.Score("a") != 2 {
		t.Errorf("score = %d, want 2", prof.Score("a"))
	}
	prof = RecordOutcome(prof, "a", false)
	if prof.Score("a") != 1 {
		t.Errorf("score = %d, want 1", prof.Score("a"))
	}
}

func TestRecordOutcome_FloorsAtZero(t *testing.T) {
	prof := Proficiency{"a": 1}
	for range 5 {
		prof = RecordOutcome(prof, "a", false)
	}
	if prof.Score("a") != 0 {
		t.Errorf("score = %d, want 0", prof.Score("a"))
	}
	prof = RecordOutcome(prof, "new", false)
	if got, ok := prof["new"]; !ok || got != 0 {
		t.Errorf("new item = %d (%v), want 0", got, ok)
	}
}

func TestRecordOutcome_DoesNotMutateInput(t *testing.T) {
	prof := Proficiency{"a": 1}
	_ = RecordOutcome(prof, "a", true)
	if prof["a"] != 1 {
		t.Error("input map mutated")
	}
}
