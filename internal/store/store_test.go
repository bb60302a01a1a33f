package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by TestFileDatabaseUsesWAL.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "polyglot.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestKVRoundTrip(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	_, found, err := kv.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if found {
		t.Fatal("expected missing key to be not found")
	}

	if err := kv.Set(ctx, "a", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "a", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, found, err := kv.Get(ctx, "a")
	if err != nil || !found {
		t.Fatalf("get a: found=%v err=%v", found, err)
	}
	if string(got) != `{"v":2}` {
		t.Errorf("value = %s, want last write", got)
	}
}

func TestKVDelete(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		if err := kv.Set(ctx, k, []byte("1")); err != nil {
			t.Fatal(err)
		}
	}
	if err := kv.Delete(ctx, "a", "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := kv.Delete(ctx); err != nil {
		t.Fatalf("delete nothing: %v", err)
	}

	for k, want := range map[string]bool{"a": false, "b": false, "c": true} {
		_, found, err := kv.Get(ctx, k)
		if err != nil {
			t.Fatal(err)
		}
		if found != want {
			t.Errorf("key %s found = %v, want %v", k, found, want)
		}
	}
}

func TestSequenceIsGlobal(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendQuizEvent(ctx, QuizEventData{SessionID: "s1", CourseID: "es-en", ChapterID: "c1", Kind: "mcq", Action: QuizActionStart}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "tutor", Success: true}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendQuizEvent(ctx, QuizEventData{SessionID: "s1", CourseID: "es-en", ChapterID: "c1", Kind: "mcq", Action: QuizActionComplete}); err != nil {
		t.Fatal(err)
	}

	quizzes, err := repo.QueryQuizEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	llms, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(quizzes) != 2 || len(llms) != 1 {
		t.Fatalf("got %d quiz and %d llm events", len(quizzes), len(llms))
	}
	// Newest first.
	if quizzes[0].Sequence != 3 || quizzes[1].Sequence != 1 || llms[0].Sequence != 2 {
		t.Errorf("sequences = %d,%d,%d want 3,1,2", quizzes[0].Sequence, quizzes[1].Sequence, llms[0].Sequence)
	}
}

func TestQueryOptsLimitAndAfter(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.AppendQuizEvent(ctx, QuizEventData{SessionID: "s", CourseID: "es-en", ChapterID: "c", Kind: "fill", Action: QuizActionStart}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.QueryQuizEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Sequence != 5 {
		t.Errorf("limit: got %d events, first seq %d", len(got), got[0].Sequence)
	}

	got, err = repo.QueryQuizEvents(ctx, QueryOpts{After: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("after: got %d events, want 2", len(got))
	}
}

func TestChapterStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	complete := func(chapter string, pct int) {
		t.Helper()
		err := repo.AppendQuizEvent(ctx, QuizEventData{
			SessionID: "s", CourseID: "es-en", ChapterID: chapter, Kind: "mcq",
			Action: QuizActionComplete, TotalQuestions: 4, Percent: pct,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	complete("c1", 50)
	complete("c1", 75)
	complete("c2", 100)
	if err := repo.AppendQuizEvent(ctx, QuizEventData{SessionID: "s", CourseID: "es-en", ChapterID: "c3", Kind: "mcq", Action: QuizActionAbandon}); err != nil {
		t.Fatal(err)
	}
	for _, ok := range []bool{true, false, true} {
		if err := repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s", CourseID: "es-en", ChapterID: "c1", Kind: "mcq", Prompt: "p", Expected: "e", Given: "g", Correct: ok}); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := repo.ChapterStats(ctx, "es-en")
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d chapters, want 2: %+v", len(stats), stats)
	}
	c1 := stats[0]
	if c1.ChapterID != "c1" || c1.Completed != 2 || c1.BestPercent != 75 || c1.Answers != 3 || c1.Correct != 2 {
		t.Errorf("c1 = %+v", c1)
	}
	if c1.LastActivity.IsZero() {
		t.Error("expected last activity")
	}
	if stats[1].ChapterID != "c2" || stats[1].BestPercent != 100 {
		t.Errorf("c2 = %+v", stats[1])
	}

	other, err := repo.ChapterStats(ctx, "ja-ko")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Errorf("ja-ko stats = %+v, want none", other)
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude", Purpose: "tutor",
		InputTokens: 10, OutputTokens: 20, LatencyMs: 300,
		Success: false, ErrorMessage: "boom",
		RequestBody: "req", ResponseBody: "resp",
	})
	if err != nil {
		t.Fatal(err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil || len(events) != 1 {
		t.Fatalf("query: %v (%d)", err, len(events))
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if e == nil {
		t.Fatal("expected event")
	}
	if e.Success || e.ErrorMessage != "boom" || e.RequestBody != "req" || e.OutputTokens != 20 {
		t.Errorf("event = %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 999)
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	if err := kv.Set(ctx, "a", []byte("1")); err != nil {
		t.Fatal(err)
	}
	v, found, _ := kv.Get(ctx, "a")
	if !found || string(v) != "1" {
		t.Errorf("Get = %q, %v", v, found)
	}

	// Returned slices are copies.
	v[0] = '9'
	v, _, _ = kv.Get(ctx, "a")
	if string(v) != "1" {
		t.Errorf("stored value mutated: %q", v)
	}

	kv.Delete(ctx, "a")
	if _, found, _ := kv.Get(ctx, "a"); found {
		t.Error("expected deleted")
	}
}
