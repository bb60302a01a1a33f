package library

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/abhisek/polyglot/internal/content"
	"github.com/abhisek/polyglot/internal/mastery"
	"github.com/abhisek/polyglot/internal/spacedrep"
	"github.com/abhisek/polyglot/internal/store"
)

// Library owns the learner's curriculum, navigation state and mastery, and
// keeps them in sync with the key-value store.
type Library struct {
	kv       store.KV
	data     *content.Data
	state    NavState
	mastery  *mastery.Service
	editor   *content.Editor
	selector *spacedrep.Selector
	durable  bool
}

// Options configures Open.
type Options struct {
	// RecentWindow is the flashcard history window. Zero uses the default.
	RecentWindow int
}

// Open loads all persisted state. It never fails: missing or unreadable keys
// fall back to the built-in curriculum, default navigation and empty
// mastery. A nil kv behaves like an unavailable store.
func Open(ctx context.Context, kv store.KV, opts Options) *Library {
	l := &Library{
		kv:       kv,
		editor:   content.NewEditor(),
		selector: spacedrep.NewSelector(opts.RecentWindow),
		durable:  kv != nil,
	}
	l.data = l.loadContent(ctx)
	l.state = l.loadState(ctx)
	l.mastery = mastery.NewService(l.loadMastery(ctx))
	return l
}

// Durable reports whether every storage operation so far has succeeded.
func (l *Library) Durable() bool {
	return l.durable
}

// Data returns the live curriculum. Callers must not mutate it directly; use
// the editor methods so changes are persisted.
func (l *Library) Data() *content.Data {
	return l.data
}

// Mastery returns the mastery tracker.
func (l *Library) Mastery() *mastery.Service {
	return l.mastery
}

// State returns a copy of the navigation state.
func (l *Library) State() NavState {
	s := l.state
	s.Proficiency = l.state.Proficiency.Clone()
	s.History = append([]string(nil), l.state.History...)
	return s
}

func (l *Library) loadContent(ctx context.Context) *content.Data {
	raw, ok := l.get(ctx, KeyData)
	if !ok {
		return content.Default()
	}
	var d content.Data
	if err := json.Unmarshal(raw, &d); err != nil {
		slog.Warn("discarding unreadable content", "key", KeyData, "error", err)
		return content.Default()
	}
	if d.ContentVersion != content.CurrentVersion {
		slog.Info("content version changed, using built-in curriculum",
			"stored", d.ContentVersion, "current", content.CurrentVersion)
		def := content.Default()
		l.put(ctx, KeyData, def)
		return def
	}
	if d.Courses == nil {
		d.Courses = []content.Course{}
	}
	return &d
}

func (l *Library) loadState(ctx context.Context) NavState {
	s := DefaultNavState()
	raw, ok := l.get(ctx, KeyState)
	if !ok {
		return s
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		slog.Warn("discarding unreadable navigation state", "key", KeyState, "error", err)
		return DefaultNavState()
	}
	if s.Proficiency == nil {
		s.Proficiency = spacedrep.Proficiency{}
	}
	if s.Tab == "" {
		s.Tab = TabLearn
	}
	return s
}

func (l *Library) loadMastery(ctx context.Context) mastery.Snapshot {
	raw, ok := l.get(ctx, KeyMastery)
	if !ok {
		return nil
	}
	var snap mastery.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		slog.Warn("discarding unreadable mastery", "key", KeyMastery, "error", err)
		return nil
	}
	return snap
}

// get reads a key. Storage failures are logged and reported as a miss.
func (l *Library) get(ctx context.Context, key string) ([]byte, bool) {
	if l.kv == nil {
		return nil, false
	}
	raw, found, err := l.kv.Get(ctx, key)
	if err != nil {
		l.degrade("read", key, err)
		return nil, false
	}
	return raw, found
}

// put writes v as JSON. Storage failures are logged and otherwise ignored.
func (l *Library) put(ctx context.Context, key string, v any) {
	if l.kv == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode persisted value", "key", key, "error", err)
		return
	}
	if err := l.kv.Set(ctx, key, raw); err != nil {
		l.degrade("write", key, err)
	}
}

func (l *Library) degrade(op, key string, err error) {
	l.durable = false
	slog.Warn("persistence degraded",
		"op", op, "key", key,
		"error", errors.Wrap(ErrStorageUnavailable, err.Error()))
}

// SaveState replaces the navigation state and persists it.
func (l *Library) SaveState(ctx context.Context, s NavState) {
	if s.Proficiency == nil {
		s.Proficiency = spacedrep.Proficiency{}
	}
	l.state = s
	l.put(ctx, KeyState, l.state)
}

// Select records the chosen course, chapter and tab.
func (l *Library) Select(ctx context.Context, courseID, chapterID string, tab Tab) {
	s := l.State()
	s.CourseID, s.ChapterID = courseID, chapterID
	if tab != "" {
		s.Tab = tab
	}
	l.SaveState(ctx, s)
}

// CurrentCourse returns the selected course, falling back to the first one.
func (l *Library) CurrentCourse() (*content.Course, bool) {
	if c, ok := l.data.FindCourse(l.state.CourseID); ok {
		return c, true
	}
	if len(l.data.Courses) == 0 {
		return nil, false
	}
	return &l.data.Courses[0], true
}

// Chapter looks up a chapter by course and chapter id.
func (l *Library) Chapter(courseID, chapterID string) (*content.Chapter, bool) {
	c, ok := l.data.FindCourse(courseID)
	if !ok {
		return nil, false
	}
	return c.FindChapter(chapterID)
}

// RecordCompletion folds a finished quiz into mastery and persists it.
func (l *Library) RecordCompletion(ctx context.Context, courseID, chapterID string, percent int) mastery.Transition {
	t := l.mastery.RecordCompletion(courseID, chapterID, percent)
	l.put(ctx, KeyMastery, l.mastery.SnapshotData())
	return t
}

// NextFlashcard picks the next card for review from the chapter's pool.
func (l *Library) NextFlashcard(ch *content.Chapter) (content.VocabItem, bool) {
	return l.selector.PickNext(content.Pool(ch), l.state.History, l.state.Proficiency)
}

// RecordFlashcard updates proficiency and review history for one card.
func (l *Library) RecordFlashcard(ctx context.Context, itemID string, correct bool) int {
	s := l.State()
	s.Proficiency = spacedrep.RecordOutcome(s.Proficiency, itemID, correct)
	s.History = l.selector.Push(s.History, itemID)
	l.SaveState(ctx, s)
	return s.Proficiency.Score(itemID)
}

// Export returns the curriculum as indented JSON.
func (l *Library) Export() ([]byte, error) {
	return content.Marshal(l.data)
}

// ExportTo writes the exported curriculum to w.
func (l *Library) ExportTo(w io.Writer) error {
	b, err := l.Export()
	if err != nil {
		return err
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return errors.Wrap(err, "write export")
	}
	return nil
}

// Import replaces the curriculum wholesale with raw JSON. On any parse or
// validation failure a MalformedImportError is returned and nothing changes.
// Imported content is stamped with the current version so it survives the
// next load.
func (l *Library) Import(ctx context.Context, raw []byte) error {
	d, err := content.Parse(raw)
	if err != nil {
		return &MalformedImportError{Err: err}
	}
	d.ContentVersion = content.CurrentVersion
	l.data = d
	l.put(ctx, KeyData, l.data)
	return nil
}

// ImportFrom reads r fully and imports it.
func (l *Library) ImportFrom(ctx context.Context, r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "read import")
	}
	return l.Import(ctx, raw)
}

// Reset clears every persisted key and reverts to the built-in curriculum,
// default navigation and empty mastery.
func (l *Library) Reset(ctx context.Context) {
	if l.kv != nil {
		if err := l.kv.Delete(ctx, KeyData, KeyState, KeyMastery); err != nil {
			l.degrade("delete", KeyData, err)
		}
	}
	l.data = content.Default()
	l.state = DefaultNavState()
	l.mastery = mastery.NewService(nil)
}
