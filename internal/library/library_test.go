package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/polyglot/internal/content"
	"github.com/abhisek/polyglot/internal/store"
)

// mockKV is a testify double for store.KV.
type mockKV struct {
	mock.Mock
}

func (m *mockKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).([]byte)
	return b, args.Bool(1), args.Error(2)
}

func (m *mockKV) Set(ctx context.Context, key string, value []byte) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *mockKV) Delete(ctx context.Context, keys ...string) error {
	args := make([]any, 0, len(keys)+1)
	args = append(args, ctx)
	for _, k := range keys {
		args = append(args, k)
	}
	return m.Called(args...).Error(0)
}

var errDisk = errors.New("quota exceeded")

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestOpen_EmptyStoreUsesDefaults(t *testing.T) {
	lib := Open(context.Background(), store.NewMemoryKV(), Options{})

	assert.Equal(t, content.CurrentVersion, lib.Data().ContentVersion)
	assert.Len(t, lib.Data().Courses, 2)
	assert.Equal(t, TabLearn, lib.State().Tab)
	assert.Empty(t, lib.Mastery().SnapshotData())
	assert.True(t, lib.Durable())
}

func TestOpen_VersionMismatchDiscardsContent(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()

	stale := content.Default()
	stale.ContentVersion = content.CurrentVersion - 1
	stale.Courses[0].Label = "edited"
	require.NoError(t, kv.Set(ctx, KeyData, mustJSON(t, stale)))

	lib := Open(ctx, kv, Options{})
	assert.NotEqual(t, "edited", lib.Data().Courses[0].Label)
	assert.Equal(t, content.CurrentVersion, lib.Data().ContentVersion)

	// The built-in content is written back.
	raw, found, err := kv.Get(ctx, KeyData)
	require.NoError(t, err)
	require.True(t, found)
	var persisted content.Data
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, content.CurrentVersion, persisted.ContentVersion)
}

func TestOpen_MatchingVersionKeepsEdits(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()

	d := content.Default()
	d.Courses[0].Label = "edited"
	require.NoError(t, kv.Set(ctx, KeyData, mustJSON(t, d)))

	lib := Open(ctx, kv, Options{})
	assert.Equal(t, "edited", lib.Data().Courses[0].Label)
}

func TestOpen_CorruptValuesFallBack(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	for _, k := range []string{KeyData, KeyState, KeyMastery} {
		require.NoError(t, kv.Set(ctx, k, []byte("{not json")))
	}

	lib := Open(ctx, kv, Options{})
	assert.Len(t, lib.Data().Courses, 2)
	assert.Equal(t, DefaultNavState().Tab, lib.State().Tab)
	assert.Empty(t, lib.Mastery().SnapshotData())
}

func TestOpen_StorageUnavailable(t *testing.T) {
	kv := new(mockKV)
	kv.On("Get", mock.Anything, mock.Anything).Return(nil, false, errDisk)

	lib := Open(context.Background(), kv, Options{})

	assert.False(t, lib.Durable())
	assert.Len(t, lib.Data().Courses, 2)
	assert.Equal(t, 0, lib.Mastery().Get("es-en", "es-greetings"))
	kv.AssertNumberOfCalls(t, "Get", 3)
}

func TestWriteFailureIsNoOp(t *testing.T) {
	ctx := context.Background()
	kv := new(mockKV)
	kv.On("Get", mock.Anything, mock.Anything).Return(nil, false, nil)
	kv.On("Set", mock.Anything, KeyMastery, mock.Anything).Return(errDisk)

	lib := Open(ctx, kv, Options{})
	require.True(t, lib.Durable())

	tr := lib.RecordCompletion(ctx, "es-en", "es-greetings", 75)

	// In-memory state still advances.
	assert.Equal(t, 75, tr.Current)
	assert.Equal(t, 75, lib.Mastery().Get("es-en", "es-greetings"))
	assert.False(t, lib.Durable())
	kv.AssertExpectations(t)
}

func TestNilStore(t *testing.T) {
	ctx := context.Background()
	lib := Open(ctx, nil, Options{})
	lib.RecordCompletion(ctx, "es-en", "es-greetings", 50)
	lib.Reset(ctx)

	assert.False(t, lib.Durable())
	assert.Equal(t, 0, lib.Mastery().Get("es-en", "es-greetings"))
}

func TestRecordCompletion_PersistsMax(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()

	lib := Open(ctx, kv, Options{})
	lib.RecordCompletion(ctx, "es-en", "es-greetings", 75)
	lib.RecordCompletion(ctx, "es-en", "es-greetings", 40)

	reopened := Open(ctx, kv, Options{})
	assert.Equal(t, 75, reopened.Mastery().Get("es-en", "es-greetings"))
}

func TestSelectPersists(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()

	lib := Open(ctx, kv, Options{})
	lib.Select(ctx, "ja-ko", "ja-food", TabGrammar)

	reopened := Open(ctx, kv, Options{})
	s := reopened.State()
	assert.Equal(t, "ja-ko", s.CourseID)
	assert.Equal(t, "ja-food", s.ChapterID)
	assert.Equal(t, TabGrammar, s.Tab)

	c, ok := reopened.CurrentCourse()
	require.True(t, ok)
	assert.Equal(t, "ja-ko", c.ID)
}

func TestCurrentCourse_FallsBackToFirst(t *testing.T) {
	lib := Open(context.Background(), store.NewMemoryKV(), Options{})
	c, ok := lib.CurrentCourse()
	require.True(t, ok)
	assert.Equal(t, "es-en", c.ID)
}

func TestFlashcards(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	lib := Open(ctx, kv, Options{RecentWindow: 2})

	ch, ok := lib.Chapter("es-en", "es-greetings")
	require.True(t, ok)

	first, ok := lib.NextFlashcard(ch)
	require.True(t, ok)
	assert.Equal(t, 1, lib.RecordFlashcard(ctx, first.ID, true))

	second, ok := lib.NextFlashcard(ch)
	require.True(t, ok)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 0, lib.RecordFlashcard(ctx, second.ID, false))

	reopened := Open(ctx, kv, Options{RecentWindow: 2})
	s := reopened.State()
	assert.Equal(t, 1, s.Proficiency.Score(first.ID))
	assert.Equal(t, []string{first.ID, second.ID}, s.History)
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	lib := Open(ctx, store.NewMemoryKV(), Options{})

	var buf bytes.Buffer
	require.NoError(t, lib.ExportTo(&buf))
	assert.Contains(t, buf.String(), "\n  \"courses\"")

	other := Open(ctx, store.NewMemoryKV(), Options{})
	require.NoError(t, other.ImportFrom(ctx, &buf))
	assert.Equal(t, lib.Data().Courses[0].ID, other.Data().Courses[0].ID)
}

func TestImport_InvalidJSONLeavesState(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	lib := Open(ctx, kv, Options{})
	before := lib.Data()

	tests := []struct {
		name string
		raw  string
	}{
		{"syntax", `{"courses": [`},
		{"not object", `[1, 2]`},
		{"missing courses", `{"contentVersion": 2}`},
		{"course without id", `{"courses": [{"label": "x", "chapters": []}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lib.Import(ctx, []byte(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedImport)

			var mi *MalformedImportError
			assert.ErrorAs(t, err, &mi)
			assert.Same(t, before, lib.Data())
		})
	}

	_, found, _ := kv.Get(ctx, KeyData)
	assert.False(t, found, "failed import must not write")
}

func TestImport_StampsCurrentVersion(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	lib := Open(ctx, kv, Options{})

	raw := `{"contentVersion": 1, "courses": [{"id": "fr-en", "label": "French", "learnLang": "fr", "chapters": [{"id": "c1", "title": "Bonjour"}]}]}`
	require.NoError(t, lib.Import(ctx, []byte(raw)))
	assert.Equal(t, content.CurrentVersion, lib.Data().ContentVersion)

	reopened := Open(ctx, kv, Options{})
	require.Len(t, reopened.Data().Courses, 1)
	assert.Equal(t, "fr-en", reopened.Data().Courses[0].ID)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	lib := Open(ctx, kv, Options{})

	lib.RecordCompletion(ctx, "es-en", "es-greetings", 90)
	lib.Select(ctx, "ja-ko", "ja-food", TabQuiz)
	_, err := lib.AddChapter(ctx, 0)
	require.NoError(t, err)

	lib.Reset(ctx)

	for _, k := range []string{KeyData, KeyState, KeyMastery} {
		_, found, err := kv.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, found, k)
	}
	assert.Equal(t, 0, lib.Mastery().Get("es-en", "es-greetings"))
	assert.Equal(t, "", lib.State().CourseID)
	assert.Len(t, lib.Data().Courses[0].Chapters, len(content.Default().Courses[0].Chapters))
}

func TestReset_DeletesAllKeys(t *testing.T) {
	ctx := context.Background()
	kv := new(mockKV)
	kv.On("Get", mock.Anything, mock.Anything).Return(nil, false, nil)
	kv.On("Delete", mock.Anything, KeyData, KeyState, KeyMastery).Return(nil)

	lib := Open(ctx, kv, Options{})
	lib.Reset(ctx)

	kv.AssertExpectations(t)
	assert.True(t, lib.Durable())
}
