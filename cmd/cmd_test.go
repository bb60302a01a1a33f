package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/polyglot/internal/content"
	"github.com/abhisek/polyglot/internal/store"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func testDB(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("POLYGLOT_DB", "")
	t.Setenv("POLYGLOT_LOG_FILE", filepath.Join(dir, "test.log"))
	t.Setenv("POLYGLOT_LLM_PROVIDER", "")
	return filepath.Join(dir, "polyglot.db")
}

func readExport(t *testing.T, path string) *content.Data {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	d, err := content.Parse(raw)
	require.NoError(t, err)
	return d
}

func TestExportImportRoundTrip(t *testing.T) {
	db := testDB(t)
	out := filepath.Join(t.TempDir(), "export.json")

	require.NoError(t, execute(t, "--db", db, "export", out))
	d := readExport(t, out)
	assert.Equal(t, content.CurrentVersion, d.ContentVersion)
	assert.Len(t, d.Courses, len(content.Default().Courses))

	d.Courses = d.Courses[:1]
	d.Courses[0].Label = "Imported"
	raw, err := content.Marshal(d)
	require.NoError(t, err)
	in := filepath.Join(t.TempDir(), "import.json")
	require.NoError(t, os.WriteFile(in, raw, 0o644))

	require.NoError(t, execute(t, "--db", db, "import", in))

	again := filepath.Join(t.TempDir(), "again.json")
	require.NoError(t, execute(t, "--db", db, "export", again))
	got := readExport(t, again)
	require.Len(t, got.Courses, 1)
	assert.Equal(t, "Imported", got.Courses[0].Label)
}

func TestImportRejectsMalformed(t *testing.T) {
	db := testDB(t)
	in := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"courses": "nope"}`), 0o644))

	err := execute(t, "--db", db, "import", in)
	require.Error(t, err)

	out := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, execute(t, "--db", db, "export", out))
	assert.Len(t, readExport(t, out).Courses, len(content.Default().Courses))
}

func TestEditAddPhraseThenReset(t *testing.T) {
	db := testDB(t)
	course := content.Default().Courses[0]
	chapter := course.Chapters[0]

	require.NoError(t, execute(t, "--db", db, "edit", "add-phrase", course.ID, chapter.ID, "Buenas noches.", "Good night."))

	out := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, execute(t, "--db", db, "export", out))
	d := readExport(t, out)
	ch, ok := d.Courses[0].FindChapter(chapter.ID)
	require.True(t, ok)
	vocab := content.NormalizedVocab(ch)
	last := vocab[len(vocab)-1]
	assert.Equal(t, "Buenas noches.", last.Source)
	assert.Equal(t, "Good night.", last.Target)
	assert.Equal(t, 1, d.Revision)

	require.NoError(t, execute(t, "--db", db, "reset", "--yes"))
	require.NoError(t, execute(t, "--db", db, "export", out))
	d = readExport(t, out)
	ch, _ = d.Courses[0].FindChapter(chapter.ID)
	assert.Len(t, content.NormalizedVocab(ch), len(content.NormalizedVocab(&chapter)))
	assert.Zero(t, d.Revision)
}

func TestEditUnknownCourse(t *testing.T) {
	db := testDB(t)
	err := execute(t, "--db", db, "edit", "add-chapter", "xx-yy")
	assert.ErrorIs(t, err, content.ErrCourseNotFound)
}

func TestAggregateUsage(t *testing.T) {
	events := []store.LLMEventRecord{
		{LLMRequestEventData: store.LLMRequestEventData{Purpose: "tutor", Model: "gpt-4o-mini", InputTokens: 100, OutputTokens: 20, LatencyMs: 300}},
		{LLMRequestEventData: store.LLMRequestEventData{Purpose: "tutor", Model: "gpt-4o-mini", InputTokens: 50, OutputTokens: 10, LatencyMs: 100}},
		{LLMRequestEventData: store.LLMRequestEventData{Purpose: "check", Model: "claude-haiku-4-5", InputTokens: 7, OutputTokens: 3, LatencyMs: 40}},
	}

	purposes, models := aggregateUsage(events)
	require.Len(t, purposes, 2)
	assert.Equal(t, purposeUsage{Purpose: "check", Calls: 1, InputTokens: 7, OutputTokens: 3, AvgLatencyMs: 40}, purposes[0])
	assert.Equal(t, purposeUsage{Purpose: "tutor", Calls: 2, InputTokens: 150, OutputTokens: 30, AvgLatencyMs: 200}, purposes[1])

	require.Len(t, models, 2)
	assert.Equal(t, "claude-haiku-4-5", models[0].Model)
	assert.Equal(t, 2, models[1].Calls)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := confirm(strings.NewReader(tt.input), ""); got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTruncateKeepsRunes(t *testing.T) {
	if got := truncate("안녕하세요 여러분", 5); got != "안녕하세요" {
		t.Errorf("truncate = %q, want %q", got, "안녕하세요")
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q, want %q", got, "short")
	}
}
