package data

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/polyglot/internal/content"
	"github.com/abhisek/polyglot/internal/library"
	"github.com/abhisek/polyglot/internal/screen"
	"github.com/abhisek/polyglot/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testScreen(t *testing.T) (*DataScreen, *library.Library) {
	t.Helper()
	lib := library.Open(context.Background(), store.NewMemoryKV(), library.Options{})
	return New(&screen.Services{Library: lib}), lib
}

// openPrompt moves the menu cursor to item and opens its file prompt with
// path filled in.
func openPrompt(s *DataScreen, item int, path string) {
	for range item {
		s.Update(specialKey(tea.KeyDown))
	}
	s.Update(specialKey(tea.KeyEnter))
	s.input.Model.SetValue(path)
}

func TestDataScreen_Export(t *testing.T) {
	s, lib := testScreen(t)
	path := filepath.Join(t.TempDir(), content.ExportFileName)

	s.Update(specialKey(tea.KeyEnter))
	if s.mode != modeExport {
		t.Fatalf("mode = %v, want export", s.mode)
	}
	if got := s.input.Value(); got != content.ExportFileName {
		t.Errorf("default path = %q, want %q", got, content.ExportFileName)
	}
	if !s.CapturesEsc() {
		t.Error("prompt should capture esc")
	}

	s.input.Model.SetValue(path)
	s.Update(specialKey(tea.KeyEnter))
	if s.failed {
		t.Fatalf("export failed: %s", s.status)
	}
	if s.mode != modeMenu {
		t.Error("expected menu after export")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	d, err := content.Parse(raw)
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if len(d.Courses) != len(lib.Data().Courses) {
		t.Errorf("exported %d courses, want %d", len(d.Courses), len(lib.Data().Courses))
	}
	if !strings.HasPrefix(string(raw), "{\n  \"") {
		t.Errorf("export should be 2-space indented, got %q", string(raw[:10]))
	}
}

func TestDataScreen_ImportReplacesCurriculum(t *testing.T) {
	s, lib := testScreen(t)

	d := content.Default()
	d.Courses = d.Courses[:1]
	d.Courses[0].Label = "Only course"
	raw, err := content.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "in.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	openPrompt(s, 1, path)
	if s.mode != modeImport {
		t.Fatalf("mode = %v, want import", s.mode)
	}
	s.Update(specialKey(tea.KeyEnter))
	if s.failed {
		t.Fatalf("import failed: %s", s.status)
	}
	if got := len(lib.Data().Courses); got != 1 {
		t.Fatalf("courses = %d, want 1", got)
	}
	if got := lib.Data().Courses[0].Label; got != "Only course" {
		t.Errorf("label = %q, want %q", got, "Only course")
	}
}

func TestDataScreen_MalformedImportLeavesData(t *testing.T) {
	s, lib := testScreen(t)
	before := len(lib.Data().Courses)

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"courses": [{"id": 1}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	openPrompt(s, 1, path)
	s.Update(specialKey(tea.KeyEnter))

	if !s.failed {
		t.Fatal("expected import failure")
	}
	if got := len(lib.Data().Courses); got != before {
		t.Errorf("courses = %d, want %d", got, before)
	}
	if !strings.Contains(s.status, "curriculum does not match schema") {
		t.Errorf("status should carry the parser message, got %q", s.status)
	}
}

func TestDataScreen_MissingFile(t *testing.T) {
	s, _ := testScreen(t)
	openPrompt(s, 1, filepath.Join(t.TempDir(), "missing.json"))
	s.Update(specialKey(tea.KeyEnter))
	if !s.failed {
		t.Error("expected failure for a missing file")
	}
}

func TestDataScreen_EscCancelsPrompt(t *testing.T) {
	s, _ := testScreen(t)
	s.Update(specialKey(tea.KeyEnter))
	s.Update(specialKey(tea.KeyEscape))
	if s.mode != modeMenu {
		t.Errorf("mode = %v, want menu", s.mode)
	}
	if s.CapturesEsc() {
		t.Error("menu should not capture esc")
	}
	if s.status != "" {
		t.Errorf("cancel should not set a status, got %q", s.status)
	}
}

func TestDataScreen_ResetConfirm(t *testing.T) {
	s, lib := testScreen(t)
	ctx := context.Background()
	course := lib.Data().Courses[0]
	chapterID := course.Chapters[0].ID
	lib.RecordCompletion(ctx, course.ID, chapterID, 80)

	for range 2 {
		s.Update(specialKey(tea.KeyDown))
	}
	s.Update(specialKey(tea.KeyEnter))
	if s.mode != modeConfirmReset {
		t.Fatalf("mode = %v, want confirm", s.mode)
	}
	if !strings.Contains(s.View(100, 30), "Reset everything?") {
		t.Error("expected confirmation prompt")
	}

	s.Update(keyPress('n'))
	if s.mode != modeMenu {
		t.Fatal("n should cancel")
	}
	if !lib.Mastery().Has(course.ID, chapterID) {
		t.Fatal("cancel must not reset")
	}

	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('y'))
	if lib.Mastery().Has(course.ID, chapterID) {
		t.Error("mastery should be cleared after reset")
	}
	if s.failed || s.status == "" {
		t.Errorf("expected success status, got %q", s.status)
	}
}
