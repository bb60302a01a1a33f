package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/polyglot/internal/library"
	"github.com/abhisek/polyglot/internal/quiz"
	"github.com/abhisek/polyglot/internal/router"
	"github.com/abhisek/polyglot/internal/screen"
	"github.com/abhisek/polyglot/internal/store"
	"github.com/abhisek/polyglot/internal/ui/layout"
)

// escScreen captures esc and counts how often it saw it.
type escScreen struct {
	seen int
}

func (s *escScreen) Init() tea.Cmd { return nil }
func (s *escScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		s.seen++
	}
	return s, nil
}
func (s *escScreen) View(int, int) string { return "esc" }
func (s *escScreen) Title() string        { return "Esc" }
func (s *escScreen) CapturesEsc() bool    { return true }
func (s *escScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Mine"}}
}

// plainScreen leaves esc to the app.
type plainScreen struct{}

func (plainScreen) Init() tea.Cmd                           { return nil }
func (plainScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return plainScreen{}, nil }
func (plainScreen) View(int, int) string                    { return "plain" }
func (plainScreen) Title() string                           { return "Plain" }

func testModel() AppModel {
	svc := &screen.Services{
		Library: library.Open(context.Background(), store.NewMemoryKV(), library.Options{}),
		Bank:    quiz.NewBank(quiz.NewRand(1), quiz.DefaultConfig()),
	}
	return newAppModel(Options{Services: svc})
}

func TestEscPopsScreen(t *testing.T) {
	m := testModel()
	m.router.Push(plainScreen{})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestEscAtRootIsNoop(t *testing.T) {
	m := testModel()
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("esc at the root should do nothing")
	}
}

func TestEscCapturedByScreen(t *testing.T) {
	m := testModel()
	es := &escScreen{}
	m.router.Push(es)

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if es.seen != 1 {
		t.Errorf("screen saw esc %d times, want 1", es.seen)
	}
	if m.router.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", m.router.Depth())
	}
}

func TestViewShowsHeaderAndHints(t *testing.T) {
	m := testModel()
	m.router.Push(&escScreen{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	content := updated.(AppModel).render()
	for _, want := range []string{"Polyglot", "Esc", "Mine"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewTooSmall(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(updated.(AppModel).render(), "too small") {
		t.Error("expected size warning")
	}
}
