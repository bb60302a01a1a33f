package summary

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/polyglot/internal/mastery"
	"github.com/abhisek/polyglot/internal/quiz"
	"github.com/abhisek/polyglot/internal/router"
	"github.com/abhisek/polyglot/internal/screen"
	"github.com/abhisek/polyglot/internal/session"
	"github.com/abhisek/polyglot/internal/ui/layout"
)

func testSummary() *session.SessionSummary {
	return &session.SessionSummary{
		SessionID:      "s1",
		CourseID:       "es-en",
		ChapterID:      "greetings",
		Kind:           quiz.KindFillIn,
		Duration:       95 * time.Second,
		TotalQuestions: 4,
		TotalCorrect:   3,
		Percent:        75,
		Missed: []session.AnswerResult{
			{Question: quiz.Question{Kind: quiz.KindFillIn, Prompt: "Goodbye", Answer: "Adiós"}, Given: ""},
		},
	}
}

// stubScreen is a minimal screen.Screen returned by the retry callback.
type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                           { return nil }
func (stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return stubScreen{}, nil }
func (stubScreen) View(int, int) string                    { return "" }
func (stubScreen) Title() string                           { return "stub" }
func (stubScreen) KeyHints() []layout.KeyHint              { return nil }

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), "Greetings", Options{})
	if s.Title() != "Quiz Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	tr := &mastery.Transition{Previous: 50, Current: 75}
	s := New(testSummary(), "Greetings", Options{Transition: tr})
	view := s.View(100, 30)
	for _, want := range []string{"3/4", "75%", "Adiós", "(blank)", "50% → 75%", "Greetings"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_PerfectScore(t *testing.T) {
	sum := testSummary()
	sum.Missed = nil
	view := New(sum, "Greetings", Options{}).View(100, 30)
	if !strings.Contains(view, "Perfect score!") {
		t.Error("expected perfect score line")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary(), "Greetings", Options{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestSummaryScreen_Retry(t *testing.T) {
	called := 0
	s := New(testSummary(), "Greetings", Options{
		Retry: func() (screen.Screen, error) {
			called++
			return stubScreen{}, nil
		},
	})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if called != 1 {
		t.Fatalf("retry called %d times, want 1", called)
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := msg.Screen.(stubScreen); !ok {
		t.Errorf("replacement = %T, want stubScreen", msg.Screen)
	}
}

func TestSummaryScreen_RetryFailure(t *testing.T) {
	s := New(testSummary(), "Greetings", Options{
		Retry: func() (screen.Screen, error) { return nil, errors.New("not enough phrases") },
	})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd != nil {
		t.Error("expected no command when retry fails")
	}
	if !strings.Contains(s.View(100, 30), "not enough phrases") {
		t.Error("expected retry error in view")
	}
}

func TestSummaryScreen_NoRetry(t *testing.T) {
	s := New(testSummary(), "Greetings", Options{})
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"}); cmd != nil {
		t.Error("retry without callback should do nothing")
	}
	if len(s.KeyHints()) != 1 {
		t.Errorf("KeyHints length = %d, want 1", len(s.KeyHints()))
	}
}
