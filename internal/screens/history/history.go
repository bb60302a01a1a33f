package history

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/polyglot/internal/quiz"
	"github.com/abhisek/polyglot/internal/router"
	"github.com/abhisek/polyglot/internal/screen"
	"github.com/abhisek/polyglot/internal/store"
	"github.com/abhisek/polyglot/internal/ui/layout"
	"github.com/abhisek/polyglot/internal/ui/theme"
)

// maxAttempts bounds how many quiz events are loaded.
const maxAttempts = 50

var errNoEvents = errors.New("history is unavailable without a database")

type historyLoadedMsg struct {
	Attempts []store.QuizEventRecord
	Stats    map[string]store.ChapterStats // courseID/chapterID → stats
	Err      error
}

// HistoryScreen lists past quiz attempts, newest first.
type HistoryScreen struct {
	svc      *screen.Services
	attempts []store.QuizEventRecord
	stats    map[string]store.ChapterStats
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(svc *screen.Services) *HistoryScreen {
	return &HistoryScreen{
		svc:      svc,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.svc.Events
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{Err: errNoEvents}
		}
		ctx := context.Background()

		events, err := repo.QueryQuizEvents(ctx, store.QueryOpts{Limit: maxAttempts * 2})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		// Start events only mark the beginning of an attempt.
		var attempts []store.QuizEventRecord
		for _, e := range events {
			if e.Action != store.QuizActionStart && len(attempts) < maxAttempts {
				attempts = append(attempts, e)
			}
		}

		stats := make(map[string]store.ChapterStats)
		all, err := repo.ChapterStats(ctx, "")
		if err != nil {
			return historyLoadedMsg{Attempts: attempts, Stats: stats}
		}
		for _, cs := range all {
			stats[key(cs.CourseID, cs.ChapterID)] = cs
		}
		return historyLoadedMsg{Attempts: attempts, Stats: stats}
	}
}

func key(courseID, chapterID string) string {
	return courseID + "/" + chapterID
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

// chapterTitle resolves ids against the live curriculum; deleted or
// re-imported chapters fall back to their id.
func (s *HistoryScreen) chapterTitle(courseID, chapterID string) string {
	if s.svc.Library != nil {
		if ch, ok := s.svc.Library.Chapter(courseID, chapterID); ok {
			return ch.Title
		}
	}
	return chapterID
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Pick a chapter and start one!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.attempts {
		dateStr := a.Timestamp.Local().Format("Jan 02, 2006")
		durationStr := fmt.Sprintf("%d:%02d", a.DurationSecs/60, a.DurationSecs%60)

		result := "abandoned"
		if a.Action == store.QuizActionComplete {
			result = fmt.Sprintf("%d/%d  %d%%", a.CorrectAnswers, a.TotalQuestions, a.Percent)
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %-20s  %-14s  %s",
			prefix, dateStr, durationStr, s.chapterTitle(a.CourseID, a.ChapterID), kindLabel(a.Kind), result)

		style := lipgloss.NewStyle().Foreground(resultColor(a))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := "    No completed quizzes for this chapter"
			if cs, ok := s.stats[key(a.CourseID, a.ChapterID)]; ok && cs.Completed > 0 {
				detail = fmt.Sprintf("    %s · %d completed · best %d%% · %d/%d answers correct",
					a.CourseID, cs.Completed, cs.BestPercent, cs.Correct, cs.Answers)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func kindLabel(k string) string {
	kind, err := quiz.ParseKind(k)
	if err != nil {
		return k
	}
	return kind.Label()
}

func resultColor(a store.QuizEventRecord) color.Color {
	switch {
	case a.Action != store.QuizActionComplete:
		return theme.TextDim
	case a.Percent >= 90:
		return theme.Accent
	case a.Percent >= 50:
		return theme.Secondary
	default:
		return theme.Text
	}
}
