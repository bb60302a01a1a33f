package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/polyglot/internal/mastery"
	"github.com/abhisek/polyglot/internal/router"
	"github.com/abhisek/polyglot/internal/screen"
	"github.com/abhisek/polyglot/internal/session"
	"github.com/abhisek/polyglot/internal/ui/layout"
	"github.com/abhisek/polyglot/internal/ui/theme"
)

// Options carries the optional parts of a summary.
type Options struct {
	// Transition is the mastery change the attempt caused.
	Transition *mastery.Transition

	// Retry restarts the quiz and returns the screen to show. Nil hides the
	// retry action.
	Retry func() (screen.Screen, error)
}

// SummaryScreen displays the result of a finished quiz.
type SummaryScreen struct {
	summary  *session.SessionSummary
	chapter  string
	opts     Options
	retryErr string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.SessionSummary, chapterTitle string, opts Options) *SummaryScreen {
	return &SummaryScreen{summary: summary, chapter: chapterTitle, opts: opts}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	if s.opts.Retry != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "r", "R":
		if s.opts.Retry == nil {
			return s, nil
		}
		next, err := s.opts.Retry()
		if err != nil {
			s.retryErr = err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(style lipgloss.Style, text string) string {
		return layout.Centered(style, width, text)
	}

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Quiz complete!"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("%s · %s", s.chapter, sum.Kind.Label())))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	statsLine := fmt.Sprintf("Score: %d/%d        %d%%        Time: %d:%02d",
		sum.TotalCorrect, sum.TotalQuestions, sum.Percent, mins, secs)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), statsLine))
	b.WriteString("\n\n")

	if t := s.opts.Transition; t != nil {
		b.WriteString(center(masteryStyle(t), masteryLine(t)))
		b.WriteString("\n\n")
	}

	if len(sum.Missed) > 0 {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Review"))
		b.WriteString("\n")
		b.WriteString(layout.Divider(width, 60))
		b.WriteString("\n\n")
		for _, r := range sum.Missed {
			given := r.Given
			if strings.TrimSpace(given) == "" {
				given = "(blank)"
			}
			line := fmt.Sprintf("%s  →  %s", r.Question.Text(), r.Question.Answer)
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), line))
			b.WriteString("\n")
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error), "you said: "+given))
			b.WriteString("\n")
		}
	} else if sum.TotalQuestions > 0 {
		b.WriteString(center(theme.Correct, "Perfect score!"))
		b.WriteString("\n")
	}

	if s.retryErr != "" {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error), "Retry failed: "+s.retryErr))
	}

	return b.String()
}

func masteryLine(t *mastery.Transition) string {
	switch {
	case t.Improved() && t.Previous == 0:
		return fmt.Sprintf("Chapter mastery: %d%%", t.Current)
	case t.Improved():
		return fmt.Sprintf("New best! Mastery %d%% → %d%%", t.Previous, t.Current)
	default:
		return fmt.Sprintf("Mastery stays at %d%%", t.Current)
	}
}

func masteryStyle(t *mastery.Transition) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if mastery.ResolveLevel(t.Current, true) == mastery.LevelMastered {
		return style.Foreground(theme.Accent).Bold(true)
	}
	if t.Improved() {
		return style.Foreground(theme.Success)
	}
	return style
}
