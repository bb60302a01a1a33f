package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/polyglot/internal/quiz"
	sess "github.com/abhisek/polyglot/internal/session"
	"github.com/abhisek/polyglot/internal/ui/components"
	"github.com/abhisek/polyglot/internal/ui/layout"
	"github.com/abhisek/polyglot/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.confirmingQuit:
		return components.Confirm("Abandon this quiz?", "This attempt will not count toward mastery.",
			"Yes, abandon", "No, keep going", width)
	}

	q := sess.Current(s.state)
	if q == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width, 70))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, promptCaption(q)))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, q.Text()))
	b.WriteString("\n\n")

	if s.kind == quiz.KindMultipleChoice {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
	} else {
		b.WriteString(layout.Centered(lipgloss.NewStyle(), width, "Answer: "+s.input.View()))
	}
	b.WriteString("\n")

	if s.state.Phase == sess.PhaseRevealed {
		b.WriteString(s.renderFeedback(width))
	}
	return b.String()
}

func (s *QuizScreen) renderInfoLine(width int) string {
	n, total := sess.Progress(s.state)
	left := lipgloss.NewStyle().
		Foreground(theme.ChapterColor(s.chapter.Color)).
		Bold(true).
		Render("  " + s.chapter.Title)
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d",
			n, total,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.state.Score,
		))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func promptCaption(q *quiz.Question) string {
	switch q.Kind {
	case quiz.KindMultipleChoice:
		return "Pick the translation"
	case quiz.KindGrammar:
		return "Conjugate"
	default:
		return "Translate"
	}
}

func (s *QuizScreen) renderFeedback(width int) string {
	q := sess.Current(s.state)

	var b strings.Builder
	b.WriteString("\n")
	if s.state.LastCorrect {
		b.WriteString(layout.Centered(theme.Correct, width, "Correct!"))
	} else {
		b.WriteString(layout.Centered(theme.Incorrect, width, "Not quite"))
		b.WriteString("\n")
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
			"Correct answer: "+q.Answer))
	}
	b.WriteString("\n\n")

	switch {
	case s.explaining:
		b.WriteString(layout.Centered(theme.Hint, width, "Asking the tutor..."))
		b.WriteString("\n\n")
	case s.explanation != "":
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(s.explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	b.WriteString(layout.Centered(theme.Hint, width, "Press Enter to continue..."))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}
