package flashcards

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/polyglot/internal/content"
	"github.com/abhisek/polyglot/internal/screen"
	"github.com/abhisek/polyglot/internal/ui/components"
	"github.com/abhisek/polyglot/internal/ui/layout"
	"github.com/abhisek/polyglot/internal/ui/theme"
)

// FlashcardScreen reviews a chapter's phrases one card at a time, always
// showing the weakest card not seen recently.
type FlashcardScreen struct {
	svc     *screen.Services
	course  *content.Course
	chapter *content.Chapter

	card     content.VocabItem
	hasCard  bool
	revealed bool

	reviewed int
	known    int
	score    int // proficiency of the last graded card
}

var _ screen.Screen = (*FlashcardScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardScreen)(nil)

// New creates a flashcard review for ch.
func New(svc *screen.Services, c *content.Course, ch *content.Chapter) *FlashcardScreen {
	s := &FlashcardScreen{svc: svc, course: c, chapter: ch}
	s.next()
	return s
}

func (s *FlashcardScreen) Init() tea.Cmd {
	return nil
}

func (s *FlashcardScreen) Title() string {
	return "Flashcards"
}

func (s *FlashcardScreen) KeyHints() []layout.KeyHint {
	var hints []layout.KeyHint
	if !s.revealed {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Reveal"})
	} else {
		hints = append(hints,
			layout.KeyHint{Key: "Y", Description: "Knew it"},
			layout.KeyHint{Key: "N", Description: "Didn't"},
		)
	}
	if s.svc.Speech.Enabled() {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Pronounce"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *FlashcardScreen) next() {
	s.card, s.hasCard = s.svc.Library.NextFlashcard(s.chapter)
	s.revealed = false
}

func (s *FlashcardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !s.hasCard {
		return s, nil
	}

	switch kmsg.String() {
	case "space", " ", "enter":
		s.revealed = true
	case "p", "P":
		s.svc.Pronounce(s.card.Source, s.course.LearnLang)
	case "y", "Y":
		if s.revealed {
			s.grade(true)
		}
	case "n", "N":
		if s.revealed {
			s.grade(false)
		}
	}
	return s, nil
}

func (s *FlashcardScreen) grade(known bool) {
	s.score = s.svc.Library.RecordFlashcard(context.Background(), s.card.ID, known)
	s.reviewed++
	if known {
		s.known++
	}
	s.next()
}

func (s *FlashcardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if !s.hasCard {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.TextDim).
			Render("This chapter has no phrases to review.")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.card.Source))
	b.WriteString("\n\n")
	if s.revealed {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.card.Target))
	} else {
		b.WriteString(theme.Hint.Render("press space to reveal"))
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ChapterColor(s.chapter.Color)).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(2, 2).
		Render(b.String())

	stats := theme.Hint.Render(fmt.Sprintf("Reviewed %d · knew %d", s.reviewed, s.known))
	if s.reviewed > 0 {
		stats += theme.Hint.Render(fmt.Sprintf(" · last card score %d", s.score))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card + "\n\n" + stats)
}
