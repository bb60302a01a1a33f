package dialog

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/polyglot/internal/content"
	"github.com/abhisek/polyglot/internal/screen"
	"github.com/abhisek/polyglot/internal/ui/components"
	"github.com/abhisek/polyglot/internal/ui/layout"
	"github.com/abhisek/polyglot/internal/ui/theme"
)

// DialogScreen steps through a chapter's dialogs line by line.
type DialogScreen struct {
	svc     *screen.Services
	course  *content.Course
	chapter *content.Chapter

	dialog   int
	selected int
	showAll  bool // translations for every line, not just the selected one
}

var _ screen.Screen = (*DialogScreen)(nil)
var _ screen.KeyHintProvider = (*DialogScreen)(nil)

// New creates a dialog screen for ch.
func New(svc *screen.Services, c *content.Course, ch *content.Chapter) *DialogScreen {
	return &DialogScreen{svc: svc, course: c, chapter: ch}
}

func (s *DialogScreen) Init() tea.Cmd {
	return nil
}

func (s *DialogScreen) Title() string {
	return "Dialog"
}

func (s *DialogScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Line"}}
	if len(s.chapter.Dialogs) > 1 {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Dialog"})
	}
	if s.svc.Speech.Enabled() {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Pronounce"})
	}
	return append(hints,
		layout.KeyHint{Key: "T", Description: "Translations"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *DialogScreen) lines() []content.DialogLine {
	if s.dialog >= len(s.chapter.Dialogs) {
		return nil
	}
	return s.chapter.Dialogs[s.dialog].Lines()
}

func (s *DialogScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	lines := s.lines()

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(lines)-1 {
			s.selected++
		}
	case "left", "h":
		if s.dialog > 0 {
			s.dialog--
			s.selected = 0
		}
	case "right", "l":
		if s.dialog < len(s.chapter.Dialogs)-1 {
			s.dialog++
			s.selected = 0
		}
	case "t", "T":
		s.showAll = !s.showAll
	case "p", "P", "enter":
		if s.selected < len(lines) {
			s.svc.Pronounce(lines[s.selected].Text, s.course.LearnLang)
		}
	}
	return s, nil
}

func (s *DialogScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	lines := s.lines()
	if len(lines) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.TextDim).
			Render("This chapter has no dialog.")
	}

	d := s.chapter.Dialogs[s.dialog]
	var b strings.Builder
	title := d.Title
	if len(s.chapter.Dialogs) > 1 {
		title = fmt.Sprintf("%s (%d/%d)", title, s.dialog+1, len(s.chapter.Dialogs))
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(title))
	b.WriteString("\n\n")

	for i, l := range lines {
		who := lipgloss.NewStyle().Foreground(speakerColor(l.Who)).Bold(true).Render(l.Who + ":")
		text := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "  "
		if i == s.selected {
			text = text.Foreground(theme.Primary).Bold(true)
			prefix = "▸ "
		}
		b.WriteString(prefix + who + " " + text.Render(l.Text))
		b.WriteString("\n")
		if l.Translation != "" && (s.showAll || i == s.selected) {
			b.WriteString("     " + theme.Hint.Render(l.Translation))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(components.Card(b.String(), cw))
}

func speakerColor(who string) color.Color {
	if who == "B" {
		return theme.Accent
	}
	return theme.Secondary
}
