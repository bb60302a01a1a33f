package chapter

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/polyglot/internal/content"
	"github.com/abhisek/polyglot/internal/library"
	"github.com/abhisek/polyglot/internal/mastery"
	"github.com/abhisek/polyglot/internal/quiz"
	"github.com/abhisek/polyglot/internal/router"
	"github.com/abhisek/polyglot/internal/screen"
	"github.com/abhisek/polyglot/internal/screens/dialog"
	"github.com/abhisek/polyglot/internal/screens/flashcards"
	"github.com/abhisek/polyglot/internal/screens/grammar"
	quizscreen "github.com/abhisek/polyglot/internal/screens/quiz"
	"github.com/abhisek/polyglot/internal/ui/components"
	"github.com/abhisek/polyglot/internal/ui/layout"
	"github.com/abhisek/polyglot/internal/ui/theme"
)

// ChapterScreen shows a chapter's tips and the activities it offers.
type ChapterScreen struct {
	svc     *screen.Services
	course  *content.Course
	chapter *content.Chapter
	menu    components.Menu
	tabs    []library.Tab
}

var _ screen.Screen = (*ChapterScreen)(nil)
var _ screen.Refresher = (*ChapterScreen)(nil)
var _ screen.KeyHintProvider = (*ChapterScreen)(nil)

// New creates the chapter screen with the cursor on the last opened tab.
func New(svc *screen.Services, c *content.Course, ch *content.Chapter) *ChapterScreen {
	s := &ChapterScreen{svc: svc, course: c, chapter: ch}
	s.rebuild()
	last := svc.Library.State().Tab
	for i, t := range s.tabs {
		if t == last && !s.menu.Items[i].Disabled {
			s.menu.Selected = i
			break
		}
	}
	return s
}

func (s *ChapterScreen) Init() tea.Cmd {
	return nil
}

func (s *ChapterScreen) Title() string {
	return s.chapter.Title
}

func (s *ChapterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// Refresh reloads the mastery bar after a quiz.
func (s *ChapterScreen) Refresh() tea.Cmd {
	s.rebuild()
	return nil
}

func (s *ChapterScreen) rebuild() {
	ch := s.chapter
	pool := len(content.Pool(ch))
	lines := 0
	for _, d := range ch.Dialogs {
		lines += len(d.Lines())
	}
	records := len(content.FlattenGrammar(ch.Grammar))

	items := []components.MenuItem{
		{
			Label:    "Flashcards",
			Detail:   fmt.Sprintf("%d phrases", pool),
			Disabled: pool == 0,
			Action:   s.push(library.TabLearn, func() screen.Screen { return flashcards.New(s.svc, s.course, ch) }),
		},
		{
			Label:    "Dialog",
			Detail:   fmt.Sprintf("%d lines", lines),
			Disabled: lines == 0,
			Action:   s.push(library.TabDialog, func() screen.Screen { return dialog.New(s.svc, s.course, ch) }),
		},
		{
			Label:    "Grammar tables",
			Detail:   fmt.Sprintf("%d forms", records),
			Disabled: records == 0,
			Action:   s.push(library.TabGrammar, func() screen.Screen { return grammar.New(ch) }),
		},
	}
	s.tabs = []library.Tab{library.TabLearn, library.TabDialog, library.TabGrammar}

	for _, kind := range quiz.Kinds {
		items = append(items, components.MenuItem{
			Label:    "Quiz: " + kind.Label(),
			Disabled: !s.svc.Bank.Available(kind, ch),
			Action:   s.push(library.TabQuiz, func() screen.Screen { return quizscreen.New(s.svc, s.course, ch, kind) }),
		})
		s.tabs = append(s.tabs, library.TabQuiz)
	}
	s.menu.SetItems(items)
}

// push records the tab and opens the screen built by next.
func (s *ChapterScreen) push(tab library.Tab, next func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s.svc.Library.Select(context.Background(), s.course.ID, s.chapter.ID, tab)
		scr := next()
		return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
	}
}

func (s *ChapterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ChapterScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	accent := theme.ChapterColor(s.chapter.Color)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(accent).Bold(true).Render(s.chapter.Title))
	b.WriteString("\n\n")

	for _, tip := range s.chapter.Tips {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(tip.Title))
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(tip.Text))
		b.WriteString("\n")
	}
	if len(s.chapter.Tips) > 0 {
		b.WriteString("\n")
	}

	m := s.svc.Library.Mastery()
	pct := m.Get(s.course.ID, s.chapter.ID)
	bar := components.NewPercentBar("Mastery", pct, cw-6)
	bar.Color = accent
	b.WriteString(bar.View())
	if mastery.ResolveLevel(pct, m.Has(s.course.ID, s.chapter.ID)) == mastery.LevelMastered {
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("★"))
	}
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(components.AccentCard(b.String(), cw, accent))
}
