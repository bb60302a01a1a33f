package course

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/polyglot/internal/content"
	"github.com/abhisek/polyglot/internal/mastery"
	"github.com/abhisek/polyglot/internal/router"
	"github.com/abhisek/polyglot/internal/screen"
	"github.com/abhisek/polyglot/internal/screens/chapter"
	"github.com/abhisek/polyglot/internal/ui/components"
	"github.com/abhisek/polyglot/internal/ui/layout"
	"github.com/abhisek/polyglot/internal/ui/theme"
)

// CourseScreen lists a course's chapters with their mastery badges.
type CourseScreen struct {
	svc    *screen.Services
	course *content.Course
	menu   components.Menu
}

var _ screen.Screen = (*CourseScreen)(nil)
var _ screen.Refresher = (*CourseScreen)(nil)
var _ screen.KeyHintProvider = (*CourseScreen)(nil)

// New creates the chapter list for c, with the cursor on the last opened
// chapter.
func New(svc *screen.Services, c *content.Course) *CourseScreen {
	s := &CourseScreen{svc: svc, course: c}
	s.rebuild()
	st := svc.Library.State()
	for i, ch := range c.Chapters {
		if st.CourseID == c.ID && ch.ID == st.ChapterID {
			s.menu.Selected = i
		}
	}
	return s
}

func (s *CourseScreen) Init() tea.Cmd {
	return nil
}

func (s *CourseScreen) Title() string {
	return s.course.Label
}

func (s *CourseScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// Refresh reloads mastery badges.
func (s *CourseScreen) Refresh() tea.Cmd {
	s.rebuild()
	return nil
}

func (s *CourseScreen) rebuild() {
	m := s.svc.Library.Mastery()
	items := make([]components.MenuItem, len(s.course.Chapters))
	for i := range s.course.Chapters {
		ch := &s.course.Chapters[i]
		items[i] = components.MenuItem{
			Label:  ch.Title,
			Detail: mastery.Badge(m.Get(s.course.ID, ch.ID), m.Has(s.course.ID, ch.ID)),
			Action: func() tea.Cmd { return s.open(ch) },
		}
	}
	s.menu.SetItems(items)
}

func (s *CourseScreen) open(ch *content.Chapter) tea.Cmd {
	s.svc.Library.Select(context.Background(), s.course.ID, ch.ID, "")
	next := chapter.New(s.svc, s.course, ch)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *CourseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *CourseScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s.course.Label)
	var body string
	if len(s.course.Chapters) == 0 {
		body = theme.Hint.Render("This course has no chapters yet.")
	} else {
		body = s.menu.View()
	}

	ids := make([]string, len(s.course.Chapters))
	for i, ch := range s.course.Chapters {
		ids[i] = ch.ID
	}
	avg := s.svc.Library.Mastery().CourseAverage(s.course.ID, ids)
	bar := components.NewPercentBar("Course mastery", avg, cw-6)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(title + "\n\n" + components.Card(body+"\n"+bar.View(), cw))
}
