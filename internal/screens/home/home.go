package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/polyglot/internal/content"
	"github.com/abhisek/polyglot/internal/mastery"
	"github.com/abhisek/polyglot/internal/router"
	"github.com/abhisek/polyglot/internal/screen"
	"github.com/abhisek/polyglot/internal/screens/course"
	"github.com/abhisek/polyglot/internal/screens/data"
	"github.com/abhisek/polyglot/internal/screens/history"
	"github.com/abhisek/polyglot/internal/ui/components"
	"github.com/abhisek/polyglot/internal/ui/layout"
	"github.com/abhisek/polyglot/internal/ui/theme"
)

const titleFull = "P · O · L · Y · G · L · O · T"

// HomeScreen lists the available courses.
type HomeScreen struct {
	svc      *screen.Services
	menu     components.Menu
	mastered int
	total    int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen with the cursor on the last used course.
func New(svc *screen.Services) *HomeScreen {
	h := &HomeScreen{svc: svc}
	h.rebuild()
	if c, ok := svc.Library.CurrentCourse(); ok {
		for i, cc := range svc.Library.Data().Courses {
			if cc.ID == c.ID {
				h.menu.Selected = i
			}
		}
	}
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Refresh recomputes course averages after a quiz, an import or a reset.
func (h *HomeScreen) Refresh() tea.Cmd {
	h.rebuild()
	return nil
}

func (h *HomeScreen) rebuild() {
	lib := h.svc.Library
	courses := lib.Data().Courses

	items := make([]components.MenuItem, 0, len(courses)+2)
	h.mastered, h.total = 0, 0
	for i := range courses {
		c := &courses[i]
		ids := chapterIDs(c)
		avg := lib.Mastery().CourseAverage(c.ID, ids)
		for _, id := range ids {
			pct := lib.Mastery().Get(c.ID, id)
			if mastery.ResolveLevel(pct, lib.Mastery().Has(c.ID, id)) == mastery.LevelMastered {
				h.mastered++
			}
		}
		h.total += len(ids)

		courseID := c.ID
		items = append(items, components.MenuItem{
			Label:  c.Label,
			Detail: fmt.Sprintf("%d chapters · %d%%", len(ids), avg),
			Action: func() tea.Cmd { return h.openCourse(courseID) },
		})
	}
	items = append(items,
		components.MenuItem{Label: "History", Disabled: h.svc.Events == nil, Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: history.New(h.svc)} }
		}},
		components.MenuItem{Label: "Import / Export", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: data.New(h.svc)} }
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)
	h.menu.SetItems(items)
}

func (h *HomeScreen) openCourse(courseID string) tea.Cmd {
	lib := h.svc.Library
	c, ok := lib.Data().FindCourse(courseID)
	if !ok {
		return nil
	}
	st := lib.State()
	chapterID := ""
	if st.CourseID == courseID {
		chapterID = st.ChapterID
	}
	lib.Select(context.Background(), courseID, chapterID, "")
	return func() tea.Msg { return router.PushScreenMsg{Screen: course.New(h.svc, c)} }
}

func chapterIDs(c *content.Course) []string {
	ids := make([]string, len(c.Chapters))
	for i, ch := range c.Chapters {
		ids[i] = ch.ID
	}
	return ids
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(titleFull))

	stats := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("★ %d/%d chapters mastered", h.mastered, h.total))
	if !h.svc.Library.Durable() {
		stats += lipgloss.NewStyle().Foreground(theme.Error).Render("   progress is not being saved")
	}
	sections = append(sections, lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats))

	if len(h.svc.Library.Data().Courses) == 0 {
		sections = append(sections, theme.Hint.Render("No courses yet. Import a curriculum to get started."))
	}
	sections = append(sections, components.Card(h.menu.View(), cw))

	body := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}
