package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/polyglot/internal/ui/theme"
)

// MenuItem is one selectable row. Disabled rows are rendered dim and the
// cursor skips over them, e.g. a quiz kind the chapter has too little
// content for.
type MenuItem struct {
	Label    string
	Detail   string // right-aligned annotation such as a mastery badge
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of MenuItems with a cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

var (
	menuCursorStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	menuItemStyle   = lipgloss.NewStyle().Foreground(theme.Text)
	menuDimStyle    = lipgloss.NewStyle().Foreground(theme.TextDim)
)

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.firstEnabled()
	return m
}

func (m Menu) firstEnabled() int {
	for i, item := range m.Items {
		if !item.Disabled {
			return i
		}
	}
	return 0
}

// move steps the cursor by dir (+1 or -1) to the next enabled item. The
// cursor stays put at either end.
func (m *Menu) move(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// Current returns the item under the cursor.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(+1)
	case "enter":
		if item, ok := m.Current(); ok && !item.Disabled && item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

// SetItems swaps in a rebuilt item list. The cursor is kept unless it now
// points past the end or at a disabled row.
func (m *Menu) SetItems(items []MenuItem) {
	m.Items = items
	if item, ok := m.Current(); !ok || item.Disabled {
		m.Selected = m.firstEnabled()
	}
}

func (m Menu) View() string {
	pad := 0
	for _, item := range m.Items {
		pad = max(pad, lipgloss.Width(item.Label))
	}

	var b strings.Builder
	for i, item := range m.Items {
		row := item.Label
		if item.Detail != "" {
			row += strings.Repeat(" ", pad-lipgloss.Width(item.Label)+2) + item.Detail
		}
		switch {
		case item.Disabled:
			row = menuDimStyle.Render("    " + row)
		case i == m.Selected:
			row = menuCursorStyle.Render("  ▸ " + row)
		default:
			row = menuItemStyle.Render("    " + row)
		}
		b.WriteString(row + "\n")
	}
	return b.String()
}
