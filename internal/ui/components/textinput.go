package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/polyglot/internal/ui/theme"
)

// TextInput is a single-line answer or path field. Once marked, it stops
// accepting keys and shows a check or cross after the text.
type TextInput struct {
	Model textinput.Model

	marked  bool
	correct bool
}

var (
	markRight = lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	markWrong = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
)

// NewTextInput returns a focused input limited to limit runes (0 = no limit).
func NewTextInput(placeholder string, limit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	m.CharLimit = limit
	m.Focus()
	return TextInput{Model: m}
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.marked {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// SetValue prefills the field and moves the cursor to the end.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.Model.CursorEnd()
}

func (t TextInput) Value() string {
	return t.Model.Value()
}

// Mark freezes the field with a grading result.
func (t *TextInput) Mark(correct bool) {
	t.marked, t.correct = true, correct
}

func (t TextInput) Marked() bool {
	return t.marked
}

func (t TextInput) View() string {
	if !t.marked {
		return t.Model.View()
	}
	if t.correct {
		return t.Model.View() + " " + markRight
	}
	return t.Model.View() + " " + markWrong
}
