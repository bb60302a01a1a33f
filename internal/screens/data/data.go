package data

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/polyglot/internal/content"
	"github.com/abhisek/polyglot/internal/screen"
	"github.com/abhisek/polyglot/internal/ui/components"
	"github.com/abhisek/polyglot/internal/ui/layout"
	"github.com/abhisek/polyglot/internal/ui/theme"
)

type mode int

const (
	modeMenu mode = iota
	modeExport
	modeImport
	modeConfirmReset
)

// DataScreen exports, imports and resets the learner's data.
type DataScreen struct {
	svc   *screen.Services
	menu  components.Menu
	mode  mode
	input components.TextInput

	status string
	failed bool
}

var _ screen.Screen = (*DataScreen)(nil)
var _ screen.KeyHintProvider = (*DataScreen)(nil)
var _ screen.EscCapturer = (*DataScreen)(nil)

// New creates the data screen.
func New(svc *screen.Services) *DataScreen {
	s := &DataScreen{svc: svc}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Export curriculum", Action: func() tea.Cmd { return s.prompt(modeExport, content.ExportFileName) }},
		{Label: "Import curriculum", Action: func() tea.Cmd { return s.prompt(modeImport, "") }},
		{Label: "Reset everything", Action: func() tea.Cmd { s.mode = modeConfirmReset; return nil }},
	})
	return s
}

func (s *DataScreen) Init() tea.Cmd {
	return nil
}

func (s *DataScreen) Title() string {
	return "Import / Export"
}

// CapturesEsc is true while a prompt is open so Esc cancels it.
func (s *DataScreen) CapturesEsc() bool {
	return s.mode != modeMenu
}

func (s *DataScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeExport, modeImport:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeConfirmReset:
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DataScreen) prompt(m mode, value string) tea.Cmd {
	s.mode = m
	s.input = components.NewTextInput("path/to/"+content.ExportFileName, 256)
	s.input.SetValue(value)
	return s.input.Init()
}

func (s *DataScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)

	switch s.mode {
	case modeConfirmReset:
		if !isKey {
			return s, nil
		}
		switch kmsg.String() {
		case "y", "Y":
			s.svc.Library.Reset(context.Background())
			s.setStatus("All courses, progress and settings were reset.", false)
			s.mode = modeMenu
		case "n", "N", "esc":
			s.mode = modeMenu
		}
		return s, nil

	case modeExport, modeImport:
		if isKey {
			switch kmsg.String() {
			case "esc":
				s.mode = modeMenu
				return s, nil
			case "enter":
				s.runFileAction(strings.TrimSpace(s.input.Value()))
				s.mode = modeMenu
				return s, nil
			}
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *DataScreen) runFileAction(path string) {
	if path == "" {
		s.setStatus("No file given.", true)
		return
	}
	switch s.mode {
	case modeExport:
		if err := Export(s.svc, path); err != nil {
			s.setStatus(err.Error(), true)
			return
		}
		s.setStatus("Exported to "+path, false)
	case modeImport:
		if err := Import(s.svc, path); err != nil {
			s.setStatus(err.Error(), true)
			return
		}
		s.setStatus("Imported "+path, false)
	}
}

func (s *DataScreen) setStatus(msg string, failed bool) {
	s.status, s.failed = msg, failed
}

// Export writes the curriculum JSON to path.
func Export(svc *screen.Services, path string) error {
	raw, err := svc.Library.Export()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// Import replaces the curriculum with the JSON in path. Nothing changes when
// the file cannot be read or is malformed.
func Import(svc *screen.Services, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import: %w", err)
	}
	defer f.Close()
	return svc.Library.ImportFrom(context.Background(), f)
}

func (s *DataScreen) View(width, height int) string {
	if s.mode == modeConfirmReset {
		return components.Confirm("Reset everything?",
			"Edited courses, mastery and flashcard progress will be lost.",
			"Yes, reset", "No, cancel", width)
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	switch s.mode {
	case modeExport, modeImport:
		label := "Export to file:"
		if s.mode == modeImport {
			label = "Import from file:"
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(label))
		b.WriteString("\n\n")
		b.WriteString(s.input.View())
	default:
		b.WriteString(s.menu.View())
	}

	if s.status != "" {
		style := lipgloss.NewStyle().Foreground(theme.Success)
		if s.failed {
			style = style.Foreground(theme.Error)
		}
		b.WriteString("\n\n")
		b.WriteString(style.Width(cw - 6).Render(s.status))
	}
	if !s.svc.Library.Durable() {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Storage is unavailable; changes last until you quit."))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(components.Card(b.String(), cw))
}
