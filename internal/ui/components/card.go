package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/polyglot/internal/ui/theme"
)

// ContentWidth returns the inner width used for cards so stacked sections
// line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 70)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Padding(1, 2).
		Render(content)
}

// AccentCard is Card with a colored border.
func AccentCard(content string, cw int, accent color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(cw-2).
		Padding(1, 2).
		Render(content)
}

// Confirm renders a yes/no prompt in the style of the quit dialog.
func Confirm(question, detail, yes, no string, width int) string {
	center := func(s lipgloss.Style, text string) string {
		return s.Width(width).Align(lipgloss.Center).Render(text)
	}
	out := "\n\n\n" + center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), question) + "\n"
	if detail != "" {
		out += center(lipgloss.NewStyle().Foreground(theme.TextDim), detail) + "\n"
	}
	out += "\n" +
		center(lipgloss.NewStyle().Foreground(theme.Error), "[Y] "+yes) + "\n" +
		center(lipgloss.NewStyle().Foreground(theme.Primary), "[N] "+no)
	return out
}
