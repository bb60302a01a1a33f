package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/polyglot/internal/ui/theme"
)

// PercentBar draws a 0-100 value, such as chapter mastery, as a block bar
// followed by the number.
type PercentBar struct {
	Label   string
	Percent int
	Width   int         // total width including label and number
	Color   color.Color // fill; theme.Secondary when nil
}

func NewPercentBar(label string, percent, width int) PercentBar {
	return PercentBar{Label: label, Percent: percent, Width: width}
}

// cells splits a bar of width w into filled and empty cells.
func (p PercentBar) cells(w int) (filled, empty int) {
	pct := min(max(p.Percent, 0), 100)
	filled = (w*pct + 50) / 100
	return filled, w - filled
}

func (p PercentBar) View() string {
	label := ""
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	number := fmt.Sprintf("  %3d%%", min(max(p.Percent, 0), 100))

	w := max(p.Width-lipgloss.Width(label)-len(number), 4)
	filled, empty := p.cells(w)

	fill := p.Color
	if fill == nil {
		fill = theme.Secondary
	}
	return label +
		lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", empty)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(number)
}
