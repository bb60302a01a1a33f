package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/polyglot/internal/ui/theme"
)

// Smallest terminal the frame is drawn in; below it only a resize notice is
// shown.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one "key action" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderInfo is the status on the right of the header.
type HeaderInfo struct {
	Course  string // label of the selected course
	Unsaved bool   // storage degraded; progress lives in memory only
}

var (
	barStyle = lipgloss.NewStyle().
			Background(theme.BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border)

	brandStyle  = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(theme.Text)
	courseStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	warnStyle   = lipgloss.NewStyle().Foreground(theme.Error)
	keyStyle    = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(theme.TextDim)
)

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return titleStyle.Width(width).Height(height).Align(lipgloss.Center).Render(msg)
}

// RenderHeader lays out brand, screen title and course status on one
// bordered line, with the title centered.
func RenderHeader(title string, info HeaderInfo, width int) string {
	left := brandStyle.Render("  Polyglot")
	center := titleStyle.Render(title)
	right := courseStyle.Render(info.Course)
	if info.Unsaved {
		right += warnStyle.Render("  ! not saved")
	}

	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max((inner-cw)/2-lw, 1)
	gapR := max(inner-lw-gapL-cw-rw, 1)

	return barStyle.Width(width).Render(
		left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right)
}

func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return barStyle.Width(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, body and footer, sizing the body to fill the
// remaining height.
func RenderFrame(header, body, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return header + "\n" + lipgloss.NewStyle().Width(width).Height(h).Render(body) + "\n" + footer
}

// Divider renders a horizontal rule at most maxWidth wide, centered in width.
func Divider(width, maxWidth int) string {
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, maxWidth), 0)))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, rule)
}

// Centered renders text centered in width with the given style.
func Centered(style lipgloss.Style, width int, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}
