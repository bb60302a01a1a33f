package theme

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(Border)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)

// chapterColors maps the color names used in curriculum files to the
// palette. Content uses gradient class names such as "from-amber-200 to-amber-50";
// only the hue of the first stop matters here.
var chapterColors = map[string]color.Color{
	"amber":   lipgloss.Color("#F59E0B"),
	"orange":  lipgloss.Color("#F97316"),
	"rose":    lipgloss.Color("#F43F5E"),
	"pink":    lipgloss.Color("#EC4899"),
	"purple":  lipgloss.Color("#A855F7"),
	"violet":  lipgloss.Color("#8B5CF6"),
	"indigo":  lipgloss.Color("#6366F1"),
	"brand":   lipgloss.Color("#6366F1"),
	"blue":    lipgloss.Color("#3B82F6"),
	"sky":     lipgloss.Color("#0EA5E9"),
	"teal":    lipgloss.Color("#14B8A6"),
	"emerald": lipgloss.Color("#10B981"),
	"green":   lipgloss.Color("#22C55E"),
	"lime":    lipgloss.Color("#84CC16"),
	"yellow":  lipgloss.Color("#EAB308"),
}

// ChapterColor resolves a chapter's color class to a palette color.
// Unknown names fall back to Secondary.
func ChapterColor(class string) color.Color {
	for _, part := range strings.Fields(class) {
		hue, ok := strings.CutPrefix(part, "from-")
		if !ok {
			continue
		}
		if i := strings.LastIndex(hue, "-"); i > 0 {
			hue = hue[:i]
		}
		if c, ok := chapterColors[hue]; ok {
			return c
		}
	}
	return Secondary
}
