package grammar

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/polyglot/internal/content"
	"github.com/abhisek/polyglot/internal/screen"
	"github.com/abhisek/polyglot/internal/ui/layout"
	"github.com/abhisek/polyglot/internal/ui/theme"
)

// GrammarScreen lists a chapter's conjugation tables as flattened rows.
type GrammarScreen struct {
	chapter *content.Chapter
	lines   []string
	offset  int
	height  int
}

var _ screen.Screen = (*GrammarScreen)(nil)
var _ screen.KeyHintProvider = (*GrammarScreen)(nil)

// New creates a grammar screen for ch.
func New(ch *content.Chapter) *GrammarScreen {
	return &GrammarScreen{chapter: ch, lines: renderTopics(ch.Grammar)}
}

func (s *GrammarScreen) Init() tea.Cmd {
	return nil
}

func (s *GrammarScreen) Title() string {
	return "Grammar"
}

func (s *GrammarScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GrammarScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	maxOffset := max(len(s.lines)-s.height, 0)
	switch kmsg.String() {
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "down", "j":
		s.offset = min(s.offset+1, maxOffset)
	case "pgup":
		s.offset = max(s.offset-s.height, 0)
	case "pgdown", "space":
		s.offset = min(s.offset+s.height, maxOffset)
	}
	return s, nil
}

func (s *GrammarScreen) View(width, height int) string {
	s.height = max(height-2, 1)
	if len(s.lines) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.TextDim).
			Render("This chapter has no grammar tables.")
	}

	end := min(s.offset+s.height, len(s.lines))
	visible := s.lines[min(s.offset, end):end]
	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 4).
		Render(strings.Join(visible, "\n"))
}

// renderTopics flattens every topic into display rows, grouped by lemma and
// tense in source order.
func renderTopics(topics []content.GrammarTopic) []string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	group := lipgloss.NewStyle().Foreground(theme.Accent)
	person := lipgloss.NewStyle().Foreground(theme.TextDim).Width(14)
	form := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	var out []string
	for _, topic := range topics {
		recs := content.FlattenGrammar([]content.GrammarTopic{topic})
		if len(recs) == 0 && topic.Notes == "" && len(topic.Examples) == 0 {
			continue
		}
		out = append(out, title.Render(topic.Label()))
		if topic.Notes != "" {
			out = append(out, theme.Hint.Render(topic.Notes))
		}

		var lastGroup string
		for _, r := range recs {
			if g := r.Lemma + " · " + r.Tense; g != lastGroup {
				out = append(out, "", group.Render(g))
				lastGroup = g
			}
			out = append(out, "  "+person.Render(r.Person)+form.Render(r.Expected))
		}

		if len(topic.Examples) > 0 {
			out = append(out, "")
			for _, ex := range topic.Examples {
				out = append(out, fmt.Sprintf("  %s  %s", ex.Source, theme.Hint.Render(ex.Target)))
			}
		}
		out = append(out, "")
	}
	return out
}
