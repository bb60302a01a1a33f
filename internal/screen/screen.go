package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/polyglot/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command. A screen
	// may return a different screen to replace itself on the stack.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher is implemented by screens that show derived data (mastery,
// durability) and must reload it when they become active again.
type Refresher interface {
	Refresh() tea.Cmd
}

// EscCapturer is implemented by screens that handle Esc themselves, e.g. to
// ask for confirmation, instead of letting the app pop them.
type EscCapturer interface {
	CapturesEsc() bool
}
