// Package screen defines what the router stacks. Optional behaviour is
// discovered by interface assertion.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hotsquiz/internal/ui/layout"
)

// Screen is one page of the app. View draws only the area between the
// header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackInterceptor screens receive Esc instead of being popped while
// InterceptsBack is true, e.g. to confirm before abandoning a quiz.
type BackInterceptor interface {
	InterceptsBack() bool
}

// Resumer screens refresh when the screens above them are popped.
type Resumer interface {
	Resume() tea.Cmd
}
