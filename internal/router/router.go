package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hotsquiz/internal/screen"
)

// Navigation messages. Screens emit them through GoTo, Swap, Back and Home.
type (
	PushScreenMsg struct{ Screen screen.Screen }
	PopScreenMsg  struct{}

	// ReplaceScreenMsg swaps the top screen and keeps the depth, so that
	// Esc from anywhere in loading -> quiz -> review returns to the screen
	// that started the flow.
	ReplaceScreenMsg struct{ Screen screen.Screen }

	PopToRootMsg struct{}
)

func GoTo(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

func Swap(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

func Back() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

func Home() tea.Cmd {
	return func() tea.Msg { return PopToRootMsg{} }
}

// Router is a stack of screens. Only the top screen receives messages and
// the bottom one is never popped.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// active screen. Screens entering the stack get Init; a screen revealed by
// a pop gets Resume if it implements screen.Resumer.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	top := len(r.stack) - 1
	switch msg := msg.(type) {
	case PushScreenMsg:
		r.stack = append(r.stack, msg.Screen)
		return msg.Screen.Init()
	case ReplaceScreenMsg:
		r.stack[top] = msg.Screen
		return msg.Screen.Init()
	case PopScreenMsg:
		return r.keep(top)
	case PopToRootMsg:
		return r.keep(1)
	}

	next, cmd := r.stack[top].Update(msg)
	r.stack[top] = next
	return cmd
}

// keep drops all but the bottom n screens.
func (r *Router) keep(n int) tea.Cmd {
	n = max(1, n)
	if n >= len(r.stack) {
		return nil
	}
	clear(r.stack[n:])
	r.stack = r.stack[:n]
	if rs, ok := r.Active().(screen.Resumer); ok {
		return rs.Resume()
	}
	return nil
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
