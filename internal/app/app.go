package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hotsquiz/internal/router"
	"github.com/abhisek/hotsquiz/internal/screen"
	"github.com/abhisek/hotsquiz/internal/screens/home"
	"github.com/abhisek/hotsquiz/internal/screens/play"
	"github.com/abhisek/hotsquiz/internal/screens/welcome"
	"github.com/abhisek/hotsquiz/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Home home.Options

	// QuickStart skips the splash and menus and starts a quiz with
	// Home.Defaults straight away.
	QuickStart bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  tea.Cmd
	width  int
	height int
}

// newAppModel builds the screen stack for opts.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Home)
	if opts.QuickStart {
		r := router.New(homeScreen)
		next := play.New(opts.Home.Deps, opts.Home.Defaults)
		return AppModel{
			router: r,
			start:  tea.Batch(homeScreen.Init(), router.GoTo(next)),
		}
	}

	w := welcome.New(func() screen.Screen { return homeScreen })
	return AppModel{
		router: router.New(w),
		start:  w.Init(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.start
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptsBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Back()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the active screen inside the app chrome.
func (m AppModel) render() string {
	chrome := layout.Chrome{}
	active := m.router.Active()
	if active != nil {
		chrome.Title = active.Title()
		if sp, ok := active.(layout.StatusProvider); ok {
			chrome.Status = sp.Status()
		}
	}
	chrome.Hints = m.footerHints(active)
	return chrome.Render(m.width, m.height, m.router.View)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.QuickStart {
		if err := opts.Home.Defaults.Validate(); err != nil {
			return fmt.Errorf("quick start: %w", err)
		}
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

