package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hotsquiz/internal/router"
	"github.com/abhisek/hotsquiz/internal/screen"
	"github.com/abhisek/hotsquiz/internal/ui/components"
	"github.com/abhisek/hotsquiz/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond

	// tierEvery reveals one pyramid tier, bottom first.
	tierEvery = 300 * time.Millisecond

	// holdFor keeps the finished splash up before moving on unprompted.
	holdFor = 2500 * time.Millisecond
)

// bloomTiers lists Bloom's revised taxonomy from the base up. The top
// three are the higher-order thinking skills every question targets.
var bloomTiers = []string{"Remember", "Understand", "Apply", "Analyze", "Evaluate", "Create"}

const firstHOTSTier = 3

type tickMsg time.Time

// WelcomeScreen builds the taxonomy pyramid, shows the banner, then hands
// over to the home screen on any key or after holdFor.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		if w.elapsed >= w.built()+holdFor {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

// built is how long the pyramid takes to finish.
func (w *WelcomeScreen) built() time.Duration {
	return time.Duration(len(bloomTiers)) * tierEvery
}

func (w *WelcomeScreen) tiersShown() int {
	return min(len(bloomTiers), int(w.elapsed/tierEvery))
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	return router.Swap(home)
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{renderPyramid(w.tiersShown())}

	if w.elapsed >= w.built() {
		sections = append(sections,
			"",
			components.Banner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Think higher. Answer smarter."),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

// renderPyramid draws the lowest shown tiers, widest at the bottom. Tiers
// not yet shown leave blank rows so the pyramid grows in place.
func renderPyramid(shown int) string {
	const step = 4
	base := len("Understand") + 2 + step*(len(bloomTiers)-1)

	rows := make([]string, len(bloomTiers))
	for i, name := range bloomTiers {
		row := len(bloomTiers) - 1 - i
		if i >= shown {
			rows[row] = ""
			continue
		}
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i >= firstHOTSTier {
			style = lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.ArcadeYellow).Bold(true)
		}
		width := base - step*i
		rows[row] = style.Width(width).Align(lipgloss.Center).Render(name)
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
