package home

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hotsquiz/internal/quizgen"
	"github.com/abhisek/hotsquiz/internal/router"
	"github.com/abhisek/hotsquiz/internal/screen"
	"github.com/abhisek/hotsquiz/internal/screens/history"
	"github.com/abhisek/hotsquiz/internal/screens/play"
	"github.com/abhisek/hotsquiz/internal/screens/setup"
	"github.com/abhisek/hotsquiz/internal/store"
	"github.com/abhisek/hotsquiz/internal/ui/components"
)

const updateCheckTimeout = 5 * time.Second

// Options configures the home screen.
type Options struct {
	Deps     play.Deps
	Defaults quizgen.Params

	// CheckUpdate returns the newest released version, or "" when the
	// running binary is current. Nil disables the check.
	CheckUpdate func(ctx context.Context) (string, error)
}

type stats struct {
	quizzes  int
	best     float64
	avg      float64
	favorite quizgen.Subject // most quizzed subject
}

// summarize folds per-subject aggregates into overall totals.
func summarize(rows []store.SubjectStats) stats {
	var st stats
	var sum float64
	most := 0
	for _, r := range rows {
		st.quizzes += r.Quizzes
		sum += r.AvgScore * float64(r.Quizzes)
		st.best = max(st.best, r.BestScore)
		if r.Quizzes > most {
			most, st.favorite = r.Quizzes, quizgen.Subject(r.Subject)
		}
	}
	if st.quizzes > 0 {
		st.avg = sum / float64(st.quizzes)
	}
	return st
}

type statsLoadedMsg struct {
	stats stats
	err   error
}

type updateCheckedMsg struct {
	latest string
}

// HomeScreen is the main menu.
type HomeScreen struct {
	opts Options
	menu components.Menu

	stats  stats
	latest string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	h := &HomeScreen{opts: opts}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "NEW QUIZ", Disabled: opts.Deps.Generator == nil, Action: func() tea.Cmd {
			return router.GoTo(setup.New(h.opts.Deps, h.opts.Defaults))
		}},
		{Label: "HISTORY", Disabled: opts.Deps.Events == nil, Action: func() tea.Cmd {
			return router.GoTo(history.New(h.opts.Deps.Events))
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return tea.Batch(h.loadStats(), h.checkUpdate())
}

// Resume reloads the stats, which change after every submitted quiz.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.opts.Deps.Events
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		rows, err := repo.QuizStatsBySubject(context.Background())
		return statsLoadedMsg{stats: summarize(rows), err: err}
	}
}

func (h *HomeScreen) checkUpdate() tea.Cmd {
	check := h.opts.CheckUpdate
	if check == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), updateCheckTimeout)
		defer cancel()
		latest, err := check(ctx)
		if err != nil {
			return updateCheckedMsg{}
		}
		return updateCheckedMsg{latest: latest}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.err != nil {
			h.opts.Deps.Logger().Warn("failed to load quiz stats", "error", msg.err)
			return h, nil
		}
		h.stats = msg.stats
		return h, nil
	case updateCheckedMsg:
		h.latest = msg.latest
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}
