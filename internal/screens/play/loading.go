package play

import (
	"context"
	"errors"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hotsquiz/internal/llm"
	"github.com/abhisek/hotsquiz/internal/quiz"
	"github.com/abhisek/hotsquiz/internal/quizgen"
	"github.com/abhisek/hotsquiz/internal/router"
	"github.com/abhisek/hotsquiz/internal/screen"
	"github.com/abhisek/hotsquiz/internal/ui/layout"
	"github.com/abhisek/hotsquiz/internal/ui/theme"
)

// LoadingScreen requests a question set and hands a started session to
// the quiz screen.
type LoadingScreen struct {
	deps    Deps
	params  quizgen.Params
	session *quiz.Session

	generating bool
	spin       spinner.Model
	errMsg     string
}

var _ screen.Screen = (*LoadingScreen)(nil)
var _ screen.KeyHintProvider = (*LoadingScreen)(nil)

// New creates a LoadingScreen for a fresh session.
func New(deps Deps, params quizgen.Params) *LoadingScreen {
	return newLoading(deps, params, quiz.NewSession(quiz.WithLogger(deps.Logger())))
}

// newLoading reuses sess, which must be empty. Used by retry after Reset.
func newLoading(deps Deps, params quizgen.Params, sess *quiz.Session) *LoadingScreen {
	return &LoadingScreen{
		deps:       deps,
		params:     params.WithDefaults(),
		session:    sess,
		generating: true,
		spin:       spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinStyle)),
	}
}

var spinStyle = lipgloss.NewStyle().Foreground(theme.ArcadeCyan)

func (s *LoadingScreen) Init() tea.Cmd {
	return tea.Batch(s.generate(), s.spin.Tick)
}

func (s *LoadingScreen) Title() string {
	return "Preparing Quiz"
}

func (s *LoadingScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "R", Description: "Try again"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *LoadingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsReadyMsg:
		return s.handleReady(msg)

	case spinner.TickMsg:
		if !s.generating {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.errMsg != "" && (msg.String() == "r" || msg.String() == "R") {
			s.errMsg = ""
			s.generating = true
			return s, tea.Batch(s.generate(), s.spin.Tick)
		}
	}
	return s, nil
}

func (s *LoadingScreen) handleReady(msg questionsReadyMsg) (screen.Screen, tea.Cmd) {
	s.generating = false
	if msg.Err != nil {
		s.errMsg = describeError(msg.Err)
		return s, nil
	}
	if err := s.session.Start(msg.Questions); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	next := newQuizScreen(s.deps, s.params, s.session)
	return s, router.Swap(next)
}

// generate calls the generator off the UI loop.
func (s *LoadingScreen) generate() tea.Cmd {
	gen := s.deps.Generator
	params := s.params
	return func() tea.Msg {
		if gen == nil {
			return questionsReadyMsg{Err: errors.New("no LLM provider configured")}
		}
		qs, err := gen.Generate(context.Background(), params)
		return questionsReadyMsg{Questions: qs, Err: err}
	}
}

func (s *LoadingScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Could not prepare the quiz")+
				"\n\n"+
				lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(s.errMsg)+
				"\n\n"+
				theme.Hint.Render("Press R to try again or Esc to go back."))
	}

	lines := s.spin.View() + "  " + theme.Body.Render(fmt.Sprintf("Writing %d %s questions for %s",
		s.params.Count, s.params.Subject.DisplayName(), s.params.Level.DisplayName())) +
		"\n\n" + theme.Hint.Render(fmt.Sprintf("framed around \"%s\"", s.params.Aspiration))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, lines)
}

// describeError turns a generation failure into a message for the learner.
func describeError(err error) string {
	var timeout *llm.ErrTimeout
	var rate *llm.ErrRateLimit
	var unavail *llm.ErrProviderUnavailable
	var extract *quizgen.ExtractionError

	switch {
	case errors.As(err, &timeout):
		return fmt.Sprintf("The quiz service did not answer within %s.", timeout.After)
	case errors.As(err, &rate):
		return "The quiz service is busy right now. Wait a moment and try again."
	case errors.As(err, &unavail):
		return "The quiz service is unavailable: " + unavail.Error()
	case errors.As(err, &extract):
		return "The reply could not be read as a list of questions: " + extract.Err.Error()
	}
	return err.Error()
}
