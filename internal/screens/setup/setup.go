package setup

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hotsquiz/internal/quizgen"
	"github.com/abhisek/hotsquiz/internal/router"
	"github.com/abhisek/hotsquiz/internal/screen"
	"github.com/abhisek/hotsquiz/internal/screens/play"
	"github.com/abhisek/hotsquiz/internal/ui/components"
	"github.com/abhisek/hotsquiz/internal/ui/layout"
	"github.com/abhisek/hotsquiz/internal/ui/theme"
)

// maxCount bounds the question count the form accepts.
const maxCount = 20

type step int

const (
	stepSubject step = iota
	stepLevel
	stepAspiration
	stepCount
)

// SetupScreen collects the quiz parameters one step at a time.
type SetupScreen struct {
	deps   play.Deps
	params quizgen.Params
	step   step

	subjects   components.Menu
	levels     components.Menu
	aspiration components.Field
	count      components.Field
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.BackInterceptor = (*SetupScreen)(nil)

// New creates a SetupScreen prefilled with defaults.
func New(deps play.Deps, defaults quizgen.Params) *SetupScreen {
	defaults = defaults.WithDefaults()
	s := &SetupScreen{deps: deps, params: defaults}

	subjectItems := make([]components.MenuItem, len(quizgen.Subjects))
	for i, sub := range quizgen.Subjects {
		subjectItems[i] = components.MenuItem{Label: sub.DisplayName()}
	}
	s.subjects = components.NewMenu(subjectItems)
	s.subjects.Select(slices.Index(quizgen.Subjects, defaults.Subject))

	levelItems := make([]components.MenuItem, len(quizgen.Levels))
	for i, lvl := range quizgen.Levels {
		levelItems[i] = components.MenuItem{Label: lvl.DisplayName()}
	}
	s.levels = components.NewMenu(levelItems)
	s.levels.Select(slices.Index(quizgen.Levels, defaults.Level))

	s.aspiration = components.NewField("e.g. become a civil engineer", 80, components.Check(checkAspiration))
	s.aspiration.SetValue(defaults.Aspiration)
	s.count = components.NewField(strconv.Itoa(quizgen.DefaultCount), 2,
		components.DigitsOnly(), components.Check(checkCount))
	s.count.SetValue(strconv.Itoa(defaults.Count))
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "New Quiz"
}

// InterceptsBack steps back through the form before leaving it.
func (s *SetupScreen) InterceptsBack() bool {
	return s.step > stepSubject
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	switch s.step {
	case stepSubject, stepLevel:
		return []layout.KeyHint{
			{Key: "↑↓/1-9", Description: "Choose"},
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)
	if isKey && kmsg.String() == "esc" {
		if s.step > stepSubject {
			s.step--
		}
		return s, s.focusCmd()
	}

	var cmd tea.Cmd
	switch s.step {
	case stepSubject:
		s.subjects, cmd = s.subjects.Update(msg)
		if isKey && kmsg.String() == "enter" {
			s.params.Subject = quizgen.Subjects[s.subjects.Selected]
			s.step = stepLevel
		}
	case stepLevel:
		s.levels, cmd = s.levels.Update(msg)
		if isKey && kmsg.String() == "enter" {
			s.params.Level = quizgen.Levels[s.levels.Selected]
			s.step = stepAspiration
			cmd = s.focusCmd()
		}
	case stepAspiration:
		if isKey && kmsg.String() == "enter" {
			v, ok := s.aspiration.Commit()
			if !ok {
				return s, nil
			}
			s.params.Aspiration = v
			s.step = stepCount
			return s, s.focusCmd()
		}
		s.aspiration, cmd = s.aspiration.Update(msg)
	case stepCount:
		if isKey && kmsg.String() == "enter" {
			return s.start()
		}
		s.count, cmd = s.count.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	v, ok := s.count.Commit()
	if !ok {
		return s, nil
	}
	s.params.Count, _ = strconv.Atoi(v)
	if err := s.params.Validate(); err != nil {
		s.count.SetError(err.Error())
		return s, nil
	}
	next := play.New(s.deps, s.params)
	return s, router.GoTo(next)
}

// Params returns the parameters collected so far.
func (s *SetupScreen) Params() quizgen.Params {
	return s.params
}

func (s *SetupScreen) focusCmd() tea.Cmd {
	switch s.step {
	case stepAspiration:
		return s.aspiration.Focus()
	case stepCount:
		return s.count.Focus()
	}
	return nil
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.step {
	case stepSubject:
		body = heading("Which subject?") + s.subjects.View()
	case stepLevel:
		body = heading("Which school level?") + s.levels.View()
	case stepAspiration:
		body = heading("What do you want to become?") +
			theme.Hint.Render("Questions will be set in situations from that path.") + "\n\n" +
			s.aspiration.View()
	case stepCount:
		body = heading("How many questions?") + s.count.View()
	}

	summary := theme.Hint.Render(s.summaryLine())
	card := components.Card(fmt.Sprintf("Step %d of %d", int(s.step)+1, int(stepCount)+1), body, cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, summary, "", card))
}

func (s *SetupScreen) summaryLine() string {
	parts := []string{}
	if s.step > stepSubject {
		parts = append(parts, s.params.Subject.DisplayName())
	}
	if s.step > stepLevel {
		parts = append(parts, s.params.Level.DisplayName())
	}
	if s.step > stepAspiration {
		parts = append(parts, "goal: "+s.params.Aspiration)
	}
	return strings.Join(parts, "  ·  ")
}

func checkAspiration(v string) error {
	if v == "" {
		return errors.New("Tell us what you want to become.")
	}
	return nil
}

func checkCount(v string) error {
	if n, err := strconv.Atoi(v); err != nil || n < 1 || n > maxCount {
		return fmt.Errorf("Enter a number from 1 to %d.", maxCount)
	}
	return nil
}

func heading(text string) string {
	return theme.Prompt.Render(text) + "\n\n"
}
