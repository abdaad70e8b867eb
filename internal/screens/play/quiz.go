package play

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hotsquiz/internal/quiz"
	"github.com/abhisek/hotsquiz/internal/quizgen"
	"github.com/abhisek/hotsquiz/internal/router"
	"github.com/abhisek/hotsquiz/internal/screen"
	"github.com/abhisek/hotsquiz/internal/ui/components"
	"github.com/abhisek/hotsquiz/internal/ui/layout"
)

// QuizScreen shows one question at a time and records answers into the
// session until the learner submits.
type QuizScreen struct {
	deps    Deps
	params  quizgen.Params
	session *quiz.Session

	mc   components.MultiChoice
	grid components.MatchGrid

	confirmQuit bool
	notice      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackInterceptor = (*QuizScreen)(nil)
var _ layout.StatusProvider = (*QuizScreen)(nil)

// newQuizScreen expects a started session.
func newQuizScreen(deps Deps, params quizgen.Params, sess *quiz.Session) *QuizScreen {
	s := &QuizScreen{deps: deps, params: params, session: sess}
	s.syncWidget()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return fmt.Sprintf("Question %d of %d", s.session.Current()+1, s.session.Len())
}

func (s *QuizScreen) Status() layout.Status {
	return layout.Status{
		Subject:  s.params.Subject.DisplayName(),
		Answered: s.session.AnsweredCount(),
		Total:    s.session.Len(),
	}
}

// InterceptsBack keeps Esc on this screen so leaving asks first.
func (s *QuizScreen) InterceptsBack() bool {
	return true
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	hints := []layout.KeyHint{{Key: "←→", Description: "Question"}}
	q, _ := s.session.CurrentQuestion()
	if q.Kind() == quiz.KindMatching {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Row"},
			layout.KeyHint{Key: "1-9 [ ]", Description: "Match"},
			layout.KeyHint{Key: "⌫", Description: "Clear"})
	} else {
		hints = append(hints,
			layout.KeyHint{Key: "A-D", Description: "Answer"},
			layout.KeyHint{Key: "↑↓ Enter", Description: "Pick"})
	}
	return append(hints,
		layout.KeyHint{Key: "S", Description: "Submit"},
		layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			s.deps.Logger().Info("quiz abandoned", "session_id", s.session.ID(),
				"answered", s.session.AnsweredCount())
			s.session.Reset()
			return s, router.Home()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "left", "shift+tab":
		s.move(s.session.Prev)
		return s, nil
	case "right", "tab":
		s.move(s.session.Next)
		return s, nil
	case "s", "S":
		return s.submit()
	}

	s.notice = ""
	cur := s.session.Current()
	q, _ := s.session.CurrentQuestion()
	switch q.Kind() {
	case quiz.KindMultipleChoice:
		var picked quiz.Letter
		s.mc, picked = s.mc.Update(msg)
		if picked != "" {
			s.record(cur, quiz.LetterAnswer(picked))
		}
	case quiz.KindMatching:
		var changed bool
		s.grid, changed = s.grid.Update(msg)
		if changed {
			s.record(cur, quiz.OrderAnswer(s.grid.Order))
		}
	}
	return s, nil
}

func (s *QuizScreen) move(step func()) {
	step()
	s.notice = ""
	s.syncWidget()
}

func (s *QuizScreen) record(i int, a quiz.Answer) {
	if err := s.session.RecordAnswer(i, a); err != nil {
		s.notice = err.Error()
		s.syncWidget()
	}
}

func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	err := s.session.Submit()
	var missing *quiz.SubmitError
	switch {
	case err == nil:
		next := newReviewScreen(s.deps, s.params, s.session)
		return s, router.Swap(next)
	case errors.As(err, &missing):
		s.notice = "Answer " + questionList(missing.Unanswered) + " before submitting."
		s.session.GoTo(missing.Unanswered[0])
		s.syncWidget()
	default:
		s.notice = err.Error()
	}
	return s, nil
}

// syncWidget rebuilds the answer widget for the current question.
func (s *QuizScreen) syncWidget() {
	q, ok := s.session.CurrentQuestion()
	if !ok {
		return
	}
	a, _ := s.session.Answer(s.session.Current())
	switch q.Kind() {
	case quiz.KindMultipleChoice:
		s.mc = components.NewMultiChoice(q.MultipleChoice, a.Letter)
	case quiz.KindMatching:
		s.grid = components.NewMatchGrid(q.Matching, a.Order)
	}
}

// questionList renders zero-based indexes as "question 2" or
// "questions 2, 4 and 5".
func questionList(idx []int) string {
	nums := make([]string, len(idx))
	for i, v := range idx {
		nums[i] = fmt.Sprint(v + 1)
	}
	if len(nums) == 1 {
		return "question " + nums[0]
	}
	return "questions " + strings.Join(nums[:len(nums)-1], ", ") + " and " + nums[len(nums)-1]
}
