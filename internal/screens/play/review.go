package play

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hotsquiz/internal/quiz"
	"github.com/abhisek/hotsquiz/internal/quizgen"
	"github.com/abhisek/hotsquiz/internal/router"
	"github.com/abhisek/hotsquiz/internal/screen"
	"github.com/abhisek/hotsquiz/internal/store"
	"github.com/abhisek/hotsquiz/internal/ui/components"
	"github.com/abhisek/hotsquiz/internal/ui/layout"
	"github.com/abhisek/hotsquiz/internal/ui/theme"
)

// ReviewScreen shows the score of a submitted session and walks through
// each question with the learner's answer and the rationale.
type ReviewScreen struct {
	deps    Deps
	params  quizgen.Params
	session *quiz.Session
	items   []quiz.ReviewItem
	score   float64
	correct int

	saveErr string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)
var _ layout.StatusProvider = (*ReviewScreen)(nil)

// newReviewScreen expects a submitted session.
func newReviewScreen(deps Deps, params quizgen.Params, sess *quiz.Session) *ReviewScreen {
	sess.GoTo(0)
	return &ReviewScreen{
		deps:    deps,
		params:  params,
		session: sess,
		items:   sess.Review(),
		score:   sess.Score(),
		correct: sess.CorrectCount(),
	}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return s.saveResult()
}

func (s *ReviewScreen) Title() string {
	return "Quiz Review"
}

func (s *ReviewScreen) Status() layout.Status {
	return layout.Status{Subject: s.params.Subject.DisplayName()}
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Question"},
		{Key: "R", Description: "New quiz, same topic"},
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Change topic"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultSavedMsg:
		if msg.Err != nil {
			s.saveErr = msg.Err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k", "left":
			s.session.Prev()
		case "down", "j", "right":
			s.session.Next()
		case "r", "R":
			s.session.Reset()
			next := newLoading(s.deps, s.params, s.session)
			return s, router.Swap(next)
		case "enter":
			return s, router.Home()
		}
	}
	return s, nil
}

// saveResult appends the quiz outcome to the event store.
func (s *ReviewScreen) saveResult() tea.Cmd {
	repo := s.deps.Events
	if repo == nil {
		return nil
	}
	data := store.QuizResultEventData{
		SessionID:    s.session.ID(),
		Subject:      string(s.params.Subject),
		Level:        string(s.params.Level),
		Aspiration:   s.params.Aspiration,
		Questions:    len(s.items),
		Correct:      s.correct,
		Score:        s.score,
		DurationSecs: int(s.session.Duration().Seconds()),
	}
	log := s.deps.Logger()
	return func() tea.Msg {
		err := repo.AppendQuizResult(context.Background(), data)
		if err != nil {
			log.Warn("failed to save quiz result", "session_id", data.SessionID, "error", err)
		}
		return resultSavedMsg{Err: err}
	}
}

func (s *ReviewScreen) View(width, height int) string {
	cw := min(width-4, 90)
	var b strings.Builder

	scoreLine := lipgloss.NewStyle().Foreground(theme.ScoreColor(s.score)).Bold(true).
		Render(fmt.Sprintf("Score: %.2f%%", s.score))
	d := s.session.Duration()
	detail := theme.Hint.Render(fmt.Sprintf("%d of %d correct  ·  %d:%02d",
		s.correct, len(s.items), int(d.Minutes()), int(d.Seconds())%60))
	b.WriteString(scoreLine + "   " + detail)
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", s.score/100, true, min(cw, 50)).View())
	b.WriteString("\n\n")

	// Question list.
	for i, it := range s.items {
		mark := theme.Correct.Render("✓")
		if !it.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		text := it.Question.Prompt
		if text == "" {
			text = "(empty question)"
		}
		text = truncate(text, cw-8)
		line := fmt.Sprintf("%s %2d. %s", mark, i+1, text)
		if i == s.session.Current() {
			line = theme.Selected.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n")
	b.WriteString(s.renderDetail(cw))

	if s.saveErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Result not saved: " + s.saveErr))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *ReviewScreen) renderDetail(cw int) string {
	i := s.session.Current()
	if i < 0 || i >= len(s.items) {
		return ""
	}
	it := s.items[i]
	q := it.Question

	var b strings.Builder
	b.WriteString(theme.Prompt.Width(cw).Render(q.Prompt))
	b.WriteString("\n\n")

	answerStyle := theme.Correct
	if !it.Correct {
		answerStyle = theme.Incorrect
	}
	b.WriteString(theme.Hint.Render("Your answer"))
	b.WriteString("\n")
	b.WriteString(answerStyle.Render(formatAnswer(q, it.Answer)))
	b.WriteString("\n")
	if !it.Correct {
		b.WriteString(theme.Hint.Render("Correct answer"))
		b.WriteString("\n")
		b.WriteString(theme.Correct.Render(correctAnswer(q)))
		b.WriteString("\n")
	}
	if q.Rationale != "" {
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(cw).Render(q.Rationale))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
