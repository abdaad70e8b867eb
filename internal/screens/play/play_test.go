package play

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hotsquiz/internal/llm"
	"github.com/abhisek/hotsquiz/internal/quiz"
	"github.com/abhisek/hotsquiz/internal/quizgen"
	"github.com/abhisek/hotsquiz/internal/router"
	"github.com/abhisek/hotsquiz/internal/screen"
	"github.com/abhisek/hotsquiz/internal/store"
)

// stubGenerator implements quizgen.Generator for testing.
type stubGenerator struct {
	questions []quiz.Question
	err       error
	calls     int
}

func (g *stubGenerator) Generate(_ context.Context, _ quizgen.Params) ([]quiz.Question, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.questions, nil
}

// resultRepo records quiz results; other methods are not used here.
type resultRepo struct {
	store.EventRepo
	results []store.QuizResultEventData
}

func (r *resultRepo) AppendQuizResult(_ context.Context, data store.QuizResultEventData) error {
	r.results = append(r.results, data)
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuestions() []quiz.Question {
	return []quiz.Question{
		quiz.NewMultipleChoice(1, "Which factor limits photosynthesis at dawn?",
			[4]string{"A. Water", "B. Light", "C. Soil", "D. Wind"}, quiz.LetterB),
		quiz.NewMatching(2, "Match each organelle to its role.",
			[]quiz.Pair{{Left: "Mitochondria", Right: "Energy"}, {Left: "Ribosome", Right: "Protein"}},
			[]int{0, 1}),
	}
}

func testParams() quizgen.Params {
	return quizgen.Params{
		Subject:    quizgen.SubjectBiology,
		Level:      quizgen.LevelUpperSecondary,
		Aspiration: "become a doctor",
		Count:      2,
	}
}

func testDeps() (Deps, *stubGenerator, *resultRepo) {
	gen := &stubGenerator{questions: testQuestions()}
	repo := &resultRepo{}
	return Deps{Generator: gen, Events: repo}, gen, repo
}

// runCmd executes cmd and returns its message, or nil.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	return cmd()
}

// startedQuiz drives a LoadingScreen to the quiz screen.
func startedQuiz(t *testing.T) (*QuizScreen, *resultRepo) {
	t.Helper()
	deps, _, repo := testDeps()
	l := New(deps, testParams())

	msg := runCmd(t, l.generate())
	_, cmd := l.Update(msg)
	replace, ok := runCmd(t, cmd).(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, errMsg=%q", l.errMsg)
	}
	qs, ok := replace.Screen.(*QuizScreen)
	if !ok {
		t.Fatalf("expected *QuizScreen, got %T", replace.Screen)
	}
	return qs, repo
}

func TestLoading_GeneratesAndStartsSession(t *testing.T) {
	qs, _ := startedQuiz(t)

	if qs.session.State() != quiz.StateInProgress {
		t.Errorf("state = %v, want in_progress", qs.session.State())
	}
	if qs.session.Len() != 2 {
		t.Errorf("len = %d, want 2", qs.session.Len())
	}
	if qs.Title() != "Question 1 of 2" {
		t.Errorf("Title = %q", qs.Title())
	}
}

func TestLoading_ErrorThenRetry(t *testing.T) {
	deps, gen, _ := testDeps()
	gen.err = &quizgen.ExtractionError{Raw: "sorry", Err: quizgen.ErrNoArrayFound}
	l := New(deps, testParams())

	l.Update(runCmd(t, l.generate()))
	if !strings.Contains(l.errMsg, "could not be read") {
		t.Fatalf("errMsg = %q", l.errMsg)
	}
	if !strings.Contains(l.View(80, 24), "try again") {
		t.Error("expected retry hint in view")
	}

	gen.err = nil
	_, cmd := l.Update(keyPress('r'))
	if cmd == nil || !l.generating || l.errMsg != "" {
		t.Fatal("expected retry to restart generation")
	}
}

func TestLoading_NoGenerator(t *testing.T) {
	l := New(Deps{}, testParams())
	msg, ok := runCmd(t, l.generate()).(questionsReadyMsg)
	if !ok || msg.Err == nil {
		t.Fatal("expected an error without a generator")
	}
}

func TestLoading_SpinnerStopsWhenDone(t *testing.T) {
	deps, _, _ := testDeps()
	l := New(deps, testParams())

	_, cmd := l.Update(l.spin.Tick())
	if cmd == nil {
		t.Error("expected next tick while generating")
	}
	l.generating = false
	_, cmd = l.Update(l.spin.Tick())
	if cmd != nil {
		t.Error("expected no tick after generation finished")
	}
}

func TestDescribeError(t *testing.T) {
	err := &quizgen.GenerationError{Err: &llm.ErrTimeout{After: 30 * time.Second, Err: context.DeadlineExceeded}}
	if got := describeError(err); !strings.Contains(got, "30s") {
		t.Errorf("describeError(timeout) = %q", got)
	}
	if got := describeError(errors.New("boom")); got != "boom" {
		t.Errorf("describeError(plain) = %q", got)
	}
}

func TestQuiz_AnswerNavigateSubmit(t *testing.T) {
	qs, repo := startedQuiz(t)
	var scr screen.Screen = qs

	scr, _ = scr.Update(keyPress('b'))
	if a, _ := qs.session.Answer(0); a.Letter != quiz.LetterB {
		t.Fatalf("answer 0 = %+v, want B", a)
	}

	scr, _ = scr.Update(specialKey(tea.KeyRight))
	if qs.session.Current() != 1 {
		t.Fatalf("current = %d, want 1", qs.session.Current())
	}

	// Row 0 -> right 1, row 1 -> right 2 (digits are 1-based on screen).
	scr, _ = scr.Update(keyPress('2'))
	scr, _ = scr.Update(keyPress('1'))
	if a, _ := qs.session.Answer(1); len(a.Order) != 2 || a.Order[0] != 1 || a.Order[1] != 0 {
		t.Fatalf("answer 1 = %+v, want [1 0]", a)
	}

	_, cmd := scr.Update(keyPress('s'))
	replace, ok := runCmd(t, cmd).(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg after submit, notice=%q", qs.notice)
	}
	rs, ok := replace.Screen.(*ReviewScreen)
	if !ok {
		t.Fatalf("expected *ReviewScreen, got %T", replace.Screen)
	}
	if rs.score != 50 || rs.correct != 1 {
		t.Errorf("score=%v correct=%d, want 50 1", rs.score, rs.correct)
	}

	saved, ok := runCmd(t, rs.Init()).(resultSavedMsg)
	if !ok || saved.Err != nil {
		t.Fatalf("expected saved result, got %+v", saved)
	}
	if len(repo.results) != 1 {
		t.Fatalf("results = %d, want 1", len(repo.results))
	}
	got := repo.results[0]
	if got.Subject != "biology" || got.Questions != 2 || got.Correct != 1 || got.Score != 50 {
		t.Errorf("saved result = %+v", got)
	}
}

func TestQuiz_SubmitWithUnanswered(t *testing.T) {
	qs, _ := startedQuiz(t)
	qs.Update(keyPress('a'))

	_, cmd := qs.Update(keyPress('s'))
	if cmd != nil {
		t.Fatal("expected no navigation with unanswered questions")
	}
	if qs.session.State() != quiz.StateInProgress {
		t.Errorf("state = %v, want in_progress", qs.session.State())
	}
	if !strings.Contains(qs.notice, "question 2") {
		t.Errorf("notice = %q", qs.notice)
	}
	if qs.session.Current() != 1 {
		t.Errorf("expected jump to first unanswered, current = %d", qs.session.Current())
	}
}

func TestQuiz_QuitConfirm(t *testing.T) {
	qs, _ := startedQuiz(t)

	qs.Update(specialKey(tea.KeyEscape))
	if !qs.confirmQuit {
		t.Fatal("expected quit confirmation")
	}
	qs.Update(keyPress('n'))
	if qs.confirmQuit {
		t.Fatal("expected confirmation dismissed")
	}

	qs.Update(specialKey(tea.KeyEscape))
	_, cmd := qs.Update(keyPress('y'))
	if _, ok := runCmd(t, cmd).(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
	if qs.session.State() != quiz.StateEmpty {
		t.Errorf("state = %v, want empty after leaving", qs.session.State())
	}
}

func TestQuiz_ViewAndHints(t *testing.T) {
	qs, _ := startedQuiz(t)
	if !strings.Contains(qs.View(100, 30), "photosynthesis") {
		t.Error("expected prompt in view")
	}
	if len(qs.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
	st := qs.Status()
	if st.Total != 2 || st.Answered != 0 || st.Subject != "Biology" {
		t.Errorf("status = %+v", st)
	}
}

func submittedReview(t *testing.T) *ReviewScreen {
	t.Helper()
	qs, _ := startedQuiz(t)
	qs.Update(keyPress('b'))
	qs.Update(specialKey(tea.KeyRight))
	qs.Update(keyPress('1'))
	qs.Update(keyPress('2'))
	_, cmd := qs.Update(keyPress('s'))
	return runCmd(t, cmd).(router.ReplaceScreenMsg).Screen.(*ReviewScreen)
}

func TestReview_PerfectScore(t *testing.T) {
	rs := submittedReview(t)
	if rs.score != 100 {
		t.Errorf("score = %v, want 100", rs.score)
	}
	if !strings.Contains(rs.View(100, 30), "100.00%") {
		t.Error("expected score in view")
	}
}

func TestReview_NavigateAfterSubmit(t *testing.T) {
	rs := submittedReview(t)
	rs.Update(specialKey(tea.KeyDown))
	if rs.session.Current() != 1 {
		t.Errorf("current = %d, want 1", rs.session.Current())
	}
	if !strings.Contains(rs.View(100, 30), "Mitochondria → Energy") {
		t.Error("expected matching answer detail in view")
	}
}

func TestReview_RetryResetsSession(t *testing.T) {
	rs := submittedReview(t)
	_, cmd := rs.Update(keyPress('r'))
	replace, ok := runCmd(t, cmd).(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	l, ok := replace.Screen.(*LoadingScreen)
	if !ok {
		t.Fatalf("expected *LoadingScreen, got %T", replace.Screen)
	}
	if l.session != rs.session || rs.session.State() != quiz.StateEmpty {
		t.Error("expected the same session, reset to empty")
	}
}

func TestReview_EnterGoesHome(t *testing.T) {
	rs := submittedReview(t)
	_, cmd := rs.Update(specialKey(tea.KeyEnter))
	if _, ok := runCmd(t, cmd).(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
}

func TestQuestionList(t *testing.T) {
	cases := map[string][]int{
		"question 3":           {2},
		"questions 1 and 2":    {0, 1},
		"questions 1, 3 and 5": {0, 2, 4},
	}
	for want, idx := range cases {
		if got := questionList(idx); got != want {
			t.Errorf("questionList(%v) = %q, want %q", idx, got, want)
		}
	}
}
