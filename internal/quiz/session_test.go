package quiz

import (
	"errors"
	"testing"
	"time"
)

func capitalQuestion() Question {
	return NewMultipleChoice(1, "Capital of France?",
		[4]string{"A. Paris", "B. Lyon", "C. Nice", "D. Lille"}, LetterA)
}

func organelleQuestion() Question {
	return NewMatching(2, "Match each organelle to its role.",
		[]Pair{{Left: "Mitochondria", Right: "Photosynthesis"}, {Left: "Chloroplast", Right: "Respiration"}},
		[]int{1, 0})
}

func startedSession(t *testing.T, qs ...Question) *Session {
	t.Helper()
	s := NewSession()
	if err := s.Start(qs); err != nil {
		t.Fatalf("start: %v", err)
	}
	return s
}

func TestEndToEnd_MultipleChoiceCorrect(t *testing.T) {
	s := startedSession(t, capitalQuestion())
	if err := s.RecordAnswer(0, LetterAnswer("A")); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := s.Score(); got != 100.00 {
		t.Errorf("score = %.2f, want 100.00", got)
	}
}

func TestEndToEnd_MultipleChoiceWrong(t *testing.T) {
	s := startedSession(t, capitalQuestion())
	if err := s.RecordAnswer(0, LetterAnswer("B")); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := s.Score(); got != 0 {
		t.Errorf("score = %.2f, want 0.00", got)
	}
}

func TestEndToEnd_MatchingAllOrNothing(t *testing.T) {
	tests := []struct {
		order []int
		want  float64
	}{
		{[]int{1, 0}, 100},
		{[]int{0, 1}, 0},
		{[]int{1, Unset}, 0},
	}

	for _, tc := range tests {
		s := startedSession(t, organelleQuestion())
		if err := s.RecordAnswer(0, OrderAnswer(tc.order)); err != nil {
			t.Fatalf("record %v: %v", tc.order, err)
		}
		if err := s.Submit(); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if got := s.Score(); got != tc.want {
			t.Errorf("order %v: score = %.2f, want %.2f", tc.order, got, tc.want)
		}
	}
}

func TestSubmitBeforeAllAnswered(t *testing.T) {
	s := startedSession(t, capitalQuestion(), organelleQuestion())
	if err := s.RecordAnswer(0, LetterAnswer("A")); err != nil {
		t.Fatalf("record: %v", err)
	}

	err := s.Submit()
	var se *SubmitError
	if !errors.As(err, &se) {
		t.Fatalf("expected SubmitError, got %v", err)
	}
	if len(se.Unanswered) != 1 || se.Unanswered[0] != 1 {
		t.Errorf("unanswered = %v, want [1]", se.Unanswered)
	}
	if s.State() != StateInProgress {
		t.Errorf("state = %v, want in_progress", s.State())
	}
}

func TestMatchingUnsetRowsCountAsAnswered(t *testing.T) {
	s := startedSession(t, organelleQuestion())
	if err := s.RecordAnswer(0, OrderAnswer([]int{Unset, Unset})); err != nil {
		t.Fatalf("record: %v", err)
	}
	if !s.AllAnswered() {
		t.Fatal("expected unset rows to satisfy the answered predicate")
	}
}

func TestMatchingWithUnknownKeyNeverScores(t *testing.T) {
	tests := []struct {
		name  string
		key   []int
		order []int
	}{
		{"every row skipped", []int{Unset, Unset}, []int{Unset, Unset}},
		{"skipped row where key is unknown", []int{1, Unset}, []int{1, Unset}},
		{"full answer", []int{1, Unset}, []int{1, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := NewMatching(1, "Match each organelle to its role.",
				[]Pair{{Left: "Mitochondria", Right: "Photosynthesis"}, {Left: "Chloroplast", Right: "Respiration"}},
				tc.key)
			s := startedSession(t, q)
			if err := s.RecordAnswer(0, OrderAnswer(tc.order)); err != nil {
				t.Fatalf("record: %v", err)
			}
			if err := s.Submit(); err != nil {
				t.Fatalf("submit: %v", err)
			}
			if got := s.Score(); got != 0 {
				t.Errorf("score = %.2f, want 0", got)
			}
			if s.Review()[0].Correct {
				t.Error("review marks the question correct")
			}
		})
	}
}

func TestRecordAnswerRejectsBadShape(t *testing.T) {
	s := startedSession(t, capitalQuestion(), organelleQuestion())
	if err := s.RecordAnswer(0, LetterAnswer("C")); err != nil {
		t.Fatalf("record: %v", err)
	}

	bad := []struct {
		name  string
		index int
		ans   Answer
	}{
		{"letter out of range", 0, LetterAnswer("E")},
		{"order on multiple choice", 0, OrderAnswer([]int{0})},
		{"empty letter", 0, Answer{}},
		{"short order", 1, OrderAnswer([]int{1})},
		{"long order", 1, OrderAnswer([]int{1, 0, 0})},
		{"index out of range", 1, OrderAnswer([]int{2, 0})},
		{"negative index", 1, OrderAnswer([]int{-3, 0})},
		{"letter on matching", 1, LetterAnswer("A")},
		{"no such question", 5, LetterAnswer("A")},
		{"negative question", -1, LetterAnswer("A")},
	}

	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			err := s.RecordAnswer(tc.index, tc.ans)
			var ae *AnswerShapeError
			if !errors.As(err, &ae) {
				t.Fatalf("expected AnswerShapeError, got %v", err)
			}
		})
	}

	a, _ := s.Answer(0)
	if a.Letter != LetterC {
		t.Errorf("answer 0 = %q, want C unchanged", a.Letter)
	}
	if s.IsAnswered(1) {
		t.Error("answer 1 should still be unanswered")
	}
}

func TestRecordAnswerNormalizesCase(t *testing.T) {
	s := startedSession(t, capitalQuestion())
	if err := s.RecordAnswer(0, LetterAnswer("a")); err != nil {
		t.Fatalf("record: %v", err)
	}
	a, _ := s.Answer(0)
	if a.Letter != LetterA {
		t.Errorf("letter = %q, want A", a.Letter)
	}
}

func TestRecordAnswerCopiesOrder(t *testing.T) {
	s := startedSession(t, organelleQuestion())
	order := []int{1, 0}
	if err := s.RecordAnswer(0, OrderAnswer(order)); err != nil {
		t.Fatalf("record: %v", err)
	}
	order[0] = 0

	a, _ := s.Answer(0)
	if a.Order[0] != 1 {
		t.Error("session answer changed through caller's slice")
	}
}

func TestNoMutationAfterSubmit(t *testing.T) {
	s := startedSession(t, capitalQuestion())
	_ = s.RecordAnswer(0, LetterAnswer("A"))
	if err := s.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := s.RecordAnswer(0, LetterAnswer("B")); !errors.Is(err, ErrSubmitted) {
		t.Fatalf("expected ErrSubmitted, got %v", err)
	}
	if err := s.Submit(); !errors.Is(err, ErrSubmitted) {
		t.Fatalf("expected ErrSubmitted on second submit, got %v", err)
	}
	if got := s.Score(); got != 100 {
		t.Errorf("score = %.2f, want 100", got)
	}
}

func TestGoToClampsAndIsIdempotent(t *testing.T) {
	s := startedSession(t, capitalQuestion(), organelleQuestion(),
		NewMultipleChoice(3, "Q3", [4]string{"A. ", "B. ", "C. ", "D. "}, LetterD))

	tests := []struct {
		goTo int
		want int
	}{
		{1, 1},
		{1, 1},
		{-5, 0},
		{99, 2},
		{2, 2},
	}
	for _, tc := range tests {
		s.GoTo(tc.goTo)
		if s.Current() != tc.want {
			t.Errorf("GoTo(%d): current = %d, want %d", tc.goTo, s.Current(), tc.want)
		}
	}
	if s.AnsweredCount() != 0 {
		t.Error("navigation must not record answers")
	}

	s.Next()
	if s.Current() != 2 {
		t.Errorf("Next past end: current = %d, want 2", s.Current())
	}
	s.Prev()
	s.Prev()
	s.Prev()
	if s.Current() != 0 {
		t.Errorf("Prev past start: current = %d, want 0", s.Current())
	}
}

func TestRecordSameAnswerTwice(t *testing.T) {
	s := startedSession(t, capitalQuestion(), organelleQuestion())
	for i := 0; i < 2; i++ {
		if err := s.RecordAnswer(1, OrderAnswer([]int{1, 0})); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if s.AnsweredCount() != 1 {
		t.Errorf("answered = %d, want 1", s.AnsweredCount())
	}
	a, _ := s.Answer(1)
	if FormatOrder(a.Order) != "1,0" {
		t.Errorf("order = %v, want [1 0]", a.Order)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	s := startedSession(t, capitalQuestion(), organelleQuestion(),
		NewMultipleChoice(3, "Q3", [4]string{"A. ", "B. ", "C. ", "D. "}, LetterD))
	_ = s.RecordAnswer(0, LetterAnswer("A"))
	_ = s.RecordAnswer(1, OrderAnswer([]int{0, 1}))
	_ = s.RecordAnswer(2, LetterAnswer("D"))
	if err := s.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}

	first := s.Score()
	for i := 0; i < 3; i++ {
		if got := s.Score(); got != first {
			t.Fatalf("score changed from %.2f to %.2f", first, got)
		}
	}
	if first != 66.67 {
		t.Errorf("score = %.2f, want 66.67", first)
	}
	if s.CorrectCount() != 2 {
		t.Errorf("correct = %d, want 2", s.CorrectCount())
	}
}

func TestScorePanicsBeforeSubmit(t *testing.T) {
	s := startedSession(t, capitalQuestion())
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	s.Score()
}

func TestReview(t *testing.T) {
	s := startedSession(t, capitalQuestion(), organelleQuestion())
	_ = s.RecordAnswer(0, LetterAnswer("B"))
	_ = s.RecordAnswer(1, OrderAnswer([]int{1, 0}))
	if err := s.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}

	items := s.Review()
	if len(items) != 2 {
		t.Fatalf("review has %d items, want 2", len(items))
	}
	if items[0].Correct || !items[1].Correct {
		t.Errorf("correctness = %v,%v, want false,true", items[0].Correct, items[1].Correct)
	}
	if items[0].Answer.Letter != LetterB {
		t.Errorf("review answer = %q, want B", items[0].Answer.Letter)
	}
}

func TestResetFromEitherState(t *testing.T) {
	s := startedSession(t, capitalQuestion())
	s.Reset()
	if s.State() != StateEmpty || s.Len() != 0 || s.ID() != "" {
		t.Fatalf("reset from in-progress left state %v len %d", s.State(), s.Len())
	}
	if err := s.RecordAnswer(0, LetterAnswer("A")); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}

	if err := s.Start([]Question{capitalQuestion()}); err != nil {
		t.Fatalf("restart: %v", err)
	}
	_ = s.RecordAnswer(0, LetterAnswer("A"))
	_ = s.Submit()
	s.Reset()
	if s.State() != StateEmpty {
		t.Fatalf("reset from submitted left state %v", s.State())
	}
}

func TestStartValidation(t *testing.T) {
	s := NewSession()
	if err := s.Start(nil); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}

	bad := Question{ID: 1, Matching: &Matching{Pairs: []Pair{{Left: "a", Right: "b"}}}}
	if err := s.Start([]Question{bad}); err == nil {
		t.Fatal("expected invalid question to be rejected")
	}
	if s.State() != StateEmpty {
		t.Fatalf("failed start changed state to %v", s.State())
	}

	if err := s.Start([]Question{capitalQuestion()}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Start([]Question{capitalQuestion()}); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
	if s.ID() == "" {
		t.Error("expected session id after start")
	}
}

func TestStartCopiesQuestions(t *testing.T) {
	qs := []Question{organelleQuestion()}
	s := startedSession(t, qs...)
	qs[0].Matching.CorrectOrder[0] = 0

	q, _ := s.Question(0)
	if q.Matching.CorrectOrder[0] != 1 {
		t.Error("session question changed through caller's slice")
	}
}

func TestEmptyMatchingIsVacuouslyAnswered(t *testing.T) {
	s := startedSession(t, NewMatching(1, "Nothing to match", nil, nil))
	if !s.AllAnswered() {
		t.Fatal("expected zero-pair matching question to count as answered")
	}
	if err := s.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.Score() != 100 {
		t.Errorf("score = %.2f, want 100", s.Score())
	}
}

func TestDuration(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := NewSession(WithClock(func() time.Time { return now }))
	if err := s.Start([]Question{capitalQuestion()}); err != nil {
		t.Fatalf("start: %v", err)
	}
	now = now.Add(90 * time.Second)
	_ = s.RecordAnswer(0, LetterAnswer("A"))
	_ = s.Submit()
	now = now.Add(time.Hour)

	if got := s.Duration(); got != 90*time.Second {
		t.Errorf("duration = %v, want 90s", got)
	}
}

func TestPercentRounding(t *testing.T) {
	tests := []struct {
		correct, total int
		want           float64
	}{
		{0, 5, 0},
		{5, 5, 100},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{1, 8, 12.5},
		{1, 800, 0.13},
		{1, 6, 16.67},
		{0, 0, 0},
	}
	for _, tc := range tests {
		if got := percent(tc.correct, tc.total); got != tc.want {
			t.Errorf("percent(%d, %d) = %v, want %v", tc.correct, tc.total, got, tc.want)
		}
	}
}
