package quiz

import (
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/hotsquiz/internal/logger"
	"github.com/google/uuid"
)

// State is the session lifecycle state.
type State int

const (
	StateEmpty      State = iota // No question set yet, or after Reset
	StateInProgress              // Accepting answers
	StateSubmitted               // Answers frozen, score available
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateInProgress:
		return "in_progress"
	case StateSubmitted:
		return "submitted"
	}
	return "unknown"
}

// ReviewItem pairs a question with the user's answer after submission.
type ReviewItem struct {
	Question Question
	Answer   Answer
	Correct  bool
}

// Session runs one quiz: it owns the question set and the answer slots,
// and moves from in-progress to submitted. A Session is not safe for
// concurrent use; callers that share one across goroutines must lock.
type Session struct {
	id        string
	state     State
	questions []Question
	answers   []Answer
	current   int

	startedAt   time.Time
	submittedAt time.Time

	now func() time.Time
	log *logger.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for lifecycle transitions.
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession returns an empty session. Call Start to load questions.
func NewSession(opts ...Option) *Session {
	s := &Session{now: time.Now, log: logger.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start loads a question set and moves the session to in-progress. The
// set must be non-empty and every question must satisfy its variant
// invariants. Questions are copied; later changes to the slice are not seen.
func (s *Session) Start(questions []Question) error {
	if s.state != StateEmpty {
		return ErrAlreadyStarted
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	s.id = uuid.NewString()
	s.questions = cloneQuestions(questions)
	s.answers = make([]Answer, len(questions))
	for i := range s.questions {
		// Nothing to match: answered vacuously.
		if m := s.questions[i].Matching; m != nil && len(m.Pairs) == 0 {
			s.answers[i] = OrderAnswer(nil)
		}
	}
	s.current = 0
	s.state = StateInProgress
	s.startedAt = s.now()
	s.submittedAt = time.Time{}

	s.log.Info("quiz started", "session_id", s.id, "questions", len(questions))
	return nil
}

// ID returns the session identifier, empty before Start.
func (s *Session) ID() string { return s.id }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Current returns the index of the question being shown.
func (s *Session) Current() int { return s.current }

// StartedAt returns when Start was called.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Duration returns the time from start to submission, or to now while
// still in progress.
func (s *Session) Duration() time.Duration {
	switch s.state {
	case StateInProgress:
		return s.now().Sub(s.startedAt)
	case StateSubmitted:
		return s.submittedAt.Sub(s.startedAt)
	}
	return 0
}

// Question returns the question at i.
func (s *Session) Question(i int) (Question, bool) {
	if i < 0 || i >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[i], true
}

// CurrentQuestion returns the question at the current index.
func (s *Session) CurrentQuestion() (Question, bool) {
	return s.Question(s.current)
}

// Questions returns a copy of the question set.
func (s *Session) Questions() []Question {
	return cloneQuestions(s.questions)
}

// Answer returns a copy of the answer slot at i.
func (s *Session) Answer(i int) (Answer, bool) {
	if i < 0 || i >= len(s.answers) {
		return Answer{}, false
	}
	return s.answers[i].clone(), true
}

// Answers returns a copy of all answer slots.
func (s *Session) Answers() []Answer {
	out := make([]Answer, len(s.answers))
	for i, a := range s.answers {
		out[i] = a.clone()
	}
	return out
}

// GoTo moves to question i, clamped to the valid range. Navigation never
// touches answers, so it is also allowed after submission for review.
func (s *Session) GoTo(i int) {
	if len(s.questions) == 0 {
		return
	}
	s.current = max(0, min(i, len(s.questions)-1))
}

// Next moves forward one question. It stops at the last question.
func (s *Session) Next() { s.GoTo(s.current + 1) }

// Prev moves back one question. It stops at the first question.
func (s *Session) Prev() { s.GoTo(s.current - 1) }

// RecordAnswer replaces the answer at i. The answer must fit the
// question's variant: one of A-D for multiple choice, or an order with one
// entry per pair for matching. A rejected answer leaves the slot unchanged.
func (s *Session) RecordAnswer(i int, a Answer) error {
	switch s.state {
	case StateEmpty:
		return ErrNotStarted
	case StateSubmitted:
		return ErrSubmitted
	}
	if i < 0 || i >= len(s.questions) {
		return &AnswerShapeError{Index: i, Reason: "no such question"}
	}

	canon, reason := checkShape(&s.questions[i], a)
	if reason != "" {
		return &AnswerShapeError{Index: i, Reason: reason}
	}
	s.answers[i] = canon
	return nil
}

// AllAnswered reports whether every slot holds an answer. Matching rows
// left unset still count.
func (s *Session) AllAnswered() bool {
	return len(s.questions) > 0 && len(s.unanswered()) == 0
}

// AnsweredCount returns how many slots hold an answer.
func (s *Session) AnsweredCount() int {
	return len(s.questions) - len(s.unanswered())
}

// IsAnswered reports whether the slot at i holds an answer.
func (s *Session) IsAnswered(i int) bool {
	if i < 0 || i >= len(s.questions) {
		return false
	}
	return answered(&s.questions[i], s.answers[i])
}

func (s *Session) unanswered() []int {
	var out []int
	for i := range s.questions {
		if !answered(&s.questions[i], s.answers[i]) {
			out = append(out, i)
		}
	}
	return out
}

// Submit freezes the answers. It fails with *SubmitError while any
// question is unanswered, leaving the session in progress.
func (s *Session) Submit() error {
	switch s.state {
	case StateEmpty:
		return ErrNotStarted
	case StateSubmitted:
		return ErrSubmitted
	}
	if missing := s.unanswered(); len(missing) > 0 {
		return &SubmitError{Unanswered: missing}
	}

	s.state = StateSubmitted
	s.submittedAt = s.now()
	s.log.Info("quiz submitted", "session_id", s.id, "score", s.Score(),
		"correct", s.CorrectCount(), "questions", len(s.questions))
	return nil
}

// Score returns the percentage of correct answers, rounded half-up to two
// decimals. It panics unless the session has been submitted.
func (s *Session) Score() float64 {
	s.mustBeSubmitted("Score")
	return percent(s.CorrectCount(), len(s.questions))
}

// CorrectCount returns the number of correct answers. It panics unless
// the session has been submitted.
func (s *Session) CorrectCount() int {
	s.mustBeSubmitted("CorrectCount")
	n := 0
	for i := range s.questions {
		if Grade(&s.questions[i], s.answers[i]) {
			n++
		}
	}
	return n
}

// Review returns each question with its answer and correctness. It panics
// unless the session has been submitted.
func (s *Session) Review() []ReviewItem {
	s.mustBeSubmitted("Review")
	items := make([]ReviewItem, len(s.questions))
	for i := range s.questions {
		items[i] = ReviewItem{
			Question: s.questions[i],
			Answer:   s.answers[i].clone(),
			Correct:  Grade(&s.questions[i], s.answers[i]),
		}
	}
	return items
}

// Reset discards the question set and answers. The session must be
// started again before further use.
func (s *Session) Reset() {
	if s.state != StateEmpty {
		s.log.Info("quiz reset", "session_id", s.id, "from", s.state.String())
	}
	s.id = ""
	s.state = StateEmpty
	s.questions = nil
	s.answers = nil
	s.current = 0
	s.startedAt = time.Time{}
	s.submittedAt = time.Time{}
}

func (s *Session) mustBeSubmitted(op string) {
	if s.state != StateSubmitted {
		panic("quiz: " + op + " called in state " + s.state.String())
	}
}

func cloneQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		if q.MultipleChoice != nil {
			mc := *q.MultipleChoice
			q.MultipleChoice = &mc
		}
		if q.Matching != nil {
			q.Matching = &Matching{
				Pairs:        slices.Clone(q.Matching.Pairs),
				CorrectOrder: slices.Clone(q.Matching.CorrectOrder),
			}
		}
		out[i] = q
	}
	return out
}
