package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrNotStarted is returned by operations that need a question set.
	ErrNotStarted = errors.New("quiz not started")

	// ErrAlreadyStarted is returned by Start on a session that holds questions.
	ErrAlreadyStarted = errors.New("quiz already started")

	// ErrSubmitted is returned when an answer or submit arrives after submission.
	ErrSubmitted = errors.New("quiz already submitted")

	// ErrNoQuestions is returned by Start with an empty question set.
	ErrNoQuestions = errors.New("quiz needs at least one question")
)

// AnswerShapeError reports an answer that does not fit its question.
// The stored answer is left unchanged.
type AnswerShapeError struct {
	Index  int
	Reason string
}

func (e *AnswerShapeError) Error() string {
	return fmt.Sprintf("answer for question %d rejected: %s", e.Index+1, e.Reason)
}

// SubmitError reports a submit attempted while questions are unanswered.
type SubmitError struct {
	// Unanswered holds the zero-based indices still missing an answer.
	Unanswered []int
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("cannot submit: %d question(s) unanswered", len(e.Unanswered))
}
