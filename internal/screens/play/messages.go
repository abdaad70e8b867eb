package play

import "github.com/abhisek/hotsquiz/internal/quiz"

// questionsReadyMsg is sent when quiz generation finishes.
type questionsReadyMsg struct {
	Questions []quiz.Question
	Err       error
}

// resultSavedMsg is sent when the submitted quiz has been persisted.
type resultSavedMsg struct {
	Err error
}
