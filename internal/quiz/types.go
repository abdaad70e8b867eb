package quiz

import (
	"errors"
	"fmt"
)

// Kind identifies a question variant.
type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindMatching       Kind = "matching"
)

// Letter is a multiple-choice option label.
type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
)

// Letters lists the option labels in positional order.
var Letters = [4]Letter{LetterA, LetterB, LetterC, LetterD}

// Valid reports whether l is one of A, B, C or D.
func (l Letter) Valid() bool {
	return l.Index() >= 0
}

// Index returns the option position of l, or -1 if l is not a valid letter.
func (l Letter) Index() int {
	for i, x := range Letters {
		if l == x {
			return i
		}
	}
	return -1
}

// Unset marks a matching row the user left blank, or a correct-order
// entry the generator did not supply.
const Unset = -1

// Question is a single quiz item. Exactly one of MultipleChoice and
// Matching is non-nil. Questions are not modified after construction.
type Question struct {
	// ID is a 1-based ordinal, unique within a session.
	ID int `json:"id"`

	// Prompt is the question text shown to the user.
	Prompt string `json:"question"`

	// Rationale explains the correct answer. Shown during review.
	Rationale string `json:"rationale"`

	// CognitiveLevel is the HOTS tag, e.g. "Analyze" or "Evaluate".
	// Free-form; not checked against a fixed set.
	CognitiveLevel string `json:"cognitive_level"`

	MultipleChoice *MultipleChoice `json:"multiple_choice,omitempty"`
	Matching       *Matching       `json:"matching,omitempty"`
}

// MultipleChoice is the payload of a four-option question.
type MultipleChoice struct {
	// Options holds the four option texts, each prefixed "A. " to "D. ".
	Options [4]string `json:"options"`

	// Correct is the label of the right option.
	Correct Letter `json:"answer"`
}

// Matching is the payload of a pair-matching question.
type Matching struct {
	Pairs []Pair `json:"pairs"`

	// CorrectOrder[i] is the index into Pairs of the right-hand item that
	// belongs with Pairs[i].Left. Same length as Pairs.
	CorrectOrder []int `json:"correct_order"`
}

// Pair is one row of a matching question.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Rights returns the right-hand column in its presented order.
func (m *Matching) Rights() []string {
	out := make([]string, len(m.Pairs))
	for i, p := range m.Pairs {
		out[i] = p.Right
	}
	return out
}

// Kind returns the question's variant.
func (q *Question) Kind() Kind {
	if q.Matching != nil {
		return KindMatching
	}
	return KindMultipleChoice
}

// Validate checks the variant invariants.
func (q *Question) Validate() error {
	switch {
	case q.MultipleChoice == nil && q.Matching == nil:
		return errors.New("question has no payload")
	case q.MultipleChoice != nil && q.Matching != nil:
		return errors.New("question has both multiple-choice and matching payloads")
	case q.MultipleChoice != nil:
		if !q.MultipleChoice.Correct.Valid() {
			return fmt.Errorf("invalid correct letter %q", q.MultipleChoice.Correct)
		}
	case q.Matching != nil:
		m := q.Matching
		if len(m.CorrectOrder) != len(m.Pairs) {
			return fmt.Errorf("correct order has %d entries for %d pairs", len(m.CorrectOrder), len(m.Pairs))
		}
		for i, v := range m.CorrectOrder {
			if v != Unset && (v < 0 || v >= len(m.Pairs)) {
				return fmt.Errorf("correct order[%d] = %d out of range", i, v)
			}
		}
	}
	return nil
}

// NewMultipleChoice builds a multiple-choice question.
func NewMultipleChoice(id int, prompt string, options [4]string, correct Letter) Question {
	return Question{
		ID:             id,
		Prompt:         prompt,
		MultipleChoice: &MultipleChoice{Options: options, Correct: correct},
	}
}

// NewMatching builds a matching question. The slices are copied.
func NewMatching(id int, prompt string, pairs []Pair, correctOrder []int) Question {
	return Question{
		ID:     id,
		Prompt: prompt,
		Matching: &Matching{
			Pairs:        append([]Pair{}, pairs...),
			CorrectOrder: append([]int{}, correctOrder...),
		},
	}
}
