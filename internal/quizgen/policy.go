package quizgen

import (
	"strings"

	"github.com/abhisek/hotsquiz/internal/quiz"
)

// AnswerFallbackPolicy picks the correct letter when the model's answer
// is not one of A-D. Options are already normalized.
type AnswerFallbackPolicy interface {
	Resolve(options [4]string) quiz.Letter
}

// DefaultMarkers are the correctness annotations MarkerFallback looks for.
var DefaultMarkers = []string{
	"(correct)",
	"[correct]",
	"*correct*",
	"(answer)",
	"(benar)",
	"[benar]",
	"✓",
	"✔",
}

// MarkerFallback picks the first option, in A-D order, whose text holds a
// correctness marker, matched case-insensitively. With no marker it picks A.
type MarkerFallback struct {
	// Markers overrides DefaultMarkers when non-empty.
	Markers []string
}

func (m MarkerFallback) Resolve(options [4]string) quiz.Letter {
	markers := m.Markers
	if len(markers) == 0 {
		markers = DefaultMarkers
	}
	for i, opt := range options {
		lower := strings.ToLower(opt)
		for _, mk := range markers {
			if strings.Contains(lower, strings.ToLower(mk)) {
				return quiz.Letters[i]
			}
		}
	}
	return quiz.LetterA
}

// FixedFallback always picks the same letter.
type FixedFallback quiz.Letter

func (f FixedFallback) Resolve([4]string) quiz.Letter {
	return quiz.Letter(f)
}
