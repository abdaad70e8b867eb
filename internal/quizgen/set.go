package quizgen

import (
	"encoding/json"

	"github.com/abhisek/hotsquiz/internal/quiz"
)

// BuildSet normalizes every element, keeps at most requested questions and
// pads a short set with placeholder multiple-choice questions whose answer
// is A. The result always has exactly requested questions with unique ids.
func (n *Normalizer) BuildSet(elems []json.RawMessage, requested int) []quiz.Question {
	if requested <= 0 {
		return nil
	}

	qs := make([]quiz.Question, 0, requested)
	for i, raw := range elems {
		if len(qs) == requested {
			break
		}
		qs = append(qs, n.Normalize(raw, i))
	}
	produced := len(qs)

	for len(qs) < requested {
		qs = append(qs, Placeholder(len(qs)+1))
	}

	if !uniqueIDs(qs) {
		for i := range qs {
			qs[i].ID = i + 1
		}
		if n.Log != nil {
			n.Log.Warn("duplicate question ids renumbered", "questions", len(qs))
		}
	}

	if n.Log != nil && (produced < requested || len(elems) > requested) {
		n.Log.Info("question set adjusted", "requested", requested,
			"received", len(elems), "padded", requested-produced)
	}
	return qs
}

// BuildSet runs the default normalizer over elems.
func BuildSet(elems []json.RawMessage, requested int) []quiz.Question {
	return defaultNormalizer.BuildSet(elems, requested)
}

// Placeholder returns the filler question used to pad a short set.
func Placeholder(id int) quiz.Question {
	return quiz.NewMultipleChoice(id, "", [4]string{"A. ", "B. ", "C. ", "D. "}, quiz.LetterA)
}

func uniqueIDs(qs []quiz.Question) bool {
	seen := make(map[int]bool, len(qs))
	for _, q := range qs {
		if seen[q.ID] {
			return false
		}
		seen[q.ID] = true
	}
	return true
}
