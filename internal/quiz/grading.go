package quiz

import (
	"slices"
	"strings"
)

// Strategy decides whether an answer to one question is correct.
type Strategy interface {
	Correct(q *Question, a Answer) bool
}

// strategies routes each variant to its grading rule.
var strategies = map[Kind]Strategy{
	KindMultipleChoice: letterStrategy{},
	KindMatching:       exactOrderStrategy{},
}

// Grade reports whether a is a correct answer to q.
func Grade(q *Question, a Answer) bool {
	s, ok := strategies[q.Kind()]
	if !ok {
		return false
	}
	return s.Correct(q, a)
}

// letterStrategy: the recorded letter equals the key, ignoring case.
type letterStrategy struct{}

func (letterStrategy) Correct(q *Question, a Answer) bool {
	if a.Letter == "" {
		return false
	}
	return strings.EqualFold(string(a.Letter), string(q.MultipleChoice.Correct))
}

// exactOrderStrategy: every row must match. No partial credit. A row whose
// key is unknown can never be matched, so the question is lost whatever the
// user picks, including leaving the row blank.
type exactOrderStrategy struct{}

func (exactOrderStrategy) Correct(q *Question, a Answer) bool {
	if a.Order == nil || slices.Contains(q.Matching.CorrectOrder, Unset) {
		return false
	}
	return slices.Equal(a.Order, q.Matching.CorrectOrder)
}

// percent returns 100*correct/total rounded half-up to two decimals.
// Integer arithmetic keeps the rounding exact.
func percent(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	// Basis points, rounded half-up.
	bp := (20000*correct + total) / (2 * total)
	return float64(bp) / 100
}
