package quiz

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Answer is the user's response to one question. The zero value means
// unanswered. Letter is used for multiple-choice questions and Order for
// matching questions; Order[i] is the chosen right-hand index for row i,
// or Unset.
type Answer struct {
	Letter Letter `json:"letter,omitempty"`
	Order  []int  `json:"order,omitempty"`
}

// LetterAnswer returns an answer selecting option l.
func LetterAnswer(l Letter) Answer {
	return Answer{Letter: l}
}

// OrderAnswer returns a matching answer. The slice is copied.
func OrderAnswer(order []int) Answer {
	if order == nil {
		order = []int{}
	}
	return Answer{Order: slices.Clone(order)}
}

// IsZero reports whether the answer is empty.
func (a Answer) IsZero() bool {
	return a.Letter == "" && a.Order == nil
}

func (a Answer) clone() Answer {
	if a.Order != nil {
		a.Order = slices.Clone(a.Order)
	}
	return a
}

// ParseLetter reads an option label such as "b", "B", "B." or "b)".
func ParseLetter(s string) (Letter, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".)")
	l := Letter(strings.ToUpper(s))
	if !l.Valid() {
		return "", fmt.Errorf("invalid option %q: want one of A, B, C, D", s)
	}
	return l, nil
}

// ParseOrder reads a comma separated matching answer. Each entry is a
// right-hand index; "-", "_" or an empty entry marks the row as unset.
// "1,0,-" yields [1 0 Unset].
func ParseOrder(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}

	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "-" || p == "_" {
			out[i] = Unset
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid index %q at position %d", p, i)
		}
		out[i] = n
	}
	return out, nil
}

// FormatOrder renders an order in the form ParseOrder accepts.
func FormatOrder(order []int) string {
	parts := make([]string, len(order))
	for i, v := range order {
		if v == Unset {
			parts[i] = "-"
			continue
		}
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// checkShape validates a against q's variant and returns the canonical form.
func checkShape(q *Question, a Answer) (Answer, string) {
	switch q.Kind() {
	case KindMultipleChoice:
		if a.Order != nil {
			return Answer{}, "multiple-choice answer must be a letter"
		}
		l := Letter(strings.ToUpper(strings.TrimSpace(string(a.Letter))))
		if !l.Valid() {
			return Answer{}, fmt.Sprintf("invalid letter %q", a.Letter)
		}
		return Answer{Letter: l}, ""

	case KindMatching:
		if a.Letter != "" {
			return Answer{}, "matching answer must be an ordered list of indices"
		}
		n := len(q.Matching.Pairs)
		if a.Order == nil || len(a.Order) != n {
			return Answer{}, fmt.Sprintf("matching answer has %d entries, want %d", len(a.Order), n)
		}
		for i, v := range a.Order {
			if v != Unset && (v < 0 || v >= n) {
				return Answer{}, fmt.Sprintf("entry %d: index %d out of range", i, v)
			}
		}
		return OrderAnswer(a.Order), ""
	}
	return Answer{}, "unknown question kind"
}

// answered is the per-variant "has a usable answer" predicate. Unset
// matching rows still count as answered.
func answered(q *Question, a Answer) bool {
	switch q.Kind() {
	case KindMultipleChoice:
		return a.Letter.Valid()
	case KindMatching:
		return a.Order != nil && len(a.Order) == len(q.Matching.Pairs)
	}
	return false
}
