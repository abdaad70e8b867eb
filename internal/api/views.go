package api

import (
	"github.com/abhisek/hotsquiz/internal/quiz"
)

// questionView is a question as shown to the taker. The key is withheld
// until the quiz is submitted.
type questionView struct {
	ID             int         `json:"id"`
	Kind           quiz.Kind   `json:"kind"`
	Prompt         string      `json:"question"`
	CognitiveLevel string      `json:"cognitive_level,omitempty"`
	Options        []string    `json:"options,omitempty"`
	Lefts          []string    `json:"lefts,omitempty"`
	Rights         []string    `json:"rights,omitempty"`
	Answer         quiz.Answer `json:"answer"`
	Answered       bool        `json:"answered"`
}

type quizView struct {
	ID        string         `json:"id,omitempty"`
	State     string         `json:"state"`
	Subject   string         `json:"subject,omitempty"`
	Level     string         `json:"level,omitempty"`
	Current   int            `json:"current"`
	Answered  int            `json:"answered"`
	Total     int            `json:"total"`
	Questions []questionView `json:"questions"`
}

// snapshot renders the session. Callers hold s.mu.
func (s *Server) snapshot() quizView {
	sess := s.session
	v := quizView{
		ID:        sess.ID(),
		State:     sess.State().String(),
		Current:   sess.Current(),
		Total:     sess.Len(),
		Questions: []questionView{},
	}
	if sess.State() == quiz.StateEmpty {
		return v
	}
	v.Subject = string(s.params.Subject)
	v.Level = string(s.params.Level)
	v.Answered = sess.AnsweredCount()

	answers := sess.Answers()
	for i, q := range sess.Questions() {
		qv := questionView{
			ID:             q.ID,
			Kind:           q.Kind(),
			Prompt:         q.Prompt,
			CognitiveLevel: q.CognitiveLevel,
			Answer:         answers[i],
			Answered:       sess.IsAnswered(i),
		}
		switch q.Kind() {
		case quiz.KindMultipleChoice:
			qv.Options = q.MultipleChoice.Options[:]
		case quiz.KindMatching:
			qv.Rights = q.Matching.Rights()
			qv.Lefts = make([]string, len(q.Matching.Pairs))
			for j, p := range q.Matching.Pairs {
				qv.Lefts[j] = p.Left
			}
		}
		v.Questions = append(v.Questions, qv)
	}
	return v
}

type reviewView struct {
	ID        int         `json:"id"`
	Correct   bool        `json:"correct"`
	Answer    quiz.Answer `json:"answer"`
	Expected  quiz.Answer `json:"expected"`
	Rationale string      `json:"rationale,omitempty"`
}

type scoreView struct {
	ID           string       `json:"id"`
	Score        float64      `json:"score"`
	Correct      int          `json:"correct"`
	Total        int          `json:"total"`
	DurationSecs int          `json:"duration_secs"`
	Review       []reviewView `json:"review"`
}

// scoreReport renders a submitted session. Callers hold s.mu.
func (s *Server) scoreReport() scoreView {
	sess := s.session
	items := sess.Review()
	v := scoreView{
		ID:           sess.ID(),
		Score:        sess.Score(),
		Correct:      sess.CorrectCount(),
		Total:        len(items),
		DurationSecs: int(sess.Duration().Seconds()),
		Review:       make([]reviewView, len(items)),
	}
	for i, it := range items {
		v.Review[i] = reviewView{
			ID:        it.Question.ID,
			Correct:   it.Correct,
			Answer:    it.Answer,
			Expected:  expected(it.Question),
			Rationale: it.Question.Rationale,
		}
	}
	return v
}

func expected(q quiz.Question) quiz.Answer {
	switch q.Kind() {
	case quiz.KindMultipleChoice:
		return quiz.LetterAnswer(q.MultipleChoice.Correct)
	case quiz.KindMatching:
		return quiz.OrderAnswer(q.Matching.CorrectOrder)
	}
	return quiz.Answer{}
}
