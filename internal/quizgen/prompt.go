package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an experienced teacher who writes higher-order thinking (HOTS) questions.

Rules:
- Every question must require analysis, evaluation or creation, not recall.
- Frame each question in a realistic scenario connected to the student's aspiration.
- Mix two kinds of questions: "multiple_choice" and "matching".
- Reply with a single JSON array and nothing else.`

// BuildPrompt renders the user message for a generation request.
func BuildPrompt(p Params) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", p.Subject.DisplayName())
	fmt.Fprintf(&b, "Level: %s\n", p.Level.DisplayName())
	fmt.Fprintf(&b, "Student aspiration: %s\n", p.Aspiration)
	fmt.Fprintf(&b, "Number of questions: %d\n", p.Count)

	b.WriteString(`
Write exactly that many questions as a JSON array. Each element is an object:

For multiple choice:
{"id": 1, "type": "multiple_choice", "question": "...",
 "options": ["A. ...", "B. ...", "C. ...", "D. ..."], "answer": "B",
 "rationale": "why B is correct", "cognitive_level": "Analyze"}

For matching:
{"id": 2, "type": "matching", "question": "...",
 "pairs": [{"left": "...", "right": "..."}, {"left": "...", "right": "..."}],
 "answer": [1, 0],
 "rationale": "...", "cognitive_level": "Evaluate"}

In a matching question the right-hand items are shown in the order given.
"answer"[i] is the zero-based index of the right-hand item that belongs to pairs[i].left.
"cognitive_level" is one of Analyze, Evaluate or Create.`)

	return b.String()
}
