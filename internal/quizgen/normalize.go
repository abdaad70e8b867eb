package quizgen

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/abhisek/hotsquiz/internal/logger"
	"github.com/abhisek/hotsquiz/internal/quiz"
	"github.com/tidwall/gjson"
)

// Normalizer turns loosely shaped question objects into quiz.Questions.
// It never fails: missing or mistyped fields take defaults.
type Normalizer struct {
	// Policy resolves an invalid multiple-choice answer. Nil means
	// MarkerFallback with the default markers.
	Policy AnswerFallbackPolicy

	// Log receives schema drift reports. Nil disables them.
	Log *logger.Logger
}

var defaultNormalizer = &Normalizer{}

// defaultCognitiveLevel tags questions that arrive without a level.
const defaultCognitiveLevel = "Analyze"

// Normalize maps one decoded element onto a question using the default
// policy. ordinal is the element's zero-based position in the reply.
func Normalize(raw json.RawMessage, ordinal int) quiz.Question {
	return defaultNormalizer.Normalize(raw, ordinal)
}

// Normalize maps one decoded element onto a question.
func (n *Normalizer) Normalize(raw json.RawMessage, ordinal int) quiz.Question {
	n.reportDrift(raw, ordinal)

	obj := gjson.ParseBytes(raw)
	if !obj.IsObject() {
		obj = gjson.Result{}
	}

	q := quiz.Question{
		ID:             normalizeID(obj.Get("id"), ordinal),
		Prompt:         firstString(obj, "question", "prompt", "question_text"),
		Rationale:      firstString(obj, "rationale", "explanation"),
		CognitiveLevel: firstString(obj, "cognitive_level", "hots", "hots_level", "level"),
	}
	if q.CognitiveLevel == "" {
		q.CognitiveLevel = defaultCognitiveLevel
	}

	if isMatching(obj.Get("type")) {
		q.Matching = normalizeMatching(obj)
	} else {
		q.MultipleChoice = n.normalizeMultipleChoice(obj)
	}
	return q
}

func (n *Normalizer) policy() AnswerFallbackPolicy {
	if n.Policy == nil {
		return MarkerFallback{}
	}
	return n.Policy
}

func (n *Normalizer) reportDrift(raw json.RawMessage, ordinal int) {
	if n.Log == nil {
		return
	}
	if err := checkQuestionShape(raw); err != nil {
		n.Log.Warn("question schema drift", "ordinal", ordinal, "error", err)
	}
}

func normalizeID(v gjson.Result, ordinal int) int {
	if v.Exists() {
		if id := int(v.Int()); id > 0 {
			return id
		}
	}
	return ordinal + 1
}

func isMatching(v gjson.Result) bool {
	return v.Type == gjson.String && strings.EqualFold(strings.TrimSpace(v.Str), string(quiz.KindMatching))
}

func firstString(obj gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := obj.Get(k); v.Type == gjson.String {
			return strings.TrimSpace(v.Str)
		}
	}
	return ""
}

func (n *Normalizer) normalizeMultipleChoice(obj gjson.Result) *quiz.MultipleChoice {
	options := normalizeOptions(obj.Get("options"))

	mc := &quiz.MultipleChoice{Options: options}
	if l, ok := parseAnswerLetter(obj.Get("answer")); ok {
		mc.Correct = l
	} else if l := n.policy().Resolve(options); l.Valid() {
		mc.Correct = l
	} else {
		mc.Correct = quiz.LetterA
	}
	return mc
}

// normalizeOptions produces the four labelled options from an array, a
// letter-keyed object or anything else.
func normalizeOptions(v gjson.Result) [4]string {
	var texts [4]string
	var have [4]bool

	switch {
	case v.IsArray():
		for i, item := range v.Array() {
			if i == len(texts) {
				break
			}
			texts[i] = strings.TrimSpace(item.String())
			have[i] = true
		}
	case v.IsObject():
		v.ForEach(func(key, value gjson.Result) bool {
			l, err := quiz.ParseLetter(key.String())
			if err == nil && !have[l.Index()] {
				texts[l.Index()] = strings.TrimSpace(value.String())
				have[l.Index()] = true
			}
			return true
		})
	}

	var out [4]string
	for i, l := range quiz.Letters {
		out[i] = labelOption(l, texts[i], have[i])
	}
	return out
}

// labelOption prefixes text with "L. " unless it already starts with "L."
// in either case.
func labelOption(l quiz.Letter, text string, have bool) string {
	prefix := string(l) + "."
	if have && strings.HasPrefix(strings.ToUpper(text), prefix) {
		return text
	}
	if text == "" {
		return prefix + " "
	}
	return prefix + " " + text
}

// parseAnswerLetter accepts a lone letter in either case. Anything longer,
// such as "B. text", goes to the fallback policy.
func parseAnswerLetter(v gjson.Result) (quiz.Letter, bool) {
	if v.Type != gjson.String {
		return "", false
	}
	l := quiz.Letter(strings.ToUpper(strings.TrimSpace(v.Str)))
	return l, l.Valid()
}

func normalizeMatching(obj gjson.Result) *quiz.Matching {
	m := &quiz.Matching{Pairs: []quiz.Pair{}}

	if pairs := obj.Get("pairs"); pairs.IsArray() {
		for _, p := range pairs.Array() {
			m.Pairs = append(m.Pairs, normalizePair(p))
		}
	}

	order := obj.Get("answer")
	if !order.IsArray() {
		order = obj.Get("correct_order")
	}

	n := len(m.Pairs)
	m.CorrectOrder = make([]int, n)
	for i := range m.CorrectOrder {
		m.CorrectOrder[i] = quiz.Unset
	}
	if order.IsArray() {
		for i, v := range order.Array() {
			if i == n {
				break
			}
			m.CorrectOrder[i] = orderIndex(v, n)
		}
	}
	return m
}

func normalizePair(p gjson.Result) quiz.Pair {
	switch {
	case p.IsObject():
		return quiz.Pair{
			Left:  firstString(p, "left", "premise", "item"),
			Right: firstString(p, "right", "match", "response"),
		}
	case p.IsArray():
		items := p.Array()
		var pair quiz.Pair
		if len(items) > 0 {
			pair.Left = strings.TrimSpace(items[0].String())
		}
		if len(items) > 1 {
			pair.Right = strings.TrimSpace(items[1].String())
		}
		return pair
	}
	return quiz.Pair{}
}

// orderIndex reads one correct-order entry. Non-numeric and out-of-range
// values become Unset.
func orderIndex(v gjson.Result, n int) int {
	i := quiz.Unset
	switch v.Type {
	case gjson.Number:
		i = int(v.Int())
	case gjson.String:
		if x, err := strconv.Atoi(strings.TrimSpace(v.Str)); err == nil {
			i = x
		}
	}
	if i < 0 || i >= n {
		return quiz.Unset
	}
	return i
}
