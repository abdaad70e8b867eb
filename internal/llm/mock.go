package llm

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
)

// MockResponse is a canned reply for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// TextResponse builds a canned reply carrying raw model text, with a
// rough token count.
func TextResponse(text string) MockResponse {
	out := len(text) / 4
	return MockResponse{
		Content: json.RawMessage(text),
		Usage:   Usage{InputTokens: 100, OutputTokens: out, TotalTokens: 100 + out},
	}
}

// demoQuiz is served by the "mock" provider setting so the app can be
// tried without an API key. It is deliberately a little messy: fenced,
// with a trailing comma and a lettered options object.
const demoQuiz = "```json\n" + `[
  {"id": 1, "type": "multiple_choice", "hots": "Analyze",
   "question": "A clinic sees twice as many flu cases in the week after a school trip. Which explanation best fits the data?",
   "options": ["A. The trip caused the flu", "B. Close contact on the bus spread an existing infection", "C. Flu is seasonal", "D. Students reported more symptoms"],
   "answer": "B", "rationale": "Only B connects the timing and the contact pattern."},
  {"id": 2, "type": "matching", "hots": "Evaluate",
   "question": "Match each design goal of a bridge to the material property it depends on.",
   "pairs": [{"left": "Carry heavy trucks", "right": "Resist rust"}, {"left": "Survive sea air", "right": "High tensile strength"}],
   "answer": [1, 0], "rationale": "Load needs strength; sea air needs corrosion resistance."},
  {"id": 3, "type": "multiple_choice", "hots": "Create",
   "question": "A game studio wants players to learn fractions. Which mechanic teaches the idea most directly?",
   "options": {"A": "Collecting coins", "B": "Splitting a pizza between players", "C": "A timer", "D": "A leaderboard"},
   "answer": "b", "rationale": "Sharing a whole into parts is what a fraction is."},
]` + "\n```"

// MockProvider is a deterministic Provider for tests and the "mock"
// provider setting. Queued replies are returned in order; once the queue
// is empty the fallback is returned, or ErrProviderUnavailable without one.
type MockProvider struct {
	mu       sync.Mutex
	queue    []MockResponse
	fallback *MockResponse
	Calls    []Request
}

// NewMockProvider creates a MockProvider with queued replies.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// NewDemoProvider returns a MockProvider that always answers with a small
// built-in quiz.
func NewDemoProvider() *MockProvider {
	m := NewMockProvider()
	fb := TextResponse(demoQuiz)
	m.fallback = &fb
	return m
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)

	var next MockResponse
	switch {
	case len(m.queue) > 0:
		next, m.queue = m.queue[0], m.queue[1:]
	case m.fallback != nil:
		next = *m.fallback
	default:
		return nil, &ErrProviderUnavailable{}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    slices.Clone(next.Content),
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

func (m *MockProvider) Name() string { return "mock" }

// AddResponse queues another reply.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
