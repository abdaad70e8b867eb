package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/hotsquiz/internal/llm"
	"github.com/abhisek/hotsquiz/internal/quizgen"
	"github.com/abhisek/hotsquiz/internal/store"
)

const twoQuestions = `Here you go:
[
  {"id": 1, "type": "multiple_choice", "question": "A bridge sways in strong wind. What should the engineer check first?",
   "options": ["A. Paint", "B. Resonant frequency", "C. Lamp posts", "D. Toll booths"], "answer": "B",
   "rationale": "Wind can drive the structure at its natural frequency.", "cognitive_level": "Analyze"},
  {"id": 2, "type": "matching", "question": "Match each quantity to its unit.",
   "pairs": [{"left": "Force", "right": "Joule"}, {"left": "Energy", "right": "Newton"}],
   "answer": [1, 0], "cognitive_level": "Apply"}
]`

type resultRepo struct {
	store.EventRepo
	results []store.QuizResultEventData
}

func (r *resultRepo) AppendQuizResult(_ context.Context, data store.QuizResultEventData) error {
	r.results = append(r.results, data)
	return nil
}

func newTestServer(t *testing.T, responses ...llm.MockResponse) (*httptest.Server, *resultRepo) {
	t.Helper()
	repo := &resultRepo{}
	srv := New(Options{
		Generator: quizgen.New(llm.NewMockProvider(responses...), quizgen.DefaultConfig(), nil),
		Events:    repo,
		Defaults: quizgen.Params{
			Subject: quizgen.SubjectPhysics,
			Level:   quizgen.LevelUpperSecondary,
		},
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, repo
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func startQuiz(t *testing.T, ts *httptest.Server) map[string]any {
	t.Helper()
	resp, body := do(t, ts, http.MethodPost, "/quiz", `{"aspiration":"become an engineer","count":2}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	return body
}

func TestStartAndGet(t *testing.T) {
	ts, _ := newTestServer(t, llm.TextResponse(twoQuestions))

	body := startQuiz(t, ts)
	assert.Equal(t, "in_progress", body["state"])
	assert.Equal(t, "physics", body["subject"])
	assert.EqualValues(t, 2, body["total"])

	questions := body["questions"].([]any)
	require.Len(t, questions, 2)
	first := questions[0].(map[string]any)
	assert.Equal(t, "multiple_choice", first["kind"])
	assert.NotContains(t, first, "rationale")

	resp, got := do(t, ts, http.MethodGet, "/quiz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, body["id"], got["id"])
}

func TestFullRound(t *testing.T) {
	ts, repo := newTestServer(t, llm.TextResponse(twoQuestions))
	startQuiz(t, ts)

	resp, body := do(t, ts, http.MethodPut, "/quiz/answers/0", `{"value":"b"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.EqualValues(t, 1, body["answered"])

	resp, body = do(t, ts, http.MethodPost, "/quiz/goto", `{"index":5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["current"], "goto clamps to the last question")

	resp, body = do(t, ts, http.MethodPut, "/quiz/answers/1", `{"order":[0,1]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	resp, body = do(t, ts, http.MethodPost, "/quiz/submit", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.EqualValues(t, 50, body["score"])
	assert.EqualValues(t, 1, body["correct"])
	review := body["review"].([]any)
	require.Len(t, review, 2)
	assert.Equal(t, false, review[1].(map[string]any)["correct"])

	resp, body = do(t, ts, http.MethodGet, "/quiz/score", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 50, body["score"])

	require.Len(t, repo.results, 1)
	assert.Equal(t, "physics", repo.results[0].Subject)
	assert.Equal(t, 2, repo.results[0].Questions)

	resp, body = do(t, ts, http.MethodPut, "/quiz/answers/0", `{"letter":"A"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, body)
}

func TestSubmitWithUnanswered(t *testing.T) {
	ts, repo := newTestServer(t, llm.TextResponse(twoQuestions))
	startQuiz(t, ts)
	do(t, ts, http.MethodPut, "/quiz/answers/0", `{"letter":"C"}`)

	resp, body := do(t, ts, http.MethodPost, "/quiz/submit", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, []any{float64(2)}, body["unanswered"])
	assert.Empty(t, repo.results)

	resp, _ = do(t, ts, http.MethodGet, "/quiz/score", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAnswerRejected(t *testing.T) {
	ts, _ := newTestServer(t, llm.TextResponse(twoQuestions))
	startQuiz(t, ts)

	cases := map[string]struct {
		path, body string
		status     int
	}{
		"bad letter":      {"/quiz/answers/0", `{"letter":"E"}`, http.StatusBadRequest},
		"wrong shape":     {"/quiz/answers/0", `{"order":[0,1]}`, http.StatusBadRequest},
		"short order":     {"/quiz/answers/1", `{"value":"1"}`, http.StatusBadRequest},
		"bad index":       {"/quiz/answers/x", `{"letter":"A"}`, http.StatusBadRequest},
		"missing":         {"/quiz/answers/9", `{"value":"A"}`, http.StatusNotFound},
		"unknown field":   {"/quiz/answers/0", `{"pick":"A"}`, http.StatusBadRequest},
		"out of range":    {"/quiz/answers/9", `{"letter":"A"}`, http.StatusBadRequest},
		"unparsable text": {"/quiz/answers/0", `{"value":"Z"}`, http.StatusBadRequest},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp, _ := do(t, ts, http.MethodPut, tc.path, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}

	_, body := do(t, ts, http.MethodGet, "/quiz", "")
	assert.EqualValues(t, 0, body["answered"], "rejected answers leave slots unchanged")
}

func TestResetAndEmptyState(t *testing.T) {
	ts, _ := newTestServer(t, llm.TextResponse(twoQuestions))
	startQuiz(t, ts)

	resp, _ := do(t, ts, http.MethodDelete, "/quiz", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, body := do(t, ts, http.MethodGet, "/quiz", "")
	assert.Equal(t, "empty", body["state"])
	assert.Empty(t, body["questions"])

	resp, _ = do(t, ts, http.MethodPost, "/quiz/goto", `{"index":0}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp, _ = do(t, ts, http.MethodPost, "/quiz/submit", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestStartFailures(t *testing.T) {
	t.Run("invalid params", func(t *testing.T) {
		ts, _ := newTestServer(t)
		resp, _ := do(t, ts, http.MethodPost, "/quiz", `{"subject":"astrology","aspiration":"x"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
	t.Run("missing aspiration", func(t *testing.T) {
		ts, _ := newTestServer(t)
		resp, _ := do(t, ts, http.MethodPost, "/quiz", `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
	t.Run("no json array", func(t *testing.T) {
		ts, _ := newTestServer(t, llm.TextResponse("I cannot help with that."))
		resp, _ := do(t, ts, http.MethodPost, "/quiz", `{"aspiration":"x"}`)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

		_, body := do(t, ts, http.MethodGet, "/quiz", "")
		assert.Equal(t, "empty", body["state"], "failed generation creates no session")
	})
	t.Run("rate limited", func(t *testing.T) {
		ts, _ := newTestServer(t, llm.MockResponse{Err: &llm.ErrRateLimit{}})
		resp, _ := do(t, ts, http.MethodPost, "/quiz", `{"aspiration":"x"}`)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	})
	t.Run("no generator", func(t *testing.T) {
		ts := httptest.NewServer(New(Options{}).Handler())
		defer ts.Close()
		resp, _ := do(t, ts, http.MethodPost, "/quiz", `{"subject":"biology","level":"sma","aspiration":"x"}`)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestCORSPreflight(t *testing.T) {
	srv := New(Options{AllowedOrigins: []string{"http://localhost:3000"}})
	req := httptest.NewRequest(http.MethodOptions, "/quiz", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
