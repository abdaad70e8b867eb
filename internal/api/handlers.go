package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/hotsquiz/internal/llm"
	"github.com/abhisek/hotsquiz/internal/quiz"
	"github.com/abhisek/hotsquiz/internal/quizgen"
	"github.com/abhisek/hotsquiz/internal/store"
)

type startRequest struct {
	Subject    string `json:"subject"`
	Level      string `json:"level"`
	Aspiration string `json:"aspiration"`
	Count      int    `json:"count"`
}

// paramsFor merges req over the server defaults and parses the enums.
func (s *Server) paramsFor(req startRequest) (quizgen.Params, error) {
	p := s.opts.Defaults
	if req.Subject != "" {
		sub, err := quizgen.ParseSubject(req.Subject)
		if err != nil {
			return p, err
		}
		p.Subject = sub
	}
	if req.Level != "" {
		lvl, err := quizgen.ParseLevel(req.Level)
		if err != nil {
			return p, err
		}
		p.Level = lvl
	}
	if req.Aspiration != "" {
		p.Aspiration = req.Aspiration
	}
	if req.Count != 0 {
		p.Count = req.Count
	}
	p = p.WithDefaults()
	return p, p.Validate()
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := s.paramsFor(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if s.opts.Generator == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("no LLM provider configured"))
		return
	}

	questions, err := s.opts.Generator.Generate(r.Context(), p)
	if err != nil {
		s.log.Warn("quiz generation failed", "subject", p.Subject, "error", err)
		writeError(w, generationStatus(err), err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Reset()
	if err := s.session.Start(questions); err != nil {
		writeError(w, http.StatusBadGateway, fmt.Errorf("start quiz: %w", err))
		return
	}
	s.params = p
	writeJSON(w, http.StatusCreated, s.snapshot())
}

// generationStatus maps a generation failure to a gateway status.
func generationStatus(err error) int {
	var (
		timeout   *llm.ErrTimeout
		rateLimit *llm.ErrRateLimit
	)
	switch {
	case errors.As(err, &timeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &rateLimit):
		return http.StatusTooManyRequests
	}
	return http.StatusBadGateway
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Reset()
	s.params = quizgen.Params{}
	w.WriteHeader(http.StatusNoContent)
}

type gotoRequest struct {
	Index int `json:"index"`
}

func (s *Server) handleGoTo(w http.ResponseWriter, r *http.Request) {
	var req gotoRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.State() == quiz.StateEmpty {
		writeError(w, http.StatusConflict, quiz.ErrNotStarted)
		return
	}
	s.session.GoTo(req.Index)
	writeJSON(w, http.StatusOK, s.snapshot())
}

// answerRequest accepts either the structured answer or a text value in
// the form the CLI uses: "B" or "1,0,-".
type answerRequest struct {
	quiz.Answer
	Value string `json:"value,omitempty"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid question index %q", chi.URLParam(r, "index")))
		return
	}
	var req answerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := req.Answer
	if req.Value != "" {
		q, ok := s.session.Question(index)
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Errorf("no question %d", index))
			return
		}
		a, err = parseValue(q, req.Value)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	if err := s.session.RecordAnswer(index, a); err != nil {
		writeError(w, sessionStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot())
}

func parseValue(q quiz.Question, v string) (quiz.Answer, error) {
	if q.Kind() == quiz.KindMatching {
		order, err := quiz.ParseOrder(v)
		if err != nil {
			return quiz.Answer{}, err
		}
		return quiz.OrderAnswer(order), nil
	}
	l, err := quiz.ParseLetter(v)
	if err != nil {
		return quiz.Answer{}, err
	}
	return quiz.LetterAnswer(l), nil
}

type submitErrorBody struct {
	Error string `json:"error"`

	// Unanswered lists 1-based question numbers.
	Unanswered []int `json:"unanswered"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.Submit(); err != nil {
		var se *quiz.SubmitError
		if errors.As(err, &se) {
			body := submitErrorBody{Error: err.Error(), Unanswered: make([]int, len(se.Unanswered))}
			for i, idx := range se.Unanswered {
				body.Unanswered[i] = idx + 1
			}
			writeJSON(w, http.StatusUnprocessableEntity, body)
			return
		}
		writeError(w, sessionStatus(err), err)
		return
	}

	s.saveResult(r.Context())
	writeJSON(w, http.StatusOK, s.scoreReport())
}

// saveResult records the submitted quiz. Failures are logged only.
func (s *Server) saveResult(ctx context.Context) {
	if s.opts.Events == nil {
		return
	}
	data := store.QuizResultEventData{
		SessionID:    s.session.ID(),
		Subject:      string(s.params.Subject),
		Level:        string(s.params.Level),
		Aspiration:   s.params.Aspiration,
		Questions:    s.session.Len(),
		Correct:      s.session.CorrectCount(),
		Score:        s.session.Score(),
		DurationSecs: int(s.session.Duration().Seconds()),
	}
	if err := s.opts.Events.AppendQuizResult(ctx, data); err != nil {
		s.log.Warn("failed to save quiz result", "session_id", data.SessionID, "error", err)
	}
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.State() != quiz.StateSubmitted {
		writeError(w, http.StatusConflict, errors.New("quiz not submitted"))
		return
	}
	writeJSON(w, http.StatusOK, s.scoreReport())
}

// sessionStatus maps session errors to HTTP statuses.
func sessionStatus(err error) int {
	var shape *quiz.AnswerShapeError
	switch {
	case errors.As(err, &shape):
		return http.StatusBadRequest
	case errors.Is(err, quiz.ErrNotStarted), errors.Is(err, quiz.ErrSubmitted):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// decodeBody reads a JSON body. An empty body leaves v unchanged.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("bad json: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
