package quizgen

import (
	"encoding/json"
	"testing"

	"github.com/abhisek/hotsquiz/internal/quiz"
)

func rawElems(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(items))
	for i, s := range items {
		out[i] = json.RawMessage(s)
	}
	return out
}

func TestBuildSet_PadsShortReply(t *testing.T) {
	qs := BuildSet(rawElems(
		`{"id":1,"question":"Q1","options":["a","b","c","d"],"answer":"B"}`,
		`{"id":2,"type":"matching","question":"Q2","pairs":[{"left":"l","right":"r"}],"answer":[0]}`,
	), 5)

	if len(qs) != 5 {
		t.Fatalf("got %d questions, want 5", len(qs))
	}
	for i, q := range qs[2:] {
		wantID := i + 3
		if q.ID != wantID {
			t.Errorf("placeholder id = %d, want %d", q.ID, wantID)
		}
		if q.MultipleChoice == nil || q.MultipleChoice.Correct != quiz.LetterA {
			t.Errorf("placeholder %d should be multiple choice with answer A", q.ID)
		}
	}
}

func TestBuildSet_PlaceholdersScoreOnlyWithA(t *testing.T) {
	qs := BuildSet(nil, 2)
	s := quiz.NewSession()
	if err := s.Start(qs); err != nil {
		t.Fatalf("start: %v", err)
	}
	_ = s.RecordAnswer(0, quiz.LetterAnswer(quiz.LetterA))
	_ = s.RecordAnswer(1, quiz.LetterAnswer(quiz.LetterC))
	if err := s.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.Score() != 50 {
		t.Errorf("score = %.2f, want 50", s.Score())
	}
}

func TestBuildSet_TruncatesLongReply(t *testing.T) {
	qs := BuildSet(rawElems(`{"question":"1"}`, `{"question":"2"}`, `{"question":"3"}`), 2)
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}
	if qs[1].Prompt != "2" {
		t.Errorf("second prompt = %q, want 2", qs[1].Prompt)
	}
}

func TestBuildSet_RenumbersDuplicateIDs(t *testing.T) {
	qs := BuildSet(rawElems(`{"id":2}`, `{}`, `{"id":2}`), 4)
	for i, q := range qs {
		if q.ID != i+1 {
			t.Errorf("question %d id = %d, want %d", i, q.ID, i+1)
		}
	}
}

func TestBuildSet_KeepsDistinctModelIDs(t *testing.T) {
	qs := BuildSet(rawElems(`{"id":10}`, `{"id":20}`), 2)
	if qs[0].ID != 10 || qs[1].ID != 20 {
		t.Errorf("ids = %d,%d, want 10,20", qs[0].ID, qs[1].ID)
	}
}

func TestBuildSet_NonPositiveCount(t *testing.T) {
	if qs := BuildSet(rawElems(`{}`), 0); qs != nil {
		t.Errorf("expected nil for zero count, got %d questions", len(qs))
	}
}
