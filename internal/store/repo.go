package store

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// Purpose filters LLM events by purpose label. Other queries ignore it.
	Purpose string
}

// where renders the filters as a SQL WHERE clause with positional args.
func (o QueryOpts) where(extra ...string) (string, []any) {
	conds := append([]string(nil), extra...)
	var args []any
	if o.After > 0 {
		conds = append(conds, "sequence > ?")
		args = append(args, o.After)
	}
	if o.Before > 0 {
		conds = append(conds, "sequence < ?")
		args = append(args, o.Before)
	}
	if !o.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, o.From.UnixMilli())
	}
	if !o.To.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, o.To.UnixMilli())
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (o QueryOpts) limit() string {
	if o.Limit > 0 {
		return " LIMIT " + strconv.Itoa(o.Limit)
	}
	return ""
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// QuizResultEventData captures a submitted quiz.
type QuizResultEventData struct {
	SessionID    string
	Subject      string
	Level        string
	Aspiration   string
	Questions    int
	Correct      int
	Score        float64
	DurationSecs int
}

// QuizResultRecord is a stored quiz result.
type QuizResultRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	QuizResultEventData
}

// SubjectStats aggregates quiz results for one subject.
type SubjectStats struct {
	Subject   string
	Quizzes   int
	AvgScore  float64
	BestScore float64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one LLM event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendQuizResult records a submitted quiz.
	AppendQuizResult(ctx context.Context, data QuizResultEventData) error

	// QueryQuizResults returns quiz results, newest first.
	QueryQuizResults(ctx context.Context, opts QueryOpts) ([]QuizResultRecord, error)

	// QuizStatsBySubject aggregates quiz results per subject.
	QuizStatsBySubject(ctx context.Context) ([]SubjectStats, error)

	// ClearQuizResults deletes all quiz results and returns how many were removed.
	ClearQuizResults(ctx context.Context) (int64, error)
}

// eventRepo implements EventRepo over plain SQL and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequencer
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
