package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendQuizResult(ctx context.Context, data QuizResultEventData) error {
	_, err := r.seq.append(ctx,
		`INSERT INTO quiz_result_events (sequence, timestamp, session_id, subject, level,
			aspiration, questions, correct, score, duration_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UnixMilli(), data.SessionID, data.Subject, data.Level,
		data.Aspiration, data.Questions, data.Correct, data.Score, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save quiz result event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuizResults(ctx context.Context, opts QueryOpts) ([]QuizResultRecord, error) {
	where, args := opts.where()
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sequence, timestamp, session_id, subject, level, aspiration,
			questions, correct, score, duration_secs
		FROM quiz_result_events`+where+` ORDER BY sequence DESC`+opts.limit(),
		args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var records []QuizResultRecord
	for rows.Next() {
		var (
			rec QuizResultRecord
			ts  int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &rec.Subject,
			&rec.Level, &rec.Aspiration, &rec.Questions, &rec.Correct, &rec.Score,
			&rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) QuizStatsBySubject(ctx context.Context) ([]SubjectStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT subject, COUNT(*), AVG(score), MAX(score)
		FROM quiz_result_events GROUP BY subject ORDER BY subject`)
	if err != nil {
		return nil, fmt.Errorf("query quiz stats: %w", err)
	}
	defer rows.Close()

	var out []SubjectStats
	for rows.Next() {
		var s SubjectStats
		if err := rows.Scan(&s.Subject, &s.Quizzes, &s.AvgScore, &s.BestScore); err != nil {
			return nil, fmt.Errorf("scan quiz stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *eventRepo) ClearQuizResults(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quiz_result_events`)
	if err != nil {
		return 0, fmt.Errorf("clear quiz results: %w", err)
	}
	return res.RowsAffected()
}
