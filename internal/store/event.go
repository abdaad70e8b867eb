package store

import (
	"context"
	"database/sql"
	"fmt"
)

// sequencer stamps every event, whatever its table, with one global
// sequence number so a quiz result can be ordered against the LLM calls
// that produced it.
type sequencer struct {
	db *sql.DB
}

func newSequencer(ctx context.Context, db *sql.DB) (*sequencer, error) {
	if _, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequencer{db: db}, nil
}

// append allocates the next sequence number and runs insert with it as
// the first argument, in one transaction. A failed insert consumes no
// number.
func (s *sequencer) append(ctx context.Context, insert string, args ...any) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var seq int64
	err = tx.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insert, append([]any{seq}, args...)...); err != nil {
		return 0, err
	}
	return seq, tx.Commit()
}
