package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// sequence hands out the event order shared by every event table. Per-table
// ids cannot order quiz, answer and LLM events against each other, so each
// append takes the next value from the single global_sequence row.
type sequence struct {
	mu sync.Mutex
	db *sql.DB
}

func (s *sequence) next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}

// eventRepo implements EventRepo on top of the SQL builder and the global
// sequence.
type eventRepo struct {
	db  *sql.DB
	seq *sequence
}

// insert writes one event row to table, prefixed with its sequence number
// and a UTC timestamp.
func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values ...any) error {
	n, err := r.seq.next(ctx)
	if err != nil {
		return err
	}

	query, args := builder().
		Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, columns...)...).
		Values(append([]any{n, time.Now().UTC()}, values...)...).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}
