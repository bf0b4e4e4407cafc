package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LoadWeights fetches the learned preference record. A missing record is not
// an error: (nil, nil) means the caller should start from neutral defaults.
func (s *SQLiteStorage) LoadWeights(ctx context.Context) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM learning_state WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load learning state: %w", err)
	}

	return []byte(data), nil
}

// SaveWeights upserts the single learned preference record.
func (s *SQLiteStorage) SaveWeights(ctx context.Context, data []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: weights data", ErrNilParameter)
	}

	query := `
		INSERT INTO learning_state (id, data, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, string(data), time.Now()); err != nil {
		return fmt.Errorf("failed to save learning state: %w", err)
	}

	return nil
}
