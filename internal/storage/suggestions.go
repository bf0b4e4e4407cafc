package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/calmcoin/penny/internal/common"
	"github.com/calmcoin/penny/internal/model"
)

// SaveSuggestion inserts a new suggestion and returns its id. New records
// default to pending with a fresh timestamp.
func (s *SQLiteStorage) SaveSuggestion(ctx context.Context, suggestion *model.Suggestion) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateSuggestion(suggestion); err != nil {
		return 0, err
	}

	if suggestion.Status == "" {
		suggestion.Status = model.StatusPending
	}
	if err := validateStatus(suggestion.Status); err != nil {
		return 0, err
	}
	if suggestion.CreatedAt.IsZero() {
		suggestion.CreatedAt = time.Now()
	}

	refs, err := json.Marshal(suggestion.DataReferences)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal data references: %w", err)
	}
	change, err := model.MarshalChange(suggestion.ProposedChange)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO suggestions
			(title, description, rationale, data_references, type, category,
			 proposed_change, confidence, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		suggestion.Title, suggestion.Description, suggestion.Rationale, string(refs),
		string(suggestion.Type), suggestion.Category, string(change),
		suggestion.Confidence, string(suggestion.Status), suggestion.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert suggestion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get suggestion ID: %w", err)
	}

	suggestion.ID = id
	return id, nil
}

// GetSuggestion returns one suggestion by id, or ErrNotFound.
func (s *SQLiteStorage) GetSuggestion(ctx context.Context, id int64) (*model.Suggestion, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, description, rationale, data_references, type, category,
		       proposed_change, confidence, status, created_at
		FROM suggestions
		WHERE id = ?`

	suggestion, err := scanSuggestion(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("suggestion %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return suggestion, nil
}

// GetSuggestions returns suggestions filtered by status; an empty status
// returns everything, newest first.
func (s *SQLiteStorage) GetSuggestions(ctx context.Context, status model.SuggestionStatus) ([]model.Suggestion, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, description, rationale, data_references, type, category,
		       proposed_change, confidence, status, created_at
		FROM suggestions`
	args := []any{}
	if status != "" {
		if err := validateStatus(status); err != nil {
			return nil, err
		}
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []model.Suggestion
	for rows.Next() {
		suggestion, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, *suggestion)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating suggestions: %w", err)
	}

	return suggestions, nil
}

// UpdateSuggestionStatus transitions a suggestion's status. Terminal
// suggestions cannot transition again.
func (s *SQLiteStorage) UpdateSuggestionStatus(ctx context.Context, id int64, status model.SuggestionStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateStatus(status); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE suggestions SET status = ? WHERE id = ? AND status = ?`,
		string(status), id, string(model.StatusPending))
	if err != nil {
		return fmt.Errorf("failed to update suggestion status: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count updated rows: %w", err)
	}
	if n == 0 {
		// Either the row is missing or it already reached a terminal status.
		if _, getErr := s.GetSuggestion(ctx, id); getErr != nil {
			return getErr
		}
		return fmt.Errorf("suggestion %d: %w", id, common.ErrAlreadyDecided)
	}

	return nil
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSuggestion(row rowScanner) (*model.Suggestion, error) {
	var suggestion model.Suggestion
	var refs, suggestionType, change, status string

	err := row.Scan(&suggestion.ID, &suggestion.Title, &suggestion.Description,
		&suggestion.Rationale, &refs, &suggestionType, &suggestion.Category,
		&change, &suggestion.Confidence, &status, &suggestion.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan suggestion: %w", err)
	}

	suggestion.Type = model.SuggestionType(suggestionType)
	suggestion.Status = model.SuggestionStatus(status)

	if err := json.Unmarshal([]byte(refs), &suggestion.DataReferences); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data references: %w", err)
	}

	proposedChange, err := model.UnmarshalChange(suggestion.Type, []byte(change))
	if err != nil {
		return nil, err
	}
	suggestion.ProposedChange = proposedChange

	return &suggestion, nil
}
