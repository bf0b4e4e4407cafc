package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/calmcoin/penny/internal/common"
	"github.com/calmcoin/penny/internal/model"
)

// SaveBudget inserts a new budget. The derived percentage is recomputed
// before the row is written, never trusted from the caller.
func (s *SQLiteStorage) SaveBudget(ctx context.Context, budget *model.Budget) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateBudget(budget); err != nil {
		return 0, err
	}

	budget.RecomputePercentage()

	query := `
		INSERT INTO budgets (category, budget, spent, percentage)
		VALUES (?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		budget.Category, budget.Budget, budget.Spent, budget.Percentage)
	if err != nil {
		return 0, fmt.Errorf("failed to insert budget: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get budget ID: %w", err)
	}

	budget.ID = id
	return id, nil
}

// UpdateBudget rewrites an existing budget row, recomputing the percentage.
func (s *SQLiteStorage) UpdateBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}

	budget.RecomputePercentage()

	query := `
		UPDATE budgets
		SET category = ?, budget = ?, spent = ?, percentage = ?
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		budget.Category, budget.Budget, budget.Spent, budget.Percentage, budget.ID)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("budget %d: %w", budget.ID, common.ErrNotFound)
	}

	return nil
}

// GetBudgets returns all budgets ordered by category.
func (s *SQLiteStorage) GetBudgets(ctx context.Context) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, category, budget, spent, percentage
		FROM budgets
		ORDER BY category`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []model.Budget
	for rows.Next() {
		var b model.Budget
		if err := rows.Scan(&b.ID, &b.Category, &b.Budget, &b.Spent, &b.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return budgets, nil
}

// GetBudgetByCategory returns the first budget matching a category, or
// ErrNotFound when none exists.
func (s *SQLiteStorage) GetBudgetByCategory(ctx context.Context, category string) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(category, "category"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, category, budget, spent, percentage
		FROM budgets
		WHERE category = ?
		ORDER BY id
		LIMIT 1`

	var b model.Budget
	err := s.db.QueryRowContext(ctx, query, category).Scan(
		&b.ID, &b.Category, &b.Budget, &b.Spent, &b.Percentage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("budget for category %q: %w", category, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}

	return &b, nil
}

// DeleteBudget removes a budget by id.
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("budget %d: %w", id, common.ErrNotFound)
	}

	return nil
}
