package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/calmcoin/penny/internal/common"
	"github.com/calmcoin/penny/internal/model"
)

// SaveSubscription inserts a new subscription and returns its id.
func (s *SQLiteStorage) SaveSubscription(ctx context.Context, sub *model.Subscription) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if sub == nil {
		return 0, fmt.Errorf("%w: subscription", ErrNilParameter)
	}
	if err := validateString(sub.Name, "subscription name"); err != nil {
		return 0, err
	}

	if sub.Frequency == "" {
		sub.Frequency = model.FrequencyMonthly
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO subscriptions (name, amount, frequency, category, renewal_date, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		sub.Name, sub.Amount, sub.Frequency, sub.Category, sub.RenewalDate, sub.Active, sub.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert subscription: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get subscription ID: %w", err)
	}

	sub.ID = id
	return id, nil
}

// GetSubscriptions returns all subscriptions ordered by name.
func (s *SQLiteStorage) GetSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, amount, frequency, category, renewal_date, active, created_at
		FROM subscriptions
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []model.Subscription
	for rows.Next() {
		var sub model.Subscription
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Amount, &sub.Frequency,
			&sub.Category, &sub.RenewalDate, &sub.Active, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	return subs, nil
}

// SetSubscriptionActive toggles a subscription without deleting its history.
func (s *SQLiteStorage) SetSubscriptionActive(ctx context.Context, id int64, active bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE subscriptions SET active = ? WHERE id = ?`, active, id)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("subscription %d: %w", id, common.ErrNotFound)
	}

	return nil
}

// DeleteSubscription removes a subscription by id.
func (s *SQLiteStorage) DeleteSubscription(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("subscription %d: %w", id, common.ErrNotFound)
	}

	return nil
}
