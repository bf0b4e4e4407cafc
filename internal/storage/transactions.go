package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/calmcoin/penny/internal/common"
	"github.com/calmcoin/penny/internal/model"
)

// SaveTransaction inserts a single transaction and returns its new id.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, txn *model.Transaction) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransaction(txn); err != nil {
		return 0, err
	}

	if txn.Hash == "" {
		txn.Hash = txn.GenerateHash()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO transactions (name, amount, date, category, type, source, hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		txn.Name, txn.Amount, txn.Date, txn.Category, txn.Type, txn.Source, txn.Hash, txn.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, fmt.Errorf("transaction %q: %w", txn.Name, common.ErrDuplicateEntry)
		}
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction ID: %w", err)
	}

	txn.ID = id
	return id, nil
}

// SaveTransactions inserts a batch, skipping duplicates by hash. It returns
// how many rows were actually inserted.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, txns []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT OR IGNORE INTO transactions (name, amount, date, category, type, source, hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	inserted := 0
	now := time.Now()
	for i := range txns {
		if err := validateTransaction(&txns[i]); err != nil {
			slog.Warn("skipping invalid transaction", "index", i, "error", err)
			continue
		}
		if txns[i].Hash == "" {
			txns[i].Hash = txns[i].GenerateHash()
		}
		createdAt := txns[i].CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		result, err := tx.ExecContext(ctx, query,
			txns[i].Name, txns[i].Amount, txns[i].Date, txns[i].Category,
			txns[i].Type, txns[i].Source, txns[i].Hash, createdAt)
		if err != nil {
			return 0, fmt.Errorf("failed to insert transaction %d: %w", i, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to count inserted rows: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transactions: %w", err)
	}

	slog.Debug("saved transactions", "total", len(txns), "inserted", inserted)
	return inserted, nil
}

// GetTransactions returns all transactions, oldest row first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, amount, date, category, type, source, hash, created_at
		FROM transactions
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		if err := rows.Scan(&txn.ID, &txn.Name, &txn.Amount, &txn.Date,
			&txn.Category, &txn.Type, &txn.Source, &txn.Hash, &txn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txns, nil
}

// DeleteTransaction removes a transaction by id.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
	}

	return nil
}
