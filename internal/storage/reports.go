package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/calmcoin/penny/internal/common"
	"github.com/calmcoin/penny/internal/model"
)

// SaveReport inserts a generated report and returns its id. The summary is
// stored as a JSON document.
func (s *SQLiteStorage) SaveReport(ctx context.Context, report *model.Report) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if report == nil {
		return 0, fmt.Errorf("%w: report", ErrNilParameter)
	}
	if err := validateString(report.Type, "report type"); err != nil {
		return 0, err
	}

	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	summary, err := json.Marshal(report.Summary)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal report summary: %w", err)
	}

	query := `
		INSERT INTO reports (type, period, summary, created_at)
		VALUES (?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		report.Type, report.Period, string(summary), report.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get report ID: %w", err)
	}

	report.ID = id
	return id, nil
}

// GetReports returns all reports, newest first.
func (s *SQLiteStorage) GetReports(ctx context.Context) ([]model.Report, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, type, period, summary, created_at
		FROM reports
		ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		var report model.Report
		var summary string
		if err := rows.Scan(&report.ID, &report.Type, &report.Period, &summary, &report.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		if err := json.Unmarshal([]byte(summary), &report.Summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report summary: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}

// DeleteReport removes a report by id.
func (s *SQLiteStorage) DeleteReport(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("report %d: %w", id, common.ErrNotFound)
	}

	return nil
}
