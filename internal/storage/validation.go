package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/calmcoin/penny/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidBudget      = errors.New("invalid budget")
	ErrInvalidSuggestion  = errors.New("invalid suggestion")
	ErrInvalidStatus      = errors.New("invalid suggestion status")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if strings.TrimSpace(txn.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidTransaction)
	}
	if strings.TrimSpace(txn.Date) == "" {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if txn.Type != model.TypeIncome && txn.Type != model.TypeExpense {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, txn.Type)
	}
	return nil
}

// validateBudget validates a single budget.
func validateBudget(budget *model.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: budget", ErrNilParameter)
	}
	if strings.TrimSpace(budget.Category) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidBudget)
	}
	if budget.Budget < 0 {
		return fmt.Errorf("%w: negative ceiling", ErrInvalidBudget)
	}
	return nil
}

// validateSuggestion validates a suggestion before persisting it.
func validateSuggestion(suggestion *model.Suggestion) error {
	if suggestion == nil {
		return fmt.Errorf("%w: suggestion", ErrNilParameter)
	}
	if strings.TrimSpace(suggestion.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidSuggestion)
	}
	if !suggestion.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidSuggestion, suggestion.Type)
	}
	return nil
}

// validateStatus ensures a status is one of the known lifecycle values.
func validateStatus(status model.SuggestionStatus) error {
	switch status {
	case model.StatusPending, model.StatusAccepted, model.StatusRejected:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
}
