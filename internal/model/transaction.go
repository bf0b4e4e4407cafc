// Package model defines the core domain types shared across the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction direction tags.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction represents a single recorded transaction. Amounts are signed:
// negative for expenses, positive for income. Dates are informal display
// tokens ("Today", "Yesterday", "Jan 28") resolved by the dates package.
type Transaction struct {
	CreatedAt time.Time
	Name      string
	Date      string
	Category  string
	Type      string
	Source    string
	Hash      string
	ID        int64
	Amount    float64
}

// IsExpense reports whether the transaction is an expense.
func (t *Transaction) IsExpense() bool {
	return t.Amount < 0
}

// GenerateHash creates a stable hash for import deduplication.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s", t.Date, t.Amount, t.Name, t.Source)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// DirectionType derives the type tag from the amount sign.
func DirectionType(amount float64) string {
	if amount < 0 {
		return TypeExpense
	}
	return TypeIncome
}
