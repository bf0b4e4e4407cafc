// Package service defines the interfaces between the application core and
// its collaborators. Implementations live elsewhere; consumers depend only
// on these contracts.
package service

import (
	"context"

	"github.com/calmcoin/penny/internal/model"
)

// TransactionStore persists the transaction collection.
type TransactionStore interface {
	SaveTransaction(ctx context.Context, txn *model.Transaction) (int64, error)
	SaveTransactions(ctx context.Context, txns []model.Transaction) (int, error)
	GetTransactions(ctx context.Context) ([]model.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

// BudgetStore persists budgets. Implementations must recompute the derived
// percentage on every write.
type BudgetStore interface {
	SaveBudget(ctx context.Context, budget *model.Budget) (int64, error)
	UpdateBudget(ctx context.Context, budget *model.Budget) error
	GetBudgets(ctx context.Context) ([]model.Budget, error)
	GetBudgetByCategory(ctx context.Context, category string) (*model.Budget, error)
	DeleteBudget(ctx context.Context, id int64) error
}

// SuggestionStore persists suggestion records and their status transitions.
type SuggestionStore interface {
	SaveSuggestion(ctx context.Context, suggestion *model.Suggestion) (int64, error)
	GetSuggestion(ctx context.Context, id int64) (*model.Suggestion, error)
	GetSuggestions(ctx context.Context, status model.SuggestionStatus) ([]model.Suggestion, error)
	UpdateSuggestionStatus(ctx context.Context, id int64, status model.SuggestionStatus) error
}

// SubscriptionStore persists recurring subscriptions.
type SubscriptionStore interface {
	SaveSubscription(ctx context.Context, sub *model.Subscription) (int64, error)
	GetSubscriptions(ctx context.Context) ([]model.Subscription, error)
	SetSubscriptionActive(ctx context.Context, id int64, active bool) error
	DeleteSubscription(ctx context.Context, id int64) error
}

// ReportStore persists generated financial reports.
type ReportStore interface {
	SaveReport(ctx context.Context, report *model.Report) (int64, error)
	GetReports(ctx context.Context) ([]model.Report, error)
	DeleteReport(ctx context.Context, id int64) error
}

// WeightStore is the persistence bridge for learned preference weights. The
// record is an opaque JSON document; the learning package owns its shape.
// LoadWeights returns (nil, nil) when no record exists yet.
type WeightStore interface {
	LoadWeights(ctx context.Context) ([]byte, error)
	SaveWeights(ctx context.Context, data []byte) error
}

// Storage is the full persistence surface backing a session.
type Storage interface {
	TransactionStore
	BudgetStore
	SuggestionStore
	SubscriptionStore
	ReportStore
	WeightStore

	Migrate(ctx context.Context) error
	Close() error
}
