// Package session wires storage, the learning engine, and the prediction
// helpers into the operations the CLI exposes. One Session corresponds to one
// invocation of the program.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/calmcoin/penny/internal/common"
	"github.com/calmcoin/penny/internal/health"
	"github.com/calmcoin/penny/internal/learning"
	"github.com/calmcoin/penny/internal/model"
	"github.com/calmcoin/penny/internal/predict"
	"github.com/calmcoin/penny/internal/service"
)

// Session coordinates the storage layer and the learning engine.
type Session struct {
	store  service.Storage
	engine *learning.Engine
	now    func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithEngineOptions forwards options to the learning engine.
func WithEngineOptions(opts ...learning.Option) Option {
	return func(s *Session) { s.engine = learning.NewEngine(s.store, opts...) }
}

// New creates a session backed by store and hydrates the learning engine.
func New(ctx context.Context, store service.Storage, opts ...Option) (*Session, error) {
	s := &Session{
		store:  store,
		engine: learning.NewEngine(store),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.engine.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load learning state: %w", err)
	}

	return s, nil
}

// Store exposes the underlying storage for direct entity operations.
func (s *Session) Store() service.Storage {
	return s.store
}

// GenerateSuggestion synthesizes a suggestion from the learned weights and
// persists it as pending.
func (s *Session) GenerateSuggestion(ctx context.Context) (*model.Suggestion, error) {
	suggestion := s.engine.Generate(ctx)

	id, err := s.store.SaveSuggestion(ctx, &suggestion)
	if err != nil {
		return nil, fmt.Errorf("failed to persist suggestion: %w", err)
	}
	suggestion.ID = id

	slog.Debug("generated suggestion",
		"id", id,
		"type", suggestion.Type,
		"category", suggestion.Category,
		"confidence", suggestion.Confidence)
	return &suggestion, nil
}

// RecordDecision applies the user's verdict to a stored suggestion: weight
// deltas via the engine, then the status flip in storage.
func (s *Session) RecordDecision(ctx context.Context, id int64, decision learning.Decision) (*model.Suggestion, error) {
	suggestion, err := s.store.GetSuggestion(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.engine.RecordDecision(ctx, suggestion, decision); err != nil {
		return nil, err
	}

	if err := s.store.UpdateSuggestionStatus(ctx, id, suggestion.Status); err != nil {
		return nil, err
	}

	return suggestion, nil
}

// ApplyBudgetAdjustment accepts a budget_adjustment suggestion and applies
// its proposed ceiling to the matching budget in one step. The decision is
// recorded through the engine like any other acceptance.
func (s *Session) ApplyBudgetAdjustment(ctx context.Context, id int64) (*model.Budget, error) {
	suggestion, err := s.store.GetSuggestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if suggestion.Terminal() {
		return nil, fmt.Errorf("%w: suggestion %d is %s", common.ErrAlreadyDecided, id, suggestion.Status)
	}
	if suggestion.Type != model.SuggestionBudgetAdjustment {
		return nil, fmt.Errorf("%w: suggestion %d is %s", common.ErrNotAdjustment, id, suggestion.Type)
	}

	change, ok := suggestion.ProposedChange.(model.BudgetAdjustmentChange)
	if !ok {
		return nil, fmt.Errorf("%w: suggestion %d has malformed change payload", common.ErrNotAdjustment, id)
	}

	budget, err := s.store.GetBudgetByCategory(ctx, change.Category)
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("%w: no budget for category %q", common.ErrNoMatchingBudget, change.Category)
	}
	if err != nil {
		return nil, err
	}

	budget.Budget = change.NewAmount
	if err := s.store.UpdateBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to apply budget adjustment: %w", err)
	}

	if err := s.engine.RecordDecision(ctx, suggestion, learning.DecisionAccepted); err != nil {
		return nil, err
	}
	if err := s.store.UpdateSuggestionStatus(ctx, id, suggestion.Status); err != nil {
		return nil, err
	}

	slog.Info("applied budget adjustment",
		"suggestion", id,
		"category", budget.Category,
		"budget", budget.Budget,
		"percentage", budget.Percentage)
	return budget, nil
}

// Insights reports what the learning engine has inferred so far.
func (s *Session) Insights() learning.Insights {
	return s.engine.Insights()
}

// ResetLearning restores neutral weights and persists the cleared state.
func (s *Session) ResetLearning(ctx context.Context) error {
	return s.engine.Reset(ctx)
}

// PredictMonthly buckets stored transactions by month and projects the next
// month's spending.
func (s *Session) PredictMonthly(ctx context.Context) (predict.MonthlyPrediction, error) {
	txns, err := s.store.GetTransactions(ctx)
	if err != nil {
		return predict.MonthlyPrediction{}, err
	}
	return predict.MonthlySpending(txns, s.now()), nil
}

// PredictCategory projects next-month spending for a single category.
func (s *Session) PredictCategory(ctx context.Context, category string) (predict.CategoryPrediction, bool, error) {
	txns, err := s.store.GetTransactions(ctx)
	if err != nil {
		return predict.CategoryPrediction{}, false, err
	}
	prediction, ok := predict.CategorySpending(txns, category, s.now())
	return prediction, ok, nil
}

// WeeklyPattern detects the dominant spending day of the week.
func (s *Session) WeeklyPattern(ctx context.Context) (predict.WeeklyPattern, error) {
	txns, err := s.store.GetTransactions(ctx)
	if err != nil {
		return predict.WeeklyPattern{}, err
	}
	return predict.DetectWeeklyPattern(txns, s.now()), nil
}

// SpendingPatterns surfaces per-category trends over the recent window.
func (s *Session) SpendingPatterns(ctx context.Context) ([]predict.SpendingPattern, error) {
	txns, err := s.store.GetTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return predict.DetectSpendingPatterns(txns, s.now()), nil
}

// HealthScore computes the composite financial health score.
func (s *Session) HealthScore(ctx context.Context) (health.Score, error) {
	txns, err := s.store.GetTransactions(ctx)
	if err != nil {
		return health.Score{}, err
	}
	budgets, err := s.store.GetBudgets(ctx)
	if err != nil {
		return health.Score{}, err
	}
	return health.Calculate(txns, budgets, s.now()), nil
}

// SubscriptionSummary aggregates active subscription costs and upcoming
// renewals.
func (s *Session) SubscriptionSummary(ctx context.Context) (model.SubscriptionSummary, error) {
	subs, err := s.store.GetSubscriptions(ctx)
	if err != nil {
		return model.SubscriptionSummary{}, err
	}
	return model.SummarizeSubscriptions(subs, s.now()), nil
}

// GenerateReport snapshots the current activity counts and persists them as
// a report for the given period.
func (s *Session) GenerateReport(ctx context.Context, reportType, period string, newTransactions int) (*model.Report, error) {
	txns, err := s.store.GetTransactions(ctx)
	if err != nil {
		return nil, err
	}
	budgets, err := s.store.GetBudgets(ctx)
	if err != nil {
		return nil, err
	}
	suggestions, err := s.store.GetSuggestions(ctx, "")
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		Type:      reportType,
		Period:    period,
		CreatedAt: s.now(),
		Summary: model.ReportSummary{
			TotalTransactions:    len(txns),
			NewTransactions:      newTransactions,
			BudgetsUsed:          len(budgets),
			SuggestionsGenerated: len(suggestions),
		},
	}

	if _, err := s.store.SaveReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to persist report: %w", err)
	}

	return report, nil
}
