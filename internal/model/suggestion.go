package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// SuggestionType identifies the kind of action a suggestion proposes.
type SuggestionType string

// Suggestion types. SuggestionTypes preserves declaration order, which is
// used to break ties when ranking types by weight.
const (
	SuggestionBudgetAdjustment         SuggestionType = "budget_adjustment"
	SuggestionRiskAlert                SuggestionType = "risk_alert"
	SuggestionCategoryRestructure      SuggestionType = "category_restructure"
	SuggestionSavingsOpportunity       SuggestionType = "savings_opportunity"
	SuggestionSubscriptionOptimization SuggestionType = "subscription_optimization"
	SuggestionSystemImprovement        SuggestionType = "system_improvement"
)

// SuggestionTypes lists all suggestion types in declaration order.
var SuggestionTypes = []SuggestionType{
	SuggestionBudgetAdjustment,
	SuggestionRiskAlert,
	SuggestionCategoryRestructure,
	SuggestionSavingsOpportunity,
	SuggestionSubscriptionOptimization,
	SuggestionSystemImprovement,
}

// Valid reports whether t is a known suggestion type.
func (t SuggestionType) Valid() bool {
	for _, known := range SuggestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// SuggestionStatus tracks the lifecycle of a suggestion.
type SuggestionStatus string

// Suggestion statuses. Accepted and rejected are terminal.
const (
	StatusPending  SuggestionStatus = "pending"
	StatusAccepted SuggestionStatus = "accepted"
	StatusRejected SuggestionStatus = "rejected"
)

// ProposedChange is the typed payload attached to a suggestion. The concrete
// type is determined by the suggestion's type tag.
type ProposedChange interface {
	ChangeType() SuggestionType
}

// BudgetAdjustmentChange proposes replacing a budget's ceiling.
type BudgetAdjustmentChange struct {
	Category  string  `json:"category"`
	NewAmount float64 `json:"newAmount"`
}

// ChangeType implements ProposedChange.
func (BudgetAdjustmentChange) ChangeType() SuggestionType { return SuggestionBudgetAdjustment }

// RiskAlertChange flags a category for monitoring.
type RiskAlertChange struct {
	Alert      string `json:"alert"`
	CategoryID string `json:"categoryId"`
}

// ChangeType implements ProposedChange.
func (RiskAlertChange) ChangeType() SuggestionType { return SuggestionRiskAlert }

// CategoryRestructureChange proposes reorganizing spending in a category.
type CategoryRestructureChange struct {
	Category string `json:"category"`
	Action   string `json:"action"`
}

// ChangeType implements ProposedChange.
func (CategoryRestructureChange) ChangeType() SuggestionType { return SuggestionCategoryRestructure }

// SavingsOpportunityChange proposes a monthly savings target for a category.
type SavingsOpportunityChange struct {
	Category      string  `json:"category"`
	MonthlyTarget float64 `json:"monthlyTarget"`
}

// ChangeType implements ProposedChange.
func (SavingsOpportunityChange) ChangeType() SuggestionType { return SuggestionSavingsOpportunity }

// SubscriptionOptimizationChange proposes reviewing subscription spend in a
// category.
type SubscriptionOptimizationChange struct {
	Category string `json:"category"`
	Action   string `json:"action"`
}

// ChangeType implements ProposedChange.
func (SubscriptionOptimizationChange) ChangeType() SuggestionType {
	return SuggestionSubscriptionOptimization
}

// SystemImprovementChange proposes a tracking hygiene improvement.
type SystemImprovementChange struct {
	Note string `json:"note"`
}

// ChangeType implements ProposedChange.
func (SystemImprovementChange) ChangeType() SuggestionType { return SuggestionSystemImprovement }

// Suggestion is a proposed financial action surfaced to the user for an
// accept/reject decision.
type Suggestion struct {
	CreatedAt      time.Time
	ProposedChange ProposedChange
	Title          string
	Description    string
	Rationale      string
	Category       string
	Type           SuggestionType
	Status         SuggestionStatus
	DataReferences []string
	ID             int64
	Confidence     int
}

// Terminal reports whether the suggestion has reached a final status.
func (s *Suggestion) Terminal() bool {
	return s.Status == StatusAccepted || s.Status == StatusRejected
}

// MarshalChange serializes a proposed change payload for storage.
func MarshalChange(change ProposedChange) ([]byte, error) {
	if change == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(change)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal proposed change: %w", err)
	}
	return data, nil
}

// UnmarshalChange decodes a proposed change payload using the suggestion
// type tag to select the concrete shape.
func UnmarshalChange(suggestionType SuggestionType, data []byte) (ProposedChange, error) {
	if len(data) == 0 {
		data = []byte("{}")
	}

	switch suggestionType {
	case SuggestionBudgetAdjustment:
		var v BudgetAdjustmentChange
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s change: %w", suggestionType, err)
		}
		return v, nil
	case SuggestionRiskAlert:
		var v RiskAlertChange
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s change: %w", suggestionType, err)
		}
		return v, nil
	case SuggestionCategoryRestructure:
		var v CategoryRestructureChange
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s change: %w", suggestionType, err)
		}
		return v, nil
	case SuggestionSavingsOpportunity:
		var v SavingsOpportunityChange
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s change: %w", suggestionType, err)
		}
		return v, nil
	case SuggestionSubscriptionOptimization:
		var v SubscriptionOptimizationChange
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s change: %w", suggestionType, err)
		}
		return v, nil
	case SuggestionSystemImprovement:
		var v SystemImprovementChange
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s change: %w", suggestionType, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown suggestion type %q", suggestionType)
	}
}
