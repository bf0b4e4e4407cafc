package learning

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/calmcoin/penny/internal/model"
)

// persistedWeights is the weights block of the durable record.
type persistedWeights struct {
	SuggestionTypeWeight map[model.SuggestionType]float64 `json:"suggestionTypeWeight"`
	CategoryWeight       map[string]float64               `json:"categoryWeight"`
	TimePatterns         map[string]float64               `json:"timePatterns,omitempty"`

	// Older records stored the decision logs inside the weights block.
	AcceptedPatterns []DecisionPattern `json:"acceptedPatterns,omitempty"`
	RejectedPatterns []DecisionPattern `json:"rejectedPatterns,omitempty"`
}

// persistedState is the canonical durable shape.
type persistedState struct {
	Weights          *persistedWeights `json:"weights"`
	AcceptedPatterns []DecisionPattern `json:"acceptedPatterns"`
	RejectedPatterns []DecisionPattern `json:"rejectedPatterns"`
	LastUpdated      time.Time         `json:"lastUpdated"`
}

// MarshalState encodes the learning state into the canonical durable shape.
func MarshalState(state State, now time.Time) ([]byte, error) {
	record := persistedState{
		Weights: &persistedWeights{
			SuggestionTypeWeight: state.TypeWeights,
			CategoryWeight:       state.CategoryWeights,
		},
		AcceptedPatterns: state.Accepted,
		RejectedPatterns: state.Rejected,
		LastUpdated:      now,
	}
	if record.AcceptedPatterns == nil {
		record.AcceptedPatterns = []DecisionPattern{}
	}
	if record.RejectedPatterns == nil {
		record.RejectedPatterns = []DecisionPattern{}
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal learning state: %w", err)
	}
	return data, nil
}

// UnmarshalState decodes a durable record into learning state. Both the
// canonical shape and the legacy shape (where the top-level object is the
// weights map itself) are accepted; missing maps fall back to neutral
// defaults so a partial record never breaks startup.
func UnmarshalState(data []byte) (State, error) {
	var record persistedState
	if err := json.Unmarshal(data, &record); err != nil {
		return State{}, fmt.Errorf("failed to unmarshal learning state: %w", err)
	}

	weights := record.Weights
	if weights == nil {
		// Legacy shape: no weights wrapper.
		weights = &persistedWeights{}
		if err := json.Unmarshal(data, weights); err != nil {
			return State{}, fmt.Errorf("failed to unmarshal legacy learning state: %w", err)
		}
	}

	state := NewState()
	if weights.SuggestionTypeWeight != nil {
		state.TypeWeights = weights.SuggestionTypeWeight
	}
	if weights.CategoryWeight != nil {
		state.CategoryWeights = weights.CategoryWeight
	}

	state.Accepted = record.AcceptedPatterns
	if state.Accepted == nil {
		state.Accepted = weights.AcceptedPatterns
	}
	state.Rejected = record.RejectedPatterns
	if state.Rejected == nil {
		state.Rejected = weights.RejectedPatterns
	}

	return state, nil
}
