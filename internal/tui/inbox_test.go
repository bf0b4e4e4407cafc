package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmcoin/penny/internal/learning"
	"github.com/calmcoin/penny/internal/model"
)

func testSuggestions() []model.Suggestion {
	return []model.Suggestion{
		{ID: 1, Title: "Raise Groceries budget", Type: model.SuggestionBudgetAdjustment,
			Category: "Groceries", Confidence: 75, Description: "Spending is trending up."},
		{ID: 2, Title: "Watch Dining Out", Type: model.SuggestionRiskAlert,
			Category: "Dining Out", Confidence: 70, Description: "Three big weeks in a row."},
	}
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestInboxRecordsDecisions(t *testing.T) {
	m := NewInbox(testSuggestions())

	updated, cmd := m.Update(keyPress('a'))
	m = updated.(InboxModel)
	assert.Nil(t, cmd, "inbox stays open until the last verdict")

	updated, cmd = m.Update(keyPress('r'))
	m = updated.(InboxModel)
	require.NotNil(t, cmd, "deciding the last suggestion quits")

	decisions := m.Decisions()
	assert.Equal(t, learning.DecisionAccepted, decisions[1])
	assert.Equal(t, learning.DecisionRejected, decisions[2])
}

func TestInboxSkipAndNavigate(t *testing.T) {
	m := NewInbox(testSuggestions())

	updated, _ := m.Update(keyPress('s'))
	m = updated.(InboxModel)
	assert.Equal(t, 1, m.index)

	// Skipping past the end stays on the last suggestion.
	updated, _ = m.Update(keyPress('s'))
	m = updated.(InboxModel)
	assert.Equal(t, 1, m.index)

	updated, _ = m.Update(keyPress('k'))
	m = updated.(InboxModel)
	assert.Equal(t, 0, m.index)

	assert.Empty(t, m.Decisions(), "navigation records nothing")
}

func TestInboxQuitLeavesUndecided(t *testing.T) {
	m := NewInbox(testSuggestions())

	updated, cmd := m.Update(keyPress('a'))
	m = updated.(InboxModel)
	require.Nil(t, cmd)

	updated, cmd = m.Update(keyPress('q'))
	m = updated.(InboxModel)
	require.NotNil(t, cmd)

	decisions := m.Decisions()
	assert.Len(t, decisions, 1)
	assert.Equal(t, learning.DecisionAccepted, decisions[1])
	_, decided := decisions[2]
	assert.False(t, decided)
}

func TestInboxViewShowsCurrentSuggestion(t *testing.T) {
	m := NewInbox(testSuggestions())

	view := m.View()
	assert.Contains(t, view, "Raise Groceries budget")
	assert.Contains(t, view, "1/2")

	updated, _ := m.Update(keyPress('s'))
	m = updated.(InboxModel)
	view = m.View()
	assert.Contains(t, view, "Watch Dining Out")
	assert.Contains(t, view, "2/2")
}

func TestInboxEmpty(t *testing.T) {
	m := NewInbox(nil)
	assert.Contains(t, m.View(), "No pending suggestions")

	// Accepting with nothing queued is a no-op.
	updated, cmd := m.Update(keyPress('a'))
	m = updated.(InboxModel)
	assert.Nil(t, cmd)
	assert.Empty(t, m.Decisions())
}
