// Package tui implements the interactive suggestion inbox. The model walks
// the pending suggestions one at a time and records each accept/reject
// verdict; the caller applies the collected decisions after the program
// exits.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/calmcoin/penny/internal/learning"
	"github.com/calmcoin/penny/internal/model"
)

// KeyMap defines the inbox keyboard shortcuts.
type KeyMap struct {
	Accept key.Binding
	Reject key.Binding
	Skip   key.Binding
	Prev   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Accept: key.NewBinding(
			key.WithKeys("a", "y"),
			key.WithHelp("a", "accept"),
		),
		Reject: key.NewBinding(
			key.WithKeys("r", "n"),
			key.WithHelp("r", "reject"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s", "j", "down"),
			key.WithHelp("s", "skip"),
		),
		Prev: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "previous"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	inboxTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#D4883E"))
	inboxBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#404040")).
			Padding(1, 2)
	inboxMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#737373"))
	inboxAcceptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#10b981"))
	inboxRejectStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ef4444"))
	inboxHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// InboxModel is the bubbletea model for reviewing pending suggestions.
type InboxModel struct {
	decisions   map[int64]learning.Decision
	keys        KeyMap
	suggestions []model.Suggestion
	index       int
	quitting    bool
}

// NewInbox creates an inbox over the given pending suggestions.
func NewInbox(suggestions []model.Suggestion) InboxModel {
	return InboxModel{
		suggestions: suggestions,
		keys:        DefaultKeyMap(),
		decisions:   make(map[int64]learning.Decision),
	}
}

// Decisions returns the verdicts recorded during the session, keyed by
// suggestion id.
func (m InboxModel) Decisions() map[int64]learning.Decision {
	return m.decisions
}

// Init implements tea.Model.
func (m InboxModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m InboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Accept):
		return m.decide(learning.DecisionAccepted)

	case key.Matches(keyMsg, m.keys.Reject):
		return m.decide(learning.DecisionRejected)

	case key.Matches(keyMsg, m.keys.Skip):
		if m.index < len(m.suggestions)-1 {
			m.index++
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Prev):
		if m.index > 0 {
			m.index--
		}
		return m, nil
	}

	return m, nil
}

// decide records the verdict for the current suggestion and advances. The
// inbox closes itself after the last suggestion is decided.
func (m InboxModel) decide(decision learning.Decision) (tea.Model, tea.Cmd) {
	if m.index >= len(m.suggestions) {
		return m, nil
	}

	m.decisions[m.suggestions[m.index].ID] = decision

	if m.index < len(m.suggestions)-1 {
		m.index++
		return m, nil
	}

	m.quitting = true
	return m, tea.Quit
}

// View implements tea.Model.
func (m InboxModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.suggestions) == 0 {
		return inboxMetaStyle.Render("No pending suggestions.") + "\n"
	}

	suggestion := m.suggestions[m.index]

	var b strings.Builder
	b.WriteString(inboxTitleStyle.Render("Suggestion Inbox"))
	b.WriteString(inboxMetaStyle.Render(
		fmt.Sprintf("  %d/%d", m.index+1, len(m.suggestions))))
	b.WriteString("\n\n")

	var card strings.Builder
	card.WriteString(lipgloss.NewStyle().Bold(true).Render(suggestion.Title))
	card.WriteString("\n")
	card.WriteString(inboxMetaStyle.Render(
		fmt.Sprintf("%s · %s · %d%% confidence",
			suggestion.Type, suggestion.Category, suggestion.Confidence)))
	card.WriteString("\n\n")
	card.WriteString(suggestion.Description)
	if suggestion.Rationale != "" {
		card.WriteString("\n\n")
		card.WriteString(inboxMetaStyle.Render(suggestion.Rationale))
	}

	if decision, decided := m.decisions[suggestion.ID]; decided {
		card.WriteString("\n\n")
		if decision == learning.DecisionAccepted {
			card.WriteString(inboxAcceptStyle.Render("✓ accepted"))
		} else {
			card.WriteString(inboxRejectStyle.Render("✗ rejected"))
		}
	}

	b.WriteString(inboxBoxStyle.Render(card.String()))
	b.WriteString("\n")
	b.WriteString(inboxHelpStyle.Render("a accept · r reject · s skip · k previous · q quit"))
	b.WriteString("\n")

	return b.String()
}

// RunInbox drives the inbox to completion and returns the recorded verdicts.
func RunInbox(suggestions []model.Suggestion) (map[int64]learning.Decision, error) {
	program := tea.NewProgram(NewInbox(suggestions))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("suggestion inbox failed: %w", err)
	}

	inbox, ok := final.(InboxModel)
	if !ok {
		return nil, fmt.Errorf("unexpected final model type %T", final)
	}
	return inbox.Decisions(), nil
}
