package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calmcoin/penny/internal/cli"
	"github.com/calmcoin/penny/internal/learning"
	"github.com/calmcoin/penny/internal/model"
	"github.com/calmcoin/penny/internal/tui"
)

func suggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Generate and review suggestions",
		Long: `Generate suggestions biased toward what you've accepted before, and
record accept/reject verdicts that feed back into the weights.`,
	}

	cmd.AddCommand(generateSuggestionCmd())
	cmd.AddCommand(listSuggestionsCmd())
	cmd.AddCommand(reviewSuggestionsCmd())
	cmd.AddCommand(decideSuggestionCmd("accept", learning.DecisionAccepted))
	cmd.AddCommand(decideSuggestionCmd("reject", learning.DecisionRejected))
	cmd.AddCommand(applySuggestionCmd())

	return cmd
}

func generateSuggestionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a new suggestion",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			count, _ := cmd.Flags().GetInt("count")

			sess, store, err := initSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			for i := 0; i < count; i++ {
				suggestion, err := sess.GenerateSuggestion(ctx)
				if err != nil {
					return err
				}
				printSuggestion(suggestion)
			}
			return nil
		},
	}

	cmd.Flags().Int("count", 1, "how many suggestions to generate")
	return cmd
}

func listSuggestionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List suggestions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			statusFlag, _ := cmd.Flags().GetString("status")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			suggestions, err := store.GetSuggestions(ctx, model.SuggestionStatus(statusFlag))
			if err != nil {
				return fmt.Errorf("failed to get suggestions: %w", err)
			}

			if len(suggestions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No suggestions. Use 'penny suggest new' to generate one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Title"),
				cli.BoldStyle.Render("Type"),
				cli.BoldStyle.Render("Confidence"),
				cli.BoldStyle.Render("Status"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 32),
				strings.Repeat("-", 20),
				strings.Repeat("-", 10),
				strings.Repeat("-", 8))

			for _, s := range suggestions {
				status := string(s.Status)
				switch s.Status {
				case model.StatusAccepted:
					status = cli.SuccessStyle.Render(status)
				case model.StatusRejected:
					status = cli.ErrorStyle.Render(status)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%d%%\t%s\n",
					s.ID, s.Title, s.Type, s.Confidence, status)
			}
			return nil
		},
	}

	cmd.Flags().String("status", "", "filter by status (pending, accepted, rejected)")
	return cmd
}

func reviewSuggestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Review pending suggestions interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sess, store, err := initSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			pending, err := store.GetSuggestions(ctx, model.StatusPending)
			if err != nil {
				return fmt.Errorf("failed to get pending suggestions: %w", err)
			}
			if len(pending) == 0 {
				fmt.Println(cli.InfoStyle.Render("Inbox is empty."))
				return nil
			}

			decisions, err := tui.RunInbox(pending)
			if err != nil {
				return err
			}

			accepted, rejected := 0, 0
			for _, suggestion := range pending {
				decision, ok := decisions[suggestion.ID]
				if !ok {
					continue
				}
				if _, err := sess.RecordDecision(ctx, suggestion.ID, decision); err != nil {
					return err
				}
				if decision == learning.DecisionAccepted {
					accepted++
				} else {
					rejected++
				}
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("✓ Reviewed %d suggestions (%d accepted, %d rejected)",
					accepted+rejected, accepted, rejected)))
			return nil
		},
	}
}

func decideSuggestionCmd(verb string, decision learning.Decision) *cobra.Command {
	short := strings.ToUpper(verb[:1]) + verb[1:] + " a pending suggestion"
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid suggestion id %q: %w", args[0], err)
			}

			sess, store, err := initSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			suggestion, err := sess.RecordDecision(ctx, id, decision)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("✓ %s: %s", suggestion.Status, suggestion.Title)))
			return nil
		},
	}
}

func applySuggestionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <id>",
		Short: "Accept a budget adjustment and apply it to the budget",
		Long: `Accept a budget_adjustment suggestion and rewrite the matching
budget's ceiling in the same step. Fails if no budget exists for the
suggested category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid suggestion id %q: %w", args[0], err)
			}

			sess, store, err := initSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budget, err := sess.ApplyBudgetAdjustment(ctx, id)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("✓ %s budget is now $%.2f (%d%% used)",
					budget.Category, budget.Budget, budget.Percentage)))
			return nil
		},
	}
}

func printSuggestion(s *model.Suggestion) {
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("#%d %s", s.ID, s.Title)))
	fmt.Printf("  %s · %s · %d%% confidence\n", s.Type, s.Category, s.Confidence)
	fmt.Printf("  %s\n", s.Description)
	if s.Rationale != "" {
		fmt.Println(cli.SubtleStyle.Render("  " + s.Rationale))
	}
}
