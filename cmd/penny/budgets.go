package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calmcoin/penny/internal/cli"
	"github.com/calmcoin/penny/internal/common"
	"github.com/calmcoin/penny/internal/model"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage category budgets",
		Long:  `Set budget ceilings per category and track spending against them.`,
	}

	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(deleteBudgetCmd())

	return cmd
}

func setBudgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <category>",
		Short: "Create or update a category budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			category := args[0]
			ceiling, _ := cmd.Flags().GetFloat64("amount")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budget, err := store.GetBudgetByCategory(ctx, category)
			switch {
			case errors.Is(err, common.ErrNotFound):
				budget = &model.Budget{Category: category, Budget: ceiling}
				if _, err := store.SaveBudget(ctx, budget); err != nil {
					return fmt.Errorf("failed to create budget: %w", err)
				}
			case err != nil:
				return err
			default:
				budget.Budget = ceiling
				if err := store.UpdateBudget(ctx, budget); err != nil {
					return fmt.Errorf("failed to update budget: %w", err)
				}
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("✓ %s budget set to $%.2f (%d%% used)", category, ceiling, budget.Percentage)))
			return nil
		},
	}

	cmd.Flags().Float64("amount", 0, "budget ceiling (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets and usage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budgets, err := store.GetBudgets(ctx)
			if err != nil {
				return fmt.Errorf("failed to get budgets: %w", err)
			}

			if len(budgets) == 0 {
				fmt.Println(cli.InfoStyle.Render("No budgets yet. Use 'penny budgets set <category> --amount N'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Category"),
				cli.BoldStyle.Render("Budget"),
				cli.BoldStyle.Render("Spent"),
				cli.BoldStyle.Render("Used"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 16),
				strings.Repeat("-", 10),
				strings.Repeat("-", 10),
				strings.Repeat("-", 6))

			for _, b := range budgets {
				used := fmt.Sprintf("%d%%", b.Percentage)
				switch {
				case b.Percentage >= 100:
					used = cli.ErrorStyle.Render(used)
				case b.Percentage >= 80:
					used = cli.WarningStyle.Render(used)
				}
				fmt.Fprintf(w, "%s\t$%.2f\t$%.2f\t%s\n", b.Category, b.Budget, b.Spent, used)
			}

			return nil
		},
	}
}

func deleteBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid budget id %q: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteBudget(ctx, id); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted budget %d", id)))
			return nil
		},
	}
}
