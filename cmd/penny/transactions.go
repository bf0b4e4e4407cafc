package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calmcoin/penny/internal/cli"
	"github.com/calmcoin/penny/internal/model"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
		Long:    `Add, list, and delete recorded transactions.`,
	}

	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

func addTransactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record a transaction by hand. Amounts are signed: use a negative
amount for expenses and a positive one for income.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			name, _ := cmd.Flags().GetString("name")
			amount, _ := cmd.Flags().GetFloat64("amount")
			date, _ := cmd.Flags().GetString("date")
			category, _ := cmd.Flags().GetString("category")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txn := &model.Transaction{
				Name:     name,
				Amount:   amount,
				Date:     date,
				Category: category,
				Type:     model.DirectionType(amount),
				Source:   "manual",
			}

			id, err := store.SaveTransaction(ctx, txn)
			if err != nil {
				return fmt.Errorf("failed to save transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("✓ Recorded %s (%s) as transaction %d", name, formatAmount(amount), id)))
			return nil
		},
	}

	cmd.Flags().String("name", "", "transaction name (required)")
	cmd.Flags().Float64("amount", 0, "signed amount, negative for expenses (required)")
	cmd.Flags().String("date", "Today", `informal date ("Today", "Yesterday", "Jan 28")`)
	cmd.Flags().String("category", "", "budget category")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txns, err := store.GetTransactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}

			if len(txns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions yet. Use 'penny transactions add' or 'penny import'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Date"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Category"),
				cli.BoldStyle.Render("Amount"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 10),
				strings.Repeat("-", 24),
				strings.Repeat("-", 16),
				strings.Repeat("-", 10))

			for _, txn := range txns {
				category := txn.Category
				if category == "" {
					category = cli.SubtleStyle.Render("(uncategorized)")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					txn.ID, txn.Date, txn.Name, category, formatAmount(txn.Amount))
			}

			return nil
		},
	}
}

func deleteTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteTransaction(ctx, id); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted transaction %d", id)))
			return nil
		},
	}
}

// formatAmount renders a signed amount with direction-appropriate color.
func formatAmount(amount float64) string {
	if amount < 0 {
		return cli.NegativeAmountStyle.Render(fmt.Sprintf("-$%.2f", -amount))
	}
	return cli.AmountStyle.Render(fmt.Sprintf("+$%.2f", amount))
}
