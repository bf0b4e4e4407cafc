package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/calmcoin/penny/internal/cli"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate and list activity reports",
	}

	cmd.AddCommand(generateReportCmd())
	cmd.AddCommand(listReportsCmd())
	cmd.AddCommand(deleteReportCmd())

	return cmd
}

func generateReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Snapshot current activity into a report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			period, _ := cmd.Flags().GetString("period")
			if period == "" {
				period = time.Now().Format("2006-01")
			}

			sess, store, err := initSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			report, err := sess.GenerateReport(ctx, "monthly", period, 0)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Report %d for %s", report.ID, report.Period)))
			fmt.Printf("  Transactions: %d\n", report.Summary.TotalTransactions)
			fmt.Printf("  Budgets: %d\n", report.Summary.BudgetsUsed)
			fmt.Printf("  Suggestions: %d\n", report.Summary.SuggestionsGenerated)
			return nil
		},
	}

	cmd.Flags().String("period", "", "report period (default: current month)")
	return cmd
}

func listReportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			reports, err := store.GetReports(ctx)
			if err != nil {
				return fmt.Errorf("failed to get reports: %w", err)
			}

			if len(reports) == 0 {
				fmt.Println(cli.InfoStyle.Render("No reports yet. Use 'penny report new'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Period"),
				cli.BoldStyle.Render("Type"),
				cli.BoldStyle.Render("Transactions"),
				cli.BoldStyle.Render("Suggestions"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 8),
				strings.Repeat("-", 8),
				strings.Repeat("-", 12),
				strings.Repeat("-", 11))

			for _, r := range reports {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n",
					r.ID, r.Period, r.Type,
					r.Summary.TotalTransactions, r.Summary.SuggestionsGenerated)
			}
			return nil
		},
	}
}

func deleteReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid report id %q: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteReport(ctx, id); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted report %d", id)))
			return nil
		},
	}
}
