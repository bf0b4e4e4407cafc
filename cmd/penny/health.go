package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calmcoin/penny/internal/cli"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show the financial health score",
		Long: `Score financial health 0-100 from savings rate, budget adherence,
category diversity, and recent tracking activity.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sess, store, err := initSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			score, err := sess.HealthScore(ctx)
			if err != nil {
				return err
			}

			headline := fmt.Sprintf("%d/100 · %s", score.Total, score.Rating)
			switch score.Color {
			case "green":
				headline = cli.SuccessStyle.Render(headline)
			case "yellow":
				headline = cli.WarningStyle.Render(headline)
			case "red":
				headline = cli.ErrorStyle.Render(headline)
			default:
				headline = cli.InfoStyle.Render(headline)
			}

			fmt.Println(cli.TitleStyle.Render("Financial Health"))
			fmt.Printf("  %s\n\n", headline)
			fmt.Printf("  Savings:   %d\n", score.Breakdown.SavingsScore)
			fmt.Printf("  Budgets:   %d\n", score.Breakdown.BudgetScore)
			fmt.Printf("  Diversity: %d\n", score.Breakdown.DiversityScore)
			fmt.Printf("  Activity:  %d\n", score.Breakdown.FrequencyScore)

			if len(score.Recommendations) > 0 {
				fmt.Println()
				for _, rec := range score.Recommendations {
					fmt.Println(cli.SubtleStyle.Render("  · " + rec))
				}
			}

			return nil
		},
	}
}
