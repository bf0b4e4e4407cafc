package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calmcoin/penny/internal/cli"
	"github.com/calmcoin/penny/internal/predict"
)

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict next month's spending",
		Long: `Project next month's spending from the recorded transaction history:
overall trend, per-category projections, and weekly spending patterns.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			category, _ := cmd.Flags().GetString("category")
			patterns, _ := cmd.Flags().GetBool("patterns")

			sess, store, err := initSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if category != "" {
				prediction, ok, err := sess.PredictCategory(ctx, category)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(cli.InfoStyle.Render(
						fmt.Sprintf("No expense history for %q in the last month.", category)))
					return nil
				}
				fmt.Println(cli.TitleStyle.Render(category))
				fmt.Printf("  Projected next month: $%.2f\n", prediction.PredictedNextMonth)
				fmt.Printf("  Monthly average: $%.2f over %d transactions\n",
					prediction.AverageMonthly, prediction.Frequency)
				return nil
			}

			if patterns {
				detected, err := sess.SpendingPatterns(ctx)
				if err != nil {
					return err
				}
				if len(detected) == 0 {
					fmt.Println(cli.InfoStyle.Render("No clear category trends in the last 30 days."))
					return nil
				}
				fmt.Println(cli.TitleStyle.Render("Spending Patterns (last 30 days)"))
				for _, pattern := range detected {
					fmt.Printf("  %-20s %s ($%.2f/week)\n",
						pattern.Category, pattern.Message, pattern.Strength)
				}
				return nil
			}

			prediction, err := sess.PredictMonthly(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render("Monthly Spending Forecast"))
			fmt.Printf("  Average monthly: $%.0f\n", prediction.AverageMonthly)
			predicted := fmt.Sprintf("$%.0f", prediction.PredictedNextMonth)
			if prediction.Trend == predict.TrendIncreasing {
				predicted = cli.WarningStyle.Render(predicted + " ↑")
			} else {
				predicted = cli.SuccessStyle.Render(predicted + " ↓")
			}
			fmt.Printf("  Predicted next month: %s\n", predicted)
			fmt.Printf("  Confidence: %s (%d months of data)\n", prediction.Confidence, prediction.DataPoints)

			weekly, err := sess.WeeklyPattern(ctx)
			if err != nil {
				return err
			}
			if weekly.Pattern == predict.PatternWeeklyPeak {
				fmt.Printf("  Peak spending day: %s (%d%% of weekly spend)\n",
					weekly.PeakDay, weekly.PeakPercentage)
			}

			return nil
		},
	}

	cmd.Flags().String("category", "", "project a single category instead")
	cmd.Flags().Bool("patterns", false, "show per-category trends over the last 30 days")

	return cmd
}
