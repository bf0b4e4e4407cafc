package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calmcoin/penny/internal/cli"
)

func insightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show what the suggestion engine has learned",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			reset, _ := cmd.Flags().GetBool("reset")

			sess, store, err := initSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if reset {
				if err := sess.ResetLearning(ctx); err != nil {
					return err
				}
				fmt.Println(cli.SuccessStyle.Render("✓ Learning state reset to neutral"))
				return nil
			}

			insights := sess.Insights()

			fmt.Println(cli.TitleStyle.Render("Learning Insights"))
			fmt.Printf("  Decisions recorded: %d\n", insights.TotalDecisions)
			fmt.Printf("  Learning progress: %d%%\n", insights.LearningProgress)
			if !insights.Ready {
				fmt.Println(cli.InfoStyle.Render("  Still warming up; decide a few suggestions to teach it."))
			}

			fmt.Println()
			fmt.Println(cli.BoldStyle.Render("  Type preferences"))
			for _, pref := range insights.TypePreferences {
				label := pref.Preference
				switch label {
				case "High":
					label = cli.SuccessStyle.Render(label)
				case "Low":
					label = cli.ErrorStyle.Render(label)
				default:
					label = cli.SubtleStyle.Render(label)
				}
				fmt.Printf("    %-28s %.2f  %s\n", pref.Type, pref.Weight, label)
			}

			if len(insights.Patterns) > 0 {
				fmt.Println()
				fmt.Println(cli.BoldStyle.Render("  Acceptance history"))
				for _, pattern := range insights.Patterns {
					fmt.Printf("    %-28s %d decided, %d%% accepted\n",
						pattern.Type, pattern.Decisions, pattern.AcceptanceRate)
				}
			}

			return nil
		},
	}

	cmd.Flags().Bool("reset", false, "reset all learned weights to neutral")
	return cmd
}
