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

func subscriptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subs"},
		Short:   "Track recurring subscriptions",
		Long:    `Track recurring charges, their normalized monthly cost, and upcoming renewals.`,
	}

	cmd.AddCommand(addSubscriptionCmd())
	cmd.AddCommand(listSubscriptionsCmd())
	cmd.AddCommand(cancelSubscriptionCmd())
	cmd.AddCommand(deleteSubscriptionCmd())

	return cmd
}

func addSubscriptionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Track a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, _ := cmd.Flags().GetFloat64("amount")
			frequency, _ := cmd.Flags().GetString("frequency")
			category, _ := cmd.Flags().GetString("category")
			renewal, _ := cmd.Flags().GetString("renews")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sub := &model.Subscription{
				Name:        args[0],
				Amount:      amount,
				Frequency:   frequency,
				Category:    category,
				RenewalDate: renewal,
				Active:      true,
			}

			id, err := store.SaveSubscription(ctx, sub)
			if err != nil {
				return fmt.Errorf("failed to save subscription: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("✓ Tracking %s ($%.2f/%s) as subscription %d", sub.Name, amount, sub.Frequency, id)))
			return nil
		},
	}

	cmd.Flags().Float64("amount", 0, "charge amount (required)")
	cmd.Flags().String("frequency", model.FrequencyMonthly, "billing frequency (monthly, yearly, weekly)")
	cmd.Flags().String("category", "", "budget category")
	cmd.Flags().String("renews", "", "next renewal date (2006-01-02)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func listSubscriptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subscriptions with cost summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sess, store, err := initSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			subs, err := store.GetSubscriptions(ctx)
			if err != nil {
				return fmt.Errorf("failed to get subscriptions: %w", err)
			}

			if len(subs) == 0 {
				fmt.Println(cli.InfoStyle.Render("No subscriptions tracked. Use 'penny subscriptions add'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Cost"),
				cli.BoldStyle.Render("Monthly"),
				cli.BoldStyle.Render("Status"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 20),
				strings.Repeat("-", 14),
				strings.Repeat("-", 10),
				strings.Repeat("-", 8))

			for _, sub := range subs {
				status := cli.SuccessStyle.Render("active")
				if !sub.Active {
					status = cli.SubtleStyle.Render("canceled")
				}
				fmt.Fprintf(w, "%d\t%s\t$%.2f/%s\t$%.2f\t%s\n",
					sub.ID, sub.Name, sub.Amount, sub.Frequency, sub.MonthlyAmount(), status)
			}
			_ = w.Flush()

			summary, err := sess.SubscriptionSummary(ctx)
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Println(cli.TitleStyle.Render("Summary"))
			fmt.Printf("  Active: %d\n", summary.ActiveCount)
			fmt.Printf("  Monthly cost: $%.2f\n", summary.MonthlyCost)
			fmt.Printf("  Yearly cost: $%.2f\n", summary.YearlyCost)
			if len(summary.UpcomingRenewals) > 0 {
				fmt.Println(cli.WarningStyle.Render("  Renewing within 7 days:"))
				for _, sub := range summary.UpcomingRenewals {
					fmt.Printf("    %s on %s ($%.2f)\n", sub.Name, sub.RenewalDate, sub.Amount)
				}
			}

			return nil
		},
	}
}

func cancelSubscriptionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Mark a subscription as canceled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subscription id %q: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SetSubscriptionActive(ctx, id, false); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Canceled subscription %d", id)))
			return nil
		},
	}
}

func deleteSubscriptionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Stop tracking a subscription entirely",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subscription id %q: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteSubscription(ctx, id); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted subscription %d", id)))
			return nil
		},
	}
}
