package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/calmcoin/penny/internal/cli"
	"github.com/calmcoin/penny/internal/importer"
	"github.com/calmcoin/penny/internal/model"
	"github.com/calmcoin/penny/internal/ofx"
	"github.com/calmcoin/penny/internal/service"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transactions from bank exports",
		Long: `Import transactions from CSV or OFX/QFX files. Duplicate rows are
detected by content hash and skipped, so re-running an import is safe.`,
	}

	cmd.AddCommand(importCSVCmd())
	cmd.AddCommand(importOFXCmd())

	return cmd
}

func importCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "csv <file>",
		Short: "Import transactions from a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open CSV file: %w", err)
			}
			defer func() { _ = file.Close() }()

			parser := importer.NewCSVParser(time.Now)
			txns, err := parser.Parse(file)
			if err != nil {
				return err
			}

			return saveImported(cmd, txns, "CSV")
		},
	}
}

func importOFXCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ofx <file>",
		Short: "Import transactions from an OFX/QFX export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open OFX file: %w", err)
			}
			defer func() { _ = file.Close() }()

			txns, err := ofx.NewParser().ParseFile(ctx, file)
			if err != nil {
				return err
			}

			return saveImported(cmd, txns, "OFX")
		},
	}
}

// saveImported persists parsed transactions in hash-deduplicated batches
// behind a progress bar, then prints a summary and generates a report row.
func saveImported(cmd *cobra.Command, txns []model.Transaction, source string) error {
	ctx := cmd.Context()

	if len(txns) == 0 {
		fmt.Println(cli.InfoStyle.Render("Nothing to import."))
		return nil
	}

	sess, store, err := initSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.NewOptions(len(txns),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("Importing %s transactions...", source)),
	)

	const batchSize = 100
	inserted := 0
	for start := 0; start < len(txns); start += batchSize {
		end := start + batchSize
		if end > len(txns) {
			end = len(txns)
		}
		n, err := saveBatch(ctx, store, txns[start:end])
		if err != nil {
			return err
		}
		inserted += n
		_ = bar.Add(end - start)
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	skipped := len(txns) - inserted
	fmt.Println(cli.SuccessStyle.Render(
		fmt.Sprintf("✓ Imported %d transactions (%d duplicates skipped)", inserted, skipped)))

	if _, err := sess.GenerateReport(ctx, "import", time.Now().Format("2006-01"), inserted); err != nil {
		return err
	}
	return nil
}

func saveBatch(ctx context.Context, store service.Storage, batch []model.Transaction) (int, error) {
	n, err := store.SaveTransactions(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("failed to save imported transactions: %w", err)
	}
	return n, nil
}
