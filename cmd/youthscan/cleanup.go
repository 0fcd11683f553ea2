package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete every spreadsheet owned by the service account",
	Long: "List the spreadsheets owned by the service account and, with --yes, delete them to " +
		"reclaim its Drive storage quota. A failed delete is reported and skipped.",
	RunE: runCleanup,
}

var cleanupConfirm bool

func init() {
	cleanupCmd.Flags().BoolVar(&cleanupConfirm, "yes", false, "Delete instead of only listing")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, needs{sheets: true}, "", "")
	if err != nil {
		return err
	}
	defer a.close()

	if !cleanupConfirm {
		files, err := a.janitor.ListOwned(ctx)
		if err != nil {
			return err
		}
		a.printer.PrintOwnedFiles(files)
		fmt.Println("Run again with --yes to delete them.")
		return nil
	}

	report, err := a.janitor.DeleteAllOwned(ctx)
	if err != nil {
		return err
	}
	a.printer.PrintCleanupReport(report)
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d of %d spreadsheet(s) could not be deleted", len(report.Failed), report.Found)
	}
	return nil
}
