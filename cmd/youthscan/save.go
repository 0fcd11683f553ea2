package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Append the records of a review file to the spreadsheet",
	Long: "Append every record of a review file (written by 'analyze') to the spreadsheet in a single " +
		"batch. The spreadsheet is created on first use; an existing header row decides column order.",
	RunE: runSave,
}

var (
	saveInput       string
	saveSpreadsheet string
	saveFolder      string
)

func init() {
	saveCmd.Flags().StringVarP(&saveInput, "in", "i", "", "Review file written by 'analyze' (required)")
	saveCmd.Flags().StringVar(&saveSpreadsheet, "spreadsheet", "", "Spreadsheet name (default: configured name)")
	saveCmd.Flags().StringVar(&saveFolder, "folder", "", "Drive folder id to search and create in; pass \"\" for no folder (default: configured folder)")
	_ = saveCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, _ []string) error {
	cols, records, err := readReviewFile(saveInput)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, needs{sheets: true}, "", "")
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.orchestrator.Save(ctx, cols, records, saveTarget(cmd, saveSpreadsheet, saveFolder))
	if err != nil {
		return err
	}
	if result.Appended == 0 {
		fmt.Println("Nothing to save")
		return nil
	}

	if a.cfg.Verbose {
		a.printer.PrintSaveResult(result.Sheet, result.Appended)
	}
	fmt.Printf("Saved %d row(s) to %s\n%s\n", result.Appended, result.Sheet.Name, result.URL)
	return nil
}
