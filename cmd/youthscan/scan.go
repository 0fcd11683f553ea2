package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/y4jaiops/y4j-YouthScan/internal/llm"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Extract records from a document and save them without review",
	RunE:  runScan,
}

var (
	scanFile        string
	scanDriveLink   string
	scanColumns     string
	scanSpreadsheet string
	scanFolder      string
	scanAPIKey      string
)

func init() {
	scanCmd.Flags().StringVarP(&scanFile, "file", "f", "", "Path to an image or PDF")
	scanCmd.Flags().StringVar(&scanDriveLink, "drive-link", "", "Google Drive share link to the document")
	scanCmd.Flags().StringVarP(&scanColumns, "columns", "c", "", "Comma-separated columns to extract (default: configured columns)")
	scanCmd.Flags().StringVar(&scanSpreadsheet, "spreadsheet", "", "Spreadsheet name (default: configured name)")
	scanCmd.Flags().StringVar(&scanFolder, "folder", "", "Drive folder id; pass \"\" for no folder (default: configured folder)")
	scanCmd.Flags().StringVar(&scanAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	scanCmd.MarkFlagsMutuallyExclusive("file", "drive-link")
	scanCmd.MarkFlagsOneRequired("file", "drive-link")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, needs{model: true, sheets: true}, scanAPIKey, llm.TierStandard)
	if err != nil {
		return err
	}
	defer a.close()

	cols, err := a.columns(scanColumns)
	if err != nil {
		return err
	}
	doc, err := a.loadDocument(ctx, scanFile, scanDriveLink)
	if err != nil {
		return err
	}

	analyzed, saved, err := a.orchestrator.Scan(ctx, doc, cols, saveTarget(cmd, scanSpreadsheet, scanFolder))
	if analyzed != nil && a.cfg.Verbose {
		a.printer.PrintRecords(cols, analyzed.Records)
	}
	if err != nil {
		return err
	}

	if a.cfg.Verbose {
		a.printer.PrintSaveResult(saved.Sheet, saved.Appended)
	}
	fmt.Printf("Saved %d row(s) to %s\n%s\n", saved.Appended, saved.Sheet.Name, saved.URL)
	return nil
}
