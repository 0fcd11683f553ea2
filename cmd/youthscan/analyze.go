package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/y4jaiops/y4j-YouthScan/internal/llm"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract candidate records from a document into a review file",
	Long: "Send an image or PDF (local file or Google Drive link) to the model and write one record " +
		"per candidate as JSON. Edit the file if needed, then pass it to 'save'.",
	RunE: runAnalyze,
}

var (
	analyzeFile      string
	analyzeDriveLink string
	analyzeColumns   string
	analyzeOutput    string
	analyzeAPIKey    string
	analyzeTier      string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Path to an image (jpg, png, webp, heic) or PDF")
	analyzeCmd.Flags().StringVar(&analyzeDriveLink, "drive-link", "", "Google Drive share link to the document")
	analyzeCmd.Flags().StringVarP(&analyzeColumns, "columns", "c", "", "Comma-separated columns to extract (default: configured columns)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "-", "Review file to write ('-' for stdout)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	analyzeCmd.Flags().StringVar(&analyzeTier, "tier", string(llm.TierStandard), "Model tier: lite, standard or advanced")
	analyzeCmd.MarkFlagsMutuallyExclusive("file", "drive-link")
	analyzeCmd.MarkFlagsOneRequired("file", "drive-link")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	tier, err := parseTier(analyzeTier)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, needs{model: true, sheets: analyzeDriveLink != ""}, analyzeAPIKey, tier)
	if err != nil {
		return err
	}
	defer a.close()

	cols, err := a.columns(analyzeColumns)
	if err != nil {
		return err
	}
	doc, err := a.loadDocument(ctx, analyzeFile, analyzeDriveLink)
	if err != nil {
		return err
	}

	result, err := a.orchestrator.Analyze(ctx, doc, cols)
	if err != nil {
		return err
	}

	if a.cfg.Verbose {
		a.printer.PrintRecords(cols, result.Records)
	}
	if err := writeReviewFile(analyzeOutput, cols, result.Records); err != nil {
		return err
	}
	if analyzeOutput != "-" && analyzeOutput != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d record(s) to %s\n", len(result.Records), analyzeOutput)
	}
	return nil
}

func parseTier(s string) (llm.ModelTier, error) {
	switch tier := llm.ModelTier(s); tier {
	case llm.TierLite, llm.TierStandard, llm.TierAdvanced:
		return tier, nil
	default:
		return "", fmt.Errorf("unknown model tier %q (expected lite, standard or advanced)", s)
	}
}
