package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/y4jaiops/y4j-YouthScan/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the records of a review file to a local .xlsx workbook",
	RunE:  runExport,
}

var (
	exportInput  string
	exportOutput string
)

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "in", "i", "", "Review file written by 'analyze' (required)")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "candidates.xlsx", "Workbook to write")
	_ = exportCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	cols, records, err := readReviewFile(exportInput)
	if err != nil {
		return err
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", exportOutput, err)
	}
	if err := export.WriteXLSX(f, cols, records); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}

	fmt.Printf("Wrote %d record(s) to %s\n", len(records), exportOutput)
	return nil
}
