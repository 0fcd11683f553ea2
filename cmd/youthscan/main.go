// Package main provides the youthscan command line: scan registration documents into the
// candidate spreadsheet, review and save records, and run the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "youthscan",
	Short: "Extract candidate records from scanned documents into Google Sheets",
	Long: "youthscan reads a photo, upload or Drive document, asks a vision model for one record per " +
		"candidate over an operator-defined column list, and appends the reviewed records to a " +
		"Google Sheet that is created on first use.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Human-readable logs and summaries")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
