// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/y4jaiops/y4j-YouthScan/internal/sheets"
	"github.com/y4jaiops/y4j-YouthScan/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxFieldsToShow limits the fields printed per record
	maxFieldsToShow = 6
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRecords outputs the extracted candidates, one block per record.
func (p *Printer) PrintRecords(cols types.ColumnSpec, records []types.Record) {
	if len(records) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates found: %d\n", len(records)))

	fields := min(len(cols), maxFieldsToShow)
	count := min(len(records), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("\n#%d\n", i+1))
		for _, col := range cols[:fields] {
			value := records[i].Get(col)
			if value == "" {
				value = "-"
			}
			sb.WriteString(fmt.Sprintf("  %-16s %s\n", col+":", value))
		}
		if len(cols) > fields {
			sb.WriteString(fmt.Sprintf("  ... and %d more fields\n", len(cols)-fields))
		}
	}

	if len(records) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates\n", len(records)-maxItemsToShow))
	}

	p.printBox("EXTRACTED CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSaveResult outputs where the rows went.
func (p *Printer) PrintSaveResult(sheet types.SheetHandle, appended int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Spreadsheet: %s\n", sheet.Name))
	sb.WriteString(fmt.Sprintf("Rows added:  %d\n", appended))
	if len(sheet.Header) > 0 {
		sb.WriteString(fmt.Sprintf("Columns:     %d\n", len(sheet.Header)))
	}
	sb.WriteString("\n")
	sb.WriteString(sheet.URL)

	p.printBox("SAVED TO SHEET", sb.String())
}

// PrintCleanupReport outputs the result of deleting owned spreadsheets.
func (p *Printer) PrintCleanupReport(report sheets.CleanupReport) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found:   %d\n", report.Found))
	sb.WriteString(fmt.Sprintf("Deleted: %d\n", report.Deleted))
	sb.WriteString(fmt.Sprintf("Failed:  %d", len(report.Failed)))

	if len(report.Failed) > 0 {
		sb.WriteString("\n")
		count := min(len(report.Failed), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("\n  • %s (%s)", report.Failed[i].Name, report.Failed[i].ID))
		}
		if len(report.Failed) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n  ... and %d more", len(report.Failed)-maxItemsToShow))
		}
	}

	p.printBox("SPREADSHEET CLEANUP", sb.String())
}

// PrintOwnedFiles lists spreadsheets without deleting them.
func (p *Printer) PrintOwnedFiles(files []sheets.File) {
	if len(files) == 0 {
		p.printBox("OWNED SPREADSHEETS", "None")
		return
	}

	var sb strings.Builder
	for i, f := range files {
		sb.WriteString(fmt.Sprintf("%s  %s", f.ModifiedTime.Format("2006-01-02"), f.Name))
		if i < len(files)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("OWNED SPREADSHEETS (%d)", len(files)), sb.String())
}
