// Package export writes reviewed records to a local workbook.
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"github.com/y4jaiops/y4j-YouthScan/internal/types"
)

// SheetName is the worksheet the records are written to.
const SheetName = "Candidates"

const maxColumnWidth = 48

// WriteXLSX writes cols as a bold header row followed by one row per record, in column order.
func WriteXLSX(w io.Writer, cols types.ColumnSpec, records []types.Record) error {
	if err := cols.Validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	widths := make([]int, len(cols))
	write := func(row int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		cells := make([]interface{}, len(values))
		for i, v := range values {
			cells[i] = v
			if len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
		return f.SetSheetRow(SheetName, cell, &cells)
	}

	if err := write(1, cols); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	for i, r := range records {
		if err := write(i+2, r.Project(cols)); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(cols), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}

	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(SheetName, col, col, float64(min(width+2, maxColumnWidth)))
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// XLSXBytes returns the workbook WriteXLSX would write.
func XLSXBytes(cols types.ColumnSpec, records []types.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, cols, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
