package sheets

import (
	"context"
	"time"

	"github.com/y4jaiops/y4j-YouthScan/internal/logging"
	"github.com/y4jaiops/y4j-YouthScan/internal/types"
	"go.uber.org/zap"
)

// WriterOptions configures a Writer.
type WriterOptions struct {
	// HeaderFromColumns makes the operator's column list the header of a new sheet.
	// When false, or when no columns are set, the first record's keys are used.
	HeaderFromColumns bool
	Timeout           time.Duration
	Logger            *zap.Logger
}

// Writer appends record batches to a spreadsheet, aligned to its header row.
type Writer struct {
	backend Backend
	opts    WriterOptions
	columns types.ColumnSpec
	logger  *zap.Logger
}

// NewWriter creates a Writer.
func NewWriter(backend Backend, opts WriterOptions) *Writer {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Writer{backend: backend, opts: opts, logger: logging.OrNop(opts.Logger)}
}

// ForColumns returns a Writer that seeds the header of empty sheets from cols.
func (w *Writer) ForColumns(cols types.ColumnSpec) *Writer {
	out := *w
	out.columns = append(types.ColumnSpec(nil), cols...)
	return &out
}

// AppendBatch appends records to sheet in one call. An existing header row is authoritative:
// each record is projected onto it, dropping extra keys and filling missing ones with "".
// An empty sheet gets its header written in the same call as the rows.
// An empty batch is a no-op that touches nothing.
func (w *Writer) AppendBatch(ctx context.Context, sheet types.SheetHandle, records []types.Record) (types.SheetHandle, error) {
	if len(records) == 0 {
		return sheet, nil
	}
	if sheet.ID == "" {
		return sheet, &WriteError{Kind: KindInvalid, Message: "no destination spreadsheet"}
	}

	ctx, cancel := context.WithTimeout(ctx, w.opts.Timeout)
	defer cancel()

	// Re-read the header so a handle resolved before another session's first write stays correct
	header, err := w.backend.ReadHeader(ctx, sheet.ID)
	if err != nil {
		return sheet, &WriteError{
			Kind: classify(err, KindRejected), SpreadsheetID: sheet.ID, Message: "failed to read header row", Cause: err,
		}
	}

	rows := make([][]string, 0, len(records)+1)
	writeHeader := len(header) == 0
	if writeHeader {
		header = w.initialHeader(records)
		if len(header) == 0 {
			return sheet, &WriteError{Kind: KindInvalid, SpreadsheetID: sheet.ID, Message: "cannot derive a header from empty records"}
		}
		rows = append(rows, header)
	}
	for _, r := range records {
		rows = append(rows, r.Project(header))
	}

	start := time.Now()
	if err := w.backend.AppendRows(ctx, sheet.ID, rows); err != nil {
		return sheet, &WriteError{
			Kind: classify(err, KindRejected), SpreadsheetID: sheet.ID, Message: "batch append rejected", Cause: err,
		}
	}

	w.logger.Info("rows appended",
		zap.String("spreadsheet_id", sheet.ID),
		zap.Int("rows", len(records)),
		zap.Bool("header_written", writeHeader),
		zap.Duration("duration", time.Since(start)),
	)

	sheet.Header = header
	return sheet, nil
}

// AppendRecord appends a single record.
func (w *Writer) AppendRecord(ctx context.Context, sheet types.SheetHandle, record types.Record) (types.SheetHandle, error) {
	return w.AppendBatch(ctx, sheet, []types.Record{record})
}

func (w *Writer) initialHeader(records []types.Record) []string {
	if w.opts.HeaderFromColumns && len(w.columns) > 0 {
		return append([]string(nil), w.columns...)
	}
	return records[0].Keys()
}
