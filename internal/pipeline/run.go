// Package pipeline wires a selected document and column list through extraction and into
// the destination spreadsheet.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/y4jaiops/y4j-YouthScan/internal/logging"
	"github.com/y4jaiops/y4j-YouthScan/internal/sheets"
	"github.com/y4jaiops/y4j-YouthScan/internal/types"
	"go.uber.org/zap"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when progress occurs
type ProgressCallback func(event ProgressEvent)

// Progress steps.
const (
	StepExtract = "extract"
	StepResolve = "resolve"
	StepAppend  = "append"
)

// Extractor turns a document into records.
type Extractor interface {
	Extract(ctx context.Context, doc types.DocumentBlob, cols types.ColumnSpec) ([]types.Record, error)
}

// Resolver finds or creates the destination spreadsheet.
type Resolver interface {
	ResolveOrCreate(ctx context.Context, name, folderID string) (types.SheetHandle, error)
}

// Options holds the defaults used by Save.
type Options struct {
	SpreadsheetName string
	FolderID        string
	OnProgress      ProgressCallback
	Logger          *zap.Logger
}

// Orchestrator runs the analyze and save actions. Each call is independent; no state is
// kept between an Analyze and the Save of its (possibly edited) records.
type Orchestrator struct {
	extractor Extractor
	resolver  Resolver
	writer    *sheets.Writer
	opts      Options
	logger    *zap.Logger
}

// New creates an Orchestrator.
func New(extractor Extractor, resolver Resolver, writer *sheets.Writer, opts Options) *Orchestrator {
	return &Orchestrator{
		extractor: extractor,
		resolver:  resolver,
		writer:    writer,
		opts:      opts,
		logger:    logging.OrNop(opts.Logger),
	}
}

// AnalyzeResult is the outcome of Analyze, ready for operator review.
type AnalyzeResult struct {
	Document string           `json:"document,omitempty"`
	Source   types.Source     `json:"source"`
	Columns  types.ColumnSpec `json:"columns"`
	Records  []types.Record   `json:"records"`
	Duration time.Duration    `json:"duration"`
}

// SaveTarget overrides the configured destination for one Save. A nil FolderID keeps the
// configured folder; a non-nil empty one saves without a folder scope.
type SaveTarget struct {
	SpreadsheetName string  `json:"spreadsheet_name,omitempty"`
	FolderID        *string `json:"folder_id,omitempty"`
}

// SaveResult is the outcome of Save.
type SaveResult struct {
	Sheet    types.SheetHandle `json:"sheet"`
	Appended int               `json:"appended"`
	URL      string            `json:"url"`
}

// Analyze extracts the records in doc over cols.
func (o *Orchestrator) Analyze(ctx context.Context, doc types.DocumentBlob, cols types.ColumnSpec) (*AnalyzeResult, error) {
	if o.extractor == nil {
		return nil, fmt.Errorf("extraction is not configured")
	}

	o.emit(StepExtract, fmt.Sprintf("Extracting %d columns from %s document", len(cols), doc.Source), nil)
	start := time.Now()
	records, err := o.extractor.Extract(ctx, doc, cols)
	if err != nil {
		return nil, err
	}

	result := &AnalyzeResult{
		Document: doc.Name,
		Source:   doc.Source,
		Columns:  cols,
		Records:  records,
		Duration: time.Since(start),
	}
	o.emit(StepExtract, fmt.Sprintf("Found %d candidate(s)", len(records)), result)
	return result, nil
}

// Save appends records to the destination spreadsheet in a single batch. The sheet's
// existing header decides which fields land where; keys outside cols are kept so that a
// header column the current list does not name still receives its value.
// An empty record list succeeds without touching the spreadsheet.
func (o *Orchestrator) Save(ctx context.Context, cols types.ColumnSpec, records []types.Record, target SaveTarget) (*SaveResult, error) {
	if o.resolver == nil || o.writer == nil {
		return nil, fmt.Errorf("spreadsheet access is not configured")
	}
	if err := cols.Validate(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		o.emit(StepAppend, "Nothing to save", nil)
		return &SaveResult{}, nil
	}

	name, folder := o.opts.SpreadsheetName, o.opts.FolderID
	if target.SpreadsheetName != "" {
		name = target.SpreadsheetName
	}
	if target.FolderID != nil {
		folder = strings.TrimSpace(*target.FolderID)
	}

	o.emit(StepResolve, fmt.Sprintf("Locating spreadsheet %q", name), nil)
	sheet, err := o.resolver.ResolveOrCreate(ctx, name, folder)
	if err != nil {
		return nil, err
	}

	aligned := make([]types.Record, len(records))
	for i, r := range records {
		aligned[i] = r.Arrange(cols)
	}

	o.emit(StepAppend, fmt.Sprintf("Appending %d row(s) to %s", len(aligned), sheet.Name), nil)
	sheet, err = o.writer.ForColumns(cols).AppendBatch(ctx, sheet, aligned)
	if err != nil {
		return nil, err
	}

	result := &SaveResult{Sheet: sheet, Appended: len(aligned), URL: sheet.URL}
	o.logger.Info("records saved",
		zap.String("spreadsheet_id", sheet.ID),
		zap.Int("rows", result.Appended),
	)
	o.emit(StepAppend, "Saved", result)
	return result, nil
}

// Scan runs Analyze and saves its records without a review step.
func (o *Orchestrator) Scan(ctx context.Context, doc types.DocumentBlob, cols types.ColumnSpec, target SaveTarget) (*AnalyzeResult, *SaveResult, error) {
	analyzed, err := o.Analyze(ctx, doc, cols)
	if err != nil {
		return nil, nil, err
	}
	saved, err := o.Save(ctx, cols, analyzed.Records, target)
	if err != nil {
		return analyzed, nil, err
	}
	return analyzed, saved, nil
}

func (o *Orchestrator) emit(step, message string, content any) {
	if o.opts.OnProgress != nil {
		o.opts.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}
