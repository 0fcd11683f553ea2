// Package extraction turns a scanned document into candidate records using a
// vision-capable model.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
	"github.com/y4jaiops/y4j-YouthScan/internal/llm"
	"github.com/y4jaiops/y4j-YouthScan/internal/logging"
	"github.com/y4jaiops/y4j-YouthScan/internal/prompts"
	"github.com/y4jaiops/y4j-YouthScan/internal/types"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single model call when Options.Timeout is zero.
const DefaultTimeout = 90 * time.Second

// Options configures an Extractor.
type Options struct {
	Tier    llm.ModelTier
	Timeout time.Duration
	Logger  *zap.Logger
}

// Extractor sends a document and a column list to the model and returns normalized records.
// Every call makes exactly one model request; nothing is cached or retried.
type Extractor struct {
	client  llm.Client
	tier    llm.ModelTier
	timeout time.Duration
	logger  *zap.Logger
	schema  *gojsonschema.Schema
}

// New creates an Extractor backed by client.
func New(client llm.Client, opts Options) (*Extractor, error) {
	schema, err := compileResponseSchema()
	if err != nil {
		return nil, err
	}
	if opts.Tier == "" {
		opts.Tier = llm.TierStandard
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Extractor{
		client:  client,
		tier:    opts.Tier,
		timeout: opts.Timeout,
		logger:  logging.OrNop(opts.Logger),
		schema:  schema,
	}, nil
}

// BuildPrompt renders the extraction instruction for the given columns.
func BuildPrompt(cols types.ColumnSpec) string {
	template := prompts.MustGet("extraction.json", "extract-candidates")
	return prompts.Format(template, map[string]string{
		"Columns": cols.Joined(),
	})
}

// Extract returns one record per candidate found in doc. Each record holds exactly the
// requested columns in column order; fields the model could not find are "".
// On failure the returned error is always an *Error and no records are returned.
func (e *Extractor) Extract(ctx context.Context, doc types.DocumentBlob, cols types.ColumnSpec) ([]types.Record, error) {
	if err := cols.Validate(); err != nil {
		return nil, &Error{Kind: KindInput, Message: "column list is required", Cause: err}
	}
	if len(doc.Data) == 0 {
		return nil, &Error{Kind: KindInput, Message: "document is empty"}
	}

	extractionID := uuid.NewString()
	log := e.logger.With(
		zap.String("extraction_id", extractionID),
		zap.String("mime_type", doc.MIMEType),
		zap.Int("bytes", len(doc.Data)),
		zap.Int("columns", len(cols)),
	)

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	text, err := e.client.GenerateJSONFromDocument(callCtx, BuildPrompt(cols), doc, e.tier)
	if err != nil {
		xerr := classifyCallError(callCtx, err)
		log.Warn("model call failed", zap.String("kind", string(xerr.Kind)), zap.Error(err))
		return nil, xerr
	}

	records, err := e.parse(text, cols)
	if err != nil {
		log.Warn("model response rejected", zap.Error(err))
		return nil, err
	}

	log.Info("document extracted",
		zap.Int("records", len(records)),
		zap.Duration("duration", time.Since(start)),
	)
	return records, nil
}

func classifyCallError(ctx context.Context, err error) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, Message: "model call timed out", Cause: err}
	case errors.Is(err, llm.ErrContentBlocked):
		return &Error{Kind: KindBlocked, Message: "model refused the document", Cause: err}
	default:
		return &Error{Kind: KindAPICall, Message: "model call failed", Cause: err}
	}
}

// parse validates the model output and normalizes it to records over cols.
func (e *Extractor) parse(text string, cols types.ColumnSpec) ([]types.Record, error) {
	raw, err := llm.ExtractJSON(text)
	if err != nil {
		return nil, &Error{Kind: KindParse, Message: "unexpected content after the records", Cause: err}
	}
	if raw == "" {
		return nil, &Error{Kind: KindParse, Message: "empty response"}
	}
	if err := validateShape(e.schema, raw); err != nil {
		return nil, err
	}

	var decoded []types.Record
	if trimmed := bytes.TrimSpace([]byte(raw)); trimmed[0] == '{' {
		// The model sometimes flattens a single candidate into a bare object
		var single types.Record
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, &Error{Kind: KindParse, Message: "failed to decode record", Cause: err}
		}
		if msg, ok := modelReportedError(single, cols); ok {
			return nil, &Error{Kind: KindModel, Message: msg}
		}
		decoded = []types.Record{single}
	} else if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return nil, &Error{Kind: KindParse, Message: "failed to decode records", Cause: err}
	} else if len(decoded) == 1 {
		if msg, ok := modelReportedError(decoded[0], cols); ok {
			return nil, &Error{Kind: KindModel, Message: msg}
		}
	}

	if len(decoded) == 0 {
		return nil, &Error{Kind: KindNoCandidates, Message: "no candidates detected in document"}
	}

	records := make([]types.Record, len(decoded))
	for i, r := range decoded {
		records[i] = r.Conform(cols)
	}
	return records, nil
}

// modelReportedError recognizes a lone {"error": "..."} payload that is not data.
func modelReportedError(r types.Record, cols types.ColumnSpec) (string, bool) {
	if r.Len() != 1 || !r.Has("error") || cols.Contains("error") {
		return "", false
	}
	return r.Get("error"), true
}
