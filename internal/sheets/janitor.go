package sheets

import (
	"context"
	"time"

	"github.com/y4jaiops/y4j-YouthScan/internal/logging"
	"go.uber.org/zap"
)

// CleanupFailure records a spreadsheet that could not be deleted.
type CleanupFailure struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// CleanupReport summarizes a DeleteAllOwned run.
type CleanupReport struct {
	Found   int              `json:"found"`
	Deleted int              `json:"deleted"`
	Failed  []CleanupFailure `json:"failed,omitempty"`
}

// Janitor removes spreadsheets owned by the writing identity to reclaim its storage quota.
type Janitor struct {
	backend Backend
	timeout time.Duration
	logger  *zap.Logger
}

// NewJanitor creates a Janitor. A zero timeout means DefaultTimeout per call.
func NewJanitor(backend Backend, timeout time.Duration, logger *zap.Logger) *Janitor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Janitor{backend: backend, timeout: timeout, logger: logging.OrNop(logger)}
}

// ListOwned returns the spreadsheets DeleteAllOwned would remove.
func (j *Janitor) ListOwned(ctx context.Context) ([]File, error) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	files, err := j.backend.ListOwned(ctx)
	if err != nil {
		return nil, &ResolutionError{
			Kind: classify(err, KindLookupFailed), Message: "failed to list owned spreadsheets", Cause: err,
		}
	}
	return files, nil
}

// DeleteAllOwned deletes every owned spreadsheet. A failed delete is recorded and skipped.
// Only a failed listing or a cancelled context ends the run early.
func (j *Janitor) DeleteAllOwned(ctx context.Context) (CleanupReport, error) {
	files, err := j.ListOwned(ctx)
	if err != nil {
		return CleanupReport{}, err
	}

	report := CleanupReport{Found: len(files)}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		delCtx, cancel := context.WithTimeout(ctx, j.timeout)
		err := j.backend.Delete(delCtx, f.ID)
		cancel()
		if err != nil {
			j.logger.Warn("failed to delete spreadsheet",
				zap.String("spreadsheet_id", f.ID),
				zap.String("spreadsheet", f.Name),
				zap.Error(err),
			)
			report.Failed = append(report.Failed, CleanupFailure{ID: f.ID, Name: f.Name, Error: err.Error()})
			continue
		}
		report.Deleted++
	}

	j.logger.Info("owned spreadsheets cleaned up",
		zap.Int("found", report.Found),
		zap.Int("deleted", report.Deleted),
		zap.Int("failed", len(report.Failed)),
	)
	return report, nil
}
