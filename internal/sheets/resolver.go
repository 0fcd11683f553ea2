package sheets

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/y4jaiops/y4j-YouthScan/internal/logging"
	"github.com/y4jaiops/y4j-YouthScan/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultTimeout bounds each backing-store round trip.
const DefaultTimeout = 30 * time.Second

// Resolver finds a spreadsheet by name or creates it.
type Resolver struct {
	backend Backend
	timeout time.Duration
	logger  *zap.Logger
	group   singleflight.Group
}

// NewResolver creates a Resolver. A zero timeout means DefaultTimeout.
func NewResolver(backend Backend, timeout time.Duration, logger *zap.Logger) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{backend: backend, timeout: timeout, logger: logging.OrNop(logger)}
}

// ResolveOrCreate returns the spreadsheet named name, creating it when none exists.
// When several spreadsheets share the name, the most recently modified one wins and the
// collision is logged as a warning. Concurrent calls for the same name share one lookup.
func (r *Resolver) ResolveOrCreate(ctx context.Context, name, folderID string) (types.SheetHandle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.SheetHandle{}, &ResolutionError{Kind: KindInvalid, Message: "spreadsheet name is required"}
	}

	v, err, _ := r.group.Do(name+"\x00"+folderID, func() (interface{}, error) {
		return r.resolve(ctx, name, folderID)
	})
	if err != nil {
		return types.SheetHandle{}, err
	}
	return v.(types.SheetHandle), nil
}

func (r *Resolver) resolve(ctx context.Context, name, folderID string) (types.SheetHandle, error) {
	log := r.logger.With(zap.String("spreadsheet", name), zap.String("folder_id", folderID))

	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	matches, err := r.backend.FindByName(lookupCtx, name, folderID)
	cancel()
	if err != nil {
		return types.SheetHandle{}, &ResolutionError{
			Kind: classify(err, KindLookupFailed), Name: name, Message: "spreadsheet search failed", Cause: err,
		}
	}

	if len(matches) == 0 {
		createCtx, cancel := context.WithTimeout(ctx, r.timeout)
		created, err := r.backend.Create(createCtx, name, folderID)
		cancel()
		if err != nil {
			return types.SheetHandle{}, &ResolutionError{
				Kind: classify(err, KindCreateFailed), Name: name, Message: "spreadsheet could not be created", Cause: err,
			}
		}
		log.Info("spreadsheet created", zap.String("spreadsheet_id", created.ID))
		return handleFor(created, nil), nil
	}

	chosen := pickMostRecent(matches)
	if len(matches) > 1 {
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		log.Warn("multiple spreadsheets share this name; using the most recently modified",
			zap.String("spreadsheet_id", chosen.ID),
			zap.Strings("candidates", ids),
		)
	}

	headerCtx, cancel := context.WithTimeout(ctx, r.timeout)
	header, err := r.backend.ReadHeader(headerCtx, chosen.ID)
	cancel()
	if err != nil {
		return types.SheetHandle{}, &ResolutionError{
			Kind: classify(err, KindLookupFailed), Name: name, Message: "failed to read header row", Cause: err,
		}
	}

	log.Debug("spreadsheet resolved", zap.String("spreadsheet_id", chosen.ID), zap.Int("header_columns", len(header)))
	return handleFor(chosen, header), nil
}

// pickMostRecent orders by modification time, newest first, breaking ties by id so the
// choice is stable across runs.
func pickMostRecent(files []File) File {
	sorted := make([]File, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].ModifiedTime.Equal(sorted[j].ModifiedTime) {
			return sorted[i].ModifiedTime.After(sorted[j].ModifiedTime)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted[0]
}

func handleFor(f File, header []string) types.SheetHandle {
	return types.SheetHandle{
		ID:           f.ID,
		Name:         f.Name,
		URL:          URL(f.ID),
		Header:       header,
		ModifiedTime: f.ModifiedTime,
	}
}
