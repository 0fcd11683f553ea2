package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/y4jaiops/y4j-YouthScan/internal/config"
	"github.com/y4jaiops/y4j-YouthScan/internal/document"
	"github.com/y4jaiops/y4j-YouthScan/internal/extraction"
	"github.com/y4jaiops/y4j-YouthScan/internal/llm"
	"github.com/y4jaiops/y4j-YouthScan/internal/logging"
	"github.com/y4jaiops/y4j-YouthScan/internal/observability"
	"github.com/y4jaiops/y4j-YouthScan/internal/pipeline"
	"github.com/y4jaiops/y4j-YouthScan/internal/sheets"
	"github.com/y4jaiops/y4j-YouthScan/internal/types"
	"go.uber.org/zap"
)

// needs selects which external services a command connects to.
type needs struct {
	model  bool
	sheets bool
}

// app holds the wired components for one command invocation.
type app struct {
	cfg          *config.Config
	logger       *zap.Logger
	printer      *observability.Printer
	client       llm.Client
	backend      *sheets.GoogleBackend
	orchestrator *pipeline.Orchestrator
	drive        *document.DriveFetcher
	janitor      *sheets.Janitor
}

// loadConfig reads the config file and environment, honoring --verbose.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// newApp connects to the services a command needs. apiKey overrides the configured key.
func newApp(ctx context.Context, n needs, apiKey string, tier llm.ModelTier) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if apiKey != "" {
		cfg.GeminiAPIKey = apiKey
	}

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, printer: observability.NewPrinter(os.Stderr)}

	var extractor pipeline.Extractor
	if n.model {
		key, err := cfg.RequireAPIKey()
		if err != nil {
			return nil, err
		}
		llmCfg := llm.DefaultConfig().WithModel(llm.TierStandard, cfg.Model)
		a.client, err = llm.NewClient(ctx, llmCfg, key)
		if err != nil {
			return nil, err
		}
		ext, err := extraction.New(a.client, extraction.Options{
			Tier:    tier,
			Timeout: cfg.ModelTimeout.Std(),
			Logger:  logger,
		})
		if err != nil {
			a.close()
			return nil, err
		}
		extractor = ext
	}

	var resolver pipeline.Resolver
	var writer *sheets.Writer
	if n.sheets {
		backend, sa, err := sheets.NewGoogleBackendFromConfig(ctx, cfg)
		if err != nil {
			a.close()
			return nil, err
		}
		logger.Debug("service account loaded", zap.String("principal", sa.Email))

		a.backend = backend
		a.drive = document.NewDriveFetcher(document.APIFiles{Service: backend.Drive()}, 0, logger)
		a.janitor = sheets.NewJanitor(backend, cfg.SheetsTimeout.Std(), logger)
		resolver = sheets.NewResolver(backend, cfg.SheetsTimeout.Std(), logger)
		writer = sheets.NewWriter(backend, sheets.WriterOptions{
			HeaderFromColumns: cfg.HeaderFromColumnSpec(),
			Timeout:           cfg.SheetsTimeout.Std(),
			Logger:            logger,
		})
	}

	var onProgress pipeline.ProgressCallback
	if cfg.Verbose {
		onProgress = func(e pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", e.Step, e.Message)
		}
	}

	a.orchestrator = pipeline.New(extractor, resolver, writer, pipeline.Options{
		SpreadsheetName: cfg.SpreadsheetName,
		FolderID:        cfg.Folder(),
		OnProgress:      onProgress,
		Logger:          logger,
	})
	return a, nil
}

func (a *app) close() {
	if a.client != nil {
		_ = a.client.Close()
	}
	_ = a.logger.Sync()
}

// columns returns the --columns override, or the configured list.
func (a *app) columns(override string) (types.ColumnSpec, error) {
	return resolveColumns(override, a.cfg.Columns)
}

func resolveColumns(override string, configured []string) (types.ColumnSpec, error) {
	if strings.TrimSpace(override) != "" {
		return types.ParseColumnSpec(override)
	}
	return types.NewColumnSpec(configured)
}

// loadDocument reads the document named by exactly one of path or driveLink.
func (a *app) loadDocument(ctx context.Context, path, driveLink string) (types.DocumentBlob, error) {
	if driveLink != "" {
		if a.drive == nil {
			return types.DocumentBlob{}, config.ErrMissingCredentials
		}
		return a.drive.Fetch(ctx, driveLink)
	}
	return document.FromFile(path)
}

// saveTarget builds the destination overrides. --folder is only applied when given, so
// an explicit --folder "" saves without a folder scope.
func saveTarget(cmd *cobra.Command, spreadsheet, folder string) pipeline.SaveTarget {
	target := pipeline.SaveTarget{SpreadsheetName: spreadsheet}
	if cmd.Flags().Changed("folder") {
		target.FolderID = &folder
	}
	return target
}

// reviewFile is the on-disk format written by analyze and read by save and export.
type reviewFile struct {
	Columns []string       `json:"columns"`
	Records []types.Record `json:"records"`
}

func readReviewFile(path string) (types.ColumnSpec, []types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read review file: %w", err)
	}

	var rf reviewFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, nil, fmt.Errorf("failed to parse review file %s: %w", path, err)
	}
	cols, err := types.NewColumnSpec(rf.Columns)
	if err != nil {
		return nil, nil, fmt.Errorf("review file %s: %w", path, err)
	}
	return cols, rf.Records, nil
}

func writeReviewFile(path string, cols types.ColumnSpec, records []types.Record) error {
	data, err := json.MarshalIndent(reviewFile{Columns: cols, Records: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write review file: %w", err)
	}
	return nil
}
