package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/y4jaiops/y4j-YouthScan/internal/config"
	"github.com/y4jaiops/y4j-YouthScan/internal/llm"
	"github.com/y4jaiops/y4j-YouthScan/internal/server"
	"github.com/y4jaiops/y4j-YouthScan/internal/server/ratelimit"
	"go.uber.org/zap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server exposing analyze, save, export and admin cleanup endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: configured port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, needs{model: true, sheets: true}, "", llm.TierStandard)
	if err != nil {
		return err
	}
	defer a.close()

	cols, err := a.columns("")
	if err != nil {
		return err
	}

	port := a.cfg.Port
	if servePort != 0 {
		port = servePort
	}

	jwtCfg, err := config.NewJWTConfig()
	switch {
	case errors.Is(err, config.ErrAdminDisabled):
		a.logger.Warn("admin endpoints disabled", zap.Error(err))
	case err != nil:
		return err
	}

	srv, err := server.New(server.Config{
		Port:      port,
		Columns:   cols,
		JWT:       jwtCfg,
		RateLimit: ratelimit.LoadConfig(),
		Logger:    a.logger,
	}, server.Deps{
		Orchestrator: a.orchestrator,
		Drive:        a.drive,
		Cleaner:      a.janitor,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
