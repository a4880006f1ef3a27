package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/career-prep/internal/assessment"
	"github.com/jonathan/career-prep/internal/config"
	"github.com/jonathan/career-prep/internal/db"
	"github.com/jonathan/career-prep/internal/llm"
	"github.com/jonathan/career-prep/internal/observability"
	"github.com/jonathan/career-prep/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing authentication, resume scoring, interview, coding, assistant, and proctoring endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply the database schema and seed practice problems before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	appCfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != 0 {
		appCfg.Port = servePort
		if err := appCfg.Validate(); err != nil {
			return err
		}
	}
	if appCfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if appCfg.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY (or the %s provider key) environment variable is required", appCfg.LLM.Provider)
	}

	logger, err := observability.NewLogger(appCfg.Env, verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, appCfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if serveMigrate {
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		added, err := database.SeedProblems(ctx)
		if err != nil {
			database.Close()
			return fmt.Errorf("failed to seed problems: %w", err)
		}
		logger.Info("database schema applied", zap.Int("problems_added", added))
	}

	client, err := llm.NewClient(ctx, appCfg.LLM.ClientConfig(), appCfg.LLM.APIKey)
	if err != nil {
		database.Close()
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	settings := assessment.DefaultSettings()
	settings.FitConcurrency = appCfg.LLM.FitConcurrency
	pipeline := assessment.New(client, database, logger).WithSettings(settings)

	srv, err := server.New(server.Config{
		Port:           appCfg.Port,
		CORSOrigin:     appCfg.CORSOrigin,
		MaxUploadBytes: int64(appCfg.MaxUploadMB) << 20,
	}, database, pipeline, logger)
	if err != nil {
		database.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("configuration loaded",
		zap.String("env", appCfg.Env),
		zap.String("provider", appCfg.LLM.Provider),
		zap.Int("fit_concurrency", appCfg.LLM.FitConcurrency))
	return srv.Start(ctx)
}
