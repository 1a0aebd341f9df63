package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/retailops/poextract/internal/config"
	"github.com/retailops/poextract/internal/server"
	"github.com/retailops/poextract/internal/store"
	"github.com/retailops/poextract/internal/store/postgres"
)

var configFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for purchase-order extraction.

The API provides endpoints for:
  - POST /api/v1/extract        - Extract a PDF purchase order
  - POST /api/v1/extract/text   - Extract the raw text layer of a PDF
  - POST /api/v1/validate       - Validate an extraction result
  - POST /api/v1/templates/test - Dry-run a template against text
  - GET  /api/v1/templates      - List active templates
  - GET  /health                - Health check

Templates come from Postgres when db.dsn is configured, from the JSON
file named by templates.file otherwise, and are empty when neither is
set (generic parsing only).

Examples:
  # Start with defaults
  poextract serve

  # Start with a config file
  poextract serve --config config.yaml

  # Configure via environment
  POEXTRACT_DB_DSN=postgres://... poextract serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&configFile, "config", "c", "", "Config file path")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	templates, err := buildTemplateSource(cfg)
	if err != nil {
		return err
	}

	srv := server.NewServer(&server.Config{
		Address:      cfg.Server.Address,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		Debug:        cfg.Server.Debug,
	}, templates)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", cfg.Server.Address)
	return srv.Run()
}

func buildTemplateSource(cfg *config.Config) (store.TemplateSource, error) {
	switch {
	case cfg.DB.DSN != "":
		db, err := postgres.Open(cfg.DB.DSN)
		if err != nil {
			return nil, fmt.Errorf("connecting to template database: %w", err)
		}
		fmt.Println("Using Postgres template source")
		return postgres.NewTemplateRepo(db), nil

	case cfg.Templates.File != "":
		source, err := store.NewFileSource(cfg.Templates.File)
		if err != nil {
			return nil, fmt.Errorf("loading template file: %w", err)
		}
		fmt.Printf("Using template file %s\n", cfg.Templates.File)
		return source, nil

	default:
		fmt.Println("No template source configured (generic parsing only)")
		return store.Static(nil), nil
	}
}
