package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathify/pathify-backend/internal/config"
	"github.com/pathify/pathify-backend/internal/server"
)

var (
	serveConfigPath string
	servePort       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the HTTP server that exposes the waitlist, assessment, roadmap,
PDF, and admin template endpoints.

Configuration comes from the environment (.env is loaded when present). A JSON
config file can be supplied with --config; explicit flags win over both.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT env var, then 8000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.FromEnv()

	if serveConfigPath != "" {
		fileCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:                     cfg.Port,
		DatabaseURL:              cfg.DatabaseURL,
		GoogleSheetID:            cfg.GoogleSheetID,
		GoogleServiceAccountJSON: cfg.GoogleServiceAccountJSON,
		GeminiAPIKey:             cfg.GeminiAPIKey,
		GeminiModel:              cfg.GeminiModel,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
