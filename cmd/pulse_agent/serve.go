package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-pulse/internal/config"
	"github.com/jonathan/candidate-pulse/internal/server"
)

var (
	servePort        int
	serveConfigPath  string
	serveNoRateLimit bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the scoring, snapshot, and ATS webhook endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	serveCmd.Flags().BoolVar(&serveNoRateLimit, "no-rate-limit", false, "Disable per-IP rate limiting")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.DefaultConfig()
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded.MergeWithDefaults(cfg)
	}
	cfg.FromEnv()
	if servePort > 0 {
		cfg.Port = servePort
	}
	if serveNoRateLimit {
		cfg.RateLimitDisabled = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:             cfg.Port,
		DatabaseURL:      cfg.DatabaseURL,
		ATSWebhookURL:    cfg.ATSWebhookURL,
		ShutdownTimeout:  time.Duration(cfg.ShutdownTimeout) * time.Second,
		RateLimitEnabled: !cfg.RateLimitDisabled,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
