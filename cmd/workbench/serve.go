package main

import (
	"github.com/spf13/cobra"

	"github.com/alexramsey92/ai-web-design-workbench/internal/db"
	"github.com/alexramsey92/ai-web-design-workbench/internal/server"
	"github.com/alexramsey92/ai-web-design-workbench/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server exposing generation, preview, scoring, palettes and stored brands.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	orch, client, err := newGenerator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	limits := ratelimit.DefaultConfig(cfg.RateLimit.GeneratePerMinute, cfg.RateLimit.ScorePerMinute)
	limits.Enabled = !cfg.RateLimit.Disabled

	srvCfg := server.Config{
		Addr:      cfg.ServerAddr,
		Generator: orch,
		AI:        client,
		Limiter:   ratelimit.NewLimiter(limits),
		Log:       log,
	}
	if serveAddr != "" {
		srvCfg.Addr = serveAddr
	}

	if cfg.DatabaseURL != "" {
		store, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()
		srvCfg.Brands = store
		log.Info("brand store connected")
	} else {
		log.Warn("DATABASE_URL not set, brand endpoints are disabled")
	}

	log.WithFields(map[string]any{
		"ai_enabled": orch.AIEnabled(),
		"variant":    orch.Variant(),
	}).Info("generator ready")
	return server.New(srvCfg).Start(ctx)
}
