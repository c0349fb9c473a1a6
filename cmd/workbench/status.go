package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexramsey92/ai-web-design-workbench/internal/llm"
	"github.com/alexramsey92/ai-web-design-workbench/internal/observability"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the AI backend configuration and probe it",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var statusSkipCheck bool

func init() {
	statusCmd.Flags().BoolVar(&statusSkipCheck, "no-check", false, "Skip the backend health check")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	client, err := llm.NewClient(cmd.Context(), cfg.LLMConfig(), log)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	out := cmd.OutOrStdout()
	observability.NewPrinter(out).PrintAIStatus(client.Config())
	if !client.Enabled() || statusSkipCheck {
		return nil
	}

	_, _ = fmt.Fprintln(out, "Testing connection...")
	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()
	if client.HealthCheck(ctx) {
		_, _ = fmt.Fprintln(out, "✓ AI service is reachable")
		return nil
	}
	_, _ = fmt.Fprintln(out, "✗ AI service is not reachable")
	return fmt.Errorf("AI health check failed")
}
