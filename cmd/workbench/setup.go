package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexramsey92/ai-web-design-workbench/internal/config"
	"github.com/alexramsey92/ai-web-design-workbench/internal/generation"
	"github.com/alexramsey92/ai-web-design-workbench/internal/llm"
	"github.com/alexramsey92/ai-web-design-workbench/internal/logger"
)

// setup loads the effective configuration and a stderr logger.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configPath, os.LookupEnv)
	if err != nil {
		return nil, nil, err
	}
	opts := cfg.LoggerOptions()
	opts.Writer = os.Stderr
	log, err := logger.New(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

// newGenerator wires the AI client and the orchestrator. The returned
// client is never nil; close it when done.
func newGenerator(ctx context.Context, cfg *config.Config, log *logger.Logger) (*generation.Orchestrator, *llm.Client, error) {
	client, err := llm.NewClient(ctx, cfg.LLMConfig(), log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	client = client.WithGuardrails(cfg.GuardrailLimits())

	var ai generation.Generator
	if client.Enabled() {
		ai = client
	}
	orch, err := generation.New(ai, cfg.GenerationOptions(), log)
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to create generator: %w", err)
	}
	return orch, client, nil
}
