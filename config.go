package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Dmetrikx/goPersonaChatter/internal/ai"
	"github.com/Dmetrikx/goPersonaChatter/internal/config"
	"github.com/Dmetrikx/goPersonaChatter/internal/evaluate"
	"github.com/Dmetrikx/goPersonaChatter/internal/logging"
	"github.com/Dmetrikx/goPersonaChatter/internal/persona"
	"github.com/Dmetrikx/goPersonaChatter/internal/responder"
)

// app holds the wired persona system shared by every command
type app struct {
	config   *config.Config
	logger   *slog.Logger
	registry *persona.Registry
	system   *responder.System
}

// loadConfig loads the environment configuration and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if flagPersonaFile != "" {
		cfg.PersonaFile = flagPersonaFile
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagParallel {
		cfg.Parallel = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp builds the persona system from cfg, logging to logOut
func newApp(ctx context.Context, cfg *config.Config, logOut io.Writer) (*app, error) {
	logger := logging.New(logOut, cfg.LogFormat, cfg.LogLevel)

	gateway, err := ai.NewGatewayFromSettings(ctx, ai.Settings{
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		GeminiAPIKey: cfg.GeminiAPIKey,
		OpenAIModel:  cfg.OpenAIModel,
		GeminiModel:  cfg.GeminiModel,
		Temperature:  float32(cfg.Temperature),
		MaxTokens:    cfg.MaxTokens,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating AI gateway: %w", err)
	}

	registry := persona.NewRegistry()
	persona.RegisterBuiltins(registry)
	if cfg.PersonaFile != "" {
		n, err := persona.RegisterFile(registry, cfg.PersonaFile)
		if err != nil {
			return nil, fmt.Errorf("error loading personas: %w", err)
		}
		logger.InfoContext(ctx, "loaded personas from file",
			"path", cfg.PersonaFile,
			"count", n)
	}

	evaluator := evaluate.New(gateway, cfg.JudgeBackend, cfg.JudgeModel, logger)
	system := responder.New(registry, gateway, evaluator, responder.Config{Parallel: cfg.Parallel}, logger)

	return &app{
		config:   cfg,
		logger:   logger,
		registry: registry,
		system:   system,
	}, nil
}
