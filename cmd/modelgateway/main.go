package main

import (
	"errors"
	"fmt"
	"log"

	"docreview/internal/config"
	"docreview/internal/domain"
	"docreview/internal/handler"
	"docreview/internal/llm"
	"docreview/internal/llm/claude"
	"docreview/internal/llm/openai"
	"docreview/internal/logger"
	"docreview/internal/port"
	"docreview/internal/router"
	"docreview/internal/server"
	"docreview/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func registerProviders() {
	llm.RegisterProvider("openrouter", func(cfg *config.LLMProviderConfig) (port.ChatModel, error) {
		return openai.NewOpenRouterClient(cfg), nil
	})
	llm.RegisterProvider("openai", func(cfg *config.LLMProviderConfig) (port.ChatModel, error) {
		return openai.NewClient(cfg), nil
	})
	llm.RegisterProvider("claude", func(cfg *config.LLMProviderConfig) (port.ChatModel, error) {
		return claude.NewClient(cfg), nil
	})
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog := logger.New(cfg.Log, "ai-analysis")
	server.SetMode(cfg.Server)
	registerProviders()

	// A missing provider key is not fatal: /health stays up and /ai answers 500.
	model, err := llm.NewChain(&cfg.LLM)
	if err != nil {
		if !errors.Is(err, domain.ErrModelNotConfigured) {
			return fmt.Errorf("failed to build llm chain: %w", err)
		}
		zlog.Warn().Err(err).Msg("model provider not configured")
	}

	modelH := handler.NewModelHandler(service.NewModelService(model))
	healthH := handler.NewHealthHandler("ai-analysis", nil)

	r := router.SetupModelGateway(
		router.Common{Logger: zlog, AllowedOrigins: cfg.CORS.AllowedOrigins},
		cfg.Inference.APIKey, modelH, healthH,
	)

	zlog.Info().Str("primary", cfg.LLM.Primary.Provider).Str("secondary", cfg.LLM.Secondary.Provider).Msg("model gateway configured")
	return server.Run(cfg.Server, r, zlog)
}
