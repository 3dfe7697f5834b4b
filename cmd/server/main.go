package main

import (
	"fmt"
	"log"

	_ "docreview/docs"
	"docreview/internal/client/inference"
	"docreview/internal/client/resultstore"
	"docreview/internal/client/scanner"
	"docreview/internal/config"
	"docreview/internal/handler"
	"docreview/internal/logger"
	"docreview/internal/prompt"
	"docreview/internal/router"
	"docreview/internal/server"
	"docreview/internal/service"
)

// @title Document Review API
// @version 1.0
// @description Orchestrates document scanning, model analysis and result storage for contract review and comparison.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog := logger.New(cfg.Log, "orchestrator")
	server.SetMode(cfg.Server)

	prompts, err := prompt.Load(cfg.Prompts)
	if err != nil {
		return fmt.Errorf("failed to load prompts: %w", err)
	}

	// Initialize collaborator clients
	scanClient := scanner.NewClient(&cfg.Scanner)
	inferClient := inference.NewClient(&cfg.Inference)
	storeClient := resultstore.NewClient(&cfg.Store.CollaboratorConfig)

	// Initialize services
	reviewSvc := service.NewReviewService(inferClient, storeClient, prompts.Review)
	compareSvc := service.NewCompareService(scanClient, inferClient, prompts.Compare)

	// Initialize handlers
	reviewH := handler.NewReviewHandler(reviewSvc)
	compareH := handler.NewCompareHandler(compareSvc, cfg.Server.MaxUploadBytes())
	healthH := handler.NewHealthHandler("orchestrator", nil)

	r := router.SetupOrchestrator(
		router.Common{Logger: zlog, AllowedOrigins: cfg.CORS.AllowedOrigins},
		reviewH, compareH, healthH,
	)

	zlog.Info().
		Str("scanner", cfg.Scanner.URL).
		Str("inference", cfg.Inference.URL).
		Str("store", cfg.Store.URL).
		Msg("orchestrator configured")
	return server.Run(cfg.Server, r, zlog)
}
