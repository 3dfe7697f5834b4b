package main

import (
	"context"
	"fmt"
	"log"

	"docreview/internal/config"
	"docreview/internal/handler"
	"docreview/internal/logger"
	"docreview/internal/port"
	"docreview/internal/repository/postgres"
	"docreview/internal/router"
	"docreview/internal/server"
	"docreview/internal/service"
	s3storage "docreview/internal/storage/s3"
)

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

	zlog := logger.New(cfg.Log, "analysis-service")
	server.SetMode(cfg.Server)

	var repo port.AnalysisRepository
	checkers := map[string]port.HealthChecker{}

	switch cfg.Store.Backend {
	case "s3":
		client, err := s3storage.NewS3Client(context.Background(), &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		s3Repo := s3storage.NewAnalysisResultRepo(client, cfg.S3.Bucket, cfg.S3.Prefix)
		repo = s3Repo
		checkers["s3"] = s3Repo
	case "", "postgres":
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		repo = postgres.NewAnalysisResultRepo(db)
		checkers["database"] = db
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	analysisSvc := service.NewAnalysisService(repo)
	analysisH := handler.NewAnalysisHandler(analysisSvc)
	healthH := handler.NewHealthHandler("analysis-service", checkers)

	r := router.SetupResultStore(
		router.Common{Logger: zlog, AllowedOrigins: cfg.CORS.AllowedOrigins},
		cfg.Store.APIKey, analysisH, healthH,
	)

	zlog.Info().Str("backend", cfg.Store.Backend).Bool("api_key", cfg.Store.APIKey != "").Msg("result store configured")
	return server.Run(cfg.Server, r, zlog)
}
