package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/questgen-flow/backend/internal/api"
	"github.com/questgen-flow/backend/internal/config"
	"github.com/questgen-flow/backend/internal/export"
	"github.com/questgen-flow/backend/internal/logger"
	"github.com/questgen-flow/backend/internal/repository"
	"github.com/questgen-flow/backend/internal/service"
	"github.com/questgen-flow/backend/internal/storage"
)

func main() {
	// Support CONFIG_PATH environment variable for production deployments
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Initialize database and the exam archive repository
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}
	examRepo := repository.NewExamRepository(db)

	// Initialize artifact storage (S3-compatible or local filesystem)
	artifactStore, err := storage.NewStorage(&storage.Config{
		S3: storage.S3Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			PublicURL: cfg.Storage.PublicURL,
		},
		LocalDir: cfg.Storage.LocalDir,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize artifact storage")
	}
	if s3Store, ok := artifactStore.(*storage.S3Storage); ok {
		if err := s3Store.EnsureBucket(context.Background()); err != nil {
			appLogger.WithError(err).Fatal("Failed to ensure storage bucket")
		}
	}

	// Initialize the LLM client used for generation and translation
	llmService := service.NewLLMService(&service.LLMConfig{
		Model:   cfg.LLM.Model,
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Timeout: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	})

	// Wire the generation pipeline
	registry := service.NewJobRegistry()
	exporter := export.NewExcelExporter(artifactStore)
	generationService := service.NewGenerationService(
		registry,
		llmService,
		llmService,
		exporter,
		examRepo,
		appLogger,
		&service.GenerationConfig{
			Workers:   cfg.Generation.Workers,
			BatchSize: cfg.Generation.BatchSize,
			MaxStalls: cfg.Generation.MaxStalls,
			Seed:      cfg.Generation.Seed,
		},
	)

	router := api.SetupRouter(generationService, examRepo, artifactStore, appLogger, cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout; running jobs keep their in-memory
	// state until the process exits
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
