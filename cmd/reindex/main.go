package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tanuki-quiz/internal/adapter/imaging"
	"tanuki-quiz/internal/config"
	"tanuki-quiz/internal/logger"
	"tanuki-quiz/internal/repository"
	"tanuki-quiz/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fileStore, err := imaging.NewFileStore(cfg.Storage.AssetDir, cfg.Storage.CatalogFile)
	if err != nil {
		log.Fatal("Failed to prepare asset directory", zap.Error(err))
	}
	repo := repository.NewFileAssetRepository(cfg.CatalogPath())
	ingestion := service.NewIngestionService(repo, fileStore, imaging.NewCodec(cfg.Storage.MaxImagePixels), cfg.Ingest.BulkConcurrency)

	log.Info("Reindexing asset catalog", zap.String("catalog", repo.Path()))
	report, err := ingestion.Reindex(ctx)
	if err != nil {
		log.Fatal("Reindex failed", zap.Error(err))
	}
	log.Info("Reindex completed",
		zap.Int("total", report.Total),
		zap.Int("thumbnails_rebuilt", report.ThumbnailsRebuilt),
		zap.Int("fingerprints_updated", report.FingerprintsUpdated),
		zap.Strings("dropped", report.Dropped),
	)
}
