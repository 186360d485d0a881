package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"tanuki-quiz/internal/adapter/imaging"
	"tanuki-quiz/internal/adapter/placeholder"
	"tanuki-quiz/internal/config"
	"tanuki-quiz/internal/domain"
	"tanuki-quiz/internal/logger"
	"tanuki-quiz/internal/repository"
	"tanuki-quiz/internal/service"

	"go.uber.org/zap"
)

func main() {
	importDir := flag.String("dir", "", "directory of images to ingest in addition to the placeholders")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		// If logger is not initialized yet, use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() // Ensure logs are flushed
	log := logger.Get()

	log.Info("Starting initial data seeding process...", zap.String("asset_dir", cfg.Storage.AssetDir))
	fileStore, err := imaging.NewFileStore(cfg.Storage.AssetDir, cfg.Storage.CatalogFile)
	if err != nil {
		log.Fatal("Failed to prepare asset directory", zap.Error(err))
	}
	repo := repository.NewFileAssetRepository(cfg.CatalogPath())
	ingestion := service.NewIngestionService(repo, fileStore, imaging.NewCodec(cfg.Storage.MaxImagePixels), cfg.Ingest.BulkConcurrency)

	items, err := placeholderItems(ctx, repo, placeholder.NewRenderer(), domain.DefaultCategories)
	if err != nil {
		log.Fatal("Failed to prepare placeholder images", zap.Error(err))
	}
	if *importDir != "" {
		dirItems, err := readImageDir(*importDir)
		if err != nil {
			log.Fatal("Failed to read import directory", zap.String("dir", *importDir), zap.Error(err))
		}
		items = append(items, dirItems...)
	}
	if len(items) == 0 {
		log.Info("Nothing to seed; every category already has images")
		return
	}

	failed := 0
	for _, result := range ingestion.IngestBulk(ctx, items) {
		if result.Err != nil {
			failed++
			log.Error("Failed to seed image", zap.String("filename", result.Filename), zap.Error(result.Err))
			continue
		}
		log.Info("Seeded image", zap.String("filename", result.Record.Filename), zap.String("fingerprint", result.Record.Fingerprint))
	}
	log.Info("Initial data seeding process completed.", zap.Int("items", len(items)), zap.Int("failed", failed))
	if failed > 0 {
		os.Exit(1)
	}
}

// placeholderItems renders one placeholder for every category that has no
// catalog entry yet, so repeated runs do not pile up duplicates.
func placeholderItems(ctx context.Context, repo domain.AssetRepository, renderer domain.PlaceholderRenderer, categories []domain.Category) ([]service.UploadItem, error) {
	records, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	var items []service.UploadItem
	for _, category := range categories {
		if hasCategory(records, category.Key) {
			continue
		}
		data, err := renderer.RenderPNG(category.Key)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", category.Key, err)
		}
		items = append(items, service.UploadItem{Filename: category.Key + "-placeholder.png", Data: data})
	}
	return items, nil
}

func hasCategory(records []domain.AssetRecord, key string) bool {
	for _, rec := range records {
		if rec.MatchesCategory(key) {
			return true
		}
	}
	return false
}

func readImageDir(dir string) ([]service.UploadItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var items []service.UploadItem
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		items = append(items, service.UploadItem{Filename: e.Name(), Data: data})
	}
	return items, nil
}
