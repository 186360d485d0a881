// @title Tanuki Quiz API
// @version 1.0
// @description Image identification quiz: tanuki, anaguma or hakubishin.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey AdminToken
// @in header
// @name X-Admin-Token
// @description Shared admin secret. Authorization: Bearer <token> is also accepted.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "tanuki-quiz/cmd/api/docs"
	"tanuki-quiz/internal/adapter"
	"tanuki-quiz/internal/adapter/imaging"
	"tanuki-quiz/internal/adapter/placeholder"
	"tanuki-quiz/internal/cache"
	"tanuki-quiz/internal/config"
	"tanuki-quiz/internal/domain"
	"tanuki-quiz/internal/handler"
	"tanuki-quiz/internal/logger"
	"tanuki-quiz/internal/repository"
	"tanuki-quiz/internal/service"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage and catalog
	fileStore, err := imaging.NewFileStore(cfg.Storage.AssetDir, cfg.Storage.CatalogFile)
	if err != nil {
		appLogger.Fatal("Failed to prepare asset directory", zap.String("dir", cfg.Storage.AssetDir), zap.Error(err))
	}
	assetRepository := repository.NewFileAssetRepository(cfg.CatalogPath())
	codec := imaging.NewCodec(cfg.Storage.MaxImagePixels)

	// Session store
	var (
		sessionStore domain.QuizSessionStore
		memoryStore  *service.InMemorySessionStore
		redisClient  *redis.Client
		redisHealth  handler.Pinger
	)
	switch cfg.Quiz.SessionBackend {
	case config.SessionBackendRedis:
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
		redisStore := adapter.NewRedisSessionStore(redisClient, cfg.Quiz.SessionTTL)
		sessionStore = redisStore
		redisHealth = redisStore
	default:
		memoryStore = service.NewInMemorySessionStore(cfg.Quiz.SessionTTL, cfg.Quiz.SweepInterval)
		memoryStore.Start(ctx)
		sessionStore = memoryStore
	}
	appLogger.Info("Session store initialized",
		zap.String("backend", cfg.Quiz.SessionBackend),
		zap.Duration("ttl", cfg.Quiz.SessionTTL),
	)

	// Initialize services
	ingestionService := service.NewIngestionService(assetRepository, fileStore, codec, cfg.Ingest.BulkConcurrency)
	quizService := service.NewQuizService(
		assetRepository,
		sessionStore,
		service.DefaultImageSources(fileStore),
		domain.DefaultCategories,
	)
	authService := service.NewAuthService(cfg)
	if cfg.Auth.AdminToken == "" {
		appLogger.Warn("ADMIN_TOKEN is empty; all admin requests will be rejected")
	}

	app := handler.NewApp(handler.Dependencies{
		Quiz:         quizService,
		Ingestion:    ingestionService,
		Auth:         authService,
		Images:       handler.NewImageHandler(placeholder.NewRenderer()),
		AssetDir:     fileStore.Root(),
		CatalogFile:  cfg.Storage.CatalogFile,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		Redis:        redisHealth,
	})

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if memoryStore != nil {
		memoryStore.Stop()
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			appLogger.Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	appLogger.Info("Server exited gracefully")
}
