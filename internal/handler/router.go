package handler

import (
	"net/url"
	"path"
	"strings"
	"time"

	"tanuki-quiz/internal/middleware"
	"tanuki-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies holds everything the HTTP layer needs.
type Dependencies struct {
	Quiz      service.QuizService
	Ingestion service.IngestionService
	Auth      service.AuthService
	Images    *ImageHandler

	AssetDir     string
	CatalogFile  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int

	// Redis is pinged by /health when sessions live in Redis.
	Redis Pinger
}

// NewApp builds the Fiber application with every route registered.
func NewApp(deps Dependencies) *fiber.App {
	bodyLimit := deps.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = 20 * 1024 * 1024
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  deps.ReadTimeout,
		WriteTimeout: deps.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    bodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Admin-Token",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/health", Health(deps.Redis))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)

	if deps.AssetDir != "" {
		catalogFile := deps.CatalogFile
		app.Static(service.AssetURLPrefix, deps.AssetDir, fiber.Static{
			Browse: false,
			MaxAge: 3600,
			Next: func(c *fiber.Ctx) bool {
				return hiddenAsset(c, catalogFile)
			},
		})
	}

	validator := middleware.NewValidationMiddleware()
	quizHandler := NewQuizHandler(deps.Quiz)
	assetHandler := NewAssetHandler(deps.Ingestion)

	api := app.Group("/api")
	api.Get("/generate_quiz", quizHandler.GenerateQuiz)
	api.Post("/submit_answer", quizHandler.SubmitAnswer)
	api.Get("/categories", quizHandler.GetCategories)
	if deps.Images != nil {
		api.Get("/synthetic_image/:key", validator.ValidateSyntheticKey(), deps.Images.SyntheticImage)
	}

	admin := api.Group("/admin", middleware.AdminOnly(deps.Auth))
	admin.Post("/upload", assetHandler.Upload)
	admin.Post("/upload/multipart", assetHandler.UploadMultipart)
	admin.Get("/assets", assetHandler.ListAssets)
	admin.Get("/assets/:filename", validator.ValidateAssetFilename(), assetHandler.GetAsset)
	admin.Delete("/assets/:filename", validator.ValidateAssetFilename(), assetHandler.DeleteAsset)
	admin.Get("/assets/:filename/similar", validator.ValidateAssetFilename(), assetHandler.SimilarAssets)

	return app
}

// hiddenAsset reports whether a static request resolves to the catalog file
// or a dot file (renameio temp files live beside the catalog). Raw, decoded
// and normalized forms of the path are all checked.
func hiddenAsset(c *fiber.Ctx, catalogFile string) bool {
	uri := c.Request().URI()
	for _, raw := range []string{c.Path(), string(uri.PathOriginal()), string(uri.Path())} {
		p, err := url.PathUnescape(raw)
		if err != nil {
			return true
		}
		base := path.Base(path.Clean("/" + strings.ReplaceAll(p, "\\", "/")))
		if strings.HasPrefix(base, ".") || (catalogFile != "" && base == catalogFile) {
			return true
		}
	}
	return false
}
