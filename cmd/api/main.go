package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "movie-collection/docs"
	"movie-collection/internal/config"
	"movie-collection/internal/database"
	"movie-collection/internal/handlers"
	"movie-collection/internal/middleware"
	"movie-collection/internal/repository"
	"movie-collection/internal/routes"
	"movie-collection/internal/services"
	"movie-collection/internal/storage"
	"movie-collection/internal/utils"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// @title Movie Collection API
// @version 1.0
// @description Backend API untuk aplikasi koleksi film: akun pengguna, film, review, favorit dan upload poster
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8010
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load environment variables
	loadEnvFile()

	// Load configuration
	cfg := config.Load()

	// Setup logger
	log := setupLogger(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Warnf("Configuration validation warning: %v", err)
	}

	if err := utils.SetTimezone(cfg.App.Timezone); err != nil {
		log.WithError(err).Warn("Falling back to local timezone")
	}

	// Connect to database. The API keeps serving and reports the outage per request.
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.WithError(err).Error("Failed to connect to database, API routes will return DB_CONNECTION_FAILED")
	} else {
		defer func() {
			if err := db.Close(); err != nil {
				log.Errorf("Error closing database connection: %v", err)
			}
		}()
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		dir, _ := os.Getwd()
		secret = services.DeriveSecret(dir)
		log.Warn("JWT_SECRET is not set, using a secret derived from the working directory")
	}
	tokens := services.NewTokenService(secret, cfg.Auth.TokenTTL)

	imageStore, err := newImageStore(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	authService := services.NewAuthService(userRepo, auditRepo, tokens, log)
	movieService := services.NewMovieService(movieRepo, userRepo, reviewRepo, auditRepo, log)
	reviewService := services.NewReviewService(reviewRepo, movieRepo, userRepo, auditRepo, log)
	uploadService := services.NewUploadService(imageStore, auditRepo, cfg.Upload, log)

	app := fiber.New(fiber.Config{
		AppName:               "Movie Collection API",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           120 * time.Second,
		BodyLimit:             cfg.Server.BodyLimit,
		DisableStartupMessage: false,
		ErrorHandler:          handlers.ErrorHandler(log),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	setupMiddleware(app)

	app.Get("/health", healthCheckHandler(db))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	if local, ok := imageStore.(*storage.LocalStore); ok {
		app.Use(cfg.Upload.URLPrefix, middleware.ImagesOnly())
		app.Static(cfg.Upload.URLPrefix, local.Dir(), fiber.Static{
			Browse:        false,
			CacheDuration: time.Hour,
			MaxAge:        86400,
		})
	}

	app.Use("/api", middleware.DatabaseGuard(func() bool { return db != nil }))

	limiter := middleware.NewRateLimiter(cfg.Auth.RateLimitRPS, cfg.Auth.RateLimitBurst)
	stopLimiter := make(chan struct{})
	go limiter.Run(10*time.Minute, stopLimiter)

	// Setup API routes
	routes.Setup(app, routes.Handlers{
		Auth:   handlers.NewAuthHandler(authService, log),
		Movie:  handlers.NewMovieHandler(movieService, log),
		Review: handlers.NewReviewHandler(reviewService, log),
		Upload: handlers.NewUploadHandler(uploadService, cfg.Server.BasePath, log),
	}, routes.Options{
		Tokens:       tokens,
		AuthRequired: cfg.Auth.Required,
		AuthLimiter:  limiter,
	})

	// Background cleanup of expired posters
	ctx, cancel := context.WithCancel(context.Background())
	cleanup := services.NewCleanupService(imageStore, cfg.Upload.CleanupInterval, cfg.Upload.Retention, log)
	go cleanup.Start(ctx)

	// Graceful shutdown
	go gracefulShutdown(app, log, func() {
		cancel()
		close(stopLimiter)
	})

	log.Infof("Movie Collection API starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start HTTP server: %v", err)
	}
}

func newImageStore(cfg *config.Config, log *logrus.Logger) (storage.ImageStore, error) {
	if cfg.Upload.Driver == config.StorageMinIO {
		return storage.NewMinIOStore(&cfg.MinIO, log)
	}
	return storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.URLPrefix, log), nil
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if cfg.IsDevelopment() {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

func setupMiddleware(app *fiber.App) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(middleware.RequestID())
	app.Use(middleware.Metrics())

	// Logger middleware
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${respHeader:X-Request-ID} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// CORS middleware
	app.Use(middleware.Preflight())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: false,
		MaxAge:           86400, // 24 hours
	}))
}

func healthCheckHandler(db *database.Database) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "healthy"
		if db == nil {
			dbStatus = "unhealthy"
		} else if err := db.HealthCheck(); err != nil {
			dbStatus = "unhealthy"
		}

		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "movie-collection",
			"version":   "1.0.0",
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func gracefulShutdown(app *fiber.App, log *logrus.Logger, stopBackground func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	stopBackground()

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}

	log.Info("Server shutdown complete")
}

func loadEnvFile() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{})
	log.SetOutput(os.Stdout)

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "dev"
	}

	execDir, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not get working directory: %v", err)
		return
	}

	envFile := filepath.Join(execDir, "envs", ".env."+env)
	if err := godotenv.Load(envFile); err != nil {
		log.Warnf("Could not load environment file %s: %v", envFile, err)

		defaultEnvFile := filepath.Join(execDir, "envs", ".env")
		if err := godotenv.Load(defaultEnvFile); err != nil {
			log.Warnf("Could not load default environment file: %v", err)
		} else {
			log.Infof("Environment loaded from default file %s", defaultEnvFile)
		}
	} else {
		log.Infof("Environment loaded from file %s", envFile)
	}
}
