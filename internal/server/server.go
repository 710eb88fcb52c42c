// Package server contains the HTTP handlers and routing for the application's API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"time"

	"pitchside/internal/cache"
	"pitchside/internal/config"
	"pitchside/internal/database"
	"pitchside/internal/middleware"
	"pitchside/internal/models"
	"pitchside/internal/repository"
	"pitchside/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	storage        storage.ObjectStorage
	userRepo       repository.UserRepository
	predictionRepo repository.PredictionRepository
}

// NewServer creates a new server instance, establishing the database, Redis
// and object-storage connections from configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	var store storage.ObjectStorage
	if cfg.StorageEndpoint != "" {
		s3Store, err := storage.NewS3Storage(cfg)
		if err != nil {
			return nil, fmt.Errorf("object storage setup failed: %w", err)
		}
		store = s3Store
	} else {
		log.Println("Object storage not configured; picture backups are disabled")
	}

	return NewServerWithDeps(cfg, db, redisClient, store), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and bootstrap layers that establish connections themselves.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store storage.ObjectStorage) *Server {
	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("pitchside-api"),
		storage:        store,
		userRepo:       repository.NewUserRepository(db),
		predictionRepo: repository.NewPredictionRepository(db),
	}
}

// SetupMiddleware configures the middleware chain for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())
	app.Use(cors.New())
}

// SetupRoutes configures all routes for the application. The trailing
// unknown-endpoint handler must stay last so it only catches unmatched routes.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	user := app.Group("/user")
	user.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.RegisterUser)
	user.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.LoginUser)
	user.Patch("/update", middleware.AuthRequired(s.config.JWTSecret), s.EditUser)

	predictions := app.Group("/predictions", middleware.AuthRequired(s.config.JWTSecret))
	predictions.Get("/", s.GetPredictions)
	predictions.Post("/create", s.PictureResize(), s.PictureBackup(), s.CreatePrediction)
	predictions.Patch("/update/:predictionId", s.PictureResize(), s.PictureBackup(), s.EditPrediction)
	predictions.Delete("/delete/:predictionId", s.DeletePrediction)
	// Generic /:predictionId route must be last within the group.
	predictions.Get("/:predictionId", s.GetPredictionByID)

	app.Use(s.UnknownEndpoint)
}

// ErrorHandler is the terminal error-shaping stage: every error returned by a
// handler or middleware funnels through here and leaves as {error: message}
// with a public-safe message. Internal detail is logged, never returned.
func (s *Server) ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := models.DefaultPublicMessage

	if appErr, ok := models.AsAppError(err); ok {
		status = appErr.StatusCode
		message = appErr.PublicMessage
		if appErr.Code == models.CodeValidation {
			message = "Wrong data"
		}
	} else {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}
	}

	middleware.Logger.ErrorContext(c.UserContext(), "request error",
		slog.Int("status", status),
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)

	return c.Status(status).JSON(fiber.Map{"error": message})
}

// Shutdown releases the server's external connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	return nil
}

// UnknownEndpoint responds to requests that matched no route.
func (s *Server) UnknownEndpoint(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Unknown endpoint"})
}

// HealthCheck reports readiness of the database and Redis connections.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}
