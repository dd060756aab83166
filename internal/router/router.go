package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/xcessv/beefboard/internal/handlers"
	"github.com/xcessv/beefboard/internal/middleware"
	"github.com/xcessv/beefboard/internal/models"
	"github.com/xcessv/beefboard/internal/realtime"
	"github.com/xcessv/beefboard/internal/repositories"
	"github.com/xcessv/beefboard/internal/services"
	"github.com/xcessv/beefboard/pkg/config"
	"github.com/xcessv/beefboard/pkg/logger"
	"github.com/xcessv/beefboard/pkg/media"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	mongoDB := mgClient.Database(cfg.MongoDatabase)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	reviewRepo := repositories.NewMongoReviewRepository(mongoDB)
	commentRepo := repositories.NewMongoCommentRepository(mongoDB)
	newsRepo := repositories.NewMongoNewsRepository(mongoDB)
	activityRepo := repositories.NewPostgresActivityRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Initialize services ---
	hub := realtime.NewHub()
	cleaner := mediaCleaner(cfg)

	notificationService := services.NewNotificationService(notificationRepo, hub)
	activityService := services.NewActivityService(activityRepo, notificationService)
	fanout := services.NewFanout(activityService)
	commentService := services.NewCommentService(commentRepo, reviewRepo, notificationService, activityService, fanout, cleaner)
	reviewService := services.NewReviewService(reviewRepo, commentRepo, notificationService, activityService, fanout, cleaner)
	newsService := services.NewNewsService(newsRepo, userRepo, fanout)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, fanout, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	reviewHandler := handlers.NewReviewHandler(reviewService, userRepo)
	reviewHandler.RegisterReviewRoutes(api)
	log.Println("Review routes configured.")

	commentHandler := handlers.NewCommentHandler(commentService, userRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	newsHandler := handlers.NewNewsHandler(newsService, userRepo)
	newsHandler.RegisterNewsRoutes(api)
	log.Println("News routes configured.")

	activityHandler := handlers.NewActivityHandler(activityService)
	activityHandler.RegisterActivityRoutes(api)
	log.Println("Activity routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	realtimeHandler := handlers.NewRealtimeHandler(hub)
	realtimeHandler.RegisterRealtimeRoutes(api)
	log.Println("Realtime routes configured.")

	log.Println("All routes configured.")
}

func mediaCleaner(cfg *config.Config) media.Cleaner {
	switch cfg.MediaBackend {
	case "s3":
		cleaner, err := media.NewS3Cleaner(cfg.AWSRegion, cfg.S3Bucket)
		if err != nil {
			logger.Warn("falling back to noop media cleaner", zap.Error(err))
			return media.NoopCleaner{}
		}
		return cleaner
	case "local":
		return media.NewLocalCleaner(cfg.UploadDir)
	default:
		return media.NoopCleaner{}
	}
}
