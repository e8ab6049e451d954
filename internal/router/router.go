package router

import (
	"log"
	"time"

	"github.com/campvista/backend/internal/handlers"
	"github.com/campvista/backend/internal/middleware"
	"github.com/campvista/backend/internal/models"
	"github.com/campvista/backend/internal/repositories"
	"github.com/campvista/backend/pkg/config"
	"github.com/campvista/backend/pkg/geocoder"
	"github.com/campvista/backend/pkg/imagestore"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware. MethodOverride lets
// HTML forms issue PUT and DELETE through POST with a _method query value.
func SetupMiddleware(e *echo.Echo) {
	// MethodOverride must run before routing, otherwise the router has
	// already matched (and rejected) the original POST.
	e.Pre(eMiddleware.MethodOverrideWithConfig(eMiddleware.MethodOverrideConfig{
		Getter: eMiddleware.MethodFromQuery("_method"),
	}))
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mongoDB *mongo.Database, cfg *config.Config, geo geocoder.Geocoder, images imagestore.Store) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Follow{},
		&models.Comment{},
		&models.Review{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	sessionRepo := repositories.NewPostgresSessionRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	reviewRepo := repositories.NewPostgresReviewRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	campgroundRepo := repositories.NewMongoCampgroundRepository(mongoDB)

	// Resolve the session cookie to a user on every request
	e.Use(middleware.LoadUser(sessionRepo, userRepo, cfg.CookieName))
	requireLogin := middleware.RequireLogin()

	// Auth routes
	authHandler := handlers.NewAuthHandler(userRepo, sessionRepo, cfg.CookieName, time.Duration(cfg.SessionTTLHours)*time.Hour)
	authHandler.RegisterAuthRoutes(e)
	log.Println("Auth routes configured.")

	// Campground routes
	campgroundHandler := handlers.NewCampgroundHandler(campgroundRepo, commentRepo, reviewRepo, userRepo, notificationRepo, geo, images)
	campgroundHandler.RegisterCampgroundRoutes(e, requireLogin)
	log.Println("Campground routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, campgroundRepo)
	commentHandler.RegisterCommentRoutes(e, requireLogin)
	log.Println("Comment routes configured.")

	// Review routes
	reviewHandler := handlers.NewReviewHandler(reviewRepo, campgroundRepo)
	reviewHandler.RegisterReviewRoutes(e, requireLogin)
	log.Println("Review routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(e, requireLogin)
	log.Println("Follow routes configured.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, campgroundRepo)
	userHandler.RegisterUserRoutes(e)
	log.Println("User profile routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(e, requireLogin)
	log.Println("Notification routes configured.")
}
