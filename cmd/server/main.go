package main

import (
	"context"
	"log"
	"time"

	"github.com/campvista/backend/internal/repositories"
	"github.com/campvista/backend/internal/router"
	"github.com/campvista/backend/pkg/config"
	"github.com/campvista/backend/pkg/firebase"
	"github.com/campvista/backend/pkg/geocoder"
	"github.com/campvista/backend/pkg/imagestore"
	"github.com/campvista/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase storage for campground images
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	images := imagestore.NewFirebaseStore(firebaseApp.Bucket, firebaseApp.BucketName)

	// Initialize the geocoding client
	geo, err := geocoder.NewGoogleGeocoder(cfg.GeocoderAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize geocoder: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo.Database(cfg.MongoDBName), cfg, geo, images)

	// Validator
	e.Validator = validators.NewValidator()

	// Sweep expired sessions in the background
	sessionRepo := repositories.NewPostgresSessionRepository(db.Postgres)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := sessionRepo.DeleteExpired(); err != nil {
				log.Printf("Session cleanup error: %v", err)
			}
		}
	}()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
