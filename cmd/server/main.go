package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/sociablehq/sociable/backend/internal/router"
	"github.com/sociablehq/sociable/backend/pkg/config"
	"github.com/sociablehq/sociable/backend/pkg/media"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Initialize the media object store
	ctx := context.Background()
	mediaStore, err := media.NewMinioStore(ctx, media.Config{
		Endpoint:      cfg.MinioEndpoint,
		AccessKey:     cfg.MinioAccessKey,
		SecretKey:     cfg.MinioSecretKey,
		Bucket:        cfg.MinioBucket,
		UseSSL:        cfg.MinioUseSSL,
		PublicBaseURL: cfg.PublicMediaBaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize media store: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Gorm, mediaStore, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
