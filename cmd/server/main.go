package main

import (
	"context"
	"log"

	"github.com/kencs/dietadvisor-backend/internal/config"
	"github.com/kencs/dietadvisor-backend/internal/database"
	"github.com/kencs/dietadvisor-backend/internal/handler"
	"github.com/kencs/dietadvisor-backend/internal/identity"
	"github.com/kencs/dietadvisor-backend/internal/repository"
	"github.com/kencs/dietadvisor-backend/internal/server"
	"github.com/kencs/dietadvisor-backend/internal/service"
	"github.com/kencs/dietadvisor-backend/internal/vision"
)

func main() {
	// Load configuration
	log.Println("Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to the profile store
	log.Println("Connecting to database...")
	db, err := database.NewPostgresDB(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Identity verification client
	verifier := identity.NewClient(&identity.ClientConfig{
		UserInfoURL: cfg.UserInfoURL,
		Timeout:     cfg.UserInfoTimeout,
	})

	// Repository and service
	repo := repository.NewPostgresProfileRepository(db.GetPool(), cfg.StoreWorkers)
	profileService := service.NewProfileService(repo)

	// Food analysis client
	visionClient := vision.NewClient(&vision.Config{
		BaseURL: cfg.VisionServiceURL,
		Timeout: cfg.VisionTimeout,
	})

	// Handlers
	profileHandler := handler.NewProfileHandler(profileService)
	visionHandler := handler.NewVisionHandler(visionClient)

	// Create and configure server
	log.Println("Configuring server...")
	appServer := server.NewServer(cfg, verifier, profileHandler, visionHandler)

	// Start server (blocking call)
	log.Printf("Starting server on port %d...", cfg.Port)
	if err := appServer.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
