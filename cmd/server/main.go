package main

import (
	"fmt"
	"log"
	"os"

	"github.com/macrolens/nutrilog/config"
	"github.com/macrolens/nutrilog/internal/app"
	httpDelivery "github.com/macrolens/nutrilog/internal/delivery/http"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting NutriLog v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Storage Type: %s", cfg.Storage.Type)
	log.Printf("Profile: %s, calorie goal: %.0f kcal", cfg.Tracker.DefaultProfile, cfg.Tracker.CalorieGoal)

	// Initialize store, USDA client and services
	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer a.Close()

	log.Printf("USDA API configured: %s (key: %s...)", cfg.USDA.BaseURL, keyPrefix(cfg.USDA.APIKey))
	log.Printf("USDA limits: %d requests/hour, %d retries on 429 starting at %s",
		cfg.USDA.RequestsPerHour, cfg.USDA.MaxRetries, cfg.USDA.BackoffBase)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(a)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func keyPrefix(key string) string {
	if len(key) > 8 {
		return key[:8]
	}
	return key
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
