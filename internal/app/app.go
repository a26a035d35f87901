// Package app builds the service graph shared by the HTTP server and the CLI.
package app

import (
	"fmt"
	"log"

	"github.com/macrolens/nutrilog/config"
	"github.com/macrolens/nutrilog/internal/domain"
	"github.com/macrolens/nutrilog/internal/infrastructure/foodcache"
	"github.com/macrolens/nutrilog/internal/infrastructure/kv"
	"github.com/macrolens/nutrilog/internal/infrastructure/mealstore"
	"github.com/macrolens/nutrilog/internal/infrastructure/usda"
	"github.com/macrolens/nutrilog/internal/usecase"
)

// usdaBurst is how many requests may go out back to back before the hourly
// rate applies.
const usdaBurst = 10

// App holds the wired services.
type App struct {
	Config *config.Config
	Cache  *foodcache.Cache

	Foods     *usecase.FoodService
	Meals     *usecase.MealService
	Settings  *usecase.SettingsService
	Totals    *usecase.TotalsService
	Hydration *usecase.HydrationService
	Log       *usecase.LogService

	close func() error
}

// New opens the configured store and wires every service on top of it.
func New(cfg *config.Config) (*App, error) {
	store, closeStore, err := openStore(cfg.Storage)
	if err != nil {
		return nil, err
	}

	client := usda.NewClient(cfg.USDA.APIKey, cfg.USDA.BaseURL)
	client.SetSearchOptions(cfg.USDA.PageSize, "")
	client.SetRetryPolicy(cfg.USDA.MaxRetries, cfg.USDA.BackoffBase)
	client.SetRateLimit(cfg.USDA.RequestsPerHour, usdaBurst)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		client.SetDebug(true)
	}

	return Wire(cfg, store, client, closeStore), nil
}

// Wire builds the services from an already opened store and food client.
func Wire(cfg *config.Config, store domain.KeyValueStore, client domain.FoodClient, closeFn func() error) *App {
	cache := foodcache.New(store)
	foods := usecase.NewFoodService(cache, client, store)
	meals := usecase.NewMealService(mealstore.New(store))
	settings := usecase.NewSettingsService(store, cfg.Tracker.AppID, domain.Profile(cfg.Tracker.DefaultProfile))
	totals := usecase.NewTotalsService(cache)
	hydration := usecase.NewHydrationService(cache, client)

	logService := usecase.NewLogService(store, foods, meals, settings, totals, hydration, usecase.LogServiceConfig{
		AppID:       cfg.Tracker.AppID,
		CalorieGoal: cfg.Tracker.CalorieGoal,
	})

	if closeFn == nil {
		closeFn = func() error { return nil }
	}

	return &App{
		Config:    cfg,
		Cache:     cache,
		Foods:     foods,
		Meals:     meals,
		Settings:  settings,
		Totals:    totals,
		Hydration: hydration,
		Log:       logService,
		close:     closeFn,
	}
}

// Close releases the store.
func (a *App) Close() error {
	return a.close()
}

func openStore(cfg config.StorageConfig) (domain.KeyValueStore, func() error, error) {
	switch cfg.Type {
	case "memory":
		log.Printf("Storage: in-memory (state is lost on exit)")
		return kv.NewMemoryStore(), nil, nil
	case "sqlite":
		store, err := kv.NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		log.Printf("Storage: sqlite at %s", cfg.Path)
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
