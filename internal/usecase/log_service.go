package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/macrolens/nutrilog/internal/domain"
	"github.com/macrolens/nutrilog/internal/infrastructure/kv"
)

// LogServiceConfig holds configuration for the log service
type LogServiceConfig struct {
	AppID       string
	CalorieGoal float64
}

// LogService records what the user ate and builds totals snapshots.
type LogService struct {
	store       domain.KeyValueStore
	key         string
	calorieGoal float64

	foods     *FoodService
	meals     *MealService
	settings  *SettingsService
	totals    *TotalsService
	hydration *HydrationService

	mu  sync.Mutex
	now func() time.Time
}

// NewLogService creates a log service with dependencies
func NewLogService(
	store domain.KeyValueStore,
	foods *FoodService,
	meals *MealService,
	settings *SettingsService,
	totals *TotalsService,
	hydration *HydrationService,
	config LogServiceConfig,
) *LogService {
	calorieGoal := config.CalorieGoal
	if calorieGoal <= 0 {
		calorieGoal = 2000
	}

	return &LogService{
		store:       store,
		key:         config.AppID + "-log",
		calorieGoal: calorieGoal,
		foods:       foods,
		meals:       meals,
		settings:    settings,
		totals:      totals,
		hydration:   hydration,
		now:         time.Now,
	}
}

// Entries returns the log, newest first.
func (s *LogService) Entries(ctx context.Context) ([]domain.LogEntry, error) {
	var entries []domain.LogEntry
	ok, err := kv.ReadJSON(ctx, s.store, s.key, &entries)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if !ok || entries == nil {
		return []domain.LogEntry{}, nil
	}
	return entries, nil
}

func (s *LogService) save(ctx context.Context, entries []domain.LogEntry) error {
	if err := kv.WriteJSON(ctx, s.store, s.key, entries); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func (s *LogService) prepend(ctx context.Context, entry domain.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.Entries(ctx)
	if err != nil {
		return err
	}
	return s.save(ctx, append([]domain.LogEntry{entry}, entries...))
}

// AddFood logs grams of a food. The food's nutrients are copied into the
// entry so later cache updates do not change it.
func (s *LogService) AddFood(ctx context.Context, fdcID int, grams float64) (*domain.LogEntry, error) {
	if grams <= 0 {
		return nil, fmt.Errorf("%w: grams must be positive", domain.ErrInvalidRequest)
	}

	food, err := s.foods.Details(ctx, fdcID)
	if err != nil {
		return nil, err
	}

	nutrients := make([]domain.FoodNutrient, len(food.Nutrients))
	copy(nutrients, food.Nutrients)

	entry := domain.NewFoodEntry(uuid.NewString(), s.now(), domain.FoodEntry{
		FdcID:       food.FdcID,
		Description: food.Description,
		Grams:       grams,
		Nutrients:   nutrients,
	})
	if err := s.prepend(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// AddMeal logs a meal template. Only the ingredient list is copied; its
// nutrients are resolved from the cache whenever totals are built.
func (s *LogService) AddMeal(ctx context.Context, mealID string) (*domain.LogEntry, error) {
	meal, err := s.meals.Get(ctx, mealID)
	if err != nil {
		return nil, err
	}

	entry := domain.NewMealEntry(uuid.NewString(), s.now(), domain.MealEntry{
		Name:        meal.Name,
		Ingredients: copyIngredients(meal.Ingredients),
	})
	if err := s.prepend(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes one entry.
func (s *LogService) Delete(ctx context.Context, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.Entries(ctx)
	if err != nil {
		return err
	}

	next := make([]domain.LogEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.ID != entryID {
			next = append(next, entry)
		}
	}
	if len(next) == len(entries) {
		return domain.ErrEntryNotFound
	}
	return s.save(ctx, next)
}

// ResetDay removes every entry logged on the same local calendar day as day
// and returns how many were removed.
func (s *LogService) ResetDay(ctx context.Context, day time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.Entries(ctx)
	if err != nil {
		return 0, err
	}

	next := make([]domain.LogEntry, 0, len(entries))
	for _, entry := range entries {
		if !sameLocalDay(entry.Timestamp, day) {
			next = append(next, entry)
		}
	}
	if err := s.save(ctx, next); err != nil {
		return 0, err
	}
	return len(entries) - len(next), nil
}

// ResetToday is ResetDay for the current day.
func (s *LogService) ResetToday(ctx context.Context) (int, error) {
	return s.ResetDay(ctx, s.now())
}

// Snapshot hydrates meal ingredients, aggregates the log and renders it for
// profile. An empty profile uses the stored one.
func (s *LogService) Snapshot(ctx context.Context, profile domain.Profile) (*domain.Snapshot, error) {
	if profile == "" {
		stored, err := s.settings.Profile(ctx)
		if err != nil {
			return nil, err
		}
		profile = stored
	}
	if !profile.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidProfile, profile)
	}

	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}

	hydrated := s.hydration.HydrateLog(ctx, entries)
	totals := s.totals.Aggregate(ctx, entries)

	return &domain.Snapshot{
		Profile:     profile,
		CalorieGoal: s.calorieGoal,
		Totals:      totals,
		Rows:        BuildReport(totals, profile, s.calorieGoal),
		Hydrated:    hydrated,
	}, nil
}

func sameLocalDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
