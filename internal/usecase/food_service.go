package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/macrolens/nutrilog/internal/domain"
	"github.com/macrolens/nutrilog/internal/infrastructure/kv"
)

// savedFoodsKey holds the starred foods list.
const savedFoodsKey = "saved-foods"

// FoodSearch is the result of a food search.
type FoodSearch struct {
	Foods     []domain.FoodSearchResult `json:"foods"`
	FromCache bool                      `json:"fromCache"`
}

// FoodService looks foods up, preferring the local cache over the USDA API.
type FoodService struct {
	cache  domain.FoodCache
	client domain.FoodClient
	store  domain.KeyValueStore
	mu     sync.Mutex
}

// NewFoodService creates a food service with dependencies
func NewFoodService(cache domain.FoodCache, client domain.FoodClient, store domain.KeyValueStore) *FoodService {
	return &FoodService{cache: cache, client: client, store: store}
}

// Search returns cached matches when there are any, otherwise asks the API.
// Flow: trim -> cache substring search -> USDA search
func (s *FoodService) Search(ctx context.Context, query string) (*FoodSearch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	cached, err := s.cache.SearchByDescription(ctx, query)
	if err != nil {
		log.Printf("[Foods] Cache search failed, falling back to USDA: %v", err)
	} else if len(cached) > 0 {
		return &FoodSearch{Foods: cached, FromCache: true}, nil
	}

	foods, err := s.client.SearchFoods(ctx, query)
	if err != nil {
		return nil, err
	}
	return &FoodSearch{Foods: foods}, nil
}

// Details returns the food record, fetching and caching it on a miss.
func (s *FoodService) Details(ctx context.Context, fdcID int) (*domain.FoodRecord, error) {
	if fdcID <= 0 {
		return nil, domain.ErrInvalidRequest
	}

	food, err := s.cache.Get(ctx, fdcID)
	if err == nil {
		return food, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		log.Printf("[Foods] Cache read for %d failed: %v", fdcID, err)
	}

	food, err = s.client.GetFoodDetails(ctx, fdcID)
	if err != nil {
		return nil, err
	}

	// Log but don't fail if caching fails
	if err := s.cache.Put(ctx, food); err != nil {
		log.Printf("[Foods] Failed to cache %d: %v", fdcID, err)
	}
	return food, nil
}

// SavedFoods returns the starred foods, newest first.
func (s *FoodService) SavedFoods(ctx context.Context) ([]domain.SavedFood, error) {
	var saved []domain.SavedFood
	ok, err := kv.ReadJSON(ctx, s.store, savedFoodsKey, &saved)
	if err != nil {
		return nil, fmt.Errorf("read saved foods: %w", err)
	}
	if !ok || saved == nil {
		return []domain.SavedFood{}, nil
	}
	return saved, nil
}

// ToggleSaved stars food, or unstars it when it is already saved.
func (s *FoodService) ToggleSaved(ctx context.Context, food domain.SavedFood) ([]domain.SavedFood, error) {
	if food.FdcID <= 0 {
		return nil, domain.ErrInvalidRequest
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.SavedFoods(ctx)
	if err != nil {
		return nil, err
	}

	next := make([]domain.SavedFood, 0, len(saved)+1)
	removed := false
	for _, item := range saved {
		if item.FdcID == food.FdcID {
			removed = true
			continue
		}
		next = append(next, item)
	}
	if !removed {
		next = append([]domain.SavedFood{food}, next...)
	}

	if err := kv.WriteJSON(ctx, s.store, savedFoodsKey, next); err != nil {
		return nil, fmt.Errorf("write saved foods: %w", err)
	}
	return next, nil
}
