package usecase

import (
	"context"
	"errors"
	"iter"
	"log"

	"github.com/macrolens/nutrilog/internal/domain"
)

// HydrationService makes sure foods referenced by meals are in the cache.
type HydrationService struct {
	cache  domain.FoodCache
	client domain.FoodClient
}

// NewHydrationService creates a hydration service.
func NewHydrationService(cache domain.FoodCache, client domain.FoodClient) *HydrationService {
	return &HydrationService{cache: cache, client: client}
}

type fetchOutcome int

const (
	fetchSucceeded fetchOutcome = iota
	fetchFailed
	// fetchStopped ends the batch: the API is rate limiting us or the
	// caller went away.
	fetchStopped
)

type fetchAttempt struct {
	fdcID   int
	outcome fetchOutcome
	err     error
}

// attempts lazily fetches each uncached id in order. Nothing past the
// point where the consumer stops is requested.
func (s *HydrationService) attempts(ctx context.Context, ids []int) iter.Seq[fetchAttempt] {
	return func(yield func(fetchAttempt) bool) {
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				yield(fetchAttempt{fdcID: id, outcome: fetchStopped, err: err})
				return
			}
			if _, err := s.cache.Get(ctx, id); err == nil {
				continue
			}

			if !yield(s.fetchOne(ctx, id)) {
				return
			}
		}
	}
}

func (s *HydrationService) fetchOne(ctx context.Context, id int) fetchAttempt {
	food, err := s.client.GetFoodDetails(ctx, id)
	switch {
	case errors.Is(err, domain.ErrRateLimited),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return fetchAttempt{fdcID: id, outcome: fetchStopped, err: err}
	case err != nil:
		return fetchAttempt{fdcID: id, outcome: fetchFailed, err: err}
	}

	if err := s.cache.Put(ctx, food); err != nil {
		return fetchAttempt{fdcID: id, outcome: fetchFailed, err: err}
	}
	return fetchAttempt{fdcID: id, outcome: fetchSucceeded}
}

// EnsureCached fetches every id not yet cached, one at a time, and returns
// the ids it added. A rate limit stops the batch; ids fetched before it stay
// cached. Any other failure skips that id only.
func (s *HydrationService) EnsureCached(ctx context.Context, ids []int) []int {
	fetched := []int{}

	for attempt := range s.attempts(ctx, dedupeIDs(ids)) {
		switch attempt.outcome {
		case fetchSucceeded:
			fetched = append(fetched, attempt.fdcID)
		case fetchFailed:
			log.Printf("[Hydration] Skipping %d: %v", attempt.fdcID, attempt.err)
		case fetchStopped:
			log.Printf("[Hydration] Stopping at %d after %d fetched: %v", attempt.fdcID, len(fetched), attempt.err)
			return fetched
		}
	}

	return fetched
}

// MissingFoodIDs returns the distinct ingredient ids absent from the cache,
// in first-seen order.
func (s *HydrationService) MissingFoodIDs(ctx context.Context, ingredients []domain.MealIngredient) []int {
	missing := []int{}
	seen := make(map[int]bool)
	for _, ingredient := range ingredients {
		if seen[ingredient.FdcID] {
			continue
		}
		seen[ingredient.FdcID] = true
		if _, err := s.cache.Get(ctx, ingredient.FdcID); err != nil {
			missing = append(missing, ingredient.FdcID)
		}
	}
	return missing
}

// HydrateLog fetches the uncached ingredients of every meal entry.
func (s *HydrationService) HydrateLog(ctx context.Context, entries []domain.LogEntry) []int {
	var ingredients []domain.MealIngredient
	for _, entry := range entries {
		if entry.Kind == domain.EntryKindMeal && entry.Meal != nil {
			ingredients = append(ingredients, entry.Meal.Ingredients...)
		}
	}

	missing := s.MissingFoodIDs(ctx, ingredients)
	if len(missing) == 0 {
		return []int{}
	}
	return s.EnsureCached(ctx, missing)
}

func dedupeIDs(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	unique := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}
