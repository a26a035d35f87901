package domain

import "context"

// KeyValueStore is the durable string store everything persists through.
type KeyValueStore interface {
	// Get returns ErrKeyNotFound for unknown keys.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// FoodCache holds previously fetched food records keyed by FDC id.
type FoodCache interface {
	// Get returns ErrCacheMiss when the food is not cached.
	Get(ctx context.Context, fdcID int) (*FoodRecord, error)
	Put(ctx context.Context, food *FoodRecord) error
	SearchByDescription(ctx context.Context, query string) ([]FoodSearchResult, error)
}

// FoodClient defines the interface for interacting with USDA FoodData Central API
type FoodClient interface {
	SearchFoods(ctx context.Context, query string) ([]FoodSearchResult, error)
	GetFoodDetails(ctx context.Context, fdcID int) (*FoodRecord, error)
}

// MealRepository persists meal templates, newest first.
type MealRepository interface {
	List(ctx context.Context) ([]MealTemplate, error)
	Save(ctx context.Context, meals []MealTemplate) error
}
