package domain

import "errors"

var (
	// ErrFoodNotFound is returned when a food cannot be found in FoodData Central
	ErrFoodNotFound = errors.New("food not found in USDA database")

	// ErrRateLimited is returned when the USDA API keeps answering 429 after all retries
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when a food record is not in the local cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrKeyNotFound is returned by key-value stores for unknown keys
	ErrKeyNotFound = errors.New("key not found")

	// ErrUSDAAPIFailure is returned when USDA API request fails
	ErrUSDAAPIFailure = errors.New("USDA API request failed")

	// ErrMealNotFound is returned when a meal template id is unknown
	ErrMealNotFound = errors.New("meal not found")

	// ErrEntryNotFound is returned when a log entry id is unknown
	ErrEntryNotFound = errors.New("log entry not found")

	// ErrInvalidProfile is returned for an unknown daily value profile
	ErrInvalidProfile = errors.New("invalid daily value profile")
)
