package domain

import "time"

// EntryKind discriminates the log entry variants.
type EntryKind string

const (
	EntryKindFood EntryKind = "food"
	EntryKindMeal EntryKind = "meal"
)

// LogEntry is a consumption event. Exactly one of Food or Meal is set,
// matching Kind.
//
// Food entries carry the nutrients captured when they were logged and never
// re-read the cache. Meal entries carry only ingredient references and are
// recomputed from the cache every time totals are built.
type LogEntry struct {
	ID        string     `json:"id"`
	Kind      EntryKind  `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
	Food      *FoodEntry `json:"food,omitempty"`
	Meal      *MealEntry `json:"meal,omitempty"`
}

// FoodEntry is a single logged food with its nutrient snapshot.
type FoodEntry struct {
	FdcID       int            `json:"fdcId"`
	Description string         `json:"description"`
	Grams       float64        `json:"grams"`
	Nutrients   []FoodNutrient `json:"nutrients"`
}

// MealEntry is a logged meal; its nutrients are sourced live.
type MealEntry struct {
	Name        string           `json:"name"`
	Ingredients []MealIngredient `json:"ingredients"`
}

// NewFoodEntry builds a food log entry.
func NewFoodEntry(id string, at time.Time, food FoodEntry) LogEntry {
	return LogEntry{ID: id, Kind: EntryKindFood, Timestamp: at, Food: &food}
}

// NewMealEntry builds a meal log entry.
func NewMealEntry(id string, at time.Time, meal MealEntry) LogEntry {
	return LogEntry{ID: id, Kind: EntryKindMeal, Timestamp: at, Meal: &meal}
}

// Label returns the description shown in the log list.
func (e LogEntry) Label() string {
	switch e.Kind {
	case EntryKindFood:
		if e.Food != nil {
			return e.Food.Description
		}
	case EntryKindMeal:
		if e.Meal != nil {
			return e.Meal.Name
		}
	}
	return ""
}
