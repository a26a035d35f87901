// Package mealstore persists meal templates as a single JSON array.
package mealstore

import (
	"context"
	"fmt"

	"github.com/macrolens/nutrilog/internal/domain"
	"github.com/macrolens/nutrilog/internal/infrastructure/kv"
)

// StorageKey is the key the template list is stored under.
const StorageKey = "meals"

// Store implements domain.MealRepository.
type Store struct {
	kv domain.KeyValueStore
}

// New creates a meal store on top of a key-value store.
func New(store domain.KeyValueStore) *Store {
	return &Store{kv: store}
}

// List returns the stored templates; a missing or corrupted list is empty.
func (s *Store) List(ctx context.Context) ([]domain.MealTemplate, error) {
	var meals []domain.MealTemplate
	ok, err := kv.ReadJSON(ctx, s.kv, StorageKey, &meals)
	if err != nil {
		return nil, fmt.Errorf("read meals: %w", err)
	}
	if !ok || meals == nil {
		return []domain.MealTemplate{}, nil
	}
	return meals, nil
}

// Save replaces the stored list.
func (s *Store) Save(ctx context.Context, meals []domain.MealTemplate) error {
	if meals == nil {
		meals = []domain.MealTemplate{}
	}
	if err := kv.WriteJSON(ctx, s.kv, StorageKey, meals); err != nil {
		return fmt.Errorf("write meals: %w", err)
	}
	return nil
}
