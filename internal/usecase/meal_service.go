package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/macrolens/nutrilog/internal/domain"
)

// MealService manages meal templates.
type MealService struct {
	repo    domain.MealRepository
	mu      sync.Mutex
	entropy *rand.Rand
}

// NewMealService creates a meal service.
func NewMealService(repo domain.MealRepository) *MealService {
	return &MealService{
		repo:    repo,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *MealService) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// List returns all templates, newest first.
func (s *MealService) List(ctx context.Context) ([]domain.MealTemplate, error) {
	return s.repo.List(ctx)
}

// Get returns one template or domain.ErrMealNotFound.
func (s *MealService) Get(ctx context.Context, id string) (*domain.MealTemplate, error) {
	meals, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range meals {
		if meals[i].ID == id {
			return &meals[i], nil
		}
	}
	return nil, domain.ErrMealNotFound
}

// Create stores a new template ahead of the existing ones.
func (s *MealService) Create(ctx context.Context, input domain.MealInput) (*domain.MealTemplate, error) {
	if err := validateMealInput(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meals, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	meal := domain.MealTemplate{
		ID:          s.newID(),
		Name:        strings.TrimSpace(input.Name),
		Ingredients: copyIngredients(input.Ingredients),
	}
	if err := s.repo.Save(ctx, append([]domain.MealTemplate{meal}, meals...)); err != nil {
		return nil, err
	}
	return &meal, nil
}

// Update replaces the name and ingredients of template id.
func (s *MealService) Update(ctx context.Context, id string, input domain.MealInput) (*domain.MealTemplate, error) {
	if err := validateMealInput(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meals, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range meals {
		if meals[i].ID != id {
			continue
		}
		meals[i].Name = strings.TrimSpace(input.Name)
		meals[i].Ingredients = copyIngredients(input.Ingredients)
		if err := s.repo.Save(ctx, meals); err != nil {
			return nil, err
		}
		updated := meals[i]
		return &updated, nil
	}
	return nil, domain.ErrMealNotFound
}

// Delete removes template id.
func (s *MealService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meals, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	next := make([]domain.MealTemplate, 0, len(meals))
	for _, meal := range meals {
		if meal.ID != id {
			next = append(next, meal)
		}
	}
	if len(next) == len(meals) {
		return domain.ErrMealNotFound
	}
	return s.repo.Save(ctx, next)
}

func validateMealInput(input domain.MealInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: meal name is required", domain.ErrInvalidRequest)
	}
	if len(input.Ingredients) == 0 {
		return fmt.Errorf("%w: a meal needs at least one ingredient", domain.ErrInvalidRequest)
	}
	for _, ingredient := range input.Ingredients {
		if ingredient.FdcID <= 0 {
			return fmt.Errorf("%w: ingredient %q has no fdcId", domain.ErrInvalidRequest, ingredient.Description)
		}
		if ingredient.Grams <= 0 {
			return fmt.Errorf("%w: ingredient %q needs a positive weight", domain.ErrInvalidRequest, ingredient.Description)
		}
	}
	return nil
}

func copyIngredients(ingredients []domain.MealIngredient) []domain.MealIngredient {
	out := make([]domain.MealIngredient, len(ingredients))
	copy(out, ingredients)
	return out
}
