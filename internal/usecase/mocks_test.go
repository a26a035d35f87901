package usecase

import (
	"context"
	"strings"

	"github.com/macrolens/nutrilog/internal/domain"
)

// MockFoodCache is a map backed implementation of domain.FoodCache
type MockFoodCache struct {
	foods    map[int]domain.FoodRecord
	getError error
	putError error
	putCalls int
}

func NewMockFoodCache(foods ...*domain.FoodRecord) *MockFoodCache {
	m := &MockFoodCache{foods: make(map[int]domain.FoodRecord)}
	for _, f := range foods {
		m.foods[f.FdcID] = *f
	}
	return m
}

func (m *MockFoodCache) Get(ctx context.Context, fdcID int) (*domain.FoodRecord, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	food, ok := m.foods[fdcID]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return &food, nil
}

func (m *MockFoodCache) Put(ctx context.Context, food *domain.FoodRecord) error {
	m.putCalls++
	if m.putError != nil {
		return m.putError
	}
	m.foods[food.FdcID] = *food
	return nil
}

func (m *MockFoodCache) SearchByDescription(ctx context.Context, query string) ([]domain.FoodSearchResult, error) {
	results := []domain.FoodSearchResult{}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return results, nil
	}
	for _, f := range m.foods {
		if strings.Contains(strings.ToLower(f.Description), q) {
			results = append(results, domain.FoodSearchResult{FdcID: f.FdcID, Description: f.Description, DataType: domain.DataTypeCached})
		}
	}
	return results, nil
}

// MockFoodClient is a mock implementation of domain.FoodClient
type MockFoodClient struct {
	foods        map[int]*domain.FoodRecord
	errors       map[int]error
	searchResult []domain.FoodSearchResult
	searchError  error
	searchCalls  int
	detailCalls  []int
}

func NewMockFoodClient(foods ...*domain.FoodRecord) *MockFoodClient {
	m := &MockFoodClient{
		foods:  make(map[int]*domain.FoodRecord),
		errors: make(map[int]error),
	}
	for _, f := range foods {
		m.foods[f.FdcID] = f
	}
	return m
}

func (m *MockFoodClient) SearchFoods(ctx context.Context, query string) ([]domain.FoodSearchResult, error) {
	m.searchCalls++
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.searchResult, nil
}

func (m *MockFoodClient) GetFoodDetails(ctx context.Context, fdcID int) (*domain.FoodRecord, error) {
	m.detailCalls = append(m.detailCalls, fdcID)
	if err, ok := m.errors[fdcID]; ok {
		return nil, err
	}
	food, ok := m.foods[fdcID]
	if !ok {
		return nil, domain.ErrFoodNotFound
	}
	return food, nil
}

// testFood builds a record reporting the given number -> amount pairs.
func testFood(id int, description string, amounts map[string]float64) *domain.FoodRecord {
	food := &domain.FoodRecord{FdcID: id, Description: description}
	for number, amount := range amounts {
		food.Nutrients = append(food.Nutrients, domain.FoodNutrient{Number: number, Amount: amount})
	}
	return food
}
