package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/macrolens/nutrilog/internal/domain"
	"github.com/macrolens/nutrilog/internal/infrastructure/kv"
	"github.com/macrolens/nutrilog/internal/infrastructure/mealstore"
	"github.com/macrolens/nutrilog/internal/nutrition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logFixture struct {
	svc    *LogService
	meals  *MealService
	cache  *MockFoodCache
	client *MockFoodClient
	store  *kv.MemoryStore
}

func newLogFixture(cache *MockFoodCache, client *MockFoodClient) *logFixture {
	store := kv.NewMemoryStore()
	foods := NewFoodService(cache, client, store)
	meals := NewMealService(mealstore.New(store))
	settings := NewSettingsService(store, "test", domain.ProfileAdult)

	svc := NewLogService(store, foods, meals, settings, NewTotalsService(cache), NewHydrationService(cache, client), LogServiceConfig{AppID: "test"})
	svc.now = func() time.Time { return testTime }

	return &logFixture{svc: svc, meals: meals, cache: cache, client: client, store: store}
}

func findRow(rows []domain.NutrientReportRow, code domain.NutrientCode) domain.NutrientReportRow {
	for _, row := range rows {
		if row.Code == code {
			return row
		}
	}
	return domain.NutrientReportRow{}
}

func TestLogService_AddFood(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshot survives cache updates", func(t *testing.T) {
		f := newLogFixture(NewMockFoodCache(testFood(1, "Oats", map[string]float64{"208": 380, "203": 13})), NewMockFoodClient())

		entry, err := f.svc.AddFood(ctx, 1, 50)
		require.NoError(t, err)
		assert.Equal(t, domain.EntryKindFood, entry.Kind)
		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, testTime, entry.Timestamp)
		assert.Equal(t, "Oats", entry.Label())

		f.cache.foods[1] = *testFood(1, "Oats", map[string]float64{"208": 1000})

		snapshot, err := f.svc.Snapshot(ctx, "")
		require.NoError(t, err)
		assert.InDelta(t, 190.0, snapshot.Totals[nutrition.CodeCalories].Total, 0.0001)
		assert.InDelta(t, 6.5, snapshot.Totals[nutrition.CodeProtein].Total, 0.0001)
	})

	t.Run("fetches uncached food", func(t *testing.T) {
		f := newLogFixture(NewMockFoodCache(), NewMockFoodClient(testFood(7, "Rice", map[string]float64{"208": 130})))

		_, err := f.svc.AddFood(ctx, 7, 100)
		require.NoError(t, err)
		assert.Contains(t, f.cache.foods, 7)
	})

	t.Run("rejects non-positive grams", func(t *testing.T) {
		f := newLogFixture(NewMockFoodCache(testFood(1, "Oats", nil)), NewMockFoodClient())

		_, err := f.svc.AddFood(ctx, 1, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("unknown food", func(t *testing.T) {
		f := newLogFixture(NewMockFoodCache(), NewMockFoodClient())

		_, err := f.svc.AddFood(ctx, 9, 10)
		assert.ErrorIs(t, err, domain.ErrFoodNotFound)

		entries, err := f.svc.Entries(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestLogService_AddMeal(t *testing.T) {
	ctx := context.Background()

	t.Run("meal totals follow the cache", func(t *testing.T) {
		f := newLogFixture(NewMockFoodCache(), NewMockFoodClient(testFood(2, "Milk", map[string]float64{"208": 50})))

		meal, err := f.meals.Create(ctx, domain.MealInput{Name: "Glass of milk", Ingredients: []domain.MealIngredient{{FdcID: 2, Description: "Milk", Grams: 200}}})
		require.NoError(t, err)

		entry, err := f.svc.AddMeal(ctx, meal.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.EntryKindMeal, entry.Kind)
		assert.Equal(t, "Glass of milk", entry.Label())

		snapshot, err := f.svc.Snapshot(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []int{2}, snapshot.Hydrated)
		assert.InDelta(t, 100.0, snapshot.Totals[nutrition.CodeCalories].Total, 0.0001)

		f.cache.foods[2] = *testFood(2, "Milk", map[string]float64{"208": 100})

		snapshot, err = f.svc.Snapshot(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, snapshot.Hydrated)
		assert.InDelta(t, 200.0, snapshot.Totals[nutrition.CodeCalories].Total, 0.0001)
	})

	t.Run("editing the template does not change logged meals", func(t *testing.T) {
		f := newLogFixture(NewMockFoodCache(testFood(2, "Milk", map[string]float64{"208": 50})), NewMockFoodClient())

		meal, err := f.meals.Create(ctx, domain.MealInput{Name: "Milk", Ingredients: []domain.MealIngredient{{FdcID: 2, Grams: 100}}})
		require.NoError(t, err)
		_, err = f.svc.AddMeal(ctx, meal.ID)
		require.NoError(t, err)

		_, err = f.meals.Update(ctx, meal.ID, domain.MealInput{Name: "Milk", Ingredients: []domain.MealIngredient{{FdcID: 2, Grams: 400}}})
		require.NoError(t, err)

		snapshot, err := f.svc.Snapshot(ctx, "")
		require.NoError(t, err)
		assert.InDelta(t, 50.0, snapshot.Totals[nutrition.CodeCalories].Total, 0.0001)
	})

	t.Run("unknown meal", func(t *testing.T) {
		f := newLogFixture(NewMockFoodCache(), NewMockFoodClient())

		_, err := f.svc.AddMeal(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrMealNotFound)
	})

	t.Run("rate limited hydration still returns totals", func(t *testing.T) {
		client := NewMockFoodClient()
		client.errors[2] = domain.ErrRateLimited
		f := newLogFixture(NewMockFoodCache(testFood(1, "Oats", map[string]float64{"208": 380})), client)

		meal, err := f.meals.Create(ctx, domain.MealInput{Name: "Porridge", Ingredients: []domain.MealIngredient{
			{FdcID: 1, Grams: 100},
			{FdcID: 2, Grams: 200},
		}})
		require.NoError(t, err)
		_, err = f.svc.AddMeal(ctx, meal.ID)
		require.NoError(t, err)

		snapshot, err := f.svc.Snapshot(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, snapshot.Hydrated)
		assert.InDelta(t, 380.0, snapshot.Totals[nutrition.CodeCalories].Total, 0.0001)
	})
}

func TestLogService_EntriesNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newLogFixture(NewMockFoodCache(testFood(1, "Oats", nil), testFood(2, "Milk", nil)), NewMockFoodClient())

	_, err := f.svc.AddFood(ctx, 1, 10)
	require.NoError(t, err)
	_, err = f.svc.AddFood(ctx, 2, 10)
	require.NoError(t, err)

	entries, err := f.svc.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Milk", entries[0].Label())
	assert.Equal(t, "Oats", entries[1].Label())
}

func TestLogService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newLogFixture(NewMockFoodCache(testFood(1, "Oats", nil)), NewMockFoodClient())

	entry, err := f.svc.AddFood(ctx, 1, 10)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, entry.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, entry.ID), domain.ErrEntryNotFound)

	entries, err := f.svc.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLogService_ResetToday(t *testing.T) {
	ctx := context.Background()
	f := newLogFixture(NewMockFoodCache(testFood(1, "Oats", nil)), NewMockFoodClient())

	f.svc.now = func() time.Time { return testTime.AddDate(0, 0, -1) }
	_, err := f.svc.AddFood(ctx, 1, 10)
	require.NoError(t, err)

	f.svc.now = func() time.Time { return testTime }
	_, err = f.svc.AddFood(ctx, 1, 20)
	require.NoError(t, err)
	_, err = f.svc.AddFood(ctx, 1, 30)
	require.NoError(t, err)

	removed, err := f.svc.ResetToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := f.svc.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 10.0, entries[0].Food.Grams)
}

func TestLogService_Snapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("empty log", func(t *testing.T) {
		f := newLogFixture(NewMockFoodCache(), NewMockFoodClient())

		snapshot, err := f.svc.Snapshot(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, domain.ProfileAdult, snapshot.Profile)
		assert.Equal(t, 2000.0, snapshot.CalorieGoal)
		assert.Len(t, snapshot.Rows, len(nutrition.TrackedCodes()))
		for _, row := range snapshot.Rows {
			assert.Equal(t, domain.StatusMissing, row.Status)
			assert.Nil(t, row.Amount)
		}
	})

	t.Run("uses the stored profile", func(t *testing.T) {
		f := newLogFixture(NewMockFoodCache(testFood(1, "Oats", map[string]float64{"203": 22})), NewMockFoodClient())
		settings := NewSettingsService(f.store, "test", domain.ProfileAdult)
		require.NoError(t, settings.SetProfile(ctx, domain.ProfileInfant))

		_, err := f.svc.AddFood(ctx, 1, 50)
		require.NoError(t, err)

		snapshot, err := f.svc.Snapshot(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, domain.ProfileInfant, snapshot.Profile)

		protein := findRow(snapshot.Rows, nutrition.CodeProtein)
		require.NotNil(t, protein.PercentDV)
		assert.InDelta(t, 100.0, *protein.PercentDV, 0.0001)
	})

	t.Run("explicit profile overrides the stored one", func(t *testing.T) {
		f := newLogFixture(NewMockFoodCache(testFood(1, "Oats", map[string]float64{"208": 400})), NewMockFoodClient())

		_, err := f.svc.AddFood(ctx, 1, 100)
		require.NoError(t, err)

		snapshot, err := f.svc.Snapshot(ctx, domain.ProfileChild1To3)
		require.NoError(t, err)
		assert.Equal(t, domain.ProfileChild1To3, snapshot.Profile)

		calories := findRow(snapshot.Rows, nutrition.CodeCalories)
		require.NotNil(t, calories.PercentDV)
		assert.InDelta(t, 20.0, *calories.PercentDV, 0.0001)
	})

	t.Run("unknown profile", func(t *testing.T) {
		f := newLogFixture(NewMockFoodCache(), NewMockFoodClient())

		_, err := f.svc.Snapshot(ctx, domain.Profile("elder"))
		assert.ErrorIs(t, err, domain.ErrInvalidProfile)
	})
}

func TestLogService_CorruptedLogReadsEmpty(t *testing.T) {
	ctx := context.Background()
	f := newLogFixture(NewMockFoodCache(testFood(1, "Oats", nil)), NewMockFoodClient())

	corrupted := `[{"id":"a","type":"food","timestamp":"2026-03-14T12:00:00Z","food":{"fdcId":1,"description":"Oats","grams":100,"nutrients":[{"number":"203","amount":10}]}},` +
		`{"id":"b","type":"food","food":{"fdcId":"oops"}}]`
	require.NoError(t, f.store.Set(ctx, "test-log", corrupted))

	entries, err := f.svc.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	snapshot, err := f.svc.Snapshot(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusMissing, snapshot.Totals[nutrition.CodeProtein].Status)

	_, err = f.svc.AddFood(ctx, 1, 10)
	require.NoError(t, err)

	entries, err = f.svc.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 10.0, entries[0].Food.Grams)
}
