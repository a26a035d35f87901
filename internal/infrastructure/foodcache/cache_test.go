package foodcache

import (
	"context"
	"testing"

	"github.com/macrolens/nutrilog/internal/domain"
	"github.com/macrolens/nutrilog/internal/infrastructure/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func food(id int, description string) *domain.FoodRecord {
	return &domain.FoodRecord{
		FdcID:       id,
		Description: description,
		Nutrients: []domain.FoodNutrient{
			{NutrientID: 1008, Number: "208", Amount: 52},
		},
	}
}

func TestCache_PutAndGet(t *testing.T) {
	ctx := context.Background()
	cache := New(kv.NewMemoryStore())

	apple := food(171688, "Apples, fuji, with skin, raw")
	require.NoError(t, cache.Put(ctx, apple))

	got, err := cache.Get(ctx, 171688)
	require.NoError(t, err)
	assert.Equal(t, apple, got)
}

func TestCache_GetMiss(t *testing.T) {
	cache := New(kv.NewMemoryStore())

	got, err := cache.Get(context.Background(), 1)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestCache_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	cache := New(kv.NewMemoryStore())

	require.NoError(t, cache.Put(ctx, food(1, "Old description")))
	require.NoError(t, cache.Put(ctx, food(1, "New description")))

	got, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "New description", got.Description)

	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCache_PutNil(t *testing.T) {
	cache := New(kv.NewMemoryStore())
	assert.ErrorIs(t, cache.Put(context.Background(), nil), domain.ErrInvalidRequest)
}

func TestCache_PersistsThroughStore(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	require.NoError(t, New(store).Put(ctx, food(42, "Oats")))

	// A fresh cache over the same store sees the record.
	got, err := New(store).Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Oats", got.Description)
}

func TestCache_CorruptedStoreIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	store.Set(ctx, StorageKey, "{{{garbage")
	cache := New(store)

	_, err := cache.Get(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	results, err := cache.SearchByDescription(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, results)

	// Writing recovers the store.
	require.NoError(t, cache.Put(ctx, food(1, "Banana")))
	got, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Banana", got.Description)
}

func TestCache_SearchByDescription(t *testing.T) {
	ctx := context.Background()
	cache := New(kv.NewMemoryStore())
	require.NoError(t, cache.Put(ctx, food(3, "Milk, whole")))
	require.NoError(t, cache.Put(ctx, food(1, "Buttermilk, low fat")))
	require.NoError(t, cache.Put(ctx, food(2, "Bread, wheat")))

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "empty query", query: "", want: []int{}},
		{name: "whitespace query", query: "   ", want: []int{}},
		{name: "case insensitive substring", query: "MILK", want: []int{1, 3}},
		{name: "trimmed", query: "  bread ", want: []int{2}},
		{name: "no match", query: "cheese", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := cache.SearchByDescription(ctx, tt.query)
			require.NoError(t, err)

			ids := []int{}
			for _, r := range results {
				ids = append(ids, r.FdcID)
				assert.Equal(t, domain.DataTypeCached, r.DataType)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
