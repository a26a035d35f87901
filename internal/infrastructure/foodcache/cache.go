// Package foodcache keeps fetched FoodData Central records in a key-value
// store so repeat lookups and meal previews work without the network.
package foodcache

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/macrolens/nutrilog/internal/domain"
	"github.com/macrolens/nutrilog/internal/infrastructure/kv"
)

// StorageKey is the key the whole cache is stored under.
const StorageKey = "food-cache"

// Cache is a food record cache serialised as one JSON object keyed by FDC id.
// Every read deserialises the full store and every Put writes it back.
type Cache struct {
	store domain.KeyValueStore
	// mu serialises read-modify-write in Put across concurrent requests.
	mu sync.Mutex
}

// New creates a cache on top of store.
func New(store domain.KeyValueStore) *Cache {
	return &Cache{store: store}
}

type records map[string]domain.FoodRecord

func (c *Cache) read(ctx context.Context) (records, error) {
	all := records{}
	ok, err := kv.ReadJSON(ctx, c.store, StorageKey, &all)
	if err != nil {
		return nil, fmt.Errorf("read food cache: %w", err)
	}
	if !ok || all == nil {
		return records{}, nil
	}
	return all, nil
}

// Get returns the cached record or domain.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, fdcID int) (*domain.FoodRecord, error) {
	all, err := c.read(ctx)
	if err != nil {
		return nil, err
	}
	food, ok := all[strconv.Itoa(fdcID)]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return &food, nil
}

// Put inserts or overwrites food under its own id and persists immediately.
func (c *Cache) Put(ctx context.Context, food *domain.FoodRecord) error {
	if food == nil {
		return domain.ErrInvalidRequest
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.read(ctx)
	if err != nil {
		return err
	}
	all[strconv.Itoa(food.FdcID)] = *food

	if err := kv.WriteJSON(ctx, c.store, StorageKey, all); err != nil {
		return fmt.Errorf("write food cache: %w", err)
	}
	log.Printf("[FoodCache] Stored %d (%q), %d foods cached", food.FdcID, food.Description, len(all))
	return nil
}

// SearchByDescription returns cached foods whose description contains query,
// case-insensitively, ordered by FDC id. A blank query matches nothing.
func (c *Cache) SearchByDescription(ctx context.Context, query string) ([]domain.FoodSearchResult, error) {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return []domain.FoodSearchResult{}, nil
	}

	all, err := c.read(ctx)
	if err != nil {
		return nil, err
	}

	results := []domain.FoodSearchResult{}
	for _, food := range all {
		if strings.Contains(strings.ToLower(food.Description), normalized) {
			results = append(results, domain.FoodSearchResult{
				FdcID:       food.FdcID,
				Description: food.Description,
				DataType:    domain.DataTypeCached,
			})
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].FdcID < results[j].FdcID })
	return results, nil
}

// Len returns the number of cached foods.
func (c *Cache) Len(ctx context.Context) (int, error) {
	all, err := c.read(ctx)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}
