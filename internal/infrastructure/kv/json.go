package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"reflect"

	"github.com/macrolens/nutrilog/internal/domain"
)

// ReadJSON decodes the blob stored under key into dest. It reports false when
// the key is absent or the blob cannot be parsed; a corrupted blob is logged
// and otherwise treated as absent. Only store failures are returned as errors.
func ReadJSON(ctx context.Context, store domain.KeyValueStore, key string, dest any) (bool, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if raw == "" {
		return false, nil
	}

	// Decode into a fresh value so a partial decode never reaches dest.
	target := reflect.ValueOf(dest)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return false, fmt.Errorf("decode %s: destination must be a non-nil pointer", key)
	}
	fresh := reflect.New(target.Elem().Type())
	if err := json.Unmarshal([]byte(raw), fresh.Interface()); err != nil {
		log.Printf("[KV] WARNING: discarding unparseable value under %q: %v", key, err)
		target.Elem().SetZero()
		return false, nil
	}
	target.Elem().Set(fresh.Elem())
	return true, nil
}

// WriteJSON encodes value and stores it under key.
func WriteJSON(ctx context.Context, store domain.KeyValueStore, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, key, string(b))
}
