package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/macrolens/nutrilog/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteSetAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Set(ctx, "meals", `[{"id":"1"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.Get(ctx, "meals")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `[{"id":"1"}]` {
		t.Errorf("expected stored blob, got %q", got)
	}
}

func TestSQLiteGetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	if err != domain.ErrKeyNotFound {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestSQLiteUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Set(ctx, "profile", "adult")
	s.Set(ctx, "profile", "infant")

	got, _ := s.Get(ctx, "profile")
	if got != "infant" {
		t.Errorf("expected 'infant', got %q", got)
	}

	var rows int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv WHERE key = ?`, "profile").Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Errorf("expected 1 row, got %d", rows)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "kv.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Set(ctx, "food-cache", "{}")
	s.Close()

	s2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.Get(ctx, "food-cache")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got != "{}" {
		t.Errorf("expected '{}', got %q", got)
	}
}
