package blobstore

import (
	"context"
	"errors"
	"os"
	"testing"
)

func exerciseStore(t *testing.T, store Store, key string) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for empty key, got %v", err)
	}

	doc := []byte(`{"records":[],"orders":[],"customers":[]}`)
	if err := store.Put(ctx, key, doc); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	doc[0] = 'X'

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(got) != `{"records":[],"orders":[],"customers":[]}` {
		t.Errorf("Expected stored document unchanged, got %s", got)
	}

	if err := store.Put(ctx, key, []byte(`{"records":null}`)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got, _ = store.Get(ctx, key)
	if string(got) != `{"records":null}` {
		t.Errorf("Expected last write to win, got %s", got)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(), "plant-1")
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS not set")
	}
	ctx := context.Background()
	rdb, err := Connect(ctx, addr)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer rdb.Close()

	key := "test-" + t.Name()
	defer rdb.Del(ctx, keyPrefix+key)
	exerciseStore(t, NewRedisStore(rdb, 0), key)
}
