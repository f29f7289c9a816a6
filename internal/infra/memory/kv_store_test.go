package memory

import (
	"context"
	"testing"
	"time"
)

func TestKVStoreRoundTripAndExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewKVStore()
	store.clock = func() time.Time { return now }

	if err := store.Set(ctx, "b", map[string]int{"n": 1}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "a", "short-lived", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got map[string]int
	ok, err := store.Get(ctx, "b", &got)
	if err != nil || !ok || got["n"] != 1 {
		t.Fatalf("unexpected get result ok=%v err=%v got=%v", ok, err, got)
	}

	keys, _ := store.Keys(ctx)
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected keys %v", keys)
	}

	now = now.Add(2 * time.Minute)
	var s string
	if ok, _ := store.Get(ctx, "a", &s); ok {
		t.Fatalf("expected expired key to be missing")
	}

	if err := store.Remove(ctx, "b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ok, _ := store.Get(ctx, "b", &got); ok {
		t.Fatalf("expected removed key to be missing")
	}

	_ = store.Set(ctx, "c", 1, 0)
	_ = store.Clear(ctx)
	if keys, _ := store.Keys(ctx); len(keys) != 0 {
		t.Fatalf("expected empty store after clear, got %v", keys)
	}
}
