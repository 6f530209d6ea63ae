package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStoreSetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore(0)

	if _, ok := s.Get(ctx, "missing"); ok {
		t.Fatalf("Get() on empty store returned a value")
	}

	s.Set(ctx, "leaderboard:2025", []string{"alpha"})
	got, ok := s.Get(ctx, "leaderboard:2025")
	if !ok {
		t.Fatalf("Get() after Set() missed")
	}
	if got.([]string)[0] != "alpha" {
		t.Fatalf("Get() = %v", got)
	}

	s.Delete(ctx, "leaderboard:2025")
	if _, ok := s.Get(ctx, "leaderboard:2025"); ok {
		t.Fatalf("Get() after Delete() returned a value")
	}
}

func TestStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewStore(10 * time.Millisecond)

	s.Set(ctx, "k", 1)
	if _, ok := s.Get(ctx, "k"); !ok {
		t.Fatalf("Get() before expiry missed")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatalf("Get() after ttl returned a value")
	}
}

func TestStoreDeletePrefix(t *testing.T) {
	ctx := context.Background()
	s := NewStore(0)

	s.Set(ctx, "leaderboard:2024", 1)
	s.Set(ctx, "leaderboard:2025", 2)
	s.Set(ctx, "movies:all", 3)

	s.DeletePrefix(ctx, "leaderboard:")

	if _, ok := s.Get(ctx, "leaderboard:2024"); ok {
		t.Fatalf("prefix delete left leaderboard:2024")
	}
	if _, ok := s.Get(ctx, "leaderboard:2025"); ok {
		t.Fatalf("prefix delete left leaderboard:2025")
	}
	if _, ok := s.Get(ctx, "movies:all"); !ok {
		t.Fatalf("prefix delete removed unrelated key")
	}
}

func TestStoreGetOrLoad(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return "loaded", nil
	}

	for i := 0; i < 3; i++ {
		got, err := s.GetOrLoad(ctx, "k", loader)
		if err != nil {
			t.Fatalf("GetOrLoad() iteration %d: %v", i, err)
		}
		if got.(string) != "loaded" {
			t.Fatalf("GetOrLoad() = %v", got)
		}
	}
	if calls != 1 {
		t.Fatalf("loader calls = %d, want 1", calls)
	}
}

func TestStoreGetOrLoadError(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	wantErr := errors.New("upstream down")
	if _, err := s.GetOrLoad(ctx, "k", func(context.Context) (any, error) {
		return nil, wantErr
	}); !errors.Is(err, wantErr) {
		t.Fatalf("GetOrLoad() err = %v, want %v", err, wantErr)
	}

	// A failed load must not poison the key.
	got, err := s.GetOrLoad(ctx, "k", func(context.Context) (any, error) {
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad() after failure: %v", err)
	}
	if got.(string) != "recovered" {
		t.Fatalf("GetOrLoad() = %v", got)
	}
}
