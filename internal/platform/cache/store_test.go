package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[[]string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) ([]string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return []string{"4-3-3"}, nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "formations", loader)
			if err != nil {
				errCh <- err
				return
			}
			if len(v) != 1 || v[0] != "4-3-3" {
				errCh <- errors.New("unexpected cached value")
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Fatalf("load failed: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single loader call, got %d", got)
	}
}

func TestStore_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	boom := errors.New("boom")
	calls := 0
	loader := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return 7, nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil || v != 7 {
		t.Fatalf("expected reload after error, got %d %v", v, err)
	}
}

func TestStore_ExpiryAndInvalidate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore[string](time.Minute)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	store.Set(ctx, "player:list", "a")
	store.Set(ctx, "player:id:1", "b")
	store.Set(ctx, "formation:list", "c")

	store.Invalidate(ctx, "player:")
	if _, ok := store.Get(ctx, "player:id:1"); ok {
		t.Fatalf("prefix invalidation missed a key")
	}
	if v, ok := store.Get(ctx, "formation:list"); !ok || v != "c" {
		t.Fatalf("unrelated key was dropped")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(ctx, "formation:list"); ok {
		t.Fatalf("expected entry to expire")
	}
}
