package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
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
			v, err := store.GetOrLoad(context.Background(), "roster", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	var calls atomic.Int32
	errLoad := errors.New("feeds down")

	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, errLoad
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, errLoad) {
		t.Fatalf("expected load error, got %v", err)
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil || v != "ok" {
		t.Fatalf("expected retry to succeed, v=%v err=%v", v, err)
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", 1)
	now = now.Add(365 * 24 * time.Hour)

	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected entry to survive without ttl")
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", 1)
	now = now.Add(2 * time.Minute)

	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_InvalidationDuringLoadIsNotOverwritten(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()

	loading := make(chan struct{})
	release := make(chan struct{})
	done := make(chan any, 1)
	go func() {
		v, _ := store.GetOrLoad(ctx, "roster", func(context.Context) (any, error) {
			close(loading)
			<-release
			return "stale", nil
		})
		done <- v
	}()

	<-loading
	store.Delete(ctx, "roster")
	close(release)

	if v := <-done; v != "stale" {
		t.Fatalf("in-flight caller should still receive its build, got %v", v)
	}
	if _, ok := store.Get(ctx, "roster"); ok {
		t.Fatalf("stale build must not be stored after invalidation")
	}

	v, err := store.GetOrLoad(ctx, "roster", func(context.Context) (any, error) { return "fresh", nil })
	if err != nil || v != "fresh" {
		t.Fatalf("expected fresh rebuild, v=%v err=%v", v, err)
	}
}

func TestStore_DeletePrefixAndClear(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "roster:all", 1)
	store.Set(ctx, "roster:usl", 2)
	store.Set(ctx, "principal:abc", 3)

	before := store.Generation()
	store.DeletePrefix(ctx, "roster:")
	if store.Len() != 1 {
		t.Fatalf("expected one entry after prefix delete, got %d", store.Len())
	}
	if store.Generation() == before {
		t.Fatalf("expected generation bump on prefix delete")
	}

	store.Clear(ctx)
	if store.Len() != 0 {
		t.Fatalf("expected empty store after clear, got %d", store.Len())
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
