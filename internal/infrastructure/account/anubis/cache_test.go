package anubis

import (
	"testing"
	"time"

	"github.com/riskibarqy/draft-roster/internal/domain/user"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

func newTestCache(ttl time.Duration, maxEntries int) (*inMemoryPrincipalCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	cache := newInMemoryPrincipalCache(ttl, maxEntries)
	cache.now = clock.Now
	return cache, clock
}

func TestInMemoryPrincipalCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(time.Minute, 10)
	cache.Set("k1", user.Principal{UserID: "u-1", EmailVerified: true})

	principal, ok := cache.Get("k1")
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if principal.UserID != "u-1" || !principal.EmailVerified {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestInMemoryPrincipalCache_Expired(t *testing.T) {
	cache, clock := newTestCache(time.Minute, 10)
	cache.Set("k1", user.Principal{UserID: "u-1"})
	clock.now = clock.now.Add(time.Minute)

	if _, ok := cache.Get("k1"); ok {
		t.Fatalf("expected cache miss after expiry")
	}
	if cache.Len() != 0 {
		t.Fatalf("expected expired entry to be dropped, len=%d", cache.Len())
	}
}

func TestInMemoryPrincipalCache_EvictsClosestToExpiry(t *testing.T) {
	cache, clock := newTestCache(time.Minute, 2)
	cache.Set("first", user.Principal{UserID: "u-1"})
	clock.now = clock.now.Add(time.Second)
	cache.Set("second", user.Principal{UserID: "u-2"})
	clock.now = clock.now.Add(time.Second)
	cache.Set("third", user.Principal{UserID: "u-3"})

	if _, ok := cache.Get("first"); ok {
		t.Fatalf("expected oldest entry to be evicted")
	}
	for _, key := range []string{"second", "third"} {
		if _, ok := cache.Get(key); !ok {
			t.Fatalf("expected %s to survive eviction", key)
		}
	}
}

func TestInMemoryPrincipalCache_ZeroTTLDisables(t *testing.T) {
	cache, _ := newTestCache(0, 10)
	cache.Set("k1", user.Principal{UserID: "u-1"})
	if _, ok := cache.Get("k1"); ok {
		t.Fatalf("expected zero ttl to disable caching")
	}
}
