package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreakerConfig_WithDefaults(t *testing.T) {
	cfg := CircuitBreakerConfig{Enabled: true, OpenTimeout: time.Minute}.WithDefaults()
	if cfg.FailureThreshold != 5 || cfg.HalfOpenMaxReq != 2 {
		t.Fatalf("expected default thresholds, got %+v", cfg)
	}
	if cfg.OpenTimeout != time.Minute {
		t.Fatalf("explicit open timeout must be kept, got %s", cfg.OpenTimeout)
	}
}

func TestBreakerGroup_IsolatesKeys(t *testing.T) {
	g := NewBreakerGroup(CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute})

	boom := errors.New("boom")
	if err := g.Get("njcaa-d1").Execute(func() error { return boom }, nil); !errors.Is(err, boom) {
		t.Fatalf("expected call error, got %v", err)
	}
	if err := g.Get("njcaa-d1").Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected njcaa-d1 breaker open, got %v", err)
	}
	if err := g.Get("njcaa-d2").Allow(); err != nil {
		t.Fatalf("expected njcaa-d2 breaker closed, got %v", err)
	}
	if g.Get("njcaa-d1") != g.Get("njcaa-d1") {
		t.Fatalf("expected the same breaker per key")
	}
}

func TestBreakerGroup_DisabledAllowsEverything(t *testing.T) {
	g := NewBreakerGroup(CircuitBreakerConfig{})
	if b := g.Get("any"); b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}

	var nilGroup *BreakerGroup
	if nilGroup.Get("any") != nil {
		t.Fatalf("expected nil breaker from nil group")
	}
}
