package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errDB = errors.New("connection refused")

func failing(context.Context) error { return errDB }
func passing(context.Context) error { return nil }

func TestCircuitBreaker_Transitions(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: 40 * time.Millisecond, HalfOpenMaxReq: 1})
	ctx := context.Background()

	if err := b.Execute(ctx, failing); !errors.Is(err, errDB) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Execute(ctx, failing)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	called := false
	err := b.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected fail-fast while open, got err=%v called=%v", err, called)
	}

	time.Sleep(60 * time.Millisecond)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}
	if err := b.Execute(ctx, passing); err != nil {
		t.Fatalf("expected half-open trial request to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful trial request, got %s", state)
	}
}

func TestCircuitBreaker_SuccessResetsFailureStreak(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 2})
	ctx := context.Background()

	_ = b.Execute(ctx, failing)
	_ = b.Execute(ctx, passing)
	_ = b.Execute(ctx, failing)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("non-consecutive failures must not trip the breaker, got %s", state)
	}
	_ = b.Execute(ctx, failing)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after two consecutive failures, got %s", state)
	}
}

func TestNormalizeCircuitBreakerConfig(t *testing.T) {
	got := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})
	want := DefaultCircuitBreakerConfig()
	if got != want {
		t.Fatalf("unexpected normalized config: %+v want %+v", got, want)
	}
}

func TestCircuitBreaker_IgnoresCancellation(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 1})
	canceled := func(context.Context) error { return context.Canceled }

	for i := 0; i < 3; i++ {
		_ = b.Execute(context.Background(), canceled)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("cancellation must not open the breaker, got %s", state)
	}
}

func TestCircuitBreaker_DisabledPassesThrough(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false})
	if b != nil {
		t.Fatalf("disabled config should yield a nil breaker")
	}
	for i := 0; i < 10; i++ {
		if err := b.Execute(context.Background(), failing); !errors.Is(err, errDB) {
			t.Fatalf("expected pass-through error, got %v", err)
		}
	}
}
