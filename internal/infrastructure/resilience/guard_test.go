package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig() Config {
	return Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2.0,

		BreakerMinRequests:      2,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      time.Minute,
		BreakerHalfOpenMaxCalls: 1,
	}
}

func alwaysRetry(error) Classification {
	return Classification{Retryable: true, RecordFailure: true}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	g := NewGuard("test.op", fastConfig(), alwaysRetry)

	attempts := 0
	err := g.Do(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestDoStopsOnNonRetryableError(t *testing.T) {
	classify := func(error) Classification {
		return Classification{Retryable: false, RecordFailure: true}
	}
	g := NewGuard("test.op", fastConfig(), classify)

	attempts := 0
	wantErr := errors.New("permanent")
	err := g.Do(context.Background(), func(context.Context) error {
		attempts++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected original error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected single attempt, got %d", attempts)
	}
}

func TestDoOpensBreakerAfterRepeatedFailures(t *testing.T) {
	g := NewGuard("test.op", fastConfig(), alwaysRetry)

	failing := func(context.Context) error { return errors.New("down") }
	for i := 0; i < 3; i++ {
		_ = g.Do(context.Background(), failing)
	}

	err := g.Do(context.Background(), failing)
	if !IsCircuitOpen(err) {
		t.Fatalf("expected open circuit, got %v", err)
	}
}

func TestDoIgnoredFailuresDoNotTripBreaker(t *testing.T) {
	classify := func(error) Classification {
		return Classification{Retryable: false, RecordFailure: false}
	}
	g := NewGuard("test.op", fastConfig(), classify)

	failing := func(context.Context) error { return errors.New("expected condition") }
	for i := 0; i < 5; i++ {
		if err := g.Do(context.Background(), failing); IsCircuitOpen(err) {
			t.Fatalf("breaker tripped on ignored failures at call %d", i)
		}
	}
}

func TestDoHonorsContextCancellation(t *testing.T) {
	g := NewGuard("test.op", fastConfig(), alwaysRetry)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Do(ctx, func(context.Context) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
