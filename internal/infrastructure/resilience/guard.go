// Package resilience wraps calls to the external capability providers with
// bounded retries and a circuit breaker. Every guarded operation in this
// system is a remote dependency the pipeline can live without, so the guard
// exists to fail fast, not to mask outages.
package resilience

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Classification tells the guard how to treat one failure: whether another
// attempt makes sense and whether the breaker should count it.
type Classification struct {
	Retryable     bool
	RecordFailure bool
}

type Classifier func(err error) Classification

type Guard struct {
	name     string
	cfg      Config
	classify Classifier
	breaker  *gobreaker.CircuitBreaker[any]
}

func NewGuard(name string, cfg Config, classify Classifier) *Guard {
	cfg = cfg.normalize()
	if classify == nil {
		classify = func(error) Classification {
			return Classification{Retryable: false, RecordFailure: true}
		}
	}

	g := &Guard{name: name, cfg: cfg, classify: classify}
	g.breaker = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.BreakerHalfOpenMaxCalls,
		Timeout:     cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.BreakerFailureRatio
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			return !classify(err).RecordFailure
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "operation", name, "from", from.String(), "to", to.String())
		},
	})
	return g
}

func (g *Guard) Do(ctx context.Context, fn func(context.Context) error) error {
	_, err := g.breaker.Execute(func() (any, error) {
		return nil, g.withRetry(ctx, fn)
	})
	return err
}

func (g *Guard) withRetry(ctx context.Context, fn func(context.Context) error) error {
	backoff := g.cfg.RetryInitialBackoff

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !g.classify(err).Retryable || attempt == g.cfg.RetryMaxAttempts {
			return err
		}

		slog.Warn("retrying operation",
			"operation", g.name,
			"attempt", attempt,
			"max_attempts", g.cfg.RetryMaxAttempts,
			"error", err,
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}

		backoff = time.Duration(float64(backoff) * g.cfg.RetryMultiplier)
		if backoff > g.cfg.RetryMaxBackoff {
			backoff = g.cfg.RetryMaxBackoff
		}
	}
}

func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
