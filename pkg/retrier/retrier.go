// Package retrier implements exponential backoff with jitter.
package retrier

import (
	"context"
	"math/rand"
	"time"
)

const (
	defaultInitialInterval = 1 * time.Second
	defaultMaxInterval     = 30 * time.Second
	defaultMultiplier      = 2.0
	defaultMaxAttempts     = 5
	defaultJitter          = 0.1
)

// Retrier retries an operation with exponentially growing pauses. A
// non-positive attempt limit retries until the context is cancelled, which
// is what long-lived resubscription loops want.
type Retrier struct {
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
	maxAttempts     int
	jitter          float64
}

// Option configures the Retrier.
type Option func(*Retrier)

// WithInitialInterval sets the first retry pause.
func WithInitialInterval(d time.Duration) Option {
	return func(r *Retrier) { r.initialInterval = d }
}

// WithMaxInterval caps the retry pause.
func WithMaxInterval(d time.Duration) Option {
	return func(r *Retrier) { r.maxInterval = d }
}

// WithMultiplier sets the backoff growth factor.
func WithMultiplier(m float64) Option {
	return func(r *Retrier) { r.multiplier = m }
}

// WithMaxAttempts bounds the number of attempts; zero or negative means
// retry forever.
func WithMaxAttempts(n int) Option {
	return func(r *Retrier) { r.maxAttempts = n }
}

// WithJitter sets the jitter factor (0.0 to 1.0).
func WithJitter(j float64) Option {
	return func(r *Retrier) { r.jitter = j }
}

// New creates a Retrier with defaults and optional overrides.
func New(opts ...Option) *Retrier {
	r := &Retrier{
		initialInterval: defaultInitialInterval,
		maxInterval:     defaultMaxInterval,
		multiplier:      defaultMultiplier,
		maxAttempts:     defaultMaxAttempts,
		jitter:          defaultJitter,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do runs fn until it succeeds, the attempt limit is hit or ctx is done.
// The last error is returned when attempts are exhausted.
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	interval := r.initialInterval

	var err error
	for attempt := 0; r.maxAttempts <= 0 || attempt < r.maxAttempts; attempt++ {
		if attempt > 0 {
			if werr := r.wait(ctx, interval); werr != nil {
				return werr
			}
			interval = time.Duration(float64(interval) * r.multiplier)
			if interval > r.maxInterval {
				interval = r.maxInterval
			}
		}

		if err = fn(ctx); err == nil {
			return nil
		}
	}

	return err
}

func (r *Retrier) wait(ctx context.Context, interval time.Duration) error {
	jitter := (rand.Float64()*2 - 1) * r.jitter * float64(interval)
	pause := time.Duration(float64(interval) + jitter)
	if pause < 0 {
		pause = 0
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(pause):
		return nil
	}
}
