package resilience

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// BackoffStrategy defines how delays grow between attempts.
type BackoffStrategy int

const (
	// BackoffExponential doubles the delay after every failed attempt.
	BackoffExponential BackoffStrategy = iota
	// BackoffLinear adds InitialDelay after every failed attempt.
	BackoffLinear
	// BackoffConstant waits InitialDelay between every attempt.
	BackoffConstant
)

// RetryConfig configures Retry.
type RetryConfig struct {
	// MaxAttempts counts the first attempt.
	// Default: 3
	MaxAttempts int

	// InitialDelay is the wait after the first failed attempt.
	// Default: 100ms
	InitialDelay time.Duration

	// MaxDelay caps a single wait.
	// Default: 5s
	MaxDelay time.Duration

	// Strategy selects the delay curve.
	// Default: BackoffExponential
	Strategy BackoffStrategy

	// Jitter adds up to 25% to every wait so probes started together do not
	// hit a recovering dependency in lockstep.
	Jitter bool

	// RetryIf reports whether err is worth another attempt.
	// Default: every non-nil error
	RetryIf func(err error) bool

	// OnRetry runs before each wait.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Retry runs an operation until it succeeds or its attempt budget is spent.
type Retry struct {
	config RetryConfig
}

// NewRetry creates a Retry, filling unset fields with defaults.
func NewRetry(config RetryConfig) *Retry {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = 100 * time.Millisecond
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 5 * time.Second
	}
	if config.RetryIf == nil {
		config.RetryIf = func(err error) bool { return err != nil }
	}
	return &Retry{config: config}
}

// Execute calls op until it returns nil.
//
// It gives up with the last error when the attempts run out, when RetryIf
// rejects an error, or when ctx has a deadline that the next wait would
// overrun. In the last case the error wraps ErrNoTimeLeft, so a caller racing
// a check timeout reports the real failure instead of timing out mid-sleep.
// A single-attempt policy returns op's error unchanged.
func (r *Retry) Execute(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return fmt.Errorf("%w: %w", err, lastErr)
			}
			return err
		}

		lastErr = op(ctx)
		switch {
		case lastErr == nil:
			return nil
		case r.config.MaxAttempts == 1, !r.config.RetryIf(lastErr):
			return lastErr
		case attempt >= r.config.MaxAttempts:
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetriesExceeded, attempt, lastErr)
		}

		delay := r.withJitter(r.Delay(attempt))
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= delay {
			return fmt.Errorf("%w after %d attempts: %w", ErrNoTimeLeft, attempt, lastErr)
		}
		if r.config.OnRetry != nil {
			r.config.OnRetry(attempt, lastErr, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", ctx.Err(), lastErr)
		case <-timer.C:
		}
	}
}

// Delay returns the wait after the given failed attempt, before jitter.
func (r *Retry) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	var delay time.Duration
	switch r.config.Strategy {
	case BackoffConstant:
		delay = r.config.InitialDelay
	case BackoffLinear:
		delay = r.config.InitialDelay * time.Duration(attempt)
	default:
		delay = r.config.InitialDelay
		for i := 1; i < attempt && delay < r.config.MaxDelay; i++ {
			delay *= 2
		}
	}

	return min(delay, r.config.MaxDelay)
}

func (r *Retry) withJitter(delay time.Duration) time.Duration {
	if !r.config.Jitter || delay < 4 {
		return delay
	}
	// #nosec G404 -- jitter is non-cryptographic timing variance.
	return delay + time.Duration(rand.Int64N(int64(delay/4)))
}

// Config returns the effective configuration.
func (r *Retry) Config() RetryConfig {
	return r.config
}
