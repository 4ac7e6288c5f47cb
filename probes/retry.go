package probes

import (
	"context"
	"time"

	"github.com/jonwraymond/launchgate/resilience"
)

// Retry configures in-probe retries. The zero value makes a single attempt.
type Retry struct {
	Attempts int
	Backoff  time.Duration
}

// do runs op up to r.Attempts times with exponential backoff and reports how
// many attempts were made. The probe's check deadline bounds the sequence.
func (r Retry) do(ctx context.Context, op func(context.Context) error) (int, error) {
	attempts := 0
	err := resilience.NewRetry(resilience.RetryConfig{
		MaxAttempts:  max(r.Attempts, 1),
		InitialDelay: r.Backoff,
		Strategy:     resilience.BackoffExponential,
		Jitter:       true,
	}).Execute(ctx, func(ctx context.Context) error {
		attempts++
		return op(ctx)
	})
	return attempts, err
}
