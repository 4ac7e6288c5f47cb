// Package resilience provides retry with backoff for probe implementations.
//
// The health engine runs every probe exactly once per validation run. Probes
// that talk to flaky dependencies can retry internally, within their own
// deadline, using Retry:
//
//	retry := resilience.NewRetry(resilience.RetryConfig{
//	    MaxAttempts:  3,
//	    InitialDelay: 100 * time.Millisecond,
//	})
//
//	err := retry.Execute(ctx, func(ctx context.Context) error {
//	    return pingDependency(ctx)
//	})
//
// Retry stops as soon as the context is done, and it does not start a wait
// that would outlast the context deadline. A probe therefore reports the
// dependency's own error rather than timing out inside a backoff sleep.
package resilience
