package health

import "context"

// Hooks observes a validation run.
//
// Contract:
//   - Concurrency: CheckStarted and CheckFinished are called concurrently from
//     every check goroutine; implementations must be safe for concurrent use.
//   - Context: the context returned by CheckStarted is passed to the probe and
//     to the matching CheckFinished call.
//   - Errors: hooks must not panic and must return quickly.
type Hooks interface {
	CheckStarted(ctx context.Context, spec CheckSpec) context.Context
	CheckFinished(ctx context.Context, spec CheckSpec, result CheckResult)
	RunFinished(ctx context.Context, report Report)
}

// NopHooks is a Hooks implementation that does nothing.
type NopHooks struct{}

func (NopHooks) CheckStarted(ctx context.Context, _ CheckSpec) context.Context { return ctx }
func (NopHooks) CheckFinished(context.Context, CheckSpec, CheckResult)         {}
func (NopHooks) RunFinished(context.Context, Report)                           {}
