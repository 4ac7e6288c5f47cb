// Package observe provides observability primitives for health validation.
//
// An Observer owns the OpenTelemetry tracer and meter providers plus a JSON
// structured logger. Hooks adapts those primitives to health.Hooks so a
// Validator emits one span, one metric sample, and one log entry per check,
// followed by a verdict entry per run.
//
//	obs, err := observe.NewObserver(ctx, cfg)
//	hooks, err := observe.HooksFromObserver(obs)
//	v := health.NewValidator(reg, health.WithHooks(hooks))
package observe
