package health

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ValidatorConfig configures the validator.
type ValidatorConfig struct {
	// MaxConcurrent caps the number of probes running at once.
	// Queued probes start their timeout only when they are dispatched.
	// Default: 0 (unlimited, every probe starts immediately)
	MaxConcurrent int
}

// Validator runs every check of a registry and builds the report.
type Validator struct {
	registry *Registry
	config   ValidatorConfig
	hooks    Hooks
	builder  ReportBuilder
}

// Option configures a Validator.
type Option func(*Validator)

// WithConfig sets the validator configuration.
func WithConfig(config ValidatorConfig) Option {
	return func(v *Validator) {
		if config.MaxConcurrent < 0 {
			config.MaxConcurrent = 0
		}
		v.config = config
	}
}

// WithHooks attaches run observers.
func WithHooks(hooks Hooks) Option {
	return func(v *Validator) {
		if hooks != nil {
			v.hooks = hooks
		}
	}
}

// WithReportBuilder replaces the report builder.
func WithReportBuilder(builder ReportBuilder) Option {
	return func(v *Validator) {
		v.builder = builder
	}
}

// NewValidator creates a validator over reg.
func NewValidator(reg *Registry, opts ...Option) *Validator {
	if reg == nil {
		reg = NewRegistry()
	}
	v := &Validator{
		registry: reg,
		hooks:    NopHooks{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Registry returns the registry the validator runs.
func (v *Validator) Registry() *Registry {
	return v.registry
}

// ValidateAll runs every registered check concurrently and returns the report.
//
// There is no global timeout and no mid-run cancellation: the call returns
// once every probe has reached a terminal state, which takes at most the
// longest per-check timeout. A report is always produced.
func (v *Validator) ValidateAll(ctx context.Context) Report {
	specs := v.registry.All()
	results := make([]CheckResult, len(specs))

	var g errgroup.Group
	if v.config.MaxConcurrent > 0 {
		g.SetLimit(v.config.MaxConcurrent)
	}

	for i, spec := range specs {
		g.Go(func() error {
			// Each goroutine owns exactly one slot
			results[i] = v.run(ctx, spec)
			return nil
		})
	}
	_ = g.Wait()

	overall, critical, warnings := Aggregate(results)
	report := v.builder.Build(overall, critical, warnings, results)
	v.hooks.RunFinished(ctx, report)
	return report
}

// Check runs a single registered check.
func (v *Validator) Check(ctx context.Context, id string) (CheckResult, error) {
	spec, ok := v.registry.Lookup(id)
	if !ok {
		return CheckResult{}, ErrCheckNotFound
	}
	return v.run(ctx, spec), nil
}

func (v *Validator) run(ctx context.Context, spec CheckSpec) CheckResult {
	ctx = v.hooks.CheckStarted(ctx, spec)
	result := RunCheck(ctx, spec)
	v.hooks.CheckFinished(ctx, spec, result)
	return result
}

// ValidateAll runs every check in reg with default settings.
func ValidateAll(ctx context.Context, reg *Registry) Report {
	return NewValidator(reg).ValidateAll(ctx)
}
