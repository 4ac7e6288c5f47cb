// Package health provides a pre-launch health validation engine.
//
// The engine runs a battery of independent checks concurrently, each bounded
// by its own timeout, classifies failures by severity and derives a single
// readiness verdict. The verdict and per-check detail are assembled into an
// immutable Report that a launch gate can persist and act on.
//
// # Core Concepts
//
// A CheckSpec names a Probe together with a Severity and a Timeout. Specs are
// registered once into a Registry, which is read-only for the rest of the
// process. Running a spec produces exactly one CheckResult with a
// CheckStatus of PASS, FAIL, TIMEOUT or ERROR.
//
// The verdict rule is:
//
//   - FAILED when any CRITICAL check did not pass
//   - DEGRADED when no CRITICAL check failed but a WARNING check did not pass
//   - HEALTHY otherwise (INFO checks never affect the verdict)
//
// # Basic Usage
//
//	reg := health.NewRegistry()
//	_ = reg.Register(health.CheckSpec{
//	    ID:       "database",
//	    Severity: health.SeverityCritical,
//	    Timeout:  2 * time.Second,
//	    Probe: health.ProbeFunc(func(ctx context.Context) (health.Outcome, error) {
//	        if err := db.PingContext(ctx); err != nil {
//	            return health.Outcome{}, err
//	        }
//	        return health.Pass("database reachable"), nil
//	    }),
//	})
//
//	report := health.ValidateAll(ctx, reg)
//	os.Exit(report.ExitCode())
//
// Results in Report.AllResults always follow registration order, regardless
// of which probe finished first, so reports from identical runs diff cleanly.
//
// # HTTP Endpoints
//
//	v := health.NewValidator(reg)
//	health.RegisterHandlers(mux, v)
//
// registers /healthz (liveness), /readyz (verdict only) and /health (full
// JSON report).
package health
