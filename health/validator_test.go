package health

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestValidateAll_EmptyRegistry(t *testing.T) {
	report := ValidateAll(context.Background(), NewRegistry())

	if report.Overall != OverallHealthy {
		t.Errorf("Overall = %v, want HEALTHY", report.Overall)
	}
	if len(report.AllResults) != 0 || report.Summary.Total != 0 {
		t.Errorf("report = %+v", report)
	}
	if report.ExitCode() != ExitOK {
		t.Errorf("ExitCode() = %d, want 0", report.ExitCode())
	}
}

func TestValidateAll_Degraded(t *testing.T) {
	reg := mustRegistry(t,
		CheckSpec{ID: "db", Severity: SeverityCritical, Probe: passing("connected")},
		CheckSpec{ID: "cache", Severity: SeverityWarning, Probe: failing("connection refused")},
		CheckSpec{ID: "telemetry", Severity: SeverityInfo, Probe: failing("collector down")},
	)

	report := ValidateAll(context.Background(), reg)

	if report.Overall != OverallDegraded {
		t.Fatalf("Overall = %v, want DEGRADED", report.Overall)
	}
	if len(report.CriticalFailures) != 0 {
		t.Errorf("CriticalFailures = %v", ids(report.CriticalFailures))
	}
	if got := ids(report.Warnings); !slices.Equal(got, []string{"cache"}) {
		t.Errorf("Warnings = %v", got)
	}
	if report.ExitCode() != ExitOK {
		t.Errorf("ExitCode() = %d, degraded must not block", report.ExitCode())
	}
	if report.Summary != (Summary{Total: 3, Passed: 1, Failed: 2}) {
		t.Errorf("Summary = %+v", report.Summary)
	}
}

func TestValidateAll_CriticalTimeout(t *testing.T) {
	reg := mustRegistry(t,
		CheckSpec{ID: "db", Severity: SeverityCritical, Timeout: 100 * time.Millisecond, Probe: stubborn(2 * time.Second)},
		CheckSpec{ID: "cache", Severity: SeverityWarning, Timeout: time.Second, Probe: passing("")},
	)

	start := time.Now()
	report := ValidateAll(context.Background(), reg)
	elapsed := time.Since(start)

	if elapsed > time.Second {
		t.Errorf("ValidateAll took %v, want about the db timeout", elapsed)
	}
	if report.Overall != OverallFailed || report.ExitCode() != ExitBlocked {
		t.Fatalf("Overall = %v exit %d, want FAILED exit 1", report.Overall, report.ExitCode())
	}
	db, _ := report.Result("db")
	if db.Status != StatusTimeout {
		t.Errorf("db Status = %v, want TIMEOUT", db.Status)
	}
}

func TestValidateAll_OrderUnderRandomCompletion(t *testing.T) {
	const n = 20
	var specs []CheckSpec
	var want []string
	for i := range n {
		id := string(rune('a' + i))
		delay := time.Duration(rand.IntN(30)) * time.Millisecond
		specs = append(specs, CheckSpec{ID: id, Timeout: time.Second, Probe: sleeping(delay)})
		want = append(want, id)
	}

	report := ValidateAll(context.Background(), mustRegistry(t, specs...))

	if got := ids(report.AllResults); !slices.Equal(got, want) {
		t.Errorf("AllResults order = %v, want %v", got, want)
	}
}

func TestValidateAll_RunsConcurrently(t *testing.T) {
	var specs []CheckSpec
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		specs = append(specs, CheckSpec{ID: id, Timeout: time.Second, Probe: sleeping(100 * time.Millisecond)})
	}

	start := time.Now()
	ValidateAll(context.Background(), mustRegistry(t, specs...))
	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Errorf("five 100ms probes took %v, want them to overlap", elapsed)
	}
}

func TestValidateAll_MaxConcurrent(t *testing.T) {
	var running, peak atomic.Int32
	probe := ProbeFunc(func(context.Context) (Outcome, error) {
		cur := running.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		running.Add(-1)
		return Pass(""), nil
	})

	var specs []CheckSpec
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		specs = append(specs, CheckSpec{ID: id, Timeout: time.Second, Probe: probe})
	}

	v := NewValidator(mustRegistry(t, specs...), WithConfig(ValidatorConfig{MaxConcurrent: 2}))
	report := v.ValidateAll(context.Background())

	if report.Summary.Passed != 6 {
		t.Errorf("Passed = %d, want 6", report.Summary.Passed)
	}
	if got := peak.Load(); got > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", got)
	}
}

func TestValidateAll_ProbeErrorsNeverEscape(t *testing.T) {
	reg := mustRegistry(t,
		CheckSpec{ID: "err", Severity: SeverityWarning, Probe: ProbeFunc(func(context.Context) (Outcome, error) {
			return Outcome{}, errors.New("boom")
		})},
		CheckSpec{ID: "panic", Severity: SeverityWarning, Probe: ProbeFunc(func(context.Context) (Outcome, error) {
			panic("bad probe")
		})},
		CheckSpec{ID: "ok", Severity: SeverityCritical, Probe: passing("")},
	)

	report := ValidateAll(context.Background(), reg)

	if report.Overall != OverallDegraded {
		t.Errorf("Overall = %v, want DEGRADED", report.Overall)
	}
	if report.Summary.Errored != 2 {
		t.Errorf("Errored = %d, want 2", report.Summary.Errored)
	}
}

func TestValidateAll_ParentCancelStillReports(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reg := mustRegistry(t, CheckSpec{ID: "db", Timeout: time.Second, Probe: sleeping(10 * time.Millisecond)})
	report := ValidateAll(ctx, reg)

	if len(report.AllResults) != 1 {
		t.Fatalf("AllResults = %d, want 1", len(report.AllResults))
	}
	if report.AllResults[0].Status == StatusPass {
		t.Error("a probe honoring a cancelled context should not pass")
	}
}

func TestValidator_Check(t *testing.T) {
	v := NewValidator(mustRegistry(t, CheckSpec{ID: "db", Probe: failing("down")}))

	result, err := v.Check(context.Background(), "db")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if result.Status != StatusFail || result.Message != "down" {
		t.Errorf("result = %+v", result)
	}

	if _, err := v.Check(context.Background(), "missing"); !errors.Is(err, ErrCheckNotFound) {
		t.Errorf("Check(missing) error = %v, want ErrCheckNotFound", err)
	}
}

type recordingHooks struct {
	mu       sync.Mutex
	started  []string
	finished []string
	reports  []Report
}

type hookKey struct{}

func (h *recordingHooks) CheckStarted(ctx context.Context, spec CheckSpec) context.Context {
	h.mu.Lock()
	h.started = append(h.started, spec.ID)
	h.mu.Unlock()
	return context.WithValue(ctx, hookKey{}, spec.ID)
}

func (h *recordingHooks) CheckFinished(ctx context.Context, spec CheckSpec, _ CheckResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ctx.Value(hookKey{}) == spec.ID {
		h.finished = append(h.finished, spec.ID)
	}
}

func (h *recordingHooks) RunFinished(_ context.Context, report Report) {
	h.mu.Lock()
	h.reports = append(h.reports, report)
	h.mu.Unlock()
}

func TestValidator_Hooks(t *testing.T) {
	hooks := &recordingHooks{}
	var probeSaw any
	reg := mustRegistry(t,
		CheckSpec{ID: "db", Probe: ProbeFunc(func(ctx context.Context) (Outcome, error) {
			probeSaw = ctx.Value(hookKey{})
			return Pass(""), nil
		})},
		CheckSpec{ID: "cache", Probe: passing("")},
	)

	report := NewValidator(reg, WithHooks(hooks)).ValidateAll(context.Background())

	slices.Sort(hooks.started)
	slices.Sort(hooks.finished)
	if !slices.Equal(hooks.started, []string{"cache", "db"}) || !slices.Equal(hooks.finished, hooks.started) {
		t.Errorf("started=%v finished=%v", hooks.started, hooks.finished)
	}
	if probeSaw != "db" {
		t.Errorf("probe context value = %v, want the hook context", probeSaw)
	}
	if len(hooks.reports) != 1 || hooks.reports[0].RunID != report.RunID {
		t.Errorf("RunFinished calls = %d", len(hooks.reports))
	}
}

func TestValidator_NilHooksIgnored(t *testing.T) {
	v := NewValidator(nil, WithHooks(nil))
	if v.Registry() == nil {
		t.Fatal("nil registry should be replaced")
	}
	v.ValidateAll(context.Background())
}
