package health

import (
	"context"
	"encoding/json"
	"math"
	"time"
)

// DefaultTimeout is applied at registration to specs without a timeout.
const DefaultTimeout = 10 * time.Second

// Outcome is what a probe reports when it completes.
type Outcome struct {
	// Passed is true when the probed subsystem is ready.
	Passed bool

	// Message provides human-readable detail. May be empty.
	Message string

	// Details contains arbitrary metadata about the probe.
	Details map[string]any
}

// Pass creates a passing outcome.
func Pass(message string) Outcome {
	return Outcome{Passed: true, Message: message}
}

// Fail creates a failing outcome.
func Fail(message string) Outcome {
	return Outcome{Passed: false, Message: message}
}

// WithDetails adds details to an outcome.
func (o Outcome) WithDetails(details map[string]any) Outcome {
	o.Details = details
	return o
}

// Probe is the single capability a check supplies: execute once and report.
//
// Contract:
//   - Context: the context carries the check deadline; probes should honor it.
//   - Errors: a returned error marks the check ERROR; it is never fatal.
//   - Concurrency: probes run concurrently with every other registered probe
//     and must not share mutable state with them.
type Probe interface {
	Probe(ctx context.Context) (Outcome, error)
}

// ProbeFunc is an adapter to allow ordinary functions to be used as Probes.
type ProbeFunc func(ctx context.Context) (Outcome, error)

// Probe calls f(ctx).
func (f ProbeFunc) Probe(ctx context.Context) (Outcome, error) {
	return f(ctx)
}

// CheckSpec is the immutable definition of one registered check.
type CheckSpec struct {
	// ID uniquely identifies the check within a registry.
	ID string

	// Severity decides how a failure affects the verdict.
	Severity Severity

	// Timeout bounds a single probe execution.
	// Default: DefaultTimeout
	Timeout time.Duration

	// Probe performs the check.
	Probe Probe
}

// CheckResult is the outcome of running one CheckSpec once.
type CheckResult struct {
	ID       string
	Status   CheckStatus
	Message  string
	Duration time.Duration
	Severity Severity
	Details  map[string]any
}

// Passed reports whether the check passed.
func (r CheckResult) Passed() bool {
	return r.Status == StatusPass
}

type checkResultJSON struct {
	ID         string         `json:"id"`
	Status     CheckStatus    `json:"status"`
	Severity   Severity       `json:"severity"`
	Message    string         `json:"message"`
	DurationMS float64        `json:"durationMs"`
	Details    map[string]any `json:"details,omitempty"`
}

// MarshalJSON encodes the result with the duration in milliseconds.
func (r CheckResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(checkResultJSON{
		ID:         r.ID,
		Status:     r.Status,
		Severity:   r.Severity,
		Message:    r.Message,
		DurationMS: float64(r.Duration.Microseconds()) / 1000,
		Details:    r.Details,
	})
}

// UnmarshalJSON decodes a result encoded by MarshalJSON.
func (r *CheckResult) UnmarshalJSON(data []byte) error {
	var raw checkResultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = CheckResult{
		ID:       raw.ID,
		Status:   raw.Status,
		Severity: raw.Severity,
		Message:  raw.Message,
		Duration: time.Duration(math.Round(raw.DurationMS*1000)) * time.Microsecond,
		Details:  raw.Details,
	}
	return nil
}
