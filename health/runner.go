package health

import (
	"context"
	"fmt"
	"maps"
	"time"
)

// RunCheck executes one probe, racing it against spec.Timeout.
//
// A probe that outlives its timeout is abandoned: it keeps running until it
// notices its cancelled context, but its outcome is discarded. RunCheck never
// waits for it and it cannot leak into a later run.
func RunCheck(ctx context.Context, spec CheckSpec) CheckResult {
	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	start := time.Now()
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Buffered so an abandoned probe can always deliver and exit
	resultCh := make(chan CheckResult, 1)

	go func() {
		resultCh <- invokeProbe(checkCtx, spec, start)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-resultCh:
		return settle(spec, timeout, start, result)
	case <-timer.C:
		return timedOut(spec, timeout, start)
	}
}

// settle returns result unless it arrived at or past the deadline, in which
// case the check timed out whatever the probe reported.
func settle(spec CheckSpec, timeout time.Duration, start time.Time, result CheckResult) CheckResult {
	if result.Duration >= timeout {
		return timedOut(spec, timeout, start)
	}
	return result
}

func timedOut(spec CheckSpec, timeout time.Duration, start time.Time) CheckResult {
	return CheckResult{
		ID:       spec.ID,
		Status:   StatusTimeout,
		Message:  fmt.Sprintf("check exceeded %s", timeout),
		Duration: time.Since(start),
		Severity: spec.Severity,
	}
}

func invokeProbe(ctx context.Context, spec CheckSpec, start time.Time) (result CheckResult) {
	result = CheckResult{ID: spec.ID, Severity: spec.Severity}

	defer func() {
		if r := recover(); r != nil {
			result.Status = StatusError
			result.Message = fmt.Sprintf("probe panicked: %v", r)
			result.Details = nil
		}
		result.Duration = time.Since(start)
	}()

	outcome, err := spec.Probe.Probe(ctx)
	switch {
	case err != nil:
		result.Status = StatusError
		result.Message = err.Error()
		if result.Message == "" {
			result.Message = "probe failed"
		}
	case outcome.Passed:
		result.Status = StatusPass
		result.Message = outcome.Message
	default:
		result.Status = StatusFail
		result.Message = outcome.Message
		if result.Message == "" {
			result.Message = "check failed"
		}
	}
	if len(outcome.Details) > 0 {
		result.Details = maps.Clone(outcome.Details)
	}
	return result
}
