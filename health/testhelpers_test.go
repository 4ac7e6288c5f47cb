package health

import (
	"context"
	"testing"
	"time"
)

func passing(msg string) Probe {
	return ProbeFunc(func(context.Context) (Outcome, error) { return Pass(msg), nil })
}

func failing(msg string) Probe {
	return ProbeFunc(func(context.Context) (Outcome, error) { return Fail(msg), nil })
}

// sleeping passes after d unless its context ends first.
func sleeping(d time.Duration) Probe {
	return ProbeFunc(func(ctx context.Context) (Outcome, error) {
		select {
		case <-time.After(d):
			return Pass("slow"), nil
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		}
	})
}

// stubborn ignores its context and passes after d.
func stubborn(d time.Duration) Probe {
	return ProbeFunc(func(context.Context) (Outcome, error) {
		time.Sleep(d)
		return Pass("late"), nil
	})
}

func mustRegistry(t testing.TB, specs ...CheckSpec) *Registry {
	t.Helper()
	reg := NewRegistry()
	for _, spec := range specs {
		if err := reg.Register(spec); err != nil {
			t.Fatalf("Register(%q) error = %v", spec.ID, err)
		}
	}
	return reg
}

func ids(results []CheckResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}
