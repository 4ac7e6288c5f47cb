package probes

import (
	"fmt"

	"github.com/jonwraymond/launchgate/config"
	"github.com/jonwraymond/launchgate/health"
)

// Build returns the probe described by a configured check.
func Build(check config.Check) (health.Probe, error) {
	retry := Retry{Attempts: check.Attempts, Backoff: check.RetryBackoff()}

	switch check.Type {
	case config.TypeHTTP:
		return HTTP{URL: check.URL, ExpectStatus: check.ExpectedStatus(), Retry: retry}, nil
	case config.TypeTCP:
		return TCP{Address: check.Address, Retry: retry}, nil
	case config.TypeCommand:
		return Command{Name: check.Command, Constraint: check.VersionConstraint, VersionArgs: check.VersionArgs}, nil
	case config.TypeDirectory:
		return Directory{Path: check.Path, Writable: check.Writable}, nil
	case config.TypeSQLite:
		return SQLite{DSN: check.DSN, QuickCheck: check.QuickCheck}, nil
	case config.TypeMemory:
		return Memory{MaxHeapRatio: check.HeapRatio(), MaxHeapBytes: check.MaxHeapBytes}, nil
	case config.TypeEnv:
		return Env{Vars: check.Vars}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, check.Type)
	}
}

// Spec converts a configured check into a registrable spec.
func Spec(check config.Check) (health.CheckSpec, error) {
	severity, err := health.ParseSeverity(check.Severity)
	if err != nil {
		return health.CheckSpec{}, fmt.Errorf("check %q: %w", check.ID, err)
	}
	probe, err := Build(check)
	if err != nil {
		return health.CheckSpec{}, fmt.Errorf("check %q: %w", check.ID, err)
	}
	return health.CheckSpec{
		ID:       check.ID,
		Severity: severity,
		Timeout:  check.Timeout.Std(),
		Probe:    probe,
	}, nil
}

// BuildRegistry registers every configured check, in file order.
func BuildRegistry(cfg *config.Config) (*health.Registry, error) {
	reg := health.NewRegistry()
	for _, check := range cfg.Checks {
		spec, err := Spec(check)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(spec); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
