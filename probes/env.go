package probes

import (
	"context"
	"os"
	"strings"

	"github.com/jonwraymond/launchgate/health"
)

// Env checks that every variable in Vars is set to a non-empty value.
type Env struct {
	Vars []string

	// Lookup reads a variable.
	// Default: os.LookupEnv
	Lookup func(string) (string, bool)
}

// Probe implements health.Probe. Values are never reported.
func (p Env) Probe(context.Context) (health.Outcome, error) {
	lookup := p.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var missing []string
	for _, name := range p.Vars {
		if v, ok := lookup(name); !ok || v == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return health.Fail("missing " + strings.Join(missing, ", ")).
			WithDetails(map[string]any{"missing": missing}), nil
	}
	return health.Pass("all set"), nil
}
