package probes

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/jonwraymond/launchgate/health"
)

// versionPattern finds the first dotted version in tool output, such as
// "git version 2.43.0" or "sqlite3 v3.45.1 2024-01-30".
var versionPattern = regexp.MustCompile(`v?\d+(\.\d+)+(-[0-9A-Za-z.]+)?`)

// Command checks that an executable is available on PATH and, when
// Constraint is set, that the version it reports satisfies it.
type Command struct {
	Name string

	// Constraint is a version constraint such as ">= 2.30, < 3".
	Constraint string

	// VersionArgs are passed to Name to print its version.
	// Default: ["--version"]
	VersionArgs []string
}

// Probe implements health.Probe.
func (p Command) Probe(ctx context.Context) (health.Outcome, error) {
	path, err := exec.LookPath(p.Name)
	if err != nil {
		return health.Fail(fmt.Sprintf("%s not found on PATH", p.Name)), nil
	}
	if p.Constraint == "" {
		return health.Pass(path).WithDetails(map[string]any{"path": path}), nil
	}

	constraints, err := version.NewConstraint(p.Constraint)
	if err != nil {
		return health.Outcome{}, fmt.Errorf("%w: %q: %v", ErrInvalidConstraint, p.Constraint, err)
	}

	args := p.VersionArgs
	if len(args) == 0 {
		args = []string{"--version"}
	}
	out, err := exec.CommandContext(ctx, path, args...).CombinedOutput()
	if err != nil {
		return health.Fail(fmt.Sprintf("%s %s: %v", p.Name, strings.Join(args, " "), err)), nil
	}

	found := versionPattern.FindString(string(out))
	if found == "" {
		return health.Fail(fmt.Sprintf("%s printed no version", p.Name)), nil
	}
	v, err := version.NewVersion(found)
	if err != nil {
		return health.Fail(fmt.Sprintf("%s reported unparseable version %q", p.Name, found)), nil
	}

	details := map[string]any{"path": path, "version": v.String(), "constraint": p.Constraint}
	if !constraints.Check(v) {
		return health.Fail(fmt.Sprintf("%s %s does not satisfy %s", p.Name, v, p.Constraint)).WithDetails(details), nil
	}
	return health.Pass(fmt.Sprintf("%s %s", p.Name, v)).WithDetails(details), nil
}
