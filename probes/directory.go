package probes

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jonwraymond/launchgate/health"
)

// Directory checks that Path is an accessible directory.
type Directory struct {
	Path string

	// Writable additionally requires write permission.
	Writable bool
}

// Probe implements health.Probe.
func (p Directory) Probe(context.Context) (health.Outcome, error) {
	info, err := os.Stat(p.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return health.Fail(fmt.Sprintf("%s does not exist", p.Path)), nil
	case err != nil:
		return health.Fail(err.Error()), nil
	case !info.IsDir():
		return health.Fail(fmt.Sprintf("%s is not a directory", p.Path)), nil
	}

	if err := access(p.Path, p.Writable); err != nil {
		return health.Fail(fmt.Sprintf("%s: %v", p.Path, err)), nil
	}

	mode := "read"
	if p.Writable {
		mode = "read-write"
	}
	return health.Pass(mode).WithDetails(map[string]any{
		"path": p.Path,
		"mode": info.Mode().Perm().String(),
	}), nil
}
