//go:build !unix

package probes

import (
	"os"
	"path/filepath"
)

// access falls back to a create-and-remove test where access(2) is unavailable.
func access(dir string, writable bool) error {
	if _, err := os.ReadDir(dir); err != nil {
		return err
	}
	if !writable {
		return nil
	}
	f, err := os.CreateTemp(dir, ".launchgate-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(filepath.Clean(name))
}
