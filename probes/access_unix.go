//go:build unix

package probes

import "golang.org/x/sys/unix"

// access asks the kernel whether the effective user may list and enter dir,
// and write to it when writable is set.
func access(dir string, writable bool) error {
	mode := uint32(unix.R_OK | unix.X_OK)
	if writable {
		mode |= unix.W_OK
	}
	return unix.Access(dir, mode)
}
