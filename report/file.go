package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/jonwraymond/launchgate/health"
)

// ErrLocked indicates another writer held the report lock until ctx ended.
var ErrLocked = errors.New("report: file is locked by another writer")

const lockRetryDelay = 50 * time.Millisecond

// WriteFile replaces the report at path. Concurrent launchgate processes
// serialize on path+".lock", and readers never observe a partial file
// because the report is written to a temporary sibling and renamed.
func WriteFile(ctx context.Context, path string, r health.Report) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil && !locked {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s", ErrLocked, path)
		}
		return fmt.Errorf("lock report: %w", err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLocked, path)
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := Encode(tmp, r); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode report: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod report: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace report: %w", err)
	}
	return nil
}

// ReadFile loads a report written by WriteFile.
func ReadFile(path string) (health.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return health.Report{}, err
	}
	defer f.Close()
	return Decode(f)
}
