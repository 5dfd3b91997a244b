// Package filelock provides the destination run lock and atomic file
// writes.
//
// A non-dry run takes a non-blocking flock on a lock file inside the
// destination root before mutating anything, so two concurrent rsorg
// invocations cannot interleave writes into the same tree. Generated
// files are written with a temp-file-then-rename strategy so readers
// never observe a partially written file.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the name of the lock file created in the destination
// root for the duration of a run.
const LockFileName = ".rsorg.lock"

// RunLock guards a destination tree against concurrent runs.
type RunLock struct {
	flock *flock.Flock
	path  string
}

// NewRunLock creates a lock for the given destination root. The lock
// file itself is created lazily on the first TryLock call; the
// destination root must exist by then.
func NewRunLock(destRoot string) *RunLock {
	path := filepath.Join(destRoot, LockFileName)
	return &RunLock{
		flock: flock.New(path),
		path:  path,
	}
}

// TryLock attempts to acquire the lock without blocking. Returns false
// when another process holds it.
func (l *RunLock) TryLock() (bool, error) {
	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", l.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (l *RunLock) Unlock() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}

// Path returns the lock file path.
func (l *RunLock) Path() string {
	return l.path
}

// AtomicWrite writes data to path via a temporary file in the same
// directory followed by a rename. Missing parent directories are
// created first. If the write fails at any point, the previous file
// contents (if any) are left untouched.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// The temp file must live in the target directory: rename is only
	// atomic within a single filesystem.
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tempPath := tempFile.Name()

	cleanup := func() {
		tempFile.Close()
		os.Remove(tempPath)
	}

	if _, err := tempFile.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("failed to write temp file %s: %w", tempPath, err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file %s: %w", tempPath, err)
	}

	if err := os.Chmod(tempPath, 0o644); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to chmod temp file %s: %w", tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename %s to %s: %w", tempPath, path, err)
	}
	return nil
}
