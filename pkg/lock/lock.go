// Package lock serializes mutating configma commands on one machine.
package lock

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/logging"
	"github.com/gofrs/flock"
)

// Lock is an acquired advisory lock on the configma lock file
type Lock struct {
	flock *flock.Flock
}

// Acquire takes the lock at path without blocking. It fails with a LOCKED
// error when another process holds it.
func Acquire(path string) (*Lock, error) {
	logger := logging.GetLogger("lock")

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrDirCreate, "cannot create lock directory").
			WithPath(filepath.Dir(path))
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot acquire lock").WithPath(path)
	}
	if !ok {
		return nil, errors.New(errors.ErrLocked, "another configma process is running").WithPath(path)
	}

	logger.Trace().Str("path", path).Msg("Lock acquired")
	return &Lock{flock: fl}, nil
}

// Path returns the lock file path
func (l *Lock) Path() string {
	return l.flock.Path()
}

// Release unlocks. The lock file itself is left in place.
func (l *Lock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot release lock").WithPath(l.flock.Path())
	}
	logger := logging.GetLogger("lock")
	logger.Trace().Str("path", l.flock.Path()).Msg("Lock released")
	return nil
}
