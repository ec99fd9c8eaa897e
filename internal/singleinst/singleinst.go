// Package singleinst guards against two processes writing the same ledger.
package singleinst

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the lock file created inside the data directory.
const LockFileName = "trafic.lock"

// ErrAlreadyRunning is returned when another process holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Lock holds the per-user instance lock for the lifetime of the process.
type Lock struct {
	fl *flock.Flock
}

// Acquire takes the instance lock inside dir without blocking. It returns
// ErrAlreadyRunning when the lock is held by another process.
func Acquire(dir string) (*Lock, error) {
	fl := flock.New(filepath.Join(dir, LockFileName))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire instance lock: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyRunning
	}
	return &Lock{fl: fl}, nil
}

// Release drops the lock. The lock file itself is left in place.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}
