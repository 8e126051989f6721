package fsutil

import (
	"errors"
	"syscall"
)

// isTransient reports whether a filesystem error is worth a single
// retry rather than an immediate failure.
func isTransient(err error) bool {
	return errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.ETIMEDOUT)
}
