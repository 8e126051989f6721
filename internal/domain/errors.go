package domain

import "errors"

// Sentinel errors for the four user-visible exit paths. The CLI maps
// them to distinct messages and exit codes; they must never collapse
// into one another.
var (
	// ErrNothingToDo marks "no backups found" / "already in sync"
	// situations, as opposed to failures.
	ErrNothingToDo = errors.New("nothing to do")

	// ErrPartialFailure marks an operation where some files succeeded
	// and some failed; details live in the accompanying outcome.
	ErrPartialFailure = errors.New("some files failed")

	// ErrValidationFailed marks an operation rejected wholesale before
	// any mutation happened.
	ErrValidationFailed = errors.New("validation failed")

	// ErrAborted marks a user-declined confirmation.
	ErrAborted = errors.New("aborted by user")
)
