package domain

import (
	"os"
	"time"
)

// RestorePhase names the stage a restore invocation is in. Progress
// callbacks receive the current phase at every file boundary.
type RestorePhase string

const (
	PhaseValidating RestorePhase = "validating"
	PhaseBackingUp  RestorePhase = "backing-up"
	PhaseRestoring  RestorePhase = "restoring"
	PhaseCompleted  RestorePhase = "completed"
	PhaseFailed     RestorePhase = "failed"
)

// RestoreOptions is the full set of flags a caller can pass to a
// restore. The zero value is a plain, non-destructive default: no
// preservation, no rollback snapshot, confirmation required.
type RestoreOptions struct {
	Timestamp           string // empty means "most recent valid"
	SkipConfirmation    bool
	PreservePermissions bool
	PreserveTimestamps  bool
	CreateRollback      bool
	Force               bool
	DryRun              bool
	Verbose             bool
}

// RestoreOutcome aggregates per-file results of one restore invocation.
// Success is true iff Failed is empty.
type RestoreOutcome struct {
	Success   bool
	Restored  []string
	Failed    map[string]string
	Warnings  []string
	DryRun    bool
	Timestamp string
}

// ProgressFunc receives a notification at each file boundary during a
// restore. index is 1-based; total is the snapshot's file count.
type ProgressFunc func(phase RestorePhase, file string, index, total int)

// RollbackHandle identifies a pre-restore rollback snapshot.
type RollbackHandle struct {
	ID        string
	Timestamp string
}

// RollbackManager is the narrow capability the restorer uses to create
// a safety snapshot of the files it is about to overwrite, and to
// return to it. Implementations may be no-ops for tests.
type RollbackManager interface {
	Snapshot(workDir string, files []string) (RollbackHandle, error)
	Rollback(workDir string, handle RollbackHandle) (*RestoreOutcome, error)
}

// FileState captures what the restorer learned about a restore target
// before overwriting it.
type FileState struct {
	Existed bool
	Mode    os.FileMode
	AccTime time.Time
	ModTime time.Time
}
