package usecase

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/dotkeep/dotkeep/internal/adapter/store"
	"github.com/dotkeep/dotkeep/internal/domain"
	"github.com/dotkeep/dotkeep/internal/fsutil"
)

// Restorer performs the hardened restore path: full up-front
// validation, path-traversal and symlink defenses, atomic writes, and
// optional permission/timestamp preservation. Files are processed
// strictly sequentially in snapshot order so progress callbacks and
// partial-failure reports are deterministic.
type Restorer struct {
	store    *store.Store
	rollback domain.RollbackManager
	logger   Logger
	progress domain.ProgressFunc
}

// NewRestorer builds a restorer. rollback may be nil when the caller
// never requests pre-restore snapshots.
func NewRestorer(st *store.Store, rollback domain.RollbackManager, logger Logger) *Restorer {
	return &Restorer{store: st, rollback: rollback, logger: logger}
}

// SetProgress installs a progress sink invoked at each file boundary.
func (r *Restorer) SetProgress(fn domain.ProgressFunc) {
	r.progress = fn
}

func (r *Restorer) notify(phase domain.RestorePhase, file string, index, total int) {
	if r.progress != nil {
		r.progress(phase, file, index, total)
	}
}

// RestoreSnapshot restores every file of the snapshot into workDir.
//
// Phase 1 validates every file (artifact existence and readability
// plus the path-safety check) and fails closed: any problem aborts the
// restore before a single write, with ErrValidationFailed. After that,
// per-file failures never abort the batch; every file gets its attempt
// and the outcome enumerates exactly what happened.
func (r *Restorer) RestoreSnapshot(workDir string, snap domain.Snapshot, opts domain.RestoreOptions) (*domain.RestoreOutcome, error) {
	outcome := &domain.RestoreOutcome{
		Failed:    make(map[string]string),
		DryRun:    opts.DryRun,
		Timestamp: snap.Timestamp,
	}
	total := len(snap.Files)

	// Phase 1: validate everything before touching anything.
	for i, file := range snap.Files {
		r.notify(domain.PhaseValidating, file, i+1, total)
		if _, err := safeTargetPath(workDir, file); err != nil {
			return nil, fmt.Errorf("unsafe file name in snapshot %s: %v: %w", snap.Timestamp, err, domain.ErrValidationFailed)
		}
		if err := r.checkArtifact(workDir, file, snap.Timestamp); err != nil {
			return nil, fmt.Errorf("snapshot %s: %v: %w", snap.Timestamp, err, domain.ErrValidationFailed)
		}
	}

	if opts.DryRun {
		outcome.Restored = append(outcome.Restored, snap.Files...)
		outcome.Success = true
		r.notify(domain.PhaseCompleted, "", total, total)
		return outcome, nil
	}

	// Phase 2: best-effort rollback snapshot of whatever the restore is
	// about to overwrite. Failure here is a warning, never a stop.
	if opts.CreateRollback && !opts.Force {
		r.createRollback(workDir, snap, outcome, total)
	}

	// Phase 3: restore file by file, in snapshot order.
	for i, file := range snap.Files {
		r.notify(domain.PhaseRestoring, file, i+1, total)
		if err := r.restoreFile(workDir, file, snap.Timestamp, opts, outcome); err != nil {
			outcome.Failed[file] = err.Error()
			r.logger.Errorf("restore of %s failed: %v", file, err)
			continue
		}
		outcome.Restored = append(outcome.Restored, file)
	}

	outcome.Success = len(outcome.Failed) == 0
	if outcome.Success {
		r.notify(domain.PhaseCompleted, "", total, total)
	} else {
		r.notify(domain.PhaseFailed, "", total, total)
	}
	return outcome, nil
}

func (r *Restorer) checkArtifact(workDir, file, ts string) error {
	path := r.store.ArtifactPath(workDir, file, ts)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("backup file for %s missing: %v", file, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("backup file for %s is not a regular file", file)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("backup file for %s unreadable: %v", file, err)
	}
	if !utf8.Valid(content) {
		return fmt.Errorf("backup file for %s is corrupt: not valid text", file)
	}
	return nil
}

func (r *Restorer) createRollback(workDir string, snap domain.Snapshot, outcome *domain.RestoreOutcome, total int) {
	if r.rollback == nil {
		outcome.Warnings = append(outcome.Warnings, "rollback requested but no rollback capability configured")
		return
	}

	var existing []string
	for _, file := range snap.Files {
		if _, err := os.Lstat(filepath.Join(workDir, file)); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return
	}

	r.notify(domain.PhaseBackingUp, "", 0, total)
	handle, err := r.rollback.Snapshot(workDir, existing)
	if err != nil {
		outcome.Warnings = append(outcome.Warnings, fmt.Sprintf("could not create rollback snapshot: %v", err))
		return
	}
	r.logger.Infof("rollback snapshot %s created (%s)", handle.Timestamp, handle.ID)
}

// restoreFile writes one file, defending against symlinked and
// directory targets and honoring the preservation options.
func (r *Restorer) restoreFile(workDir, file, ts string, opts domain.RestoreOptions, outcome *domain.RestoreOutcome) error {
	// Defense in depth: phase 1 already checked, check again right
	// before the write.
	target, err := safeTargetPath(workDir, file)
	if err != nil {
		return err
	}

	state, err := r.inspectTarget(target)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	content, err := r.store.ReadArtifact(workDir, file, ts)
	if err != nil {
		return err
	}

	mode := domain.DefaultFileMode
	switch {
	case !state.Existed:
		mode = domain.ModeForNewFile(file)
	case opts.PreservePermissions:
		mode = state.Mode
	}

	if err := fsutil.WriteAtomic(target, content, mode); err != nil {
		return err
	}

	if opts.PreserveTimestamps && state.Existed {
		if err := os.Chtimes(target, state.AccTime, state.ModTime); err != nil {
			outcome.Warnings = append(outcome.Warnings,
				fmt.Sprintf("could not preserve timestamps of %s: %v", file, err))
		}
	}
	return nil
}

// inspectTarget looks at the target without following symlinks. A
// symlink is unlinked before writing, since writing through it would
// mutate whatever it points to, possibly outside the working directory;
// the restore then behaves as if creating a fresh file. A directory
// target fails the file.
func (r *Restorer) inspectTarget(target string) (domain.FileState, error) {
	var state domain.FileState

	info, err := os.Lstat(target)
	if os.IsNotExist(err) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("inspect target: %w", err)
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		if err := os.Remove(target); err != nil {
			return state, fmt.Errorf("remove symlinked target: %w", err)
		}
		return state, nil
	case info.IsDir():
		return state, fmt.Errorf("target is a directory, refusing to overwrite")
	case info.Mode().IsRegular():
		state.Existed = true
		state.Mode = info.Mode().Perm()
		state.AccTime, state.ModTime = fsutil.Times(info)
		return state, nil
	default:
		// Sockets, devices and the like: replace without carry-over.
		if err := os.Remove(target); err != nil {
			return state, fmt.Errorf("remove special-file target: %w", err)
		}
		return state, nil
	}
}
