package usecase

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dotkeep/dotkeep/internal/adapter/gitignore"
	"github.com/dotkeep/dotkeep/internal/adapter/store"
	"github.com/dotkeep/dotkeep/internal/domain"
	"github.com/dotkeep/dotkeep/internal/fsutil"
	"github.com/dotkeep/dotkeep/internal/timestamp"
)

// Backup creates, enumerates and deletes snapshots, and restores files
// from a snapshot by identifier. It also serves as the restorer's
// rollback capability.
type Backup struct {
	store  *store.Store
	logger Logger

	// now, registerIgnore and removeArtifact are swappable for tests.
	now            func() time.Time
	registerIgnore func(workDir, pattern string) error
	removeArtifact func(workDir, logical, ts string) error
}

func NewBackup(st *store.Store, logger Logger) *Backup {
	return &Backup{
		store:          st,
		logger:         logger,
		now:            time.Now,
		registerIgnore: gitignore.EnsureEntry,
		removeArtifact: st.Remove,
	}
}

// CreateSnapshot copies the current content of every existing file in
// the batch into backup artifacts sharing one timestamp. Sources that
// do not exist are silently skipped, since a file may legitimately not exist
// yet. Per-file copy failures are logged and do not abort the batch.
// When nothing was copied no snapshot is recorded and ErrNothingToDo is
// returned.
func (b *Backup) CreateSnapshot(workDir string, files []string) (string, error) {
	if err := b.store.EnsureDir(workDir); err != nil {
		return "", err
	}

	// Keeping the backup directory out of version control is
	// best-effort; a read-only .gitignore must not block the backup.
	if err := b.registerIgnore(workDir, b.store.DirName()+"/"); err != nil {
		b.logger.Warnf("could not update .gitignore: %v", err)
	}

	// One timestamp for the whole batch, however long copying takes.
	ts, err := b.freshTimestamp(workDir)
	if err != nil {
		return "", err
	}

	copied := 0
	for _, file := range files {
		src := filepath.Join(workDir, file)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		if err := b.store.CopyIn(workDir, src, file, ts); err != nil {
			b.logger.Errorf("backup of %s failed: %v", file, err)
			continue
		}
		copied++
	}

	if copied == 0 {
		return "", fmt.Errorf("no files backed up: %w", domain.ErrNothingToDo)
	}

	b.logger.Infof("created snapshot %s with %d file(s)", ts, copied)
	return ts, nil
}

// freshTimestamp generates the batch timestamp, skipping forward past
// any second that already identifies a snapshot. Artifacts are
// immutable once written: a rollback snapshot taken in the same
// wall-clock second as the snapshot being restored must get its own
// identity instead of overwriting the original's artifacts.
func (b *Backup) freshTimestamp(workDir string) (string, error) {
	at := b.now()
	for {
		ts := timestamp.Generate(at)
		existing, err := b.matchingArtifacts(workDir, ts)
		if err != nil {
			return "", err
		}
		if len(existing) == 0 {
			return ts, nil
		}
		at = at.Add(time.Second)
	}
}

// ImportSnapshot records a set of files (logical name to content) as a
// new snapshot, used when unpacking an exported bundle. Entry names
// must be plain file names; anything that would land outside the
// backup directory is rejected before a single artifact is written.
func (b *Backup) ImportSnapshot(workDir string, files map[string][]byte) (string, error) {
	if len(files) == 0 {
		return "", fmt.Errorf("bundle holds no files: %w", domain.ErrNothingToDo)
	}
	for name := range files {
		if _, err := safeTargetPath(workDir, name); err != nil {
			return "", fmt.Errorf("unsafe file name in bundle: %v: %w", err, domain.ErrValidationFailed)
		}
		if name != filepath.Base(name) {
			return "", fmt.Errorf("file name %q in bundle is not a plain name: %w", name, domain.ErrValidationFailed)
		}
	}

	if err := b.store.EnsureDir(workDir); err != nil {
		return "", err
	}
	if err := b.registerIgnore(workDir, b.store.DirName()+"/"); err != nil {
		b.logger.Warnf("could not update .gitignore: %v", err)
	}

	ts, err := b.freshTimestamp(workDir)
	if err != nil {
		return "", err
	}
	for name, content := range files {
		if err := b.store.Put(workDir, name, ts, content); err != nil {
			return "", fmt.Errorf("import %s: %w", name, err)
		}
	}

	b.logger.Infof("imported snapshot %s with %d file(s)", ts, len(files))
	return ts, nil
}

// ListSnapshots groups the backup directory's artifacts by timestamp
// suffix and returns snapshots newest-first by creation time. A missing
// backup directory means no snapshots, not an error.
func (b *Backup) ListSnapshots(workDir string) ([]domain.Snapshot, error) {
	artifacts, err := b.store.ListArtifacts(workDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return groupArtifacts(artifacts), nil
}

// RestoreSnapshot is the simple store-level restore: every artifact of
// the snapshot is written back to its logical path. Per-file failures
// are collected and do not stop the remaining files. Callers that need
// traversal and symlink protection use the Restorer instead.
func (b *Backup) RestoreSnapshot(workDir, ts string) (*domain.StoreRestoreResult, error) {
	artifacts, err := b.matchingArtifacts(workDir, ts)
	if err != nil {
		return nil, err
	}
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("no snapshot %s: %w", ts, domain.ErrNothingToDo)
	}

	result := &domain.StoreRestoreResult{Failed: make(map[string]string)}
	for _, artifact := range artifacts {
		content, err := os.ReadFile(artifact.Path)
		if err != nil {
			result.Failed[artifact.LogicalName] = fmt.Sprintf("read artifact: %v", err)
			continue
		}

		target := filepath.Join(workDir, artifact.LogicalName)
		mode, existed, err := fsutil.StatMode(target)
		if err != nil {
			result.Failed[artifact.LogicalName] = err.Error()
			continue
		}
		if !existed {
			mode = domain.ModeForNewFile(artifact.LogicalName)
		}

		if err := fsutil.WriteAtomic(target, content, mode); err != nil {
			result.Failed[artifact.LogicalName] = err.Error()
			continue
		}
		result.Restored = append(result.Restored, artifact.LogicalName)
	}
	return result, nil
}

// DeleteSnapshot removes every artifact matching the timestamp and
// reports whether at least one was removed.
func (b *Backup) DeleteSnapshot(workDir, ts string) (bool, error) {
	artifacts, err := b.matchingArtifacts(workDir, ts)
	if err != nil {
		return false, err
	}

	removed := 0
	for _, artifact := range artifacts {
		if err := b.removeArtifact(workDir, artifact.LogicalName, ts); err != nil {
			b.logger.Errorf("delete artifact %s: %v", artifact.Path, err)
			continue
		}
		removed++
	}
	return removed > 0, nil
}

func (b *Backup) matchingArtifacts(workDir, ts string) ([]domain.Artifact, error) {
	artifacts, err := b.store.ListArtifacts(workDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var matching []domain.Artifact
	for _, artifact := range artifacts {
		if artifact.Timestamp == ts {
			matching = append(matching, artifact)
		}
	}
	return matching, nil
}

// Snapshot implements domain.RollbackManager: it creates a pre-restore
// safety snapshot and tags it with a handle.
func (b *Backup) Snapshot(workDir string, files []string) (domain.RollbackHandle, error) {
	ts, err := b.CreateSnapshot(workDir, files)
	if err != nil {
		return domain.RollbackHandle{}, err
	}
	return domain.RollbackHandle{ID: uuid.NewString(), Timestamp: ts}, nil
}

// Rollback implements domain.RollbackManager by restoring the handle's
// snapshot through the store-level path.
func (b *Backup) Rollback(workDir string, handle domain.RollbackHandle) (*domain.RestoreOutcome, error) {
	result, err := b.RestoreSnapshot(workDir, handle.Timestamp)
	if err != nil {
		return nil, err
	}
	return &domain.RestoreOutcome{
		Success:   len(result.Failed) == 0,
		Restored:  result.Restored,
		Failed:    result.Failed,
		Timestamp: handle.Timestamp,
	}, nil
}
