// Package store owns the on-disk layout of backup artifacts: one file
// per (logical name, snapshot timestamp) pair under a dedicated
// directory inside the working directory.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotkeep/dotkeep/internal/domain"
	"github.com/dotkeep/dotkeep/internal/timestamp"
)

// DefaultDirName is the backup directory created inside the working
// directory.
const DefaultDirName = ".dotkeep-backups"

// Artifact file mode: artifacts can hold secrets, so they are always
// owner-only regardless of the source file's mode.
const artifactMode = 0o600

type Store struct {
	dirName string
}

func New() *Store {
	return &Store{dirName: DefaultDirName}
}

// NewWithDirName exists for configurations that relocate the backup
// directory. The name is relative to the working directory.
func NewWithDirName(dirName string) *Store {
	if dirName == "" {
		dirName = DefaultDirName
	}
	return &Store{dirName: dirName}
}

// DirName returns the backup directory name relative to a working
// directory, suitable for ignore-list patterns.
func (s *Store) DirName() string {
	return s.dirName
}

// Dir returns the absolute backup directory for a working directory.
func (s *Store) Dir(workDir string) string {
	return filepath.Join(workDir, s.dirName)
}

// EnsureDir creates the backup directory if it is absent.
func (s *Store) EnsureDir(workDir string) error {
	if err := os.MkdirAll(s.Dir(workDir), 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}
	return nil
}

// ArtifactFileName combines a logical name and a snapshot timestamp
// into the artifact's file name: "<logical>.<timestamp>".
func ArtifactFileName(logical, ts string) string {
	return logical + "." + ts
}

// SplitArtifactFileName recovers (logical name, timestamp) from an
// artifact file name by splitting on the last well-formed timestamp
// suffix. This is lossless even when the logical name itself contains
// dots (".env.local.20241125-143022" -> ".env.local").
func SplitArtifactFileName(name string) (logical, ts string, ok bool) {
	const tsLen = len(timestamp.Layout)
	if len(name) < tsLen+2 {
		return "", "", false
	}
	suffix := name[len(name)-tsLen:]
	if name[len(name)-tsLen-1] != '.' || !timestamp.IsWellFormed(suffix) {
		return "", "", false
	}
	logical = strings.TrimSuffix(name, "."+suffix)
	return logical, suffix, true
}

// ArtifactPath returns the absolute path of one artifact.
func (s *Store) ArtifactPath(workDir, logical, ts string) string {
	return filepath.Join(s.Dir(workDir), ArtifactFileName(logical, ts))
}

// ListArtifacts scans the backup directory once and returns every
// parseable artifact with its size and modification time. File names
// that do not carry a well-formed timestamp suffix are ignored. A
// missing backup directory surfaces as the underlying not-exist error;
// callers decide whether that is fatal.
func (s *Store) ListArtifacts(workDir string) ([]domain.Artifact, error) {
	dir := s.Dir(workDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	var artifacts []domain.Artifact
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		logical, ts, ok := SplitArtifactFileName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, domain.Artifact{
			LogicalName: logical,
			Timestamp:   ts,
			Path:        filepath.Join(dir, entry.Name()),
			Size:        info.Size(),
			ModTime:     info.ModTime(),
		})
	}
	return artifacts, nil
}

// CopyIn copies the current content of srcPath into a new artifact for
// the given logical name and timestamp.
func (s *Store) CopyIn(workDir, srcPath, logical, ts string) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read source file: %w", err)
	}
	return s.Put(workDir, logical, ts, content)
}

// Put writes content directly into an artifact, for callers that do
// not copy from a live file.
func (s *Store) Put(workDir, logical, ts string, content []byte) error {
	dst := s.ArtifactPath(workDir, logical, ts)
	if err := os.WriteFile(dst, content, artifactMode); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// ReadArtifact returns the stored content of one artifact.
func (s *Store) ReadArtifact(workDir, logical, ts string) ([]byte, error) {
	content, err := os.ReadFile(s.ArtifactPath(workDir, logical, ts))
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return content, nil
}

// Remove deletes one artifact.
func (s *Store) Remove(workDir, logical, ts string) error {
	if err := os.Remove(s.ArtifactPath(workDir, logical, ts)); err != nil {
		return fmt.Errorf("delete artifact: %w", err)
	}
	return nil
}
