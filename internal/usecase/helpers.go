package usecase

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dotkeep/dotkeep/internal/domain"
)

// groupArtifacts folds a flat artifact listing into snapshots keyed by
// timestamp. A snapshot's creation time is derived from the newest
// modification time among its artifacts, and file names are returned
// sorted for stable display. Result ordering is newest-first.
func groupArtifacts(artifacts []domain.Artifact) []domain.Snapshot {
	byTimestamp := make(map[string]*domain.Snapshot)
	for _, artifact := range artifacts {
		snap, ok := byTimestamp[artifact.Timestamp]
		if !ok {
			snap = &domain.Snapshot{Timestamp: artifact.Timestamp}
			byTimestamp[artifact.Timestamp] = snap
		}
		snap.Files = append(snap.Files, artifact.LogicalName)
		if artifact.ModTime.After(snap.CreatedAt) {
			snap.CreatedAt = artifact.ModTime
		}
	}

	snapshots := make([]domain.Snapshot, 0, len(byTimestamp))
	for _, snap := range byTimestamp {
		sort.Strings(snap.Files)
		snapshots = append(snapshots, *snap)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		if !snapshots[i].CreatedAt.Equal(snapshots[j].CreatedAt) {
			return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
		}
		return snapshots[i].Timestamp > snapshots[j].Timestamp
	})
	return snapshots
}

// safeTargetPath resolves a snapshot's logical file name against the
// working directory and rejects anything that would escape it: absolute
// names outright, and any resolution whose path back from the working
// directory starts with a parent-directory component. Snapshot metadata
// is data, not trusted input.
func safeTargetPath(workDir, logical string) (string, error) {
	if logical == "" {
		return "", fmt.Errorf("empty file name")
	}
	if filepath.IsAbs(logical) {
		return "", fmt.Errorf("absolute path %q not allowed", logical)
	}

	target := filepath.Join(workDir, logical)
	rel, err := filepath.Rel(workDir, target)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", logical, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the working directory", logical)
	}
	return target, nil
}
