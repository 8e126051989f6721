package domain

import "time"

// Snapshot is one backup operation's set of per-file copies, identified
// by a shared timestamp string in the form YYYYMMDD-HHMMSS.
type Snapshot struct {
	Timestamp string
	Files     []string
	CreatedAt time.Time
}

// Artifact is the stored copy of a single file's content belonging to
// one snapshot.
type Artifact struct {
	LogicalName string
	Timestamp   string
	Path        string
	Size        int64
	ModTime     time.Time
}

// CleanupResult reports which snapshots a retention pass deleted and
// which it kept.
type CleanupResult struct {
	Deleted []string
	Kept    []string
}

// StoreRestoreResult is the outcome of the simple store-level restore
// path. Callers needing traversal and symlink protection use the
// Restorer instead.
type StoreRestoreResult struct {
	Restored []string
	Failed   map[string]string
}
