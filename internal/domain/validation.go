package domain

// ValidatedSnapshot is one snapshot's validation detail. A snapshot is
// valid when it has no errors; warnings alone never invalidate it.
type ValidatedSnapshot struct {
	Snapshot  Snapshot
	IsValid   bool
	Errors    []string
	Warnings  []string
	FileSizes map[string]int64
}

// ValidationReport is the aggregate over every discovered snapshot.
// IsValid is true only if there were no directory-level errors and
// every snapshot is individually valid. Zero discovered snapshots is a
// warning, not an error.
type ValidationReport struct {
	IsValid   bool
	Errors    []string
	Warnings  []string
	Snapshots []ValidatedSnapshot
}
