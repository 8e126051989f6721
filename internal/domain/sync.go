package domain

// FileDiff is the per-file result of comparing one target env file
// against the source of truth.
type FileDiff struct {
	File     string
	Missing  []string // keys in the source of truth, absent from File
	Orphaned []string // keys in File, absent from the source of truth
}

// SyncPlan is the full reconciliation plan for a file family against
// one source-of-truth file.
type SyncPlan struct {
	Source string
	Diffs  []FileDiff
}

// InSync reports whether the plan contains no missing keys anywhere.
// Orphaned keys are reported but never removed automatically, so they
// do not count against sync status.
func (p *SyncPlan) InSync() bool {
	for _, d := range p.Diffs {
		if len(d.Missing) > 0 {
			return false
		}
	}
	return true
}

// SyncResult reports what Apply changed.
type SyncResult struct {
	Updated map[string][]string // file -> keys appended
	Failed  map[string]string   // file -> failure reason
}
