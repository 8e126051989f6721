package usecase

import "github.com/dotkeep/dotkeep/internal/domain"

// Cleanup keeps the keepCount most recently created snapshots and
// deletes the rest, oldest last to first. A snapshot that fails to
// delete is tolerated: it is simply absent from the deleted list and
// not retried.
func (b *Backup) Cleanup(workDir string, keepCount int) (*domain.CleanupResult, error) {
	if keepCount < 0 {
		keepCount = 0
	}

	snapshots, err := b.ListSnapshots(workDir)
	if err != nil {
		return nil, err
	}

	result := &domain.CleanupResult{}
	for i, snap := range snapshots {
		if i < keepCount {
			result.Kept = append(result.Kept, snap.Timestamp)
			continue
		}

		removed, err := b.DeleteSnapshot(workDir, snap.Timestamp)
		if err != nil {
			b.logger.Warnf("could not delete snapshot %s: %v", snap.Timestamp, err)
			continue
		}
		if !removed {
			b.logger.Warnf("snapshot %s: no artifacts were deleted", snap.Timestamp)
			continue
		}
		b.logger.Infof("deleted old snapshot %s", snap.Timestamp)
		result.Deleted = append(result.Deleted, snap.Timestamp)
	}

	return result, nil
}
