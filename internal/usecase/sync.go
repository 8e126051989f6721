package usecase

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dotkeep/dotkeep/internal/adapter/envfile"
	"github.com/dotkeep/dotkeep/internal/domain"
	"github.com/dotkeep/dotkeep/internal/fsutil"
)

// Sync reconciles env file keys against a source-of-truth file: it
// plans which keys each target is missing or carries as orphans, and
// applies the plan by appending missing keys.
type Sync struct {
	logger Logger

	// CopyValues controls whether appended keys copy the source's value
	// or stay empty placeholders. Secrets usually should not propagate,
	// so the default is empty.
	CopyValues bool
}

func NewSync(logger Logger) *Sync {
	return &Sync{logger: logger}
}

// Plan diffs every target against the source of truth. A target that
// does not exist yet is treated as empty: every source key is missing
// from it.
func (s *Sync) Plan(workDir, source string, targets []string) (*domain.SyncPlan, error) {
	src, err := envfile.Load(filepath.Join(workDir, source))
	if err != nil {
		return nil, fmt.Errorf("load source of truth %s: %w", source, err)
	}
	sourceKeys := src.Keys()

	plan := &domain.SyncPlan{Source: source}
	for _, target := range targets {
		if target == source {
			continue
		}

		tf, err := envfile.Load(filepath.Join(workDir, target))
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("load target %s: %w", target, err)
			}
			tf = envfile.Parse(nil)
		}

		diff := domain.FileDiff{File: target}
		for _, key := range sourceKeys {
			if !tf.Has(key) {
				diff.Missing = append(diff.Missing, key)
			}
		}
		for _, key := range tf.Keys() {
			if !src.Has(key) {
				diff.Orphaned = append(diff.Orphaned, key)
			}
		}
		plan.Diffs = append(plan.Diffs, diff)
	}
	return plan, nil
}

// Apply appends every missing key to its target file through the atomic
// writer, preserving the target's existing permission mode (captured by
// a stat before the write, per the writer's contract). Orphaned keys
// are reported only; nothing is ever removed. Per-file failures do not
// stop the remaining files.
func (s *Sync) Apply(workDir string, plan *domain.SyncPlan) (*domain.SyncResult, error) {
	src, err := envfile.Load(filepath.Join(workDir, plan.Source))
	if err != nil {
		return nil, fmt.Errorf("load source of truth %s: %w", plan.Source, err)
	}

	result := &domain.SyncResult{
		Updated: make(map[string][]string),
		Failed:  make(map[string]string),
	}

	for _, diff := range plan.Diffs {
		if len(diff.Missing) == 0 {
			continue
		}

		path := filepath.Join(workDir, diff.File)
		mode, existed, err := fsutil.StatMode(path)
		if err != nil {
			result.Failed[diff.File] = err.Error()
			continue
		}
		if !existed {
			mode = domain.ModeForNewFile(diff.File)
		}

		var tf *envfile.File
		if existed {
			if tf, err = envfile.Load(path); err != nil {
				result.Failed[diff.File] = err.Error()
				continue
			}
		} else {
			tf = envfile.Parse(nil)
		}

		tf.AppendBlank()
		tf.AppendComment(fmt.Sprintf("added by dotkeep sync from %s", plan.Source))
		for _, key := range diff.Missing {
			value := ""
			if s.CopyValues {
				value, _ = src.Get(key)
			}
			tf.Append(key, value)
		}

		if err := fsutil.WriteAtomic(path, tf.Render(), mode); err != nil {
			result.Failed[diff.File] = err.Error()
			continue
		}
		result.Updated[diff.File] = diff.Missing
		s.logger.Infof("added %d key(s) to %s", len(diff.Missing), diff.File)
	}
	return result, nil
}
