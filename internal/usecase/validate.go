package usecase

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/dotkeep/dotkeep/internal/adapter/store"
	"github.com/dotkeep/dotkeep/internal/domain"
	"github.com/dotkeep/dotkeep/internal/timestamp"
)

// Validator inspects discovered snapshots and turns them into a
// trustworthy go/no-go signal before any restore is attempted. Results
// are recomputed on every call; the backup directory may change between
// process runs, so nothing is cached.
type Validator struct {
	store  *store.Store
	logger Logger
}

func NewValidator(st *store.Store, logger Logger) *Validator {
	return &Validator{store: st, logger: logger}
}

// ValidateAll discovers every snapshot and validates each one
// independently. A missing or unreadable backup directory fails the
// whole report. Zero discovered snapshots is a warning, not an error,
// and leaves the report valid.
func (v *Validator) ValidateAll(workDir string) *domain.ValidationReport {
	report := &domain.ValidationReport{IsValid: true}

	artifacts, err := v.store.ListArtifacts(workDir)
	if err != nil {
		report.IsValid = false
		report.Errors = append(report.Errors, fmt.Sprintf("backup directory unavailable: %v", err))
		return report
	}

	snapshots := groupArtifacts(artifacts)
	if len(snapshots) == 0 {
		report.Warnings = append(report.Warnings, "no snapshots found in backup directory")
		return report
	}

	for _, snap := range snapshots {
		validated := v.validateSnapshot(workDir, snap)
		report.Snapshots = append(report.Snapshots, validated)
		if !validated.IsValid {
			report.IsValid = false
		}
	}
	return report
}

// validateSnapshot checks the snapshot's timestamp against the full
// lexical and calendar rules, then checks every artifact for existence,
// readability and text decodability. A zero-byte artifact is only a
// warning: an originally-empty file is legitimate.
func (v *Validator) validateSnapshot(workDir string, snap domain.Snapshot) domain.ValidatedSnapshot {
	validated := domain.ValidatedSnapshot{
		Snapshot:  snap,
		IsValid:   true,
		FileSizes: make(map[string]int64),
	}

	if parsed := timestamp.Parse(snap.Timestamp); !parsed.IsValid {
		validated.IsValid = false
		validated.Errors = append(validated.Errors,
			fmt.Sprintf("malformed snapshot timestamp %s: %v", snap.Timestamp, parsed.Reasons))
	}

	for _, file := range snap.Files {
		path := v.store.ArtifactPath(workDir, file, snap.Timestamp)

		info, err := os.Stat(path)
		if err != nil {
			validated.IsValid = false
			validated.Errors = append(validated.Errors,
				fmt.Sprintf("backup file for %s missing or unreadable: %v", file, err))
			continue
		}
		validated.FileSizes[file] = info.Size()

		content, err := os.ReadFile(path)
		if err != nil {
			validated.IsValid = false
			validated.Errors = append(validated.Errors,
				fmt.Sprintf("backup file for %s is unreadable: %v", file, err))
			continue
		}

		if len(content) == 0 {
			validated.Warnings = append(validated.Warnings,
				fmt.Sprintf("backup file for %s is empty", file))
			continue
		}

		if !utf8.Valid(content) {
			validated.IsValid = false
			validated.Errors = append(validated.Errors,
				fmt.Sprintf("backup file for %s is corrupt: not valid text", file))
		}
	}

	return validated
}

// MostRecentValid returns the newest snapshot that validates cleanly,
// or false if none does.
func (v *Validator) MostRecentValid(workDir string) (*domain.ValidatedSnapshot, bool) {
	report := v.ValidateAll(workDir)
	// Snapshots are already newest-first per groupArtifacts.
	for _, snap := range report.Snapshots {
		if snap.IsValid {
			return &snap, true
		}
	}
	return nil, false
}

// ByTimestamp looks one snapshot up by exact identifier among all
// discovered snapshots, valid or not, so the caller can decide whether
// to proceed despite warnings.
func (v *Validator) ByTimestamp(workDir, ts string) (*domain.ValidatedSnapshot, bool) {
	report := v.ValidateAll(workDir)
	for _, snap := range report.Snapshots {
		if snap.Snapshot.Timestamp == ts {
			return &snap, true
		}
	}
	return nil, false
}
