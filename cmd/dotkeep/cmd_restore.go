package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotkeep/dotkeep/internal/domain"
	"github.com/dotkeep/dotkeep/internal/timestamp"
)

var restoreOpts domain.RestoreOptions

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore env files from a snapshot",
	Long: `Restore env files from a snapshot. Without --timestamp the most
recent snapshot that passes validation is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Shutdown()

		var selected *domain.ValidatedSnapshot
		if restoreOpts.Timestamp != "" {
			if !timestamp.IsWellFormed(restoreOpts.Timestamp) {
				return fmt.Errorf("bad timestamp %q: %w", restoreOpts.Timestamp, domain.ErrValidationFailed)
			}
			snap, ok := a.Validator.ByTimestamp(a.WorkDir, restoreOpts.Timestamp)
			if !ok {
				return fmt.Errorf("no snapshot %s: %w", restoreOpts.Timestamp, domain.ErrNothingToDo)
			}
			if !snap.IsValid && !restoreOpts.Force {
				return fmt.Errorf("snapshot %s failed validation (use --force to override): %w",
					restoreOpts.Timestamp, domain.ErrValidationFailed)
			}
			selected = snap
		} else {
			snap, ok := a.Validator.MostRecentValid(a.WorkDir)
			if !ok {
				return fmt.Errorf("no valid snapshots found: %w", domain.ErrNothingToDo)
			}
			selected = snap
		}

		if !restoreOpts.SkipConfirmation && !restoreOpts.DryRun {
			if !confirm(fmt.Sprintf("Restore snapshot %s (%s)?",
				selected.Snapshot.Timestamp, strings.Join(selected.Snapshot.Files, ", "))) {
				return domain.ErrAborted
			}
		}

		if restoreOpts.Verbose {
			a.Restorer.SetProgress(func(phase domain.RestorePhase, file string, index, total int) {
				if file != "" {
					fmt.Printf("[%s] %s (%d/%d)\n", phase, file, index, total)
				}
			})
		}

		outcome, err := a.Restorer.RestoreSnapshot(a.WorkDir, selected.Snapshot, restoreOpts)
		if err != nil {
			return err
		}

		for _, warning := range outcome.Warnings {
			fmt.Printf("warning: %s\n", warning)
		}
		if outcome.DryRun {
			fmt.Printf("Dry run: would restore %s\n", strings.Join(outcome.Restored, ", "))
			return nil
		}
		fmt.Printf("Restored %d file(s) from snapshot %s\n", len(outcome.Restored), outcome.Timestamp)

		if !outcome.Success {
			for file, reason := range outcome.Failed {
				fmt.Printf("failed: %s: %s\n", file, reason)
			}
			return fmt.Errorf("%d of %d files failed: %w",
				len(outcome.Failed), len(selected.Snapshot.Files), domain.ErrPartialFailure)
		}
		return nil
	},
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	restoreCmd.Flags().StringVarP(&restoreOpts.Timestamp, "timestamp", "t", "", "snapshot timestamp to restore (default: most recent valid)")
	restoreCmd.Flags().BoolVarP(&restoreOpts.SkipConfirmation, "yes", "y", false, "skip the confirmation prompt")
	restoreCmd.Flags().BoolVar(&restoreOpts.PreservePermissions, "preserve-permissions", false, "restore each file's previous permission mode")
	restoreCmd.Flags().BoolVar(&restoreOpts.PreserveTimestamps, "preserve-timestamps", false, "restore each file's previous access/modification times")
	restoreCmd.Flags().BoolVar(&restoreOpts.CreateRollback, "rollback", false, "snapshot the files about to be overwritten first")
	restoreCmd.Flags().BoolVar(&restoreOpts.Force, "force", false, "proceed despite validation errors and skip the rollback snapshot")
	restoreCmd.Flags().BoolVar(&restoreOpts.DryRun, "dry-run", false, "show what would be restored without writing")
	restoreCmd.Flags().BoolVarP(&restoreOpts.Verbose, "verbose", "v", false, "print per-file progress")
	rootCmd.AddCommand(restoreCmd)
}
