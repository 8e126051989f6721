package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotkeep/dotkeep/internal/domain"
)

var (
	syncApply      bool
	syncCopyValues bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile env file keys against the source of truth",
	Long: `Compare every target env file against the source-of-truth file and
report missing and orphaned keys. With --apply, missing keys are
appended to their targets; a snapshot is taken first so the change can
be rolled back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Shutdown()

		a.Sync.CopyValues = syncCopyValues

		plan, err := a.Sync.Plan(a.WorkDir, a.Config.Files.Source, a.Config.Files.Targets)
		if err != nil {
			return err
		}

		for _, diff := range plan.Diffs {
			if len(diff.Missing) == 0 && len(diff.Orphaned) == 0 {
				continue
			}
			fmt.Printf("%s\n", diff.File)
			if len(diff.Missing) > 0 {
				fmt.Printf("    missing: %s\n", strings.Join(diff.Missing, ", "))
			}
			if len(diff.Orphaned) > 0 {
				fmt.Printf("    orphaned: %s\n", strings.Join(diff.Orphaned, ", "))
			}
		}

		if plan.InSync() {
			return fmt.Errorf("all files in sync with %s: %w", plan.Source, domain.ErrNothingToDo)
		}
		if !syncApply {
			fmt.Println("Run with --apply to add the missing keys.")
			return nil
		}

		// Snapshot before mutating so the change is reversible.
		if _, err := a.Backup.CreateSnapshot(a.WorkDir, a.Config.Family()); err != nil {
			a.Logger.Warnf("pre-sync snapshot skipped: %v", err)
		}

		result, err := a.Sync.Apply(a.WorkDir, plan)
		if err != nil {
			return err
		}
		for file, keys := range result.Updated {
			fmt.Printf("Updated %s: added %s\n", file, strings.Join(keys, ", "))
		}
		if len(result.Failed) > 0 {
			for file, reason := range result.Failed {
				fmt.Printf("failed: %s: %s\n", file, reason)
			}
			return fmt.Errorf("%d file(s) failed: %w", len(result.Failed), domain.ErrPartialFailure)
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncApply, "apply", false, "write the missing keys instead of only reporting")
	syncCmd.Flags().BoolVar(&syncCopyValues, "copy-values", false, "copy values from the source of truth instead of empty placeholders")
	rootCmd.AddCommand(syncCmd)
}
