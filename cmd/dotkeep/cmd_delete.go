package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotkeep/dotkeep/internal/domain"
	"github.com/dotkeep/dotkeep/internal/timestamp"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <timestamp>",
	Short: "Delete one snapshot by timestamp",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ts := args[0]
		if !timestamp.IsWellFormed(ts) {
			return fmt.Errorf("bad timestamp %q: %w", ts, domain.ErrValidationFailed)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Shutdown()

		removed, err := a.Backup.DeleteSnapshot(a.WorkDir, ts)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("no snapshot %s: %w", ts, domain.ErrNothingToDo)
		}
		fmt.Printf("Deleted snapshot %s\n", ts)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
