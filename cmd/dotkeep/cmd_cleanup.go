package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanupKeep int

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete old snapshots, keeping the most recent ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Shutdown()

		keep := cleanupKeep
		if !cmd.Flags().Changed("keep") {
			keep = a.Config.Backup.KeepCount
		}

		result, err := a.Backup.Cleanup(a.WorkDir, keep)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d snapshot(s), kept %d\n", len(result.Deleted), len(result.Kept))
		return nil
	},
}

func init() {
	cleanupCmd.Flags().IntVarP(&cleanupKeep, "keep", "k", 10, "number of snapshots to keep")
	rootCmd.AddCommand(cleanupCmd)
}
