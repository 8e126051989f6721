package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Create a backup snapshot of the env file family",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Shutdown()

		ts, err := a.Backup.CreateSnapshot(a.WorkDir, a.Config.Family())
		if err != nil {
			return err
		}
		fmt.Printf("Created snapshot %s\n", ts)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}
