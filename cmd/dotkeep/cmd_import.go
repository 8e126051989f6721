package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <archive.tar.gz>",
	Short: "Unpack an exported bundle into a new snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Shutdown()

		ts, count, err := a.ImportSnapshot(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Imported snapshot %s (%d files)\n", ts, count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
