package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotkeep/dotkeep/internal/timestamp"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Shutdown()

		snapshots, err := a.Backup.ListSnapshots(a.WorkDir)
		if err != nil {
			return err
		}
		if len(snapshots) == 0 {
			fmt.Println("No snapshots found.")
			return nil
		}

		if listFormat == "yaml" {
			return renderYAML(snapshots)
		}

		for _, snap := range snapshots {
			created := timestamp.Format(snap.Timestamp, timestamp.FormatOptions{ShowSeconds: true})
			fmt.Printf("%s  %s  [%s]\n", snap.Timestamp, created, strings.Join(snap.Files, ", "))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", "text", "output format: text or yaml")
	rootCmd.AddCommand(listCmd)
}
