package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotkeep/dotkeep/internal/domain"
	"github.com/dotkeep/dotkeep/internal/timestamp"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <timestamp>",
	Short: "Bundle one snapshot into a gzip tarball",
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

		dest := exportOutput
		if dest == "" {
			dest = fmt.Sprintf("dotkeep-%s.tar.gz", ts)
		}

		if err := a.ExportSnapshot(ts, dest); err != nil {
			return err
		}
		fmt.Printf("Exported snapshot %s to %s\n", ts, dest)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: dotkeep-<timestamp>.tar.gz)")
	rootCmd.AddCommand(exportCmd)
}
