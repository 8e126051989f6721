package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotkeep/dotkeep/internal/domain"
)

var validateFormat string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every snapshot for missing, corrupt or misnamed backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Shutdown()

		report := a.Validator.ValidateAll(a.WorkDir)

		if validateFormat == "yaml" {
			if err := renderYAML(report); err != nil {
				return err
			}
		} else {
			printReport(report)
		}

		if !report.IsValid {
			return fmt.Errorf("%d snapshot problem(s) found: %w", len(report.Errors)+invalidCount(report), domain.ErrValidationFailed)
		}
		return nil
	},
}

func printReport(report *domain.ValidationReport) {
	for _, err := range report.Errors {
		fmt.Printf("error: %s\n", err)
	}
	for _, warning := range report.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
	for _, snap := range report.Snapshots {
		status := "ok"
		if !snap.IsValid {
			status = "INVALID"
		}
		fmt.Printf("%s  %s  (%d files)\n", snap.Snapshot.Timestamp, status, len(snap.Snapshot.Files))
		for _, err := range snap.Errors {
			fmt.Printf("    error: %s\n", err)
		}
		for _, warning := range snap.Warnings {
			fmt.Printf("    warning: %s\n", warning)
		}
	}
}

func invalidCount(report *domain.ValidationReport) int {
	n := 0
	for _, snap := range report.Snapshots {
		if !snap.IsValid {
			n++
		}
	}
	return n
}

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "output format: text or yaml")
	rootCmd.AddCommand(validateCmd)
}
