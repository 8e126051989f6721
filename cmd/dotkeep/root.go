package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dotkeep/dotkeep/internal/app"
)

var workDirFlag string

var rootCmd = &cobra.Command{
	Use:           "dotkeep",
	Short:         "Keep a family of .env files consistent, with snapshot backup and restore",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workDirFlag, "dir", "d", "", "working directory (default: current directory)")
}

// newApp builds the application for the selected working directory.
func newApp() (*app.App, error) {
	workDir := workDirFlag
	if workDir == "" {
		var err error
		if workDir, err = os.Getwd(); err != nil {
			return nil, err
		}
	}
	return app.New(workDir)
}
