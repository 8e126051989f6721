package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dotkeep/dotkeep/internal/domain"
)

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	// The four user-visible exit paths stay distinguishable: nothing to
	// do, partial failure, wholesale rejection, user abort.
	switch {
	case errors.Is(err, domain.ErrNothingToDo):
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(0)
	case errors.Is(err, domain.ErrPartialFailure):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	case errors.Is(err, domain.ErrValidationFailed):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(3)
	case errors.Is(err, domain.ErrAborted):
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(4)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
