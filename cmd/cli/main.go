package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes of a planning run
const (
	exitFailure    = 1
	exitUnverified = 15 // A returned schedule failed verification
	exitNoSchedule = 20 // No schedule satisfies the constraints
)

type exitError struct {
	code    int
	message string
}

func (err exitError) Error() string {
	return err.message
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}
}
