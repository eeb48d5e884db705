package main

import (
	"fmt"
	"os"
	"time"
)

// runTimed runs a subcommand and, when PSDDIFF_VERBOSE is set to
// "true", prints its wall-clock duration to stderr. Timing never
// touches stdout, so scripts piping a command's output are unaffected.
func runTimed(name string, fn func([]string) error, args []string) error {
	verbose := os.Getenv("PSDDIFF_VERBOSE") == "true"

	start := time.Now()
	err := fn(args)
	if verbose {
		fmt.Fprintf(os.Stderr, "psddiff %s: %s\n", name, time.Since(start))
	}
	return err
}
