package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"psddiff/internal/decompose"
)

func runSha(args []string) error {
	fs := pflag.NewFlagSet("sha", pflag.ContinueOnError)
	pool := fs.String("pool", "decomposed_objects", "chunk pool directory")
	fs.Usage = func() { fmt.Fprintln(os.Stderr, "usage: psddiff sha <manifest> [flags]") }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected exactly 1 argument, got %d", fs.NArg())
	}

	report, err := decompose.Sha(fs.Arg(0), *pool)
	if err != nil {
		return err
	}

	fmt.Printf("checked %d chunks, %d mismatched\n", report.Checked, len(report.Mismatched))
	for _, h := range report.Mismatched {
		fmt.Printf("  MISMATCH %s\n", h)
	}
	if len(report.Mismatched) > 0 {
		return fmt.Errorf("%d chunk(s) failed verification", len(report.Mismatched))
	}
	return nil
}
