package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"psddiff/internal/diff/engine"
	"psddiff/internal/diff/script"
)

func runCombine(args []string) error {
	fs := pflag.NewFlagSet("combine", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: psddiff combine <out.psddiff> <script1> <script2> [script3 ...]")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 3 {
		fs.Usage()
		return fmt.Errorf("expected an output path and at least 2 scripts, got %d arguments", fs.NArg())
	}

	out, err := os.OpenFile(fs.Arg(0), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	var readers []*script.Reader
	for _, path := range fs.Args()[1:] {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r, err := script.NewReader(f)
		if err != nil {
			return err
		}
		readers = append(readers, r)
	}

	return engine.Combine(out, readers...)
}
