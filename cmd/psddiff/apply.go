package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"psddiff/internal/diff/engine"
	"psddiff/internal/diff/script"
)

func runApply(args []string) error {
	fs := pflag.NewFlagSet("apply", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: psddiff apply <a.psd> <out.psd> <script1.psddiff> [script2.psddiff ...]")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 3 {
		fs.Usage()
		return fmt.Errorf("expected at least 3 arguments, got %d", fs.NArg())
	}

	a, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := os.OpenFile(fs.Arg(1), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	readers := make([]*script.Reader, 0, fs.NArg()-2)
	for _, path := range fs.Args()[2:] {
		sf, err := os.Open(path)
		if err != nil {
			return err
		}
		defer sf.Close()
		sr, err := script.NewReader(sf)
		if err != nil {
			return err
		}
		readers = append(readers, sr)
	}

	return engine.Apply(a, out, readers...)
}
