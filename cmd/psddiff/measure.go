package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"psddiff/internal/diff/engine"
)

func runMeasure(args []string) error {
	fs := pflag.NewFlagSet("measure", pflag.ContinueOnError)
	fs.Usage = func() { fmt.Fprintln(os.Stderr, "usage: psddiff measure <a.psd> <b.psd>") }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("expected exactly 2 arguments, got %d", fs.NArg())
	}

	a, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer a.Close()
	b, err := os.Open(fs.Arg(1))
	if err != nil {
		return err
	}
	defer b.Close()

	n, err := engine.Measure(a, b)
	if err != nil {
		return err
	}
	fmt.Printf("%d bytes (%s)\n", n, humanize.Bytes(uint64(n)))
	return nil
}
