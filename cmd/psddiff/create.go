package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"psddiff/internal/diff/engine"
)

func runCreate(args []string) error {
	fs := pflag.NewFlagSet("create", pflag.ContinueOnError)
	fs.Usage = func() { fmt.Fprintln(os.Stderr, "usage: psddiff create <a.psd> <b.psd> <out.psddiff>") }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return fmt.Errorf("expected exactly 3 arguments, got %d", fs.NArg())
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

	out, err := os.OpenFile(fs.Arg(2), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	return engine.Create(a, b, out)
}
