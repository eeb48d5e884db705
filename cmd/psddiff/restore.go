package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"psddiff/internal/decompose"
)

func runRestore(args []string) error {
	fs := pflag.NewFlagSet("restore", pflag.ContinueOnError)
	pool := fs.String("pool", "decomposed_objects", "chunk pool directory")
	fs.Usage = func() { fmt.Fprintln(os.Stderr, "usage: psddiff restore <manifest> <out.psd> [flags]") }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("expected exactly 2 arguments, got %d", fs.NArg())
	}
	return decompose.Restore(fs.Arg(0), *pool, fs.Arg(1))
}
