package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"psddiff/internal/decompose"
)

func runRemove(args []string) error {
	fs := pflag.NewFlagSet("remove", pflag.ContinueOnError)
	index := fs.String("index", "", "chunkindex database to update (optional)")
	fs.Usage = func() { fmt.Fprintln(os.Stderr, "usage: psddiff remove <manifest> [flags]") }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected exactly 1 argument, got %d", fs.NArg())
	}
	return decompose.Remove(fs.Arg(0), *index)
}
