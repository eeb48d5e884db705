package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"psddiff/internal/decompose"
)

func runRecompose(args []string) error {
	fs := pflag.NewFlagSet("recompose", pflag.ContinueOnError)
	pools := fs.StringArray("pool", nil, "a chunk pool directory to search (repeatable; first match wins)")
	fs.Usage = func() { fmt.Fprintln(os.Stderr, "usage: psddiff recompose <manifest> <out.psd> --pool <dir> [--pool <dir> ...]") }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("expected exactly 2 arguments, got %d", fs.NArg())
	}
	if len(*pools) == 0 {
		return fmt.Errorf("at least one --pool is required")
	}
	return decompose.Recompose(fs.Arg(0), *pools, fs.Arg(1))
}
