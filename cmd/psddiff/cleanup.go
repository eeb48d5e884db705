package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"psddiff/internal/decompose"
)

func runCleanup(args []string) error {
	fs := pflag.NewFlagSet("cleanup", pflag.ContinueOnError)
	pool := fs.String("pool", "decomposed_objects", "chunk pool directory")
	manifests := fs.String("manifests", ".", "directory to scan for *.psd.decomposed manifests")
	index := fs.String("index", "", "chunkindex database (rebuilt in place; a temp index is used if empty)")
	fs.Usage = func() { fmt.Fprintln(os.Stderr, "usage: psddiff cleanup [flags]") }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	report, err := decompose.Cleanup(*pool, *manifests, *index)
	if err != nil {
		return err
	}
	fmt.Printf("[%s] removed %d chunks, freed %s\n", report.RunStamp, report.Removed, humanize.Bytes(uint64(report.BytesFreed)))
	return nil
}
