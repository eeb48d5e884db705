package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"psddiff/internal/decompose"
)

func runDecompose(args []string) error {
	fs := pflag.NewFlagSet("decompose", pflag.ContinueOnError)
	pool := fs.String("pool", "decomposed_objects", "chunk pool directory")
	manifestPath := fs.String("manifest", "", "manifest output path (default: <file>.psd.decomposed)")
	shard := fs.Bool("shard", false, "shard a newly created pool by hash prefix")
	compress := fs.Bool("compress", false, "zstd-compress chunks in a newly created pool")
	secondary := fs.Bool("secondary", false, "record a BLAKE2b-256 checksum alongside SHA-256")
	index := fs.String("index", "", "chunkindex database to update (optional)")
	fs.Usage = func() { fmt.Fprintln(os.Stderr, "usage: psddiff decompose <file.psd> [flags]") }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected exactly 1 argument, got %d", fs.NArg())
	}

	src := fs.Arg(0)
	if *manifestPath == "" {
		*manifestPath = src + decomposeSuffix
	}

	report, err := decompose.Decompose(src, *pool, *manifestPath, decompose.Options{
		Shard:     *shard,
		Compress:  *compress,
		Secondary: *secondary,
		IndexPath: *index,
	})
	if err != nil {
		return err
	}

	fmt.Printf("[%s] %d chunks (%d new, %d deduped), %s total\n",
		report.RunStamp, report.ChunkCount, report.NewChunks, report.DedupedChunks, humanize.Bytes(uint64(report.TotalBytes)))
	return nil
}

const decomposeSuffix = ".psd.decomposed"
