// Command psddiff is the CLI shell over the structural PSD/PSB parser,
// the PSDDIFF1 binary diff engine, and the content-addressed
// decomposer. It is intentionally thin: every package it calls does
// its own work with no logging of its own, per spec.md §7 — psddiff
// is the only place in this module that writes to stderr or measures
// wall-clock time.
package main

import (
	"fmt"
	"os"
)

type subcommand struct {
	name    string
	summary string
	run     func(args []string) error
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	name := os.Args[1]
	for _, sc := range subcommands {
		if sc.name == name {
			if err := runTimed(name, sc.run, os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "psddiff %s: %v\n", name, err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Fprintf(os.Stderr, "psddiff: unknown command %q\n", name)
	usage()
	os.Exit(2)
}

var subcommands = []subcommand{
	{"measure", "report the byte size of a's->b's edit script", runMeasure},
	{"create", "write the edit script that turns a into b", runCreate},
	{"apply", "reconstruct b by replaying a script against a", runApply},
	{"combine", "fold a chain of edit scripts into one", runCombine},
	{"decompose", "split a file into content-addressed chunks", runDecompose},
	{"restore", "reconstruct a file from its manifest and pool", runRestore},
	{"sha", "verify a manifest's chunks against the pool", runSha},
	{"remove", "delete a manifest and its index references", runRemove},
	{"cleanup", "garbage-collect unreferenced pool chunks", runCleanup},
	{"recompose", "reconstruct a file from chunks spread across pools", runRecompose},
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: psddiff <command> [flags]")
	fmt.Fprintln(os.Stderr, "commands:")
	for _, sc := range subcommands {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", sc.name, sc.summary)
	}
}
