package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/subcommands"
)

// buildCmd reads a .lead entry file and writes the generated C program to
// stdout. It is the primary, non-interactive way to run the pipeline.
type buildCmd struct {
	isMain bool
}

func (*buildCmd) Name() string     { return "build" }
func (*buildCmd) Synopsis() string { return "transpile a .lead file to C and print it to stdout" }
func (*buildCmd) Usage() string {
	return heredoc.Doc(`
		build <file.lead>

		Reads the given Lead source file, runs it through the lexer, parser,
		optimizer and transpiler, and writes the generated C source to stdout.
		Exits non-zero on the first pipeline error, prefixed with the stage
		that raised it.
	`)
}

func (cmd *buildCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.isMain, "main", true, "require and validate a main() entry point")
}

func (cmd *buildCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "build: no source file given")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "build: failed to read %s: %v\n", args[0], err)
		return subcommands.ExitFailure
	}

	src := string(data)
	out, err := compile(src, cmd.isMain)
	if err != nil {
		fmt.Fprintln(os.Stderr, render(src, err))
		return subcommands.ExitFailure
	}

	fmt.Print(out)
	return subcommands.ExitSuccess
}
