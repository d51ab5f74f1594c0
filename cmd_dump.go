package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/subcommands"

	"lead/analyzer"
	"lead/lexer"
	"lead/parser"
	"lead/transpile"
)

// dumpCmd writes an inspectable JSON artifact of a pipeline stage's tree,
// the teacher's DumpBytecode/PrintToFile idiom repurposed for Lead and C
// ASTs instead of a bytecode chunk.
type dumpCmd struct {
	ast     bool
	cast    bool
	isMain  bool
	outPath string
}

func (*dumpCmd) Name() string     { return "dump" }
func (*dumpCmd) Synopsis() string { return "write the analyzed AST or lowered C AST as JSON" }
func (*dumpCmd) Usage() string {
	return heredoc.Doc(`
		dump [-ast] [-cast] [-o out.json] <file.lead>

		Runs the given source through the lexer, parser and optimizer, and
		with -cast the transpiler too, then writes the resulting tree as
		indented JSON: the lowered C AST when -cast is set (even together
		with -ast), otherwise the analyzed Lead AST. Defaults to -ast when
		neither flag is set.
	`)
}

func (cmd *dumpCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.ast, "ast", false, "dump the analyzed Lead AST")
	f.BoolVar(&cmd.cast, "cast", false, "dump the lowered C AST")
	f.BoolVar(&cmd.isMain, "main", true, "require and validate a main() entry point")
	f.StringVar(&cmd.outPath, "o", "", "output file (defaults to <file>.json)")
}

func (cmd *dumpCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "dump: no source file given")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "dump: failed to read %s: %v\n", args[0], err)
		return subcommands.ExitFailure
	}
	src := string(data)

	wantCast := cmd.cast
	wantAst := cmd.ast || !cmd.cast

	toks, err := lexer.New(src).Scan()
	if err != nil {
		fmt.Fprintln(os.Stderr, render(src, &stageError{Stage: "Lexer", Err: err}))
		return subcommands.ExitFailure
	}
	nodes, err := parser.New(toks).Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, render(src, &stageError{Stage: "Parser", Err: err}))
		return subcommands.ExitFailure
	}
	residual, err := analyzer.Analyze(nodes, cmd.isMain)
	if err != nil {
		fmt.Fprintln(os.Stderr, render(src, &stageError{Stage: "Optimizer", Err: err}))
		return subcommands.ExitFailure
	}

	var payload any = residual
	if wantCast {
		ir, err := transpile.Lower(residual)
		if err != nil {
			fmt.Fprintln(os.Stderr, render(src, &stageError{Stage: "Transpiler", Err: err}))
			return subcommands.ExitFailure
		}
		payload = ir
	} else if wantAst {
		payload = residual
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "dump: failed to encode JSON: %v\n", err)
		return subcommands.ExitFailure
	}

	outPath := cmd.outPath
	if outPath == "" {
		base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		outPath = base + ".json"
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "dump: failed to write %s: %v\n", outPath, err)
		return subcommands.ExitFailure
	}

	fmt.Println("wrote", outPath)
	return subcommands.ExitSuccess
}
