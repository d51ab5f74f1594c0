package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/chzyer/readline"
	"github.com/google/subcommands"
)

// replCmd is an interactive session: each accepted block is run through
// the same compile pipeline as buildCmd and the generated C (or the
// staged error) is printed immediately. isMain is always false here —
// a REPL snippet is a sequence of top-level declarations, not a full
// program required to carry a validated main().
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start an interactive Lead-to-C session" }
func (*replCmd) Usage() string {
	return heredoc.Doc(`
		repl

		Reads Lead declarations line by line, waiting for balanced braces
		before transpiling, and prints the generated C for each block.
		Type "exit" to leave.
	`)
}

func (*replCmd) SetFlags(f *flag.FlagSet) {}

func (*replCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Println("repl: failed to start:", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	runREPL(rl)
	return subcommands.ExitSuccess
}

func runREPL(rl *readline.Instance) {
	var buffer strings.Builder

	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(">>> ")
		} else {
			rl.SetPrompt("... ")
		}

		line, err := rl.Readline()
		if err != nil { // io.EOF (Ctrl-D) or readline.ErrInterrupt (Ctrl-C)
			return
		}
		if strings.TrimSpace(line) == "exit" && buffer.Len() == 0 {
			return
		}

		if buffer.Len() > 0 {
			buffer.WriteByte('\n')
		}
		buffer.WriteString(line)

		if !bracesBalanced(buffer.String()) {
			continue
		}

		src := buffer.String()
		buffer.Reset()

		out, err := compile(src, false)
		if err != nil {
			fmt.Println(render(src, err))
			continue
		}
		fmt.Print(out)
	}
}

// bracesBalanced reports whether src has no more '{' than '}', used to
// decide whether the REPL should keep accumulating lines before it
// attempts to lex/parse the buffered block.
func bracesBalanced(src string) bool {
	depth := 0
	for _, r := range src {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	return depth <= 0
}
