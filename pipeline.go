package main

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"lead/analyzer"
	"lead/generator"
	"lead/lexer"
	"lead/parser"
	"lead/position"
	"lead/transpile"
)

// spanner is implemented by every staged error (parser.SyntaxError,
// analyzer.Error, transpile.Error) so the caret excerpt can be rendered
// without the caller knowing which stage produced it.
type spanner interface {
	Span() position.Span
}

// stageError wraps a pipeline failure with the stage tag the spec's CLI
// contract requires ([Lexer Error], [Parser Error], [Optimizer Error],
// [Transpiler Error]).
type stageError struct {
	Stage string
	Err   error
}

func (e *stageError) Error() string { return e.Err.Error() }

// render formats a stageError as the CLI output contract: the bracketed
// stage tag, the message, and — when the underlying error carries a
// source span — a caret-annotated excerpt under it. The parser stage
// collects every syntax error into a *multierror.Error instead of a single
// span-bearing error; render unwraps it so each *parser.SyntaxError still
// gets its own caret excerpt rather than losing the span behind
// multierror's combined Error() string.
func render(src string, err error) string {
	se, ok := err.(*stageError)
	if !ok {
		return err.Error()
	}

	if merr, ok := se.Err.(*multierror.Error); ok {
		parts := make([]string, 0, len(merr.Errors))
		for _, inner := range merr.Errors {
			parts = append(parts, renderStageError(src, se.Stage, inner))
		}
		return strings.Join(parts, "\n")
	}

	return renderStageError(src, se.Stage, se.Err)
}

func renderStageError(src, stage string, err error) string {
	msg := fmt.Sprintf("[%s Error]: %s", stage, err.Error())
	if sp, ok := err.(spanner); ok {
		msg += "\n" + sp.Span().ShowOnText(src)
	}
	return msg
}

// compile runs the full lex/parse/analyze/transpile/generate pipeline
// over src and returns the generated C source, or a staged error.
func compile(src string, isMain bool) (string, error) {
	toks, err := lexer.New(src).Scan()
	if err != nil {
		return "", &stageError{Stage: "Lexer", Err: err}
	}

	nodes, err := parser.New(toks).Parse()
	if err != nil {
		return "", &stageError{Stage: "Parser", Err: err}
	}

	residual, err := analyzer.Analyze(nodes, isMain)
	if err != nil {
		return "", &stageError{Stage: "Optimizer", Err: err}
	}

	ir, err := transpile.Lower(residual)
	if err != nil {
		return "", &stageError{Stage: "Transpiler", Err: err}
	}

	return generator.Generate(ir), nil
}
