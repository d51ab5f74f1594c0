// Package parser turns a token stream into a forest of top-level ast.Nodes.
package parser

import (
	"fmt"

	"lead/position"
)

// SyntaxError is any malformed construct the parser rejects. Error returns
// only the message; the caret-annotated rendering and stage prefix are the
// caller's job (see position.Span.ShowOnText).
type SyntaxError struct {
	Message string
	Span_   position.Span
}

func (e *SyntaxError) Error() string       { return e.Message }
func (e *SyntaxError) Span() position.Span { return e.Span_ }

func newSyntaxErrorf(span position.Span, format string, args ...any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Span_: span}
}
