package transpile

import (
	"fmt"

	"lead/ast"
	"lead/position"
)

// Kind classifies a lowering failure. The source's original transpiler
// carried an empty error enum (nothing in core B could actually fail
// yet); a complete lowering pass needs at least these two: an unsupported
// type reaching the boundary, and an invariant the analyzer is supposed
// to have already enforced turning out false.
type Kind int

const (
	UnsupportedType Kind = iota
	InternalInvariantViolated
)

// Error is a single lowering failure, positioned at the span of the node
// that triggered it.
type Error struct {
	Kind    Kind
	Message string
	Span_   position.Span
}

func (e *Error) Error() string       { return e.Message }
func (e *Error) Span() position.Span { return e.Span_ }

func errUnsupportedType(t ast.DataType, span position.Span) *Error {
	return &Error{Kind: UnsupportedType, Message: fmt.Sprintf("type %q has no lowering and cannot be used here", t), Span_: span}
}

func errInternal(span position.Span, format string, args ...any) *Error {
	return &Error{Kind: InternalInvariantViolated, Message: fmt.Sprintf("internal error: "+format, args...), Span_: span}
}
