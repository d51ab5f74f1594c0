// Package analyzer implements core A of the pipeline: type inference and
// scope resolution over a parsed Lead AST, compile-time constant folding,
// and import splicing. It turns a parser's output into a residual AST
// where every surviving VarDef carries a concrete type and every
// comptime-foldable expression has been reduced to a literal.
package analyzer

import (
	"fmt"

	"lead/ast"
	"lead/position"
)

// Kind classifies an analysis failure. The zero value is
// IncompatibleBinOperator.
type Kind int

const (
	IncompatibleBinOperator Kind = iota
	IncompatibleUnaryOperator
	InvalidNumber
	IncompatibleTypes
	MissingType
	Shadowing
	VariableNotFound
	VariableCannotBeModified
	FunctionNotFound
	FunctionDefinitionNotAllowed
	FunctionAlreadyExists
	CannotReturn
	IncorrectParameterCount
	DuplicateFunctionParameter
	MissingMainFunction
	MainFunctionNotCorrectlyDefined
	UnsupportedType
	DivisionByZero
	ImportIOError
	InternalError
)

// Error is a single semantic-analysis failure, positioned at the span of
// the construct that triggered it.
type Error struct {
	Kind    Kind
	Message string
	Span_   position.Span
}

func (e *Error) Error() string       { return e.Message }
func (e *Error) Span() position.Span { return e.Span_ }

func errf(kind Kind, span position.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Span_: span}
}

func errIncompatibleBinOperator(left ast.DataType, op ast.Operator, right ast.DataType, span position.Span) *Error {
	return errf(IncompatibleBinOperator, span, "incompatible binary operation %q between %q and %q", op, left, right)
}

func errIncompatibleUnaryOperator(op ast.Operator, value ast.DataType, span position.Span) *Error {
	return errf(IncompatibleUnaryOperator, span, "incompatible unary operation %q with %q", op, value)
}

func errInvalidNumber(text string, cause error, span position.Span) *Error {
	return errf(InvalidNumber, span, "invalid number %q: %v", text, cause)
}

func errIncompatibleTypes(expected, given ast.DataType, span position.Span) *Error {
	return errf(IncompatibleTypes, span, "incompatible types: expected %q, found %q", expected, given)
}

func errMissingType(span position.Span) *Error {
	return errf(MissingType, span, "missing type")
}

func errShadowing(name string, span position.Span) *Error {
	return errf(Shadowing, span, "shadowing of variable %q", name)
}

func errVariableNotFound(name string, span position.Span) *Error {
	return errf(VariableNotFound, span, "variable %q not found", name)
}

func errVariableCannotBeModified(name string, span position.Span) *Error {
	return errf(VariableCannotBeModified, span, "variable %q cannot be modified", name)
}

func errFunctionNotFound(name string, span position.Span) *Error {
	return errf(FunctionNotFound, span, "function %q not found", name)
}

func errFunctionDefinitionNotAllowed(span position.Span) *Error {
	return errf(FunctionDefinitionNotAllowed, span, "function definition is not allowed here")
}

func errFunctionAlreadyExists(name string, span position.Span) *Error {
	return errf(FunctionAlreadyExists, span, "function %q already exists", name)
}

func errCannotReturn(span position.Span) *Error {
	return errf(CannotReturn, span, "return statement outside of a function")
}

func errIncorrectParameterCount(name string, want, got int, span position.Span) *Error {
	return errf(IncorrectParameterCount, span, "function %q expects %d argument(s), got %d", name, want, got)
}

func errDuplicateFunctionParameter(name string, span position.Span) *Error {
	return errf(DuplicateFunctionParameter, span, "duplicate function parameter %q", name)
}

func errMissingMainFunction(span position.Span) *Error {
	return errf(MissingMainFunction, span, "missing main function")
}

func errMainFunctionNotCorrectlyDefined(span position.Span) *Error {
	return errf(MainFunctionNotCorrectlyDefined, span, "main function must take no parameters and return i32")
}

func errUnsupportedType(t ast.DataType, span position.Span) *Error {
	return errf(UnsupportedType, span, "type %q has no lowering and cannot be used here", t)
}

func errDivisionByZero(op ast.Operator, span position.Span) *Error {
	return errf(DivisionByZero, span, "compile-time %q by zero", op)
}

func errInternal(span position.Span, format string, args ...any) *Error {
	return errf(InternalError, span, "internal error: "+format, args...)
}
