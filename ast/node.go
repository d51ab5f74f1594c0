package ast

import "lead/position"

// Visitor dispatches over every Lead node kind. The analyzer implements it
// to type-check and fold a parsed AST into its residual form; the
// transpiler implements it to lower that residual AST into the C IR.
type Visitor interface {
	VisitBinaryOp(n *BinaryOp) (any, error)
	VisitUnaryOp(n *UnaryOp) (any, error)
	VisitValue(n *Value) (any, error)
	VisitVarDef(n *VarDef) (any, error)
	VisitVarCall(n *VarCall) (any, error)
	VisitVarAssign(n *VarAssign) (any, error)
	VisitCast(n *Cast) (any, error)
	VisitFuncDef(n *FuncDef) (any, error)
	VisitFuncCall(n *FuncCall) (any, error)
	VisitReturn(n *Return) (any, error)
	VisitExternFn(n *ExternFn) (any, error)
	VisitImport(n *Import) (any, error)
	VisitInclude(n *Include) (any, error)
}

// Node is any Lead AST node. Every pass receives and returns nodes by
// value semantics (each stage owns its tree; nothing is mutated in place
// after being handed to the next stage).
type Node interface {
	Accept(v Visitor) (any, error)
	Span() position.Span
}

// VarKind classifies how a variable was declared.
type VarKind int

const (
	KindVar VarKind = iota
	KindLet
	KindConst
	KindFunctionParam
)

func (k VarKind) String() string {
	switch k {
	case KindVar:
		return "var"
	case KindLet:
		return "let"
	case KindConst:
		return "const"
	case KindFunctionParam:
		return "param"
	default:
		return "?"
	}
}

// ValueKind classifies a literal leaf.
type ValueKind int

const (
	ValueNumber ValueKind = iota
	ValueString
	ValueChar
	ValueBoolean
)

// BinaryOp is `left op right`.
type BinaryOp struct {
	Left     Node
	Operator Operator
	Right    Node
	Type     DataType // set once the analyzer has resolved the result type
	Span_    position.Span
}

func (n *BinaryOp) Accept(v Visitor) (any, error) { return v.VisitBinaryOp(n) }
func (n *BinaryOp) Span() position.Span           { return n.Span_ }

// UnaryOp is `op operand`.
type UnaryOp struct {
	Operator Operator
	Operand  Node
	Type     DataType
	Span_    position.Span
}

func (n *UnaryOp) Accept(v Visitor) (any, error) { return v.VisitUnaryOp(n) }
func (n *UnaryOp) Span() position.Span           { return n.Span_ }

// Value is a literal leaf. Text preserves the literal's original textual
// form (spec: "literals preserve their textual form for integers/strings
// /chars"); Bool is only meaningful when Kind is ValueBoolean.
type Value struct {
	Kind  ValueKind
	Text  string
	Bool  bool
	Span_ position.Span
}

func (n *Value) Accept(v Visitor) (any, error) { return v.VisitValue(n) }
func (n *Value) Span() position.Span           { return n.Span_ }

// DataTypeOf returns the Comptime* type naturally carried by a literal.
func (n *Value) DataTypeOf() DataType {
	switch n.Kind {
	case ValueNumber:
		return Simple(ComptimeNumber)
	case ValueString:
		return Simple(ComptimeString)
	case ValueChar:
		return Simple(ComptimeChar)
	case ValueBoolean:
		return Simple(ComptimeBool)
	default:
		return DataType{}
	}
}

// VarDef is `var_kind name[: type][ = init]`.
type VarDef struct {
	VarKind  VarKind
	Name     string
	DataType *DataType // nil before inference fills it in
	Init     Node      // nil if uninitialized
	Span_    position.Span
}

func (n *VarDef) Accept(v Visitor) (any, error) { return v.VisitVarDef(n) }
func (n *VarDef) Span() position.Span           { return n.Span_ }

// VarCall references a variable by name.
type VarCall struct {
	Name  string
	Type  DataType
	Span_ position.Span
}

func (n *VarCall) Accept(v Visitor) (any, error) { return v.VisitVarCall(n) }
func (n *VarCall) Span() position.Span           { return n.Span_ }

// VarAssign is `name = value`. ViaDeref is set by the analyzer when the
// target's type is Ref(T) and value's type converts to T (but not to
// Ref(T)), so the assignment lowers to `*name = value` rather than
// `name = value`.
type VarAssign struct {
	ViaDeref bool
	Name     string
	Value    Node
	Span_    position.Span
}

func (n *VarAssign) Accept(v Visitor) (any, error) { return v.VisitVarAssign(n) }
func (n *VarAssign) Span() position.Span           { return n.Span_ }

// Cast is `expr to type`.
type Cast struct {
	Expr  Node
	To    DataType
	Span_ position.Span
}

func (n *Cast) Accept(v Visitor) (any, error) { return v.VisitCast(n) }
func (n *Cast) Span() position.Span           { return n.Span_ }

// Param is a single function parameter, declared or extern.
type Param struct {
	Name string
	Type DataType
}

// FuncDef is `fn name(params): return_type? { body }`.
type FuncDef struct {
	Name       string
	Params     []Param
	ReturnType *DataType // nil means Void
	Body       []Node
	Span_      position.Span
}

func (n *FuncDef) Accept(v Visitor) (any, error) { return v.VisitFuncDef(n) }
func (n *FuncDef) Span() position.Span           { return n.Span_ }

// FuncCall is `name(args...)`.
type FuncCall struct {
	Name       string
	Args       []Node
	ReturnType DataType
	Span_      position.Span
}

func (n *FuncCall) Accept(v Visitor) (any, error) { return v.VisitFuncCall(n) }
func (n *FuncCall) Span() position.Span           { return n.Span_ }

// Return is `return expr;`.
type Return struct {
	Expr  Node
	Span_ position.Span
}

func (n *Return) Accept(v Visitor) (any, error) { return v.VisitReturn(n) }
func (n *Return) Span() position.Span           { return n.Span_ }

// ExternFn is the `#extern name(params) ...? return_type?;` directive. It
// registers a function signature without emitting a residual node.
type ExternFn struct {
	Name       string
	Params     []Param
	Variadic   bool
	ReturnType *DataType
	Span_      position.Span
}

func (n *ExternFn) Accept(v Visitor) (any, error) { return v.VisitExternFn(n) }
func (n *ExternFn) Span() position.Span           { return n.Span_ }

// Import is the `#import "path";` directive.
type Import struct {
	Path  string
	Span_ position.Span
}

func (n *Import) Accept(v Visitor) (any, error) { return v.VisitImport(n) }
func (n *Import) Span() position.Span           { return n.Span_ }

// Include is the `#include "path";` directive. It passes through the
// pipeline unchanged — it is a C preprocessor directive, not a Lead symbol.
type Include struct {
	Path  string
	Span_ position.Span
}

func (n *Include) Accept(v Visitor) (any, error) { return v.VisitInclude(n) }
func (n *Include) Span() position.Span           { return n.Span_ }
