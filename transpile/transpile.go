// Package transpile implements core B of the pipeline: lowering a
// type-checked, folded Lead AST into the C intermediate representation
// the generator renders. It assumes its input already passed analysis —
// every VarDef carries a concrete DataType, every VarAssign already
// carries its ViaDeref flag, and every FuncCall already matched its
// target's arity.
package transpile

import (
	"lead/ast"
	"lead/cnode"
)

// Transpiler walks a residual Lead AST and produces the equivalent C-IR
// forest, one cnode.Node per surviving top-level Lead node.
type Transpiler struct{}

// New returns a Transpiler. It carries no state between Lower calls.
func New() *Transpiler { return &Transpiler{} }

// Lower transpiles a full residual AST into a C-IR forest. ExternFn nodes
// vanish (they exist only to register a signature during analysis);
// every other node kind produces exactly one cnode.Node.
func Lower(nodes []ast.Node) ([]cnode.Node, error) {
	t := New()
	out := make([]cnode.Node, 0, len(nodes))
	for _, n := range nodes {
		result, err := n.Accept(t)
		if err != nil {
			return nil, err
		}
		if result == nil {
			continue
		}
		cn, ok := result.(cnode.Node)
		if !ok {
			return nil, errInternal(n.Span(), "visitor returned non-C-IR value %T for %T", result, n)
		}
		out = append(out, cn)
	}
	return out, nil
}

func (t *Transpiler) lowerNode(n ast.Node) (cnode.Node, error) {
	result, err := n.Accept(t)
	if err != nil {
		return nil, err
	}
	cn, ok := result.(cnode.Node)
	if !ok || cn == nil {
		return nil, errInternal(n.Span(), "expression %T lowered to no C-IR node", n)
	}
	return cn, nil
}

func (t *Transpiler) VisitValue(n *ast.Value) (any, error) {
	switch n.Kind {
	case ast.ValueNumber:
		return &cnode.CValue{Kind: cnode.CValueNumber, Text: n.Text, Span_: n.Span_}, nil
	case ast.ValueString:
		return &cnode.CValue{Kind: cnode.CValueString, Text: n.Text, Span_: n.Span_}, nil
	case ast.ValueChar:
		return &cnode.CValue{Kind: cnode.CValueChar, Text: n.Text, Span_: n.Span_}, nil
	case ast.ValueBoolean:
		text := "0"
		if n.Bool {
			text = "1"
		}
		return &cnode.CValue{Kind: cnode.CValueNumber, Text: text, Span_: n.Span_}, nil
	default:
		return nil, errInternal(n.Span_, "unknown literal kind %d", n.Kind)
	}
}

func (t *Transpiler) VisitVarCall(n *ast.VarCall) (any, error) {
	return &cnode.Ident{Name: n.Name, Span_: n.Span_}, nil
}

var binaryOperators = map[ast.Operator]cnode.COperator{
	ast.Multiply:       cnode.Multiply,
	ast.Divide:         cnode.Divide,
	ast.Remainder:      cnode.Remainder,
	ast.Plus:           cnode.Plus,
	ast.Minus:          cnode.Minus,
	ast.LeftShift:      cnode.LeftShift,
	ast.RightShift:     cnode.RightShift,
	ast.BitAnd:         cnode.BitAnd,
	ast.BitOr:          cnode.BitOr,
	ast.BitXor:         cnode.BitXor,
	ast.Greater:        cnode.Greater,
	ast.GreaterOrEqual: cnode.GreaterOrEqual,
	ast.Less:           cnode.Less,
	ast.LessOrEqual:    cnode.LessOrEqual,
	ast.Equal:          cnode.Equal,
	ast.NotEqual:       cnode.NotEqual,
	ast.And:            cnode.And,
	ast.Or:             cnode.Or,
}

// VisitBinaryOp lowers every binary operator one-to-one onto its C
// equivalent, except xor, which has none: it expands to the pure
// expression (a || b) && !(a && b), duplicating both lowered operands
// (legal because Lead only permits side-effect-free expressions below
// statement level).
func (t *Transpiler) VisitBinaryOp(n *ast.BinaryOp) (any, error) {
	left, err := t.lowerNode(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := t.lowerNode(n.Right)
	if err != nil {
		return nil, err
	}

	if n.Operator == ast.Xor {
		or := &cnode.BinaryOp{Left: left, Operator: cnode.Or, Right: right, Span_: n.Span_}
		and := &cnode.BinaryOp{Left: left, Operator: cnode.And, Right: right, Span_: n.Span_}
		notAnd := &cnode.UnaryOp{Operator: cnode.Not, Operand: and, Span_: n.Span_}
		return &cnode.BinaryOp{Left: or, Operator: cnode.And, Right: notAnd, Span_: n.Span_}, nil
	}

	op, ok := binaryOperators[n.Operator]
	if !ok {
		return nil, errInternal(n.Span_, "operator %q has no C lowering", n.Operator)
	}
	return &cnode.BinaryOp{Left: left, Operator: op, Right: right, Span_: n.Span_}, nil
}

func (t *Transpiler) VisitUnaryOp(n *ast.UnaryOp) (any, error) {
	operand, err := t.lowerNode(n.Operand)
	if err != nil {
		return nil, err
	}
	var op cnode.CUnaryOperator
	switch n.Operator {
	case ast.Plus:
		op = cnode.UnaryPlus
	case ast.Minus:
		op = cnode.UnaryMinus
	case ast.Not:
		op = cnode.Not
	case ast.BitNot:
		op = cnode.BitNot
	case ast.RefOp, ast.ConstRefOp:
		op = cnode.Address
	case ast.Deref:
		op = cnode.Deref
	default:
		return nil, errInternal(n.Span_, "unary operator %q has no C lowering", n.Operator)
	}
	return &cnode.UnaryOp{Operator: op, Operand: operand, Span_: n.Span_}, nil
}

func (t *Transpiler) VisitCast(n *ast.Cast) (any, error) {
	if isUnsupported(n.To) {
		return nil, errUnsupportedType(n.To, n.Span_)
	}
	expr, err := t.lowerNode(n.Expr)
	if err != nil {
		return nil, err
	}
	return &cnode.Cast{To: lowerType(n.To), Expr: expr, Span_: n.Span_}, nil
}

// VisitVarDef lowers `var_kind name[: T] = init` to `T [const] name = init`.
// The const suffix applies to Lead Const and to Let when it carries an
// initializer, since a Let becomes immutable the moment it is assigned.
func (t *Transpiler) VisitVarDef(n *ast.VarDef) (any, error) {
	if n.DataType == nil {
		return nil, errInternal(n.Span_, "VarDef %q reached the transpiler with no resolved type", n.Name)
	}
	if isUnsupported(*n.DataType) {
		return nil, errUnsupportedType(*n.DataType, n.Span_)
	}

	var init cnode.Node
	if n.Init != nil {
		lowered, err := t.lowerNode(n.Init)
		if err != nil {
			return nil, err
		}
		init = lowered
	}

	isConst := n.VarKind == ast.KindConst || (n.VarKind == ast.KindLet && n.Init != nil)
	return &cnode.VarDef{
		Type:  lowerType(*n.DataType),
		Const: isConst,
		Name:  n.Name,
		Init:  init,
		Span_: n.Span_,
	}, nil
}

func (t *Transpiler) VisitVarAssign(n *ast.VarAssign) (any, error) {
	value, err := t.lowerNode(n.Value)
	if err != nil {
		return nil, err
	}
	return &cnode.VarAssign{ViaDeref: n.ViaDeref, Name: n.Name, Value: value, Span_: n.Span_}, nil
}

func (t *Transpiler) VisitFuncDef(n *ast.FuncDef) (any, error) {
	returnType := ast.Simple(ast.Void)
	if n.ReturnType != nil {
		returnType = *n.ReturnType
	}
	if isUnsupported(returnType) {
		return nil, errUnsupportedType(returnType, n.Span_)
	}

	params := make([]cnode.Param, 0, len(n.Params))
	for _, p := range n.Params {
		if isUnsupported(p.Type) {
			return nil, errUnsupportedType(p.Type, n.Span_)
		}
		params = append(params, cnode.Param{Type: lowerType(p.Type), Name: p.Name})
	}

	body := make([]cnode.Node, 0, len(n.Body))
	for _, stmt := range n.Body {
		lowered, err := t.lowerNode(stmt)
		if err != nil {
			return nil, err
		}
		body = append(body, lowered)
	}

	return &cnode.FuncDef{
		Name:       n.Name,
		Params:     params,
		ReturnType: lowerType(returnType),
		Body:       body,
		Span_:      n.Span_,
	}, nil
}

func (t *Transpiler) VisitFuncCall(n *ast.FuncCall) (any, error) {
	args := make([]cnode.Node, 0, len(n.Args))
	for _, a := range n.Args {
		lowered, err := t.lowerNode(a)
		if err != nil {
			return nil, err
		}
		args = append(args, lowered)
	}
	return &cnode.FuncCall{Name: n.Name, Args: args, Span_: n.Span_}, nil
}

func (t *Transpiler) VisitReturn(n *ast.Return) (any, error) {
	if n.Expr == nil {
		return &cnode.Return{Span_: n.Span_}, nil
	}
	expr, err := t.lowerNode(n.Expr)
	if err != nil {
		return nil, err
	}
	return &cnode.Return{Expr: expr, Span_: n.Span_}, nil
}

// VisitExternFn lowers to nothing: an extern declaration only feeds the
// analyzer's signature table, it has no standalone C representation here
// (the real declaration is expected to arrive via the linked header).
func (t *Transpiler) VisitExternFn(n *ast.ExternFn) (any, error) {
	return nil, nil
}

// VisitImport should never see a residual Import node — the analyzer
// splices an imported module's own emitted nodes into the tree in its
// place during import resolution, so one reaching the transpiler is an
// internal invariant violation rather than a user-facing error.
func (t *Transpiler) VisitImport(n *ast.Import) (any, error) {
	return nil, errInternal(n.Span_, "unresolved import %q reached the transpiler", n.Path)
}

func (t *Transpiler) VisitInclude(n *ast.Include) (any, error) {
	return &cnode.Include{Path: n.Path, Span_: n.Span_}, nil
}
