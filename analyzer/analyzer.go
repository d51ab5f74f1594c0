package analyzer

import (
	"os"

	"github.com/sirupsen/logrus"

	"lead/ast"
	"lead/lexer"
	"lead/parser"
	"lead/position"
	"lead/scope"
)

// visitResult is what every VisitX method packs into the `any` Accept
// returns: the node's static type (absent for statements), and the zero,
// one, or many residual nodes it contributes to the output sequence.
// Zero nodes covers ExternFn/Import merging pure symbol-table effects;
// many covers Import splicing an entire imported module's nodes in.
type visitResult struct {
	Type    ast.DataType
	HasType bool
	Nodes   []ast.Node
}

func (r visitResult) soleNode() ast.Node {
	if len(r.Nodes) != 1 {
		return nil
	}
	return r.Nodes[0]
}

func single(n ast.Node) []ast.Node {
	return []ast.Node{n}
}

// Analyzer is core A: a single-pass, fail-fast walk over a parsed Lead
// AST that resolves names against a scope.Table, infers and checks
// types, folds compile-time-foldable expressions, and splices imports.
type Analyzer struct {
	table *scope.Table
}

func newAnalyzer() *Analyzer {
	return &Analyzer{table: scope.NewTable()}
}

// Analyze type-checks, folds and resolves a parsed top-level node
// sequence. isMain gates the post-pass main-function check.
func Analyze(nodes []ast.Node, isMain bool) ([]ast.Node, error) {
	return newAnalyzer().run(nodes, isMain)
}

func (a *Analyzer) run(nodes []ast.Node, isMain bool) ([]ast.Node, error) {
	var out []ast.Node
	for _, n := range nodes {
		res, err := n.Accept(a)
		if err != nil {
			return nil, err
		}
		vr := res.(visitResult)
		out = append(out, vr.Nodes...)
	}

	if isMain {
		if err := a.checkMain(endSpan(nodes)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func endSpan(nodes []ast.Node) position.Span {
	if len(nodes) == 0 {
		return position.EOFSpan()
	}
	return nodes[len(nodes)-1].Span()
}

func (a *Analyzer) checkMain(span position.Span) error {
	fn, ok := a.table.LookupFunction("main")
	if !ok {
		return errMissingMainFunction(span)
	}
	if len(fn.Params) != 0 || !fn.ReturnType.Equals(ast.Simple(ast.I32)) {
		return errMainFunctionNotCorrectlyDefined(span)
	}
	return nil
}

// analyzeExpr visits n expecting it to be an expression (something that
// produces a static type), unwrapping the single residual node it
// produced.
func (a *Analyzer) analyzeExpr(n ast.Node) (ast.DataType, ast.Node, error) {
	res, err := n.Accept(a)
	if err != nil {
		return ast.DataType{}, nil, err
	}
	vr := res.(visitResult)
	if !vr.HasType {
		return ast.DataType{}, nil, errInternal(n.Span(), "expected an expression here")
	}
	return vr.Type, vr.soleNode(), nil
}

func (a *Analyzer) VisitValue(n *ast.Value) (any, error) {
	return visitResult{Type: n.DataTypeOf(), HasType: true, Nodes: single(n)}, nil
}

func (a *Analyzer) VisitVarCall(n *ast.VarCall) (any, error) {
	v, ok := a.table.LookupVariable(n.Name)
	if !ok {
		return nil, errVariableNotFound(n.Name, n.Span_)
	}
	return visitResult{
		Type:    v.DataType,
		HasType: true,
		Nodes:   single(&ast.VarCall{Name: n.Name, Type: v.DataType, Span_: n.Span_}),
	}, nil
}

// VisitVarDef implements the five-step algorithm: shadow check first
// (matching the order the reference evaluator uses — a shadowed name is
// reported even if its initializer would also fail to type-check), then
// initializer/type resolution, then registration.
func (a *Analyzer) VisitVarDef(n *ast.VarDef) (any, error) {
	if a.table.IsShadowing(n.Name) {
		return nil, errShadowing(n.Name, n.Span_)
	}

	var finalType ast.DataType
	var initNode ast.Node

	switch {
	case n.Init != nil:
		initType, node, err := a.analyzeExpr(n.Init)
		if err != nil {
			return nil, err
		}
		if n.DataType != nil {
			if !initType.IsConvertibleTo(*n.DataType) {
				return nil, errIncompatibleTypes(*n.DataType, initType, n.Init.Span())
			}
			finalType = *n.DataType
		} else {
			finalType = initType
		}
		initNode = node
	case n.DataType != nil:
		finalType = *n.DataType
	default:
		return nil, errMissingType(n.Span_)
	}

	a.table.DeclareVariable(scope.VariableData{
		Name:        n.Name,
		VarKind:     n.VarKind,
		DataType:    finalType,
		Initialized: n.Init != nil,
	})

	return visitResult{Nodes: single(&ast.VarDef{
		VarKind:  n.VarKind,
		Name:     n.Name,
		DataType: &finalType,
		Init:     initNode,
		Span_:    n.Span_,
	})}, nil
}

func (a *Analyzer) VisitVarAssign(n *ast.VarAssign) (any, error) {
	v, ok := a.table.LookupVariable(n.Name)
	if !ok {
		return nil, errVariableNotFound(n.Name, n.Span_)
	}

	modifiable := false
	switch v.VarKind {
	case ast.KindVar:
		modifiable = true
	case ast.KindLet:
		modifiable = !v.Initialized
	}
	if !modifiable {
		return nil, errVariableCannotBeModified(n.Name, n.Span_)
	}

	valueType, valueNode, err := a.analyzeExpr(n.Value)
	if err != nil {
		return nil, err
	}
	viaDeref := false
	if !valueType.IsConvertibleTo(v.DataType) {
		if v.DataType.Kind != ast.Ref || v.DataType.Inner == nil || !valueType.IsConvertibleTo(*v.DataType.Inner) {
			return nil, errIncompatibleTypes(v.DataType, valueType, n.Value.Span())
		}
		viaDeref = true
	}

	if v.VarKind == ast.KindLet {
		a.table.MarkInitialized(n.Name)
	}

	return visitResult{Nodes: single(&ast.VarAssign{
		ViaDeref: viaDeref,
		Name:     n.Name,
		Value:    valueNode,
		Span_:    n.Span_,
	})}, nil
}

func (a *Analyzer) VisitBinaryOp(n *ast.BinaryOp) (any, error) {
	leftType, leftNode, err := a.analyzeExpr(n.Left)
	if err != nil {
		return nil, err
	}
	rightType, rightNode, err := a.analyzeExpr(n.Right)
	if err != nil {
		return nil, err
	}

	resultType, ok := n.Operator.CheckCompatibility(leftType, rightType)
	if !ok {
		return nil, errIncompatibleBinOperator(leftType, n.Operator, rightType, n.Span_)
	}

	if leftLit, ok := leftNode.(*ast.Value); ok {
		if rightLit, ok := rightNode.(*ast.Value); ok {
			folded, didFold, err := foldConstant(n.Operator, leftLit, rightLit)
			if err != nil {
				return nil, err
			}
			if didFold {
				folded.Span_ = n.Span_
				return visitResult{Type: folded.DataTypeOf(), HasType: true, Nodes: single(folded)}, nil
			}
		}
	}

	return visitResult{
		Type:    resultType,
		HasType: true,
		Nodes: single(&ast.BinaryOp{
			Left:     leftNode,
			Operator: n.Operator,
			Right:    rightNode,
			Type:     resultType,
			Span_:    n.Span_,
		}),
	}, nil
}

func (a *Analyzer) VisitUnaryOp(n *ast.UnaryOp) (any, error) {
	operandType, operandNode, err := a.analyzeExpr(n.Operand)
	if err != nil {
		return nil, err
	}
	resultType, ok := n.Operator.IsUnaryCompatible(operandType)
	if !ok {
		return nil, errIncompatibleUnaryOperator(n.Operator, operandType, n.Span_)
	}
	return visitResult{
		Type:    resultType,
		HasType: true,
		Nodes: single(&ast.UnaryOp{
			Operator: n.Operator,
			Operand:  operandNode,
			Type:     resultType,
			Span_:    n.Span_,
		}),
	}, nil
}

func (a *Analyzer) VisitCast(n *ast.Cast) (any, error) {
	exprType, exprNode, err := a.analyzeExpr(n.Expr)
	if err != nil {
		return nil, err
	}
	if !exprType.IsCastableTo(n.To) {
		return nil, errIncompatibleTypes(n.To, exprType, n.Span_)
	}
	return visitResult{
		Type:    n.To,
		HasType: true,
		Nodes:   single(&ast.Cast{Expr: exprNode, To: n.To, Span_: n.Span_}),
	}, nil
}

func checkDuplicateParams(params []ast.Param) (string, bool) {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p.Name] {
			return p.Name, true
		}
		seen[p.Name] = true
	}
	return "", false
}

func returnTypeOf(declared *ast.DataType) ast.DataType {
	if declared == nil {
		return ast.Simple(ast.Void)
	}
	return *declared
}

func (a *Analyzer) VisitFuncDef(n *ast.FuncDef) (any, error) {
	if !a.table.IsRoot() {
		return nil, errFunctionDefinitionNotAllowed(n.Span_)
	}
	if _, exists := a.table.LookupFunction(n.Name); exists {
		return nil, errFunctionAlreadyExists(n.Name, n.Span_)
	}
	if dup, ok := checkDuplicateParams(n.Params); ok {
		return nil, errDuplicateFunctionParameter(dup, n.Span_)
	}

	returnType := returnTypeOf(n.ReturnType)
	logrus.WithFields(logrus.Fields{"function": n.Name, "params": len(n.Params)}).Debug("analyzing function definition")
	a.table.DeclareFunction(scope.FunctionData{Name: n.Name, ReturnType: returnType, Params: n.Params})

	a.table.EnterFunction(n.Name, returnType)
	for _, p := range n.Params {
		a.table.DeclareVariable(scope.VariableData{Name: p.Name, VarKind: ast.KindFunctionParam, DataType: p.Type, Initialized: true})
	}

	var body []ast.Node
	for _, stmt := range n.Body {
		res, err := stmt.Accept(a)
		if err != nil {
			return nil, err
		}
		body = append(body, res.(visitResult).Nodes...)
	}
	a.table.Leave()

	return visitResult{Nodes: single(&ast.FuncDef{
		Name:       n.Name,
		Params:     n.Params,
		ReturnType: &returnType,
		Body:       body,
		Span_:      n.Span_,
	})}, nil
}

func (a *Analyzer) VisitReturn(n *ast.Return) (any, error) {
	if a.table.IsRoot() {
		return nil, errCannotReturn(n.Span_)
	}
	declared, _ := a.table.CurrentReturnType()

	var exprNode ast.Node
	exprType := ast.Simple(ast.Void)
	if n.Expr != nil {
		var node ast.Node
		var err error
		exprType, node, err = a.analyzeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		exprNode = node
	}

	if !exprType.IsConvertibleTo(declared) {
		return nil, errIncompatibleTypes(declared, exprType, n.Span_)
	}

	return visitResult{Nodes: single(&ast.Return{Expr: exprNode, Span_: n.Span_})}, nil
}

// VisitFuncCall matches arguments against parameters front-to-back (the
// source's back-to-front pop_back matching is a documented bug, not
// reproduced here — see the "variadic call semantics" design note).
func (a *Analyzer) VisitFuncCall(n *ast.FuncCall) (any, error) {
	fn, ok := a.table.LookupFunction(n.Name)
	if !ok {
		return nil, errFunctionNotFound(n.Name, n.Span_)
	}

	if len(n.Args) < len(fn.Params) || (!fn.Variadic && len(n.Args) != len(fn.Params)) {
		return nil, errIncorrectParameterCount(n.Name, len(fn.Params), len(n.Args), n.Span_)
	}

	argNodes := make([]ast.Node, len(n.Args))
	for i, arg := range n.Args {
		argType, argNode, err := a.analyzeExpr(arg)
		if err != nil {
			return nil, err
		}
		argNodes[i] = argNode
		if i < len(fn.Params) {
			if !argType.IsConvertibleTo(fn.Params[i].Type) {
				return nil, errIncompatibleTypes(fn.Params[i].Type, argType, arg.Span())
			}
		}
	}

	return visitResult{
		Type:    fn.ReturnType,
		HasType: true,
		Nodes: single(&ast.FuncCall{
			Name:       n.Name,
			Args:       argNodes,
			ReturnType: fn.ReturnType,
			Span_:      n.Span_,
		}),
	}, nil
}

func (a *Analyzer) VisitExternFn(n *ast.ExternFn) (any, error) {
	if _, exists := a.table.LookupFunction(n.Name); exists {
		return nil, errFunctionAlreadyExists(n.Name, n.Span_)
	}
	if dup, ok := checkDuplicateParams(n.Params); ok {
		return nil, errDuplicateFunctionParameter(dup, n.Span_)
	}
	a.table.DeclareFunction(scope.FunctionData{
		Name:       n.Name,
		ReturnType: returnTypeOf(n.ReturnType),
		Params:     n.Params,
		Variadic:   n.Variadic,
	})
	return visitResult{}, nil
}

// VisitImport resolves `<path>.lead` relative to the working directory,
// runs the full lexer/parser/analyzer pipeline on it with isMain=false,
// then merges its root-scope symbols into the current scope and splices
// its emitted nodes into the current output sequence.
func (a *Analyzer) VisitImport(n *ast.Import) (any, error) {
	logrus.WithField("path", n.Path).Debug("resolving import")

	src, err := os.ReadFile(n.Path + ".lead")
	if err != nil {
		return nil, errf(ImportIOError, n.Span_, "cannot read import %q: %v", n.Path, err)
	}

	toks, err := lexer.New(string(src)).Scan()
	if err != nil {
		return nil, err
	}
	parsed, err := parser.New(toks).Parse()
	if err != nil {
		return nil, err
	}

	sub := newAnalyzer()
	importedNodes, err := sub.run(parsed, false)
	if err != nil {
		return nil, err
	}

	for _, fn := range sub.table.Functions() {
		if _, exists := a.table.LookupFunction(fn.Name); exists {
			return nil, errFunctionAlreadyExists(fn.Name, n.Span_)
		}
		a.table.DeclareFunction(fn)
	}
	for _, v := range sub.table.Variables() {
		if a.table.IsShadowing(v.Name) {
			return nil, errShadowing(v.Name, n.Span_)
		}
		a.table.DeclareVariable(v)
	}

	return visitResult{Nodes: importedNodes}, nil
}

func (a *Analyzer) VisitInclude(n *ast.Include) (any, error) {
	return visitResult{Nodes: single(n)}, nil
}
