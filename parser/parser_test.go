package parser

import (
	"testing"

	"github.com/hashicorp/go-multierror"

	"lead/ast"
	"lead/lexer"
)

func parse(t *testing.T, src string) []ast.Node {
	t.Helper()
	toks, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	nodes, err := New(toks).Parse()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	return nodes
}

func TestParseVarDefWithTypeAndInit(t *testing.T) {
	nodes := parse(t, "let x: i32 = 1 + 2 * 3;")
	if len(nodes) != 1 {
		t.Fatalf("want 1 node, got %d", len(nodes))
	}
	def, ok := nodes[0].(*ast.VarDef)
	if !ok {
		t.Fatalf("want *ast.VarDef, got %T", nodes[0])
	}
	if def.VarKind != ast.KindLet || def.Name != "x" || def.DataType == nil || def.DataType.Kind != ast.I32 {
		t.Fatalf("unexpected def: %+v", def)
	}
	bin, ok := def.Init.(*ast.BinaryOp)
	if !ok || bin.Operator != ast.Plus {
		t.Fatalf("want top-level '+' (factor binds tighter), got %+v", def.Init)
	}
	rhs, ok := bin.Right.(*ast.BinaryOp)
	if !ok || rhs.Operator != ast.Multiply {
		t.Fatalf("want '*' nested under '+', got %+v", bin.Right)
	}
}

func TestParseFuncDefWithParamsAndReturn(t *testing.T) {
	nodes := parse(t, "fn add(a: i32, b: i32): i32 { return a + b; }")
	fn, ok := nodes[0].(*ast.FuncDef)
	if !ok {
		t.Fatalf("want *ast.FuncDef, got %T", nodes[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 || fn.ReturnType == nil || fn.ReturnType.Kind != ast.I32 {
		t.Fatalf("unexpected func def: %+v", fn)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("want 1 body statement, got %d", len(fn.Body))
	}
	if _, ok := fn.Body[0].(*ast.Return); !ok {
		t.Fatalf("want *ast.Return, got %T", fn.Body[0])
	}
}

func TestParseExternVariadic(t *testing.T) {
	nodes := parse(t, `#extern printf(fmt: str, ...): i32;`)
	ext, ok := nodes[0].(*ast.ExternFn)
	if !ok {
		t.Fatalf("want *ast.ExternFn, got %T", nodes[0])
	}
	if ext.Name != "printf" || !ext.Variadic || len(ext.Params) != 1 {
		t.Fatalf("unexpected extern: %+v", ext)
	}
}

func TestParseImportAndInclude(t *testing.T) {
	nodes := parse(t, `#import "std/io"; #include "stdio.h";`)
	imp, ok := nodes[0].(*ast.Import)
	if !ok || imp.Path != "std/io" {
		t.Fatalf("unexpected import: %+v", nodes[0])
	}
	inc, ok := nodes[1].(*ast.Include)
	if !ok || inc.Path != "stdio.h" {
		t.Fatalf("unexpected include: %+v", nodes[1])
	}
}

func TestParseAssignmentAndCall(t *testing.T) {
	nodes := parse(t, "x = foo(1, 2);")
	assign, ok := nodes[0].(*ast.VarAssign)
	if !ok || assign.Name != "x" {
		t.Fatalf("want *ast.VarAssign, got %+v", nodes[0])
	}
	call, ok := assign.Value.(*ast.FuncCall)
	if !ok || call.Name != "foo" || len(call.Args) != 2 {
		t.Fatalf("unexpected call: %+v", assign.Value)
	}
}

func TestParseRefConstRefDerefAndCast(t *testing.T) {
	nodes := parse(t, "let y = deref (const ref x to ref i32);")
	def := nodes[0].(*ast.VarDef)
	deref, ok := def.Init.(*ast.UnaryOp)
	if !ok || deref.Operator != ast.Deref {
		t.Fatalf("want outer deref, got %+v", def.Init)
	}
	constRef, ok := deref.Operand.(*ast.UnaryOp)
	if !ok || constRef.Operator != ast.ConstRefOp {
		t.Fatalf("want const-ref under deref, got %+v", deref.Operand)
	}
	cast, ok := constRef.Operand.(*ast.Cast)
	if !ok || cast.To.Kind != ast.Ref || cast.To.Inner.Kind != ast.I32 {
		t.Fatalf("want cast to ref i32 under const ref (cast binds tighter than unary), got %+v", constRef.Operand)
	}
}

func TestParseLogicalLooserThanComparison(t *testing.T) {
	nodes := parse(t, "let ok = a < b and c > d;")
	def := nodes[0].(*ast.VarDef)
	top, ok := def.Init.(*ast.BinaryOp)
	if !ok || top.Operator != ast.And {
		t.Fatalf("want top-level 'and', got %+v", def.Init)
	}
	if _, ok := top.Left.(*ast.BinaryOp); !ok {
		t.Fatalf("want comparison nested under 'and', got %+v", top.Left)
	}
}

func TestParseMultipleErrorsAccumulate(t *testing.T) {
	toks, err := lexer.New("let ; let x = 1; const ;").Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	_, perr := New(toks).Parse()
	if perr == nil {
		t.Fatalf("expected a parse error")
	}
	if merr, ok := perr.(*multierror.Error); !ok || len(merr.Errors) != 2 {
		t.Fatalf("want both syntax errors collected, got %v", perr)
	}
}
