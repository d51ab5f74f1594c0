package transpile

import (
	"testing"

	"lead/analyzer"
	"lead/ast"
	"lead/cnode"
	"lead/lexer"
	"lead/parser"
)

func lower(t *testing.T, src string, isMain bool) []cnode.Node {
	t.Helper()
	toks, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	nodes, err := parser.New(toks).Parse()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	residual, err := analyzer.Analyze(nodes, isMain)
	if err != nil {
		t.Fatalf("analyzer error: %v", err)
	}
	out, err := Lower(residual)
	if err != nil {
		t.Fatalf("transpile error: %v", err)
	}
	return out
}

func TestFoldedReturnLowersToNumberLiteral(t *testing.T) {
	out := lower(t, "fn main(): i32 { return 1 + 2; }", true)
	fn := out[0].(*cnode.FuncDef)
	ret := fn.Body[0].(*cnode.Return)
	val, ok := ret.Expr.(*cnode.CValue)
	if !ok || val.Text != "3" {
		t.Fatalf("want folded literal 3, got %+v", ret.Expr)
	}
	if fn.ReturnType.String() != "int" {
		t.Fatalf("want 'int' return type, got %q", fn.ReturnType)
	}
}

func TestViaDerefAssignmentCarriesThrough(t *testing.T) {
	out := lower(t, "fn main(): i32 { let x: i32 = 0; var p: ref i32 = ref x; let y: i32 = 1; p = y; return 0; }", true)
	fn := out[0].(*cnode.FuncDef)
	assign := fn.Body[3].(*cnode.VarAssign)
	if !assign.ViaDeref {
		t.Fatalf("expected ViaDeref to survive into the C-IR assignment")
	}
	refDef := fn.Body[1].(*cnode.VarDef)
	if refDef.Type.String() != "int*" {
		t.Fatalf("want 'int*' for ref i32, got %q", refDef.Type)
	}
}

func TestXorExpandsToOrAndNotAnd(t *testing.T) {
	out := lower(t, "fn f(a: bool, b: bool): bool { return a xor b; }", false)
	fn := out[0].(*cnode.FuncDef)
	ret := fn.Body[0].(*cnode.Return)
	top := ret.Expr.(*cnode.BinaryOp)
	if top.Operator != cnode.And {
		t.Fatalf("want top-level && , got %v", top.Operator)
	}
	or, ok := top.Left.(*cnode.BinaryOp)
	if !ok || or.Operator != cnode.Or {
		t.Fatalf("want left side (a || b), got %+v", top.Left)
	}
	not, ok := top.Right.(*cnode.UnaryOp)
	if !ok || not.Operator != cnode.Not {
		t.Fatalf("want right side !(a && b), got %+v", top.Right)
	}
}

func TestConstSuffixAppliesToConstAndInitializedLet(t *testing.T) {
	out := lower(t, "let x: i32 = 1; const y: i32 = 2;", false)
	xDef := out[0].(*cnode.VarDef)
	yDef := out[1].(*cnode.VarDef)
	if !xDef.Const {
		t.Fatalf("initialized let should lower with the const suffix")
	}
	if !yDef.Const {
		t.Fatalf("const should always lower with the const suffix")
	}
}

func TestStringTypeIsRejected(t *testing.T) {
	toks, err := lexer.New(`let s: str = "hi";`).Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	nodes, err := parser.New(toks).Parse()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	residual, err := analyzer.Analyze(nodes, false)
	if err != nil {
		t.Fatalf("analyzer error: %v", err)
	}
	_, err = Lower(residual)
	if err == nil {
		t.Fatalf("expected an UnsupportedType error lowering str")
	}
	if terr, ok := err.(*Error); !ok || terr.Kind != UnsupportedType {
		t.Fatalf("want UnsupportedType, got %v", err)
	}
}

func TestRefVoidCastLowersToVoidPointer(t *testing.T) {
	out := lower(t, "fn main(): i32 { let x: i32 = 0; let p: ref void = (ref x) to ref void; return 0; }", true)
	fn := out[0].(*cnode.FuncDef)
	def := fn.Body[1].(*cnode.VarDef)
	if def.Type.String() != "void*" {
		t.Fatalf("want 'void*', got %q", def.Type)
	}
	_ = ast.Void
}
